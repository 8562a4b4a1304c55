package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shupin-market/internal/cache"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/oracle"
	"github.com/shupin-market/internal/repository"
)

const (
	categoryListCacheKey = "categories:list"
	categoryListCacheTTL = 10 * time.Minute

	existingPrefix = "Existing:"
	newPrefix      = "New:"
)

// CategoryResolver 基于模型推断的分类解析器
type CategoryResolver struct {
	categories repository.CategoryRepository
	completer  oracle.Completer
}

// NewCategoryResolver 创建分类解析器
func NewCategoryResolver(categories repository.CategoryRepository, completer oracle.Completer) *CategoryResolver {
	return &CategoryResolver{categories: categories, completer: completer}
}

// Resolve 根据商品标题与描述确定分类，必要时创建新分类
func (r *CategoryResolver) Resolve(ctx context.Context, title, description string) (uint, error) {
	if r.completer == nil {
		return 0, ErrOracleUnavailable
	}

	categories, err := r.listCategories(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	reply, err := r.completer.Complete(ctx, buildCategoryPrompt(title, description, names), buildCategorySystemPrompt(names))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	reply = strings.TrimSpace(reply)

	switch {
	case strings.HasPrefix(reply, existingPrefix):
		name := strings.TrimSpace(strings.TrimPrefix(reply, existingPrefix))
		for _, category := range categories {
			if strings.EqualFold(category.Name, name) {
				return category.ID, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrCategoryMismatch, name)

	case strings.HasPrefix(reply, newPrefix):
		name, emoji := splitNewCategoryReply(strings.TrimPrefix(reply, newPrefix))
		if name == "" {
			return 0, fmt.Errorf("%w: empty category name", ErrOracleResponseInvalid)
		}
		// 推断结果可能与现有分类重名，命中时直接复用
		existing, err := r.categories.GetByName(name)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}
		category := models.Category{Name: name, Emoji: emoji}
		if err := r.categories.Create(&category); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
		}
		r.invalidateCache(ctx)
		logger.Infow("category_created_from_suggestion", "name", name, "emoji", emoji)
		return category.ID, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrOracleResponseInvalid, reply)
	}
}

func (r *CategoryResolver) listCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetJSON(ctx, categoryListCacheKey, &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	categories, err := r.categories.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, categoryListCacheKey, categories, categoryListCacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

func (r *CategoryResolver) invalidateCache(ctx context.Context) {
	if err := cache.Del(ctx, categoryListCacheKey); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}

func splitNewCategoryReply(raw string) (name, emoji string) {
	parts := strings.SplitN(strings.TrimSpace(raw), "|", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		emoji = strings.TrimSpace(parts[1])
	}
	return name, emoji
}

func buildCategoryPrompt(title, description string, names []string) string {
	return fmt.Sprintf(`Analyze the digital product title %q and description %q. `+
		`Select the most suitable category for this digital product from this list: %s. `+
		`If no existing category fits or a new one is needed, propose a new one that's `+
		`specific to digital products and suggest an appropriate emoji for it. `+
		`Respond with either "Existing: [category name]" for an existing category, `+
		`or "New: [suggested category name] | [emoji]" for a new digital product category.`,
		title, description, strings.Join(names, ", "))
}

func buildCategorySystemPrompt(names []string) string {
	return fmt.Sprintf(`You are an AI assistant specializing in digital product categorization. `+
		`Your task is to categorize digital products based on their title and description. `+
		`Remember that ALL products are digital, so avoid generic categories like "Digital Media" or "Digital Products". `+
		`Instead, focus on specific types of digital products such as "E-books", "Online Courses", "Software Tools", "Digital Art", etc. `+
		`Respond only with one of these two formats: `+
		`1. "Existing: [category name]" if the category already exists in the list. `+
		`2. "New: [suggested category name] | [emoji]" if you're proposing a new category specific to digital products. `+
		`Available categories: [%s]. `+
		`Ensure your response is concise, follows the specified format, and is relevant to digital products only. `+
		`For new categories, the emoji should be a single Unicode character that best represents the category.`,
		strings.Join(names, ", "))
}
