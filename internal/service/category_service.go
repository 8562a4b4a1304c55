package service

import (
	"context"
	"strings"

	"github.com/shupin-market/internal/cache"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"
)

// CategoryService 分类管理服务
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List 分类列表（带缓存）
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetJSON(ctx, categoryListCacheKey, &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, categoryListCacheKey, categories, categoryListCacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// Create 管理员创建分类
func (s *CategoryService) Create(ctx context.Context, name, emoji string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTitleRequired
	}
	existing, err := s.categories.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}
	category := models.Category{Name: name, Emoji: strings.TrimSpace(emoji)}
	if err := s.categories.Create(&category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &category, nil
}

// Delete 删除空分类：仍被商品引用的分类拒绝删除
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	count, err := s.categories.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	logger.Infow("category_deleted", "category_id", id)
	return nil
}

// Sweep 清理所有不再被商品引用的分类，返回删除数量
func (s *CategoryService) Sweep(ctx context.Context) (int, error) {
	categories, err := s.categories.List()
	if err != nil {
		return 0, err
	}
	var removed int
	for _, category := range categories {
		count, err := s.categories.CountProducts(category.ID)
		if err != nil {
			return removed, err
		}
		if count > 0 {
			continue
		}
		if err := s.categories.Delete(category.ID); err != nil {
			return removed, err
		}
		removed++
	}
	if removed > 0 {
		s.invalidate(ctx)
		logger.Infow("category_sweep_done", "removed", removed)
	}
	return removed, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := cache.Del(ctx, categoryListCacheKey); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}
