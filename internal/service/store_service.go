package service

import (
	"strings"

	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"
)

// StoreService 店铺服务
type StoreService struct {
	stores repository.StoreRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(stores repository.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

// CreateStoreInput 创建店铺输入
type CreateStoreInput struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
	Banner      string
	SocialLinks models.SocialLinks
}

// UpdateStoreInput 更新店铺输入
type UpdateStoreInput struct {
	Name        *string
	Description *string
	LogoURL     *string
	Banner      *string
	SocialLinks *models.SocialLinks
}

// Create 创建店铺（每个用户至多一个）
func (s *StoreService) Create(actor Actor, input CreateStoreInput) (*models.Store, error) {
	existing, err := s.stores.GetByOwner(actor.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStoreExists
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTitleRequired
	}
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(name)
	}
	count, err := s.stores.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	store := models.Store{
		OwnerID:     actor.UserID,
		Slug:        slug,
		Name:        name,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Banner:      input.Banner,
		SocialLinks: input.SocialLinks,
	}
	if err := s.stores.Create(&store); err != nil {
		return nil, err
	}
	logger.Infow("store_created", "store_id", store.ID, "owner_id", store.OwnerID)
	return &store, nil
}

// Update 更新店铺（仅店主或管理员）
func (s *StoreService) Update(actor Actor, storeID uint, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if store.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTitleRequired
		}
		store.Name = name
	}
	if input.Description != nil {
		store.Description = *input.Description
	}
	if input.LogoURL != nil {
		store.LogoURL = *input.LogoURL
	}
	if input.Banner != nil {
		store.Banner = *input.Banner
	}
	if input.SocialLinks != nil {
		store.SocialLinks = *input.SocialLinks
	}

	if err := s.stores.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetBySlug 店铺公开详情
func (s *StoreService) GetBySlug(slug string) (*models.Store, error) {
	store, err := s.stores.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

// GetMine 当前用户的店铺
func (s *StoreService) GetMine(actor Actor) (*models.Store, error) {
	store, err := s.stores.GetByOwner(actor.UserID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}
