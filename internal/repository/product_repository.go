package repository

import (
	"errors"
	"strings"

	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListIndexable() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateFields(id uint, fields map[string]interface{}) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	IncrementViewCount(id uint) error
	SetAverageRating(id uint, rating *float64) error
	ListImages(productID uint, ids []uint) ([]models.ProductImage, error)
	AddImages(images []models.ProductImage) error
	DeleteImages(productID uint, ids []uint) error
	AddDigitalFiles(files []models.DigitalFile) error
	DeleteCascade(productID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).
		Preload("Category").
		Preload("Images")

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true).
			Where("status = ?", constants.ProductStatusPublished)
	}
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := strings.TrimSpace(filter.CategoryName); name != "" && !strings.EqualFold(name, "All") {
		query = query.Where(
			"category_id IN (SELECT id FROM categories WHERE LOWER(name) = LOWER(?) AND deleted_at IS NULL)",
			name,
		)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	query = query.Order(buildProductOrder(filter))

	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func buildProductOrder(filter ProductListFilter) string {
	column := "created_at"
	switch strings.TrimSpace(filter.OrderBy) {
	case "price":
		column = "price"
	case "view_count":
		column = "view_count"
	case "", "created_at":
		column = "created_at"
	}
	if filter.OrderDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

// ListIndexable 列出可进入搜索索引的商品
func (r *GormProductRepository) ListIndexable() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Preload("Images").
		Where("is_active = ?", true).
		Where("status = ?", constants.ProductStatusPublished).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Preload("Store").
		Preload("Images").
		Preload("DigitalFiles").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Category").
		Preload("Store").
		Preload("Images").
		Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true).
			Where("status = ?", constants.ProductStatusPublished)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品（携带的图片与文件关联一并写入）
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateFields 按字段更新商品
func (r *GormProductRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViewCount 浏览量加一
func (r *GormProductRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// SetAverageRating 写入评分均值（无评价时为 NULL）
func (r *GormProductRepository) SetAverageRating(id uint, rating *float64) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("average_rating", rating).Error
}

// ListImages 获取商品图片（ids 为空时返回全部）
func (r *GormProductRepository) ListImages(productID uint, ids []uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	query := r.db.Where("product_id = ?", productID)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// AddImages 追加商品图片
func (r *GormProductRepository) AddImages(images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.Create(&images).Error
}

// DeleteImages 删除指定商品图片
func (r *GormProductRepository) DeleteImages(productID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("product_id = ? AND id IN ?", productID, ids).
		Delete(&models.ProductImage{}).Error
}

// AddDigitalFiles 追加商品数字文件
func (r *GormProductRepository) AddDigitalFiles(files []models.DigitalFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.Create(&files).Error
}

// DeleteCascade 删除商品及其所有关联行
func (r *GormProductRepository) DeleteCascade(productID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.DigitalFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Product{}, productID).Error
	})
}
