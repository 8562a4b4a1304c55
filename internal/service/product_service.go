package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/shupin-market/internal/blob"
	"github.com/shupin-market/internal/cache"
	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/queue"
	"github.com/shupin-market/internal/repository"
	"github.com/shupin-market/internal/search"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 商品生命周期服务
type ProductService struct {
	products   repository.ProductRepository
	stores     repository.StoreRepository
	categories repository.CategoryRepository
	assets     *AssetService
	resolver   *CategoryResolver
	index      search.Index
	queue      *queue.Client
}

// NewProductService 创建商品服务
func NewProductService(
	products repository.ProductRepository,
	stores repository.StoreRepository,
	categories repository.CategoryRepository,
	assets *AssetService,
	resolver *CategoryResolver,
	index search.Index,
	queueClient *queue.Client,
) *ProductService {
	return &ProductService{
		products:   products,
		stores:     stores,
		categories: categories,
		assets:     assets,
		resolver:   resolver,
		index:      index,
		queue:      queueClient,
	}
}

// Actor 当前操作者
type Actor struct {
	UserID uint
	Role   string
}

// IsAdmin 判断是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	StoreID      uint
	Title        string
	Description  string
	Slug         string
	Price        decimal.Decimal
	PaymentType  string
	Status       string
	Images       []blob.File
	DigitalFiles []blob.File
}

// UpdateProductInput 更新商品输入
type UpdateProductInput struct {
	Title           *string
	Description     *string
	Slug            *string
	Price           *decimal.Decimal
	PaymentType     *string
	IsActive        *bool
	RemoveImageIDs  []uint
	NewImages       []blob.File
	NewDigitalFiles []blob.File
}

// Create 创建商品：校验归属与载荷、推断分类、上传附件并原子入库
func (s *ProductService) Create(ctx context.Context, actor Actor, input CreateProductInput) (*models.Product, error) {
	store, err := s.stores.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if store.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	price := input.Price.Round(2)
	if price.LessThan(decimal.Zero) {
		return nil, ErrPriceInvalid
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(title)
	}
	count, err := s.products.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	paymentType := normalizePaymentType(input.PaymentType)
	if paymentType == "" {
		return nil, ErrPaymentTypeInvalid
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProductStatusDraft
	}
	if !isValidStatus(status) {
		return nil, ErrStatusInvalid
	}

	// 任何远端上传发生之前完成全部本地校验
	if err := s.assets.ValidateImages(input.Images); err != nil {
		return nil, err
	}
	if err := s.assets.ValidateDigitalFiles(input.DigitalFiles); err != nil {
		return nil, err
	}

	// 上传先于分类推断；中途失败时已上传对象保留（容忍孤儿 blob，不容忍孤儿行）
	imageURLs, err := s.assets.UploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	fileRecords, err := s.assets.UploadDigitalFiles(ctx, input.DigitalFiles)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolver.Resolve(ctx, title, input.Description)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		StoreID:     input.StoreID,
		CategoryID:  categoryID,
		Slug:        slug,
		Title:       title,
		Description: input.Description,
		Price:       models.NewMoneyFromDecimal(price),
		PaymentType: paymentType,
		Status:      status,
		IsActive:    true,
	}
	for _, url := range imageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}
	product.DigitalFiles = fileRecords

	if err := s.products.Create(&product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "store_id", product.StoreID, "slug", product.Slug)

	created, err := s.products.GetByID(product.ID)
	if err != nil || created == nil {
		created = &product
	}
	s.syncIndex(ctx, created)
	return created, nil
}

// Update 更新商品并同步索引
func (s *ProductService) Update(ctx context.Context, actor Actor, productID uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.verifyProductOwnership(actor, productID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		product.Title = title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Slug != nil {
		slug := normalizeSlug(*input.Slug)
		if slug != "" && slug != product.Slug {
			count, err := s.products.CountBySlug(slug, &product.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSlugExists
			}
			product.Slug = slug
		}
	}
	if input.Price != nil {
		price := input.Price.Round(2)
		if price.LessThan(decimal.Zero) {
			return nil, ErrPriceInvalid
		}
		product.Price = models.NewMoneyFromDecimal(price)
	}
	if input.PaymentType != nil {
		paymentType := normalizePaymentType(*input.PaymentType)
		if paymentType == "" {
			return nil, ErrPaymentTypeInvalid
		}
		product.PaymentType = paymentType
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.assets.ValidateImages(input.NewImages); err != nil {
		return nil, err
	}
	if err := s.assets.ValidateDigitalFiles(input.NewDigitalFiles); err != nil {
		return nil, err
	}

	// 图片移除按商品范围过滤，未命中的 ID 静默忽略
	var removeIDs []uint
	var removedURLs []string
	if len(input.RemoveImageIDs) > 0 {
		removed, err := s.products.ListImages(product.ID, input.RemoveImageIDs)
		if err != nil {
			return nil, err
		}
		for _, image := range removed {
			removeIDs = append(removeIDs, image.ID)
			removedURLs = append(removedURLs, image.URL)
		}
	}

	// 所有上传先行，库内行在上传全部成功前不动
	newImageURLs, err := s.assets.UploadImages(ctx, input.NewImages)
	if err != nil {
		return nil, err
	}
	newFiles, err := s.assets.UploadDigitalFiles(ctx, input.NewDigitalFiles)
	if err != nil {
		return nil, err
	}

	images := make([]models.ProductImage, 0, len(newImageURLs))
	for _, url := range newImageURLs {
		images = append(images, models.ProductImage{ProductID: product.ID, URL: url})
	}
	for i := range newFiles {
		newFiles[i].ProductID = product.ID
	}

	// 图片增删与主行更新在同一事务内提交，外部观察不到中间状态
	product.Images = nil
	product.DigitalFiles = nil
	err = s.products.Transaction(func(tx *gorm.DB) error {
		repo := s.products.WithTx(tx)
		if err := repo.DeleteImages(product.ID, removeIDs); err != nil {
			return err
		}
		if err := repo.AddImages(images); err != nil {
			return err
		}
		if err := repo.AddDigitalFiles(newFiles); err != nil {
			return err
		}
		return repo.Update(product)
	})
	if err != nil {
		return nil, err
	}

	// 数据库已删除的图片再清理远端对象
	s.assets.DeleteByURLs(ctx, removedURLs)
	logger.Infow("product_updated", "product_id", product.ID)

	updated, err := s.products.GetByID(product.ID)
	if err != nil || updated == nil {
		updated = product
	}
	s.syncIndex(ctx, updated)
	return updated, nil
}

// UpdateStatus 变更商品状态并同步索引
func (s *ProductService) UpdateStatus(ctx context.Context, actor Actor, productID uint, status string) (*models.Product, error) {
	if !isValidStatus(status) {
		return nil, ErrStatusInvalid
	}
	product, err := s.verifyProductOwnership(actor, productID)
	if err != nil {
		return nil, err
	}
	// 状态未变化时不写库也不触碰索引
	if product.Status == status {
		return product, nil
	}

	product.Status = status
	if err := s.products.UpdateFields(product.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	logger.Infow("product_status_changed", "product_id", product.ID, "status", status)

	s.syncIndex(ctx, product)
	return product, nil
}

// Remove 删除商品、关联行、远端附件与索引记录
func (s *ProductService) Remove(ctx context.Context, actor Actor, productID uint) error {
	product, err := s.verifyProductOwnership(actor, productID)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(product.Images)+len(product.DigitalFiles))
	for _, image := range product.Images {
		urls = append(urls, image.URL)
	}
	for _, file := range product.DigitalFiles {
		urls = append(urls, file.FileURL)
	}

	// 先清远端对象再删行：清理失败只记日志，不阻断删除
	s.assets.DeleteByURLs(ctx, urls)

	if err := s.products.DeleteCascade(product.ID); err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", product.ID)

	s.deleteIndex(ctx, product.ID)
	s.collectEmptyCategory(ctx, product.CategoryID)
	return nil
}

// collectEmptyCategory 删除不再被任何商品引用的分类
func (s *ProductService) collectEmptyCategory(ctx context.Context, categoryID uint) {
	if s.categories == nil || categoryID == 0 {
		return
	}
	count, err := s.categories.CountProducts(categoryID)
	if err != nil {
		logger.Warnw("category_gc_count_failed", "category_id", categoryID, "error", err)
		return
	}
	if count > 0 {
		return
	}
	if err := s.categories.Delete(categoryID); err != nil {
		logger.Warnw("category_gc_delete_failed", "category_id", categoryID, "error", err)
		return
	}
	if err := cache.Del(ctx, categoryListCacheKey); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
	logger.Infow("category_gc_removed", "category_id", categoryID)
}

// Get 公开商品详情，访问计入浏览量
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	if err := s.products.IncrementViewCount(product.ID); err != nil {
		logger.Warnw("view_count_increment_failed", "product_id", product.ID, "error", err)
	}
	return product, nil
}

// GetBySlug 公开商品详情（slug 寻址）
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(normalizeSlug(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetForOwner 店主视角的商品详情（不限状态）
func (s *ProductService) GetForOwner(actor Actor, productID uint) (*models.Product, error) {
	return s.verifyProductOwnership(actor, productID)
}

// List 公开商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.products.List(filter)
}

// ListByStore 店铺维度的商品列表
func (s *ProductService) ListByStore(actor Actor, storeID uint, page, pageSize int) ([]models.Product, int64, error) {
	store, err := s.stores.GetByID(storeID)
	if err != nil {
		return nil, 0, err
	}
	if store == nil {
		return nil, 0, ErrNotFound
	}
	if store.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.products.List(repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		StoreID:   storeID,
		OrderBy:   "created_at",
		OrderDesc: true,
	})
}

// IsSlugAvailable 判断 slug 是否可用
func (s *ProductService) IsSlugAvailable(slug string) (bool, error) {
	count, err := s.products.CountBySlug(normalizeSlug(slug), nil)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Reindex 全量重建搜索索引，返回写入条数
func (s *ProductService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	products, err := s.products.ListIndexable()
	if err != nil {
		return 0, err
	}
	var synced int
	for i := range products {
		if err := s.index.Upsert(ctx, IndexRecord(&products[i])); err != nil {
			logger.Warnw("search_reindex_record_failed", "product_id", products[i].ID, "error", err)
			continue
		}
		synced++
	}
	logger.Infow("search_reindex_done", "total", len(products), "synced", synced)
	return synced, nil
}

// SyncOne 重新同步单个商品的索引（修复任务使用）
func (s *ProductService) SyncOne(ctx context.Context, productID uint) error {
	if s.index == nil {
		return nil
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.Indexable() {
		return s.index.Delete(ctx, formatObjectID(productID))
	}
	return s.index.Upsert(ctx, IndexRecord(product))
}

func (s *ProductService) verifyProductOwnership(actor Actor, productID uint) (*models.Product, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if actor.IsAdmin() {
		return product, nil
	}
	store, err := s.stores.GetByID(product.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}
	return product, nil
}

// syncIndex 尽力同步索引：失败不影响主流程，记录日志并投递修复任务
func (s *ProductService) syncIndex(ctx context.Context, product *models.Product) {
	if s.index == nil || product == nil {
		return
	}
	var err error
	if product.Indexable() {
		err = s.index.Upsert(ctx, IndexRecord(product))
	} else {
		err = s.index.Delete(ctx, formatObjectID(product.ID))
	}
	if err != nil {
		logger.Warnw("search_sync_failed", "product_id", product.ID, "error", err)
		s.enqueueRepair(product.ID)
	}
}

func (s *ProductService) deleteIndex(ctx context.Context, productID uint) {
	if s.index == nil {
		return
	}
	if err := s.index.Delete(ctx, formatObjectID(productID)); err != nil {
		logger.Warnw("search_delete_failed", "product_id", productID, "error", err)
		s.enqueueRepair(productID)
	}
}

func (s *ProductService) enqueueRepair(productID uint) {
	if err := s.queue.EnqueueSearchRepair(queue.SearchRepairPayload{ProductID: productID}); err != nil {
		logger.Warnw("search_repair_enqueue_failed", "product_id", productID, "error", err)
	}
}

// IndexRecord 将商品转换为搜索索引记录
func IndexRecord(product *models.Product) search.Record {
	images := make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, image.URL)
	}
	return search.Record{
		ObjectID:    formatObjectID(product.ID),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price.Float64(),
		Category:    product.Category.Name,
		Images:      images,
		Slug:        product.Slug,
	}
}

func formatObjectID(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

func normalizePaymentType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", constants.PaymentTypeOneTime:
		return constants.PaymentTypeOneTime
	case constants.PaymentTypeRecurring:
		return constants.PaymentTypeRecurring
	default:
		return ""
	}
}

func isValidStatus(status string) bool {
	switch status {
	case constants.ProductStatusDraft, constants.ProductStatusPublished, constants.ProductStatusSuspended:
		return true
	default:
		return false
	}
}

// normalizeSlug 统一 slug 形态：小写、连字符连接
func normalizeSlug(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var builder strings.Builder
	lastHyphen := true
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			builder.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				builder.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(builder.String(), "-")
}
