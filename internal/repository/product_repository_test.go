package repository

import (
	"fmt"
	"testing"

	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Store{}, &models.Category{},
		&models.Product{}, &models.ProductImage{}, &models.DigitalFile{},
		&models.Review{}, &models.CartItem{}, &models.OrderItem{}, &models.Subscription{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, slug string, categoryID uint, status string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		StoreID:     1,
		CategoryID:  categoryID,
		Slug:        slug,
		Title:       "测试商品",
		Description: "digital download",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		PaymentType: constants.PaymentTypeOneTime,
		Status:      status,
		IsActive:    active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListOnlyActiveFiltersDraftAndSuspended(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "pub-1", 1, constants.ProductStatusPublished, true)
	createTestProduct(t, repo, "draft-1", 1, constants.ProductStatusDraft, true)
	createTestProduct(t, repo, "susp-1", 1, constants.ProductStatusSuspended, true)
	createTestProduct(t, repo, "pub-inactive", 1, constants.ProductStatusPublished, false)

	products, total, err := repo.List(ProductListFilter{OnlyActive: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total want 1 got %d", total)
	}
	if len(products) != 1 || products[0].Slug != "pub-1" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestProductListSearchMatchesTitleAndDescription(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	p1 := createTestProduct(t, repo, "search-1", 1, constants.ProductStatusPublished, true)
	p1.Title = "Golang Course"
	if err := db.Save(p1).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	p2 := createTestProduct(t, repo, "search-2", 1, constants.ProductStatusPublished, true)
	p2.Description = "learn golang fast"
	if err := db.Save(p2).Error; err != nil {
		t.Fatalf("save product failed: %v", err)
	}
	createTestProduct(t, repo, "search-3", 1, constants.ProductStatusPublished, true)

	_, total, err := repo.List(ProductListFilter{Search: "GOLANG", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
}

func TestProductListFilterByCategoryName(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	ebooks := &models.Category{Name: "E-books", Emoji: "📚"}
	courses := &models.Category{Name: "Online Courses", Emoji: "🎓"}
	if err := db.Create(ebooks).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(courses).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	createTestProduct(t, repo, "cat-1", ebooks.ID, constants.ProductStatusPublished, true)
	createTestProduct(t, repo, "cat-2", courses.ID, constants.ProductStatusPublished, true)

	products, total, err := repo.List(ProductListFilter{CategoryName: "e-books", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || products[0].Slug != "cat-1" {
		t.Fatalf("category filter mismatch: total=%d products=%+v", total, products)
	}

	// "All" 等同于不过滤
	_, total, err = repo.List(ProductListFilter{CategoryName: "All", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("All category total want 2 got %d", total)
	}
}

func TestProductGetByIDReturnsNilWhenMissing(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestProductCountBySlugWithExclude(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "dup-slug", 1, constants.ProductStatusDraft, true)

	count, err := repo.CountBySlug("dup-slug", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("dup-slug", &product.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclude want 0 got %d", count)
	}
}

func TestProductSetAverageRating(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "rating-1", 1, constants.ProductStatusPublished, true)

	avg := 4.5
	if err := repo.SetAverageRating(product.ID, &avg); err != nil {
		t.Fatalf("set rating failed: %v", err)
	}
	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.AverageRating == nil || *got.AverageRating != 4.5 {
		t.Fatalf("rating want 4.5 got %v", got.AverageRating)
	}

	if err := repo.SetAverageRating(product.ID, nil); err != nil {
		t.Fatalf("clear rating failed: %v", err)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.AverageRating != nil {
		t.Fatalf("rating want nil got %v", *got.AverageRating)
	}
}

func TestProductDeleteCascadeRemovesChildren(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "cascade-1", 1, constants.ProductStatusPublished, true)

	if err := repo.AddImages([]models.ProductImage{{ProductID: product.ID, URL: "https://cdn.example.com/images/a.png"}}); err != nil {
		t.Fatalf("add images failed: %v", err)
	}
	if err := repo.AddDigitalFiles([]models.DigitalFile{{ProductID: product.ID, FileName: "book.pdf", FileSize: 1024, FileURL: "https://cdn.example.com/files/b.pdf"}}); err != nil {
		t.Fatalf("add files failed: %v", err)
	}
	if err := db.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := db.Create(&models.Review{ProductID: product.ID, UserID: 1, Rating: 5}).Error; err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if err := repo.DeleteCascade(product.ID); err != nil {
		t.Fatalf("delete cascade failed: %v", err)
	}

	var count int64
	db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("images remain: %d", count)
	}
	db.Model(&models.DigitalFile{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("digital files remain: %d", count)
	}
	db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("cart items remain: %d", count)
	}
	db.Unscoped().Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("reviews remain: %d", count)
	}
	db.Unscoped().Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("product remains: %d", count)
	}
}

func TestProductDeleteImagesScopedToProduct(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	p1 := createTestProduct(t, repo, "img-1", 1, constants.ProductStatusPublished, true)
	p2 := createTestProduct(t, repo, "img-2", 1, constants.ProductStatusPublished, true)

	images := []models.ProductImage{
		{ProductID: p1.ID, URL: "https://cdn.example.com/images/1.png"},
		{ProductID: p2.ID, URL: "https://cdn.example.com/images/2.png"},
	}
	if err := repo.AddImages(images); err != nil {
		t.Fatalf("add images failed: %v", err)
	}

	// 传入他人商品的图片 ID 不应被删除
	if err := repo.DeleteImages(p1.ID, []uint{images[0].ID, images[1].ID}); err != nil {
		t.Fatalf("delete images failed: %v", err)
	}

	var count int64
	db.Model(&models.ProductImage{}).Where("product_id = ?", p1.ID).Count(&count)
	if count != 0 {
		t.Fatalf("p1 images want 0 got %d", count)
	}
	db.Model(&models.ProductImage{}).Where("product_id = ?", p2.ID).Count(&count)
	if count != 1 {
		t.Fatalf("p2 images want 1 got %d", count)
	}
}
