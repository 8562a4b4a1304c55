package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Store{}, &models.Category{}, &models.Product{})
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	categories, _ := setupCategoryService(t)
	ctx := context.Background()

	if _, err := categories.Create(ctx, "E-books", "📚"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := categories.Create(ctx, "e-BOOKS", "📕"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate name want ErrCategoryExists, got %v", err)
	}
}

func TestCategoryDeleteBlockedWhenInUse(t *testing.T) {
	categories, db := setupCategoryService(t)
	ctx := context.Background()

	category, err := categories.Create(ctx, "Templates", "🧩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	product := models.Product{
		StoreID:    1,
		CategoryID: category.ID,
		Title:      "Landing Page Kit",
		Slug:       "landing-page-kit",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := categories.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("want ErrCategoryInUse, got %v", err)
	}
}

func TestCategorySweepRemovesOnlyEmpty(t *testing.T) {
	categories, db := setupCategoryService(t)
	ctx := context.Background()

	used, err := categories.Create(ctx, "Music", "🎵")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := categories.Create(ctx, "Abandoned", "🗑️"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	product := models.Product{StoreID: 1, CategoryID: used.ID, Title: "Sample Pack", Slug: "sample-pack"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	removed, err := categories.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed want 1 got %d", removed)
	}

	remaining, err := categories.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Name != "Music" {
		t.Fatalf("unexpected remaining categories: %+v", remaining)
	}
}
