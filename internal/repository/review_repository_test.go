package repository

import (
	"fmt"
	"testing"

	"github.com/shupin-market/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReviewRepositoryTest(t *testing.T) (*GormReviewRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Review{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewReviewRepository(db), db
}

func TestReviewAverageRatingEmptyReturnsNil(t *testing.T) {
	repo, _ := setupReviewRepositoryTest(t)

	avg, err := repo.AverageRating(1)
	if err != nil {
		t.Fatalf("average rating failed: %v", err)
	}
	if avg != nil {
		t.Fatalf("expected nil average, got %v", *avg)
	}
}

func TestReviewAverageRatingComputesMean(t *testing.T) {
	repo, _ := setupReviewRepositoryTest(t)

	ratings := []float64{5, 4, 3}
	for i, rating := range ratings {
		review := &models.Review{ProductID: 7, UserID: uint(i + 1), Rating: rating}
		if err := repo.Create(review); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}
	// 其他商品的评价不参与计算
	if err := repo.Create(&models.Review{ProductID: 8, UserID: 1, Rating: 1}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	avg, err := repo.AverageRating(7)
	if err != nil {
		t.Fatalf("average rating failed: %v", err)
	}
	if avg == nil {
		t.Fatal("expected average, got nil")
	}
	if *avg != 4 {
		t.Fatalf("average want 4 got %v", *avg)
	}
}

func TestReviewListFilterByProduct(t *testing.T) {
	repo, _ := setupReviewRepositoryTest(t)

	for i := 0; i < 3; i++ {
		if err := repo.Create(&models.Review{ProductID: 11, UserID: uint(i + 1), Rating: 5}); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}
	if err := repo.Create(&models.Review{ProductID: 12, UserID: 1, Rating: 2}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	reviews, total, err := repo.List(ReviewListFilter{ProductID: 11, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(reviews) != 2 {
		t.Fatalf("page size want 2 got %d", len(reviews))
	}
}
