package service

import (
	"context"

	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/repository"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// AddReviewInput 新增评价输入
type AddReviewInput struct {
	ProductID uint
	Rating    float64
	Comment   string
}

// Add 新增评价并重算商品评分均值
func (s *ReviewService) Add(ctx context.Context, actor Actor, input AddReviewInput) (*models.Review, error) {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrRatingInvalid
	}
	product, err := s.products.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}

	review := models.Review{
		ProductID: input.ProductID,
		UserID:    actor.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviews.Create(&review); err != nil {
		return nil, err
	}
	s.refreshAverage(product.ID)
	return &review, nil
}

// Delete 删除评价（仅作者或管理员）并重算均值
func (s *ReviewService) Delete(ctx context.Context, actor Actor, reviewID uint) error {
	review, err := s.reviews.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	if review.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.reviews.Delete(reviewID); err != nil {
		return err
	}
	s.refreshAverage(review.ProductID)
	return nil
}

// List 评价列表
func (s *ReviewService) List(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviews.List(repository.ReviewListFilter{
		ProductID: productID,
		Page:      page,
		PageSize:  pageSize,
	})
}

// refreshAverage 重算评分均值，无评价时回写 NULL
func (s *ReviewService) refreshAverage(productID uint) {
	avg, err := s.reviews.AverageRating(productID)
	if err != nil {
		logger.Warnw("review_average_compute_failed", "product_id", productID, "error", err)
		return
	}
	if err := s.products.SetAverageRating(productID, avg); err != nil {
		logger.Warnw("review_average_write_failed", "product_id", productID, "error", err)
	}
}
