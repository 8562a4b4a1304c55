package store

import (
	"strconv"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/service"

	"github.com/gin-gonic/gin"
)

// AddReviewRequest 新增评价请求
type AddReviewRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Rating    float64 `json:"rating" binding:"required"`
	Comment   string  `json:"comment"`
}

// AddReview 新增评价
func (h *Handler) AddReview(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	review, err := h.ReviewService.Add(c.Request.Context(), actor, service.AddReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除评价（作者本人或管理员）
func (h *Handler) DeleteReview(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid review id")
		return
	}
	if err := h.ReviewService.Delete(c.Request.Context(), actor, uint(id)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
