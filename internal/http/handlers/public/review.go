package public

import (
	"strconv"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetProductReviews 获取商品评价列表
func (h *Handler) GetProductReviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	page, pageSize := shared.QueryPagination(c)

	reviews, total, err := h.ReviewService.List(uint(id), page, pageSize)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}
