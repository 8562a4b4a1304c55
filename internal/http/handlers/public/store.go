package public

import (
	"strings"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetStoreBySlug 按 slug 获取店铺
func (h *Handler) GetStoreBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.BadRequest(c, "invalid slug")
		return
	}
	store, err := h.StoreService.GetBySlug(slug)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, store)
}

// GetStoreProducts 获取店铺在售商品列表
func (h *Handler) GetStoreProducts(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.BadRequest(c, "invalid slug")
		return
	}
	store, err := h.StoreService.GetBySlug(slug)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	page, pageSize := shared.QueryPagination(c)
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    store.ID,
		OnlyActive: true,
		OrderBy:    "created_at",
		OrderDesc:  true,
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}
