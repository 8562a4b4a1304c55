package public

import (
	"strconv"
	"strings"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)

	orderBy := strings.TrimSpace(c.DefaultQuery("order_by", "created_at"))
	orderDesc := !strings.EqualFold(c.DefaultQuery("order", "desc"), "asc")

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryName: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		OrderBy:      orderBy,
		OrderDesc:    orderDesc,
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.Get(c.Request.Context(), uint(id))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// GetProductBySlug 按 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.BadRequest(c, "invalid slug")
		return
	}
	product, err := h.ProductService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CheckSlug 检查 slug 是否可用
func (h *Handler) CheckSlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		response.BadRequest(c, "invalid slug")
		return
	}
	available, err := h.ProductService.IsSlugAvailable(slug)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"slug": slug, "available": available})
}
