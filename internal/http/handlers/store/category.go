package store

import (
	"strconv"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji"`
}

// CreateCategory 创建分类（管理员）
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), req.Name, req.Emoji)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（管理员，仅限无商品引用）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), uint(id)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// SweepCategories 清理无商品引用的分类（管理员）
func (h *Handler) SweepCategories(c *gin.Context) {
	removed, err := h.CategoryService.Sweep(c.Request.Context())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
