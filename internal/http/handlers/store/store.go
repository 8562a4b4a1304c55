package store

import (
	"strconv"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStoreRequest 创建店铺请求
type CreateStoreRequest struct {
	Name        string             `json:"name" binding:"required"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	LogoURL     string             `json:"logo_url"`
	Banner      string             `json:"banner"`
	SocialLinks models.SocialLinks `json:"social_links"`
}

// UpdateStoreRequest 更新店铺请求
type UpdateStoreRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	LogoURL     *string             `json:"logo_url"`
	Banner      *string             `json:"banner"`
	SocialLinks *models.SocialLinks `json:"social_links"`
}

// CreateStore 创建店铺
func (h *Handler) CreateStore(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	created, err := h.StoreService.Create(actor, service.CreateStoreInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Banner:      req.Banner,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, created)
}

// UpdateStore 更新店铺信息
func (h *Handler) UpdateStore(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid store id")
		return
	}
	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	updated, err := h.StoreService.Update(actor, uint(id), service.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Banner:      req.Banner,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, updated)
}

// GetMyStore 获取当前用户的店铺
func (h *Handler) GetMyStore(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	myStore, err := h.StoreService.GetMine(actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, myStore)
}
