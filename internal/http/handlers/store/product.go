package store

import (
	"strconv"
	"strings"

	"github.com/shupin-market/internal/http/handlers/shared"
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProduct 创建商品（multipart 表单，含图片与数字文件）
func (h *Handler) CreateProduct(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}

	myStore, err := h.StoreService.GetMine(actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		response.BadRequest(c, "invalid price")
		return
	}

	images, err := readMultipartFiles(form.File["images"])
	if err != nil {
		response.BadRequest(c, "failed to read images")
		return
	}
	digitalFiles, err := readMultipartFiles(form.File["digital_files"])
	if err != nil {
		response.BadRequest(c, "failed to read digital files")
		return
	}

	product, err := h.ProductService.Create(c.Request.Context(), actor, service.CreateProductInput{
		StoreID:      myStore.ID,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Slug:         c.PostForm("slug"),
		Price:        price,
		PaymentType:  c.PostForm("payment_type"),
		Status:       c.PostForm("status"),
		Images:       images,
		DigitalFiles: digitalFiles,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品（multipart 表单，字段缺省表示不变）
func (h *Handler) UpdateProduct(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}

	var input service.UpdateProductInput
	if v, exists := c.GetPostForm("title"); exists {
		input.Title = &v
	}
	if v, exists := c.GetPostForm("description"); exists {
		input.Description = &v
	}
	if v, exists := c.GetPostForm("slug"); exists {
		input.Slug = &v
	}
	if v, exists := c.GetPostForm("price"); exists {
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			response.BadRequest(c, "invalid price")
			return
		}
		input.Price = &price
	}
	if v, exists := c.GetPostForm("payment_type"); exists {
		input.PaymentType = &v
	}
	if v, exists := c.GetPostForm("is_active"); exists {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "invalid is_active")
			return
		}
		input.IsActive = &active
	}
	removeIDs, err := parseUintList(c.PostFormArray("remove_image_ids"))
	if err != nil {
		response.BadRequest(c, "invalid remove_image_ids")
		return
	}
	input.RemoveImageIDs = removeIDs

	if input.NewImages, err = readMultipartFiles(form.File["images"]); err != nil {
		response.BadRequest(c, "failed to read images")
		return
	}
	if input.NewDigitalFiles, err = readMultipartFiles(form.File["digital_files"]); err != nil {
		response.BadRequest(c, "failed to read digital files")
		return
	}

	product, err := h.ProductService.Update(c.Request.Context(), actor, uint(id), input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProductStatus 更新商品上架状态
func (h *Handler) UpdateProductStatus(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, err := h.ProductService.UpdateStatus(c.Request.Context(), actor, uint(id), req.Status)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品及其附属资源
func (h *Handler) DeleteProduct(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.ProductService.Remove(c.Request.Context(), actor, uint(id)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetMyProducts 获取当前店铺的商品列表（含下架与草稿）
func (h *Handler) GetMyProducts(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	myStore, err := h.StoreService.GetMine(actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	page, pageSize := shared.QueryPagination(c)
	products, total, err := h.ProductService.ListByStore(actor, myStore.ID, page, pageSize)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetMyProduct 获取本店商品详情（店主视角）
func (h *Handler) GetMyProduct(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.GetForOwner(actor, uint(id))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// parseUintList 解析表单中的无符号整数列表，支持逗号分隔
func parseUintList(values []string) ([]uint, error) {
	var result []uint
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, err
			}
			result = append(result, uint(id))
		}
	}
	return result, nil
}
