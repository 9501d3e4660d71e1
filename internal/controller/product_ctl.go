package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/middleware"
	"mercado_api_v1/internal/service"
)

type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// ListProducts list visible products
// @Summary List products
// @Description With shop_id the listing is pinned to that shop and skips the active-shop restriction; without it, only products of active shops appear.
// @Tags Products
// @Produce json
// @Param shop_id query string false "Pin the listing to one shop"
// @Param search query string false "Case-insensitive substring over name and description"
// @Success 200 {object} dto.ProductListResp
// @Router /api/v1/products [get]
func (c *ProductController) ListProducts(ctx *gin.Context) {
	var req dto.ProductListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters: " + err.Error()})
		return
	}

	resp, err := c.productSvc.ListProducts(ctx.Request.Context(), req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetProduct fetch one product
// @Summary Get product detail
// @Tags Products
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} dto.ProductResp
// @Failure 404 {object} map[string]string
// @Router /api/v1/products/{id} [get]
func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	resp, err := c.productSvc.GetProduct(ctx.Request.Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateProduct create a product in one of the caller's shops
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductCreateReq true "Product"
// @Success 201 {object} dto.ProductResp
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.ProductCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.productSvc.CreateProduct(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateProduct owner-gated update; the parent shop is immutable
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Param request body dto.ProductUpdateReq true "Fields to change"
// @Success 200 {object} dto.ProductResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/products/{id} [patch]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	var req dto.ProductUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.productSvc.UpdateProduct(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteProduct owner-gated delete
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	if err := c.productSvc.DeleteProduct(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UploadImage owner-gated image upload
// @Summary Upload product image
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.ProductResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/products/{id}/image [put]
func (c *ProductController) UploadImage(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	data, filename, contentType, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	resp, err := c.productSvc.UploadImage(ctx.Request.Context(), middleware.GetUserID(ctx), id, data, filename, contentType)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
