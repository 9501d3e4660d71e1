package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/middleware"
	"mercado_api_v1/internal/service"
)

type ShopController struct {
	shopSvc *service.ShopService
}

func NewShopController(shopSvc *service.ShopService) *ShopController {
	return &ShopController{shopSvc: shopSvc}
}

// ListShops list visible shops
// @Summary List shops
// @Description Anonymous callers see active shops; authenticated callers additionally see their own. Narrowed by owner, status and search parameters.
// @Tags Shops
// @Produce json
// @Param owner query string false "Filter by owner id"
// @Param status query string false "Filter by status (draft|active)"
// @Param search query string false "Case-insensitive substring over name and description"
// @Success 200 {object} dto.ShopListResp
// @Router /api/v1/shops [get]
func (c *ShopController) ListShops(ctx *gin.Context) {
	var req dto.ShopListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters: " + err.Error()})
		return
	}

	resp, err := c.shopSvc.ListShops(ctx.Request.Context(), middleware.GetUserID(ctx), req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetShop fetch one shop
// @Summary Get shop detail
// @Description 404 when the shop does not exist or is outside the caller's visibility.
// @Tags Shops
// @Produce json
// @Param id path int true "Shop id"
// @Success 200 {object} dto.ShopResp
// @Failure 404 {object} map[string]string
// @Router /api/v1/shops/{id} [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	resp, err := c.shopSvc.GetShop(ctx.Request.Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateShop create a shop owned by the caller
// @Summary Create shop
// @Description The owner is always the authenticated caller, regardless of the payload.
// @Tags Shops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ShopCreateReq true "Shop"
// @Success 201 {object} dto.ShopResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/shops [post]
func (c *ShopController) CreateShop(ctx *gin.Context) {
	var req dto.ShopCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.shopSvc.CreateShop(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateShop owner-gated update
// @Summary Update shop
// @Tags Shops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop id"
// @Param request body dto.ShopUpdateReq true "Fields to change"
// @Success 200 {object} dto.ShopResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/shops/{id} [patch]
func (c *ShopController) UpdateShop(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	var req dto.ShopUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.shopSvc.UpdateShop(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteShop owner-gated cascade delete
// @Summary Delete shop
// @Description Deletes the shop and every product in it.
// @Tags Shops
// @Security BearerAuth
// @Param id path int true "Shop id"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/shops/{id} [delete]
func (c *ShopController) DeleteShop(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	if err := c.shopSvc.DeleteShop(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ResetShop owner-gated reset to the blank draft template
// @Summary Reset shop
// @Description Atomically deletes every product of the shop and reverts its fields to the draft template.
// @Tags Shops
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop id"
// @Success 200 {object} dto.ShopResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/shops/{id}/reset [post]
func (c *ShopController) ResetShop(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	resp, err := c.shopSvc.ResetShop(ctx.Request.Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UploadImage owner-gated image upload
// @Summary Upload shop image
// @Tags Shops
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shop id"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.ShopResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/shops/{id}/image [put]
func (c *ShopController) UploadImage(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	data, filename, contentType, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	resp, err := c.shopSvc.UploadImage(ctx.Request.Context(), middleware.GetUserID(ctx), id, data, filename, contentType)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
