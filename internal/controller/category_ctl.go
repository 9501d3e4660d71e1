package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercado_api_v1/internal/service"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// ListCategories public category listing
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /api/v1/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.categorySvc.ListCategories(ctx.Request.Context())
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}
