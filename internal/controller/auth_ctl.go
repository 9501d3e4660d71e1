package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/middleware"
	"mercado_api_v1/internal/service"
)

type AuthController struct {
	userSvc *service.UserService
}

func NewAuthController(userSvc *service.UserService) *AuthController {
	return &AuthController{userSvc: userSvc}
}

// Register create an account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.UserInfo
// @Failure 400 {object} map[string]string
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.userSvc.Register(ctx.Request.Context(), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login issue a token pair
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.userSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// RefreshToken re-issue a token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.userSvc.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetProfile current user's profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	resp, err := c.userSvc.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateProfile update bio/email
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me [patch]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	resp, err := c.userSvc.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UploadAvatar store an avatar image
// @Summary Upload avatar
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me/avatar [put]
func (c *AuthController) UploadAvatar(ctx *gin.Context) {
	data, filename, contentType, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	resp, err := c.userSvc.UploadAvatar(ctx.Request.Context(), middleware.GetUserID(ctx), data, filename, contentType)
	if err != nil {
		abortWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
