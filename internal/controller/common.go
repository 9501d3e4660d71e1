package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mercado_api_v1/internal/service"
)

// abortWithServiceError maps service errors onto HTTP statuses. 404
// covers both genuinely missing records and records filtered out by
// visibility; the two are deliberately indistinguishable.
func abortWithServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrShopNotFound),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrUnpairedCoords),
		errors.Is(err, service.ErrCategoryMissing):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parsePathID parses the :id path segment; malformed ids are a 404, the
// same as ids that match nothing.
func parsePathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return 0, false
	}
	return id, true
}

// readUploadedFile pulls the multipart "image" file into memory.
func readUploadedFile(ctx *gin.Context) (data []byte, filename, contentType string, ok bool) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'image' is required"})
		return nil, "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, "", "", false
	}

	return data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), true
}
