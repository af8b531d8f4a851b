package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codewithemmax/WordLinkapp/internal/services"
)

// respondError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a 500 with no internal detail leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrAuthorization):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrSelfReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrUploadTimeout),
		errors.Is(err, services.ErrUploadFailed),
		errors.Is(err, services.ErrDispatch):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// saveTempUpload writes a multipart file to a unique temp path. The upload
// service owns removing it afterwards.
func saveTempUpload(c *gin.Context, field string) (string, bool, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", false, nil // no file attached
	}
	path := filepath.Join(os.TempDir(), "wordlink-"+uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", false, err
	}
	return path, true, nil
}
