package gallery

import (
	"errors"
	"net/http"

	"templeseva/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/gallery", h.List)
}

func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.POST("/gallery", h.Upload)
	adminGroup.DELETE("/gallery/:id", h.Delete)
}

// List GET /gallery
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch gallery")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Upload POST /admin/gallery
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No image provided")
		return
	}
	caption := c.PostForm("caption")

	item, err := h.service.Upload(c.Request.Context(), fileHeader, caption)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrNotAnImage):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		}
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Delete DELETE /admin/gallery/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Gallery item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
