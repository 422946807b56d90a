package admin

import (
	"errors"
	"net/http"

	"templeseva/internal/pkg/response"
	"templeseva/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/admin/check", h.CheckAdmin)
}

func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.POST("/admins", h.AddAdmin)
	adminGroup.GET("/admins", h.ListAdmins)
	adminGroup.GET("/donations", h.ListDonations)
	adminGroup.POST("/offline-donations", h.RecordOfflineDonation)
	adminGroup.PUT("/temple-contact", h.UpdateTempleContact)
}

// CheckAdmin POST /admin/check
func (h *Handler) CheckAdmin(c *gin.Context) {
	var req CheckAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.CheckAdmin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingIdentity) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email or phone is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Admin check failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddAdmin POST /admin/admins
func (h *Handler) AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and phone are required")
		return
	}

	entry, err := h.service.AddAdmin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add admin")
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// ListAdmins GET /admin/admins
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch admins")
		return
	}
	response.Success(c, http.StatusOK, admins)
}

// ListDonations GET /admin/donations
func (h *Handler) ListDonations(c *gin.Context) {
	donations, err := h.service.ListDonations(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch donations")
		return
	}
	response.Success(c, http.StatusOK, donations)
}

// RecordOfflineDonation POST /admin/offline-donations
func (h *Handler) RecordOfflineDonation(c *gin.Context) {
	var req OfflineDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.RecordOfflineDonation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDonation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offline donation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record donation")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateTempleContact PUT /admin/temple-contact
func (h *Handler) UpdateTempleContact(c *gin.Context) {
	var req TempleContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid contact details", fields)
		return
	}

	settings, err := h.service.UpdateTempleContact(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update contact details")
		return
	}
	response.Success(c, http.StatusOK, settings)
}
