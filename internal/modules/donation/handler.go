package donation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"templeseva/internal/middleware"
	"templeseva/internal/pkg/jwt"
	"templeseva/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, jwtService *jwt.Service) {
	protected := r.Group("/donations")
	protected.Use(middleware.Auth(jwtService))
	{
		protected.POST("/order", h.CreateOrder)
		protected.POST("/verify", h.VerifyPayment)
		protected.GET("/my", h.MyDonations)
	}

	r.POST("/payments/webhook", h.Webhook)
	r.GET("/donate/qr", h.DonationQR)
}

// CreateOrder POST /donations/order
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid donation amount"})
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPayment POST /donations/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing payment details"})
		return
	}

	resp, err := h.service.VerifyPayment(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook POST /payments/webhook
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable body"})
		return
	}

	sig := c.GetHeader("X-Razorpay-Signature")
	if err := h.service.HandleWebhook(c.Request.Context(), body, sig); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// MyDonations GET /donations/my
func (h *Handler) MyDonations(c *gin.Context) {
	userID := c.GetInt64("user_id")

	donations, err := h.service.MyDonations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch donations")
		return
	}
	response.Success(c, http.StatusOK, donations)
}

// DonationQR GET /donate/qr?amount=501
func (h *Handler) DonationQR(c *gin.Context) {
	var amount int64
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid amount"})
			return
		}
		amount = parsed
	}

	png, err := h.service.DonationQR(c.Request.Context(), amount)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid donation amount"})
	case errors.Is(err, ErrMissingDetails):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing payment details"})
	case errors.Is(err, ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid payment signature"})
	case errors.Is(err, ErrOrderMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order does not match donation"})
	case errors.Is(err, ErrMalformedEvent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed event payload"})
	case errors.Is(err, ErrPaymentConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Donation already settled with a different payment"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Donation does not belong to you"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Donation not found"})
	case errors.Is(err, ErrNoUPI):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "UPI is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Payment processing failed"})
	}
}
