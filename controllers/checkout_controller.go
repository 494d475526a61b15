package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

// CheckoutController exposes the three-phase checkout surface.
type CheckoutController struct {
	checkout *services.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutController creates a CheckoutController.
func NewCheckoutController(checkout *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{checkout: checkout, logger: logger}
}

// cartKey resolves the cart identity: the user id for signed-in
// customers, the session header for guests.
func cartKey(c *gin.Context) (string, bool) {
	if id := middleware.UserID(c); id != nil {
		return id.String(), true
	}
	if sid := c.GetHeader("X-Session-ID"); sid != "" {
		return sid, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
	return "", false
}

// Validate handles POST /checkout/validate.
func (ctl *CheckoutController) Validate(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.checkout.Validate(c.Request.Context(), key, middleware.UserID(c), &req)
	if err != nil {
		ctl.logger.Error("validate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calculate handles POST /checkout/calculate.
func (ctl *CheckoutController) Calculate(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := ctl.checkout.Calculate(c.Request.Context(), key, middleware.UserID(c), &req)
	if err != nil {
		ctl.logger.Error("calculate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Create handles POST /checkout. On success the cart is gone and the
// response carries the tracking ticket.
func (ctl *CheckoutController) Create(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, rej := ctl.checkout.CreateOrder(c.Request.Context(), key, middleware.UserID(c), &req)
	if rej != nil {
		c.JSON(rej.StatusCode, rej)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
