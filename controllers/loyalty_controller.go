package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/services"
)

// LoyaltyController serves loyalty balances and point redemptions.
type LoyaltyController struct {
	loyalty *services.LoyaltyService
	logger  *zap.Logger
}

// NewLoyaltyController creates a LoyaltyController.
func NewLoyaltyController(loyalty *services.LoyaltyService, logger *zap.Logger) *LoyaltyController {
	return &LoyaltyController{loyalty: loyalty, logger: logger}
}

// Balance handles GET /loyalty.
func (ctl *LoyaltyController) Balance(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	resp, serr := ctl.loyalty.Balance(c.Request.Context(), *userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type redeemRequest struct {
	Points int `json:"points" binding:"required,gt=0"`
}

// Redeem handles POST /loyalty/redeem.
func (ctl *LoyaltyController) Redeem(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, serr := ctl.loyalty.Redeem(c.Request.Context(), *userID, req.Points)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
