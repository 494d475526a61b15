package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

// CartController manages the pre-checkout cart.
type CartController struct {
	carts  *services.CartService
	logger *zap.Logger
}

// NewCartController creates a CartController.
func NewCartController(carts *services.CartService, logger *zap.Logger) *CartController {
	return &CartController{carts: carts, logger: logger}
}

// Get handles GET /cart.
func (ctl *CartController) Get(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	cart, serr := ctl.carts.Get(c.Request.Context(), key)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddLine handles POST /cart/items.
func (ctl *CartController) AddLine(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := ""
	if id := middleware.UserID(c); id != nil {
		userID = id.String()
	}
	cart, serr := ctl.carts.AddLine(c.Request.Context(), key, userID, line)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateLine handles PATCH /cart/items/:index. Quantity 0 removes the
// line.
func (ctl *CartController) UpdateLine(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, serr := ctl.carts.UpdateLine(c.Request.Context(), key, index, req.Quantity)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveLine handles DELETE /cart/items/:index.
func (ctl *CartController) RemoveLine(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	cart, serr := ctl.carts.RemoveLine(c.Request.Context(), key, index)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /cart.
func (ctl *CartController) Clear(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	if serr := ctl.carts.Clear(c.Request.Context(), key); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.Status(http.StatusNoContent)
}
