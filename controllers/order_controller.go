package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

// OrderController serves order reads and the staff status actions.
type OrderController struct {
	orders *services.OrderService
	status *services.StatusService
	logger *zap.Logger
}

// NewOrderController creates an OrderController.
func NewOrderController(orders *services.OrderService, status *services.StatusService, logger *zap.Logger) *OrderController {
	return &OrderController{orders: orders, status: status, logger: logger}
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// ListMine handles GET /orders (customer history).
func (ctl *OrderController) ListMine(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	page, limit := pagination(c)
	orders, total, serr := ctl.orders.ListUserOrders(c.Request.Context(), *userID, page, limit)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "limit": limit})
}

// GetMine handles GET /orders/:id, scoped to the caller.
func (ctl *OrderController) GetMine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, serr := ctl.orders.GetOrder(c.Request.Context(), id, middleware.UserID(c))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListAll handles GET /admin/orders.
func (ctl *OrderController) ListAll(c *gin.Context) {
	page, limit := pagination(c)
	orders, total, serr := ctl.orders.ListAllOrders(c.Request.Context(), page, limit)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/orders/:id.
func (ctl *OrderController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, serr := ctl.orders.GetOrder(c.Request.Context(), id, nil)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateStatus handles PATCH /admin/orders/:id/status.
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, rej := ctl.status.Transition(c.Request.Context(), id, req.Status, middleware.Actor(c), req.Note)
	if rej != nil {
		c.JSON(rej.StatusCode, rej)
		return
	}
	c.JSON(http.StatusOK, order)
}

type cancelRequest struct {
	Note string `json:"note"`
}

// Cancel handles POST /admin/orders/:id/cancel.
func (ctl *OrderController) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	order, rej := ctl.status.Cancel(c.Request.Context(), id, middleware.Actor(c), req.Note)
	if rej != nil {
		c.JSON(rej.StatusCode, rej)
		return
	}
	c.JSON(http.StatusOK, order)
}

type refundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Refund handles POST /admin/orders/:id/refund.
func (ctl *OrderController) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, rej := ctl.status.Refund(c.Request.Context(), id, middleware.Actor(c), req.Reason)
	if rej != nil {
		c.JSON(rej.StatusCode, rej)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Track handles GET /track/:ticket. Public: the ticket is the only
// credential.
func (ctl *OrderController) Track(c *gin.Context) {
	resp, serr := ctl.orders.Track(c.Request.Context(), c.Param("ticket"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, resp)
}
