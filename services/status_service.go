package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/providers"
	"storefront/repository"
)

// transitions is the forward path of the order lifecycle, keyed by
// order type. Cancellation is allowed from any non-terminal status and
// handled separately.
var transitions = map[models.OrderType]map[models.OrderStatus][]models.OrderStatus{
	models.OrderTypeCollection: {
		models.OrderStatusReceived:  {models.OrderStatusPreparing},
		models.OrderStatusPreparing: {models.OrderStatusReady},
		models.OrderStatusReady:     {models.OrderStatusCompleted},
	},
	models.OrderTypeDelivery: {
		models.OrderStatusReceived:       {models.OrderStatusPreparing},
		models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery},
		models.OrderStatusOutForDelivery: {models.OrderStatusCompleted},
	},
}

// StatusService drives the order status state machine. Every change
// happens under the order's row lock and appends a status event, so
// the history always matches the current status.
type StatusService struct {
	orders  repository.OrderRepository
	gateway providers.PaymentGateway
	logger  *zap.Logger
}

// NewStatusService creates a StatusService.
func NewStatusService(orders repository.OrderRepository, gateway providers.PaymentGateway, logger *zap.Logger) *StatusService {
	return &StatusService{orders: orders, gateway: gateway, logger: logger}
}

// Transition moves an order one step forward along its lifecycle, or
// cancels it. Cancelling a paid order refunds it first; a failed
// refund blocks the cancellation entirely.
func (s *StatusService) Transition(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, actor, note string) (*models.Order, *Rejection) {
	if next == models.OrderStatusCancelled {
		return s.Cancel(ctx, orderID, actor, note)
	}

	var updated *models.Order
	var rej *Rejection
	err := s.orders.WithinTransaction(ctx, func(tx repository.OrderTx) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !allowed(order.Type, order.Status, next) {
			rej = reject(http.StatusConflict, "INVALID_TRANSITION",
				fmt.Sprintf("cannot move a %s order from %s to %s", order.Type, order.Status, next))
			return rej
		}

		order.Status = next
		if next == models.OrderStatusCompleted {
			now := time.Now()
			order.CompletedAt = &now
		}
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		if err := tx.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  next,
			Actor:   actor,
			Note:    note,
		}); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if rej != nil {
		return nil, rej
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reject(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
	}
	if err != nil {
		s.logger.Error("status transition failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalRejection()
	}
	return updated, nil
}

// Cancel cancels a non-terminal order. Paid orders are refunded
// through the gateway inside the same transaction; if the refund does
// not succeed, nothing changes.
func (s *StatusService) Cancel(ctx context.Context, orderID uuid.UUID, actor, note string) (*models.Order, *Rejection) {
	var updated *models.Order
	var rej *Rejection
	err := s.orders.WithinTransaction(ctx, func(tx repository.OrderTx) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if terminal(order.Status) {
			rej = reject(http.StatusConflict, "INVALID_TRANSITION",
				fmt.Sprintf("cannot cancel an order in status %s", order.Status))
			return rej
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			result, err := s.gateway.Refund(ctx, order.PaymentRef, order.TotalAmount, "order cancelled")
			if err != nil {
				s.logger.Error("refund call failed", zap.String("order_id", order.ID.String()), zap.Error(err))
				rej = reject(http.StatusBadGateway, "REFUND_FAILED", "refund could not be processed; order not cancelled")
				return rej
			}
			if !result.Success {
				rej = reject(http.StatusBadGateway, "REFUND_FAILED", "refund was declined; order not cancelled")
				return rej
			}
			order.PaymentStatus = models.PaymentStatusRefunded
			order.RefundRef = result.RefundID
		}

		now := time.Now()
		order.Status = models.OrderStatusCancelled
		order.CancelledAt = &now
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		if err := tx.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  models.OrderStatusCancelled,
			Actor:   actor,
			Note:    note,
		}); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if rej != nil {
		return nil, rej
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reject(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
	}
	if err != nil {
		s.logger.Error("cancellation failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalRejection()
	}
	return updated, nil
}

// Refund refunds a paid order without cancelling it, marking the order
// refunded. Used for goodwill refunds after completion.
func (s *StatusService) Refund(ctx context.Context, orderID uuid.UUID, actor, reason string) (*models.Order, *Rejection) {
	var updated *models.Order
	var rej *Rejection
	err := s.orders.WithinTransaction(ctx, func(tx repository.OrderTx) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.PaymentStatus != models.PaymentStatusPaid {
			rej = reject(http.StatusConflict, "NOT_REFUNDABLE", "only paid orders can be refunded")
			return rej
		}

		result, err := s.gateway.Refund(ctx, order.PaymentRef, order.TotalAmount, reason)
		if err != nil {
			s.logger.Error("refund call failed", zap.String("order_id", order.ID.String()), zap.Error(err))
			rej = reject(http.StatusBadGateway, "REFUND_FAILED", "refund could not be processed")
			return rej
		}
		if !result.Success {
			rej = reject(http.StatusBadGateway, "REFUND_FAILED", "refund was declined")
			return rej
		}

		order.PaymentStatus = models.PaymentStatusRefunded
		order.RefundRef = result.RefundID
		order.Status = models.OrderStatusRefunded
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		if err := tx.AppendStatusEvent(ctx, &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  models.OrderStatusRefunded,
			Actor:   actor,
			Note:    reason,
		}); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if rej != nil {
		return nil, rej
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reject(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
	}
	if err != nil {
		s.logger.Error("refund failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalRejection()
	}
	return updated, nil
}

func allowed(t models.OrderType, from, to models.OrderStatus) bool {
	for _, next := range transitions[t][from] {
		if next == to {
			return true
		}
	}
	return false
}

func terminal(status models.OrderStatus) bool {
	switch status {
	case models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusRefunded:
		return true
	}
	return false
}
