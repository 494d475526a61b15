package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/repository"
)

// OrderService serves order reads: the customer's own orders, the
// staff listing and the public ticket-based tracking view.
type OrderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// GetOrder returns one order. Customers can only see their own;
// passing a nil userID means staff access.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "order not found"}
	}
	if err != nil {
		s.logger.Error("failed to fetch order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to fetch order"}
	}
	if userID != nil && (order.UserID == nil || *order.UserID != *userID) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "order not found"}
	}
	return order, nil
}

// ListUserOrders returns a customer's order history, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to list orders"}
	}
	return orders, total, nil
}

// ListAllOrders returns every order, paginated (staff view).
func (s *OrderService) ListAllOrders(ctx context.Context, page, limit int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("failed to list orders", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to list orders"}
	}
	return orders, total, nil
}

// Track returns the public view of an order by its tracking ticket.
// The ticket is the only credential; no account is required, and the
// response never includes payment references or internal ids.
func (s *OrderService) Track(ctx context.Context, ticket string) (*models.TrackResponse, *ServiceError) {
	order, err := s.orders.FindByTicket(ctx, ticket)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "no order found for this ticket"}
	}
	if err != nil {
		s.logger.Error("failed to fetch order by ticket", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to fetch order"}
	}

	resp := &models.TrackResponse{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		Type:           order.Type,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		DeliveryFee:    order.DeliveryFee,
		TaxAmount:      order.TaxAmount,
		TotalAmount:    order.TotalAmount,
	}
	for _, line := range order.Lines {
		resp.Items = append(resp.Items, models.QuoteLine{
			ItemID:       line.ItemID,
			Name:         line.ItemName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineTotal:    line.LineTotal,
			Availability: models.LineAvailable,
		})
	}
	for _, evt := range order.StatusEvents {
		resp.History = append(resp.History, models.TrackedEvent{
			Status:    evt.Status,
			Note:      evt.Note,
			CreatedAt: evt.CreatedAt,
		})
	}
	return resp, nil
}
