package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// CartService manages the pre-checkout cart: a mutable line list
// keyed by user or guest session. It prices nothing; totals always
// come from calculate.
type CartService struct {
	carts  repository.CartStore
	menu   repository.MenuRepository
	logger *zap.Logger
}

// NewCartService creates a CartService.
func NewCartService(carts repository.CartStore, menu repository.MenuRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, menu: menu, logger: logger}
}

// Get returns the cart for a key, or an empty cart when none exists.
func (s *CartService) Get(ctx context.Context, key string) (*models.Cart, *ServiceError) {
	cart, err := s.carts.Get(ctx, key)
	if err != nil {
		s.logger.Error("failed to load cart", zap.String("cart_key", key), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to load cart"}
	}
	if cart == nil {
		cart = &models.Cart{Key: key, Lines: []models.CartLine{}}
	}
	return cart, nil
}

// AddLine appends a line to the cart after checking the item is
// currently sellable. Customization validity is enforced at checkout;
// here we only refuse items that do not exist or are inactive.
func (s *CartService) AddLine(ctx context.Context, key, userID string, line models.CartLine) (*models.Cart, *ServiceError) {
	if line.Quantity <= 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "quantity must be positive"}
	}
	items, err := s.menu.FindItemsByIDs(ctx, []uuid.UUID{line.ItemID})
	if err != nil {
		s.logger.Error("failed to look up menu item", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to look up item"}
	}
	if len(items) == 0 || !items[0].Active {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "item is not available"}
	}

	cart, serr := s.Get(ctx, key)
	if serr != nil {
		return nil, serr
	}
	cart.UserID = userID
	cart.Lines = append(cart.Lines, line)
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to save cart"}
	}
	return cart, nil
}

// UpdateLine changes the quantity of a line by index; quantity 0
// removes the line.
func (s *CartService) UpdateLine(ctx context.Context, key string, index, quantity int) (*models.Cart, *ServiceError) {
	if quantity < 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "quantity cannot be negative"}
	}
	cart, serr := s.Get(ctx, key)
	if serr != nil {
		return nil, serr
	}
	if index < 0 || index >= len(cart.Lines) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "no such cart line"}
	}

	if quantity == 0 {
		cart.Lines = append(cart.Lines[:index], cart.Lines[index+1:]...)
	} else {
		cart.Lines[index].Quantity = quantity
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to save cart"}
	}
	return cart, nil
}

// RemoveLine deletes a line by index.
func (s *CartService) RemoveLine(ctx context.Context, key string, index int) (*models.Cart, *ServiceError) {
	return s.UpdateLine(ctx, key, index, 0)
}

// Clear removes the cart entirely.
func (s *CartService) Clear(ctx context.Context, key string) *ServiceError {
	if err := s.carts.Delete(ctx, key); err != nil {
		s.logger.Error("failed to clear cart", zap.String("cart_key", key), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to clear cart"}
	}
	return nil
}
