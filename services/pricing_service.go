package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// PricedLine is one cart line with its resolved snapshot price and
// availability verdict.
type PricedLine struct {
	ItemID       uuid.UUID
	ItemName     string
	Quantity     int
	UnitPrice    float64
	LineTotal    float64
	Availability models.LineAvailability
	Selections   []models.Selection
	TrackStock   bool
	Stock        int
	Threshold    int
}

// PricedCart is the priced view of a cart. Subtotal includes every
// sellable line; unavailable lines contribute zero.
type PricedCart struct {
	Lines    []PricedLine
	Subtotal float64
}

// HasErrors reports whether any line failed availability checks.
func (p *PricedCart) HasErrors() bool {
	for _, l := range p.Lines {
		if l.Availability != models.LineAvailable {
			return true
		}
	}
	return false
}

// PricingService resolves cart lines against the current menu and
// computes line totals and the cart subtotal.
type PricingService interface {
	PriceCart(ctx context.Context, cart *models.Cart) (*PricedCart, error)
}

type pricingService struct {
	menu   repository.MenuRepository
	logger *zap.Logger
}

// NewPricingService creates a PricingService backed by the menu
// repository.
func NewPricingService(menu repository.MenuRepository, logger *zap.Logger) PricingService {
	return &pricingService{menu: menu, logger: logger}
}

// PriceCart batches the item and option lookups for the whole cart,
// then prices each line. Unit price is the item base price plus the
// surcharge of every selected option, counted once per selected unit.
func (s *pricingService) PriceCart(ctx context.Context, cart *models.Cart) (*PricedCart, error) {
	itemIDs := make([]uuid.UUID, 0, len(cart.Lines))
	var optionIDs []uuid.UUID
	for _, line := range cart.Lines {
		itemIDs = append(itemIDs, line.ItemID)
		for _, sel := range line.Selections {
			optionIDs = append(optionIDs, sel.Expand()...)
		}
	}

	items, err := s.menu.FindItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	options, err := s.menu.FindOptionsByIDs(ctx, optionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load customization options: %w", err)
	}

	itemsByID := make(map[uuid.UUID]models.MenuItem, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}
	optionsByID := make(map[uuid.UUID]models.CustomizationOption, len(options))
	for _, opt := range options {
		optionsByID[opt.ID] = opt
	}

	priced := &PricedCart{Lines: make([]PricedLine, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		pl := PricedLine{
			ItemID:       line.ItemID,
			Quantity:     line.Quantity,
			Availability: models.LineAvailable,
			Selections:   line.Selections,
		}

		item, found := itemsByID[line.ItemID]
		if !found || !item.Active {
			pl.Availability = models.LineUnavailable
			if found {
				pl.ItemName = item.Name
			}
			priced.Lines = append(priced.Lines, pl)
			continue
		}

		pl.ItemName = item.Name
		pl.TrackStock = item.TrackStock
		pl.Stock = item.Stock
		pl.Threshold = item.LowStockThreshold
		if item.TrackStock && line.Quantity > item.Stock {
			pl.Availability = models.LineInsufficientStock
		}

		unit := item.BasePrice
		for _, sel := range line.Selections {
			for _, optID := range sel.Expand() {
				opt, ok := optionsByID[optID]
				if !ok {
					pl.Availability = models.LineUnavailable
					continue
				}
				unit += opt.AdditionalPrice
			}
		}

		pl.UnitPrice = models.Round2(unit)
		pl.LineTotal = models.Round2(pl.UnitPrice * float64(line.Quantity))
		if pl.Availability == models.LineUnavailable {
			pl.UnitPrice = 0
			pl.LineTotal = 0
		}
		priced.Lines = append(priced.Lines, pl)
	}

	var subtotal float64
	for _, pl := range priced.Lines {
		subtotal += pl.LineTotal
	}
	priced.Subtotal = models.Round2(subtotal)

	return priced, nil
}
