package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/models"
)

func TestPriceCartAddsOptionSurcharges(t *testing.T) {
	menu := newFakeMenuRepo()
	pizza := models.MenuItem{ID: uuid.New(), Name: "Margherita", BasePrice: 8.50, Active: true}
	cheese := models.CustomizationOption{ID: uuid.New(), Name: "Extra Cheese", AdditionalPrice: 1.50}
	olives := models.CustomizationOption{ID: uuid.New(), Name: "Olives", AdditionalPrice: 0.75}
	menu.items[pizza.ID] = pizza
	menu.options[cheese.ID] = cheese
	menu.options[olives.ID] = olives

	svc := NewPricingService(menu, zap.NewNop())
	cart := &models.Cart{
		Key: "c1",
		Lines: []models.CartLine{{
			ItemID:   pizza.ID,
			Quantity: 2,
			Selections: []models.Selection{
				{GroupID: uuid.New(), OptionID: &cheese.ID},
				{GroupID: uuid.New(), OptionIDs: []uuid.UUID{olives.ID}},
			},
		}},
	}

	priced, err := svc.PriceCart(context.Background(), cart)
	require.NoError(t, err)
	require.Len(t, priced.Lines, 1)

	line := priced.Lines[0]
	assert.Equal(t, models.LineAvailable, line.Availability)
	assert.Equal(t, 10.75, line.UnitPrice)
	assert.Equal(t, 21.50, line.LineTotal)
	assert.Equal(t, 21.50, priced.Subtotal)
	assert.False(t, priced.HasErrors())
}

func TestPriceCartCountsQuantifiedOptionsPerUnit(t *testing.T) {
	menu := newFakeMenuRepo()
	wings := models.MenuItem{ID: uuid.New(), Name: "Wings", BasePrice: 6.00, Active: true}
	dip := models.CustomizationOption{ID: uuid.New(), Name: "Garlic Dip", AdditionalPrice: 0.50}
	menu.items[wings.ID] = wings
	menu.options[dip.ID] = dip

	svc := NewPricingService(menu, zap.NewNop())
	cart := &models.Cart{
		Key: "c1",
		Lines: []models.CartLine{{
			ItemID:   wings.ID,
			Quantity: 1,
			Selections: []models.Selection{{
				GroupID: uuid.New(),
				Options: []models.OptionQuantity{{OptionID: dip.ID, Quantity: 3}},
			}},
		}},
	}

	priced, err := svc.PriceCart(context.Background(), cart)
	require.NoError(t, err)
	assert.Equal(t, 7.50, priced.Lines[0].UnitPrice)
}

func TestPriceCartFlagsUnavailableItems(t *testing.T) {
	menu := newFakeMenuRepo()
	gone := models.MenuItem{ID: uuid.New(), Name: "Calzone", BasePrice: 9.00, Active: false}
	menu.items[gone.ID] = gone
	missing := uuid.New()

	svc := NewPricingService(menu, zap.NewNop())
	cart := &models.Cart{
		Key: "c1",
		Lines: []models.CartLine{
			{ItemID: gone.ID, Quantity: 1},
			{ItemID: missing, Quantity: 2},
		},
	}

	priced, err := svc.PriceCart(context.Background(), cart)
	require.NoError(t, err)
	require.Len(t, priced.Lines, 2)
	assert.Equal(t, models.LineUnavailable, priced.Lines[0].Availability)
	assert.Equal(t, models.LineUnavailable, priced.Lines[1].Availability)
	assert.Equal(t, 0.0, priced.Subtotal)
	assert.True(t, priced.HasErrors())
}

func TestPriceCartFlagsInsufficientStock(t *testing.T) {
	menu := newFakeMenuRepo()
	cake := models.MenuItem{ID: uuid.New(), Name: "Cheesecake", BasePrice: 4.50, Active: true, TrackStock: true, Stock: 1}
	menu.items[cake.ID] = cake

	svc := NewPricingService(menu, zap.NewNop())
	cart := &models.Cart{Key: "c1", Lines: []models.CartLine{{ItemID: cake.ID, Quantity: 3}}}

	priced, err := svc.PriceCart(context.Background(), cart)
	require.NoError(t, err)
	line := priced.Lines[0]
	assert.Equal(t, models.LineInsufficientStock, line.Availability)
	// price still shown so the customer can correct the quantity
	assert.Equal(t, 4.50, line.UnitPrice)
	assert.True(t, priced.HasErrors())
}

func TestPriceCartRoundsPerLine(t *testing.T) {
	menu := newFakeMenuRepo()
	item := models.MenuItem{ID: uuid.New(), Name: "Side", BasePrice: 3.33, Active: true}
	menu.items[item.ID] = item

	svc := NewPricingService(menu, zap.NewNop())
	cart := &models.Cart{Key: "c1", Lines: []models.CartLine{{ItemID: item.ID, Quantity: 3}}}

	priced, err := svc.PriceCart(context.Background(), cart)
	require.NoError(t, err)
	assert.Equal(t, 9.99, priced.Lines[0].LineTotal)
	assert.Equal(t, 9.99, priced.Subtotal)
}
