package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/models"
)

func cartFixture() (*CartService, *fakeMenuRepo, *fakeCartStore) {
	menu := newFakeMenuRepo()
	store := newFakeCartStore()
	return NewCartService(store, menu, zap.NewNop()), menu, store
}

func TestCartAddLine(t *testing.T) {
	svc, menu, _ := cartFixture()
	item := models.MenuItem{ID: uuid.New(), Name: "Margherita", BasePrice: 7.00, Active: true}
	menu.items[item.ID] = item

	cart, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: item.ID, Quantity: 2})
	require.Nil(t, serr)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	// persisted
	got, serr := svc.Get(context.Background(), "sess-1")
	require.Nil(t, serr)
	assert.Len(t, got.Lines, 1)
}

func TestCartAddLineRejectsInactiveItem(t *testing.T) {
	svc, menu, _ := cartFixture()
	item := models.MenuItem{ID: uuid.New(), Name: "Calzone", Active: false}
	menu.items[item.ID] = item

	_, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: item.ID, Quantity: 1})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestCartAddLineRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := cartFixture()

	_, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: uuid.New(), Quantity: 0})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestCartUpdateLineQuantityZeroRemoves(t *testing.T) {
	svc, menu, _ := cartFixture()
	item := models.MenuItem{ID: uuid.New(), Name: "Margherita", Active: true}
	menu.items[item.ID] = item
	_, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: item.ID, Quantity: 2})
	require.Nil(t, serr)

	cart, serr := svc.UpdateLine(context.Background(), "sess-1", 0, 5)
	require.Nil(t, serr)
	assert.Equal(t, 5, cart.Lines[0].Quantity)

	cart, serr = svc.UpdateLine(context.Background(), "sess-1", 0, 0)
	require.Nil(t, serr)
	assert.Empty(t, cart.Lines)
}

func TestCartRemoveLine(t *testing.T) {
	svc, menu, _ := cartFixture()
	pizza := models.MenuItem{ID: uuid.New(), Name: "Margherita", Active: true}
	bread := models.MenuItem{ID: uuid.New(), Name: "Garlic Bread", Active: true}
	menu.items[pizza.ID] = pizza
	menu.items[bread.ID] = bread
	_, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: pizza.ID, Quantity: 1})
	require.Nil(t, serr)
	_, serr = svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: bread.ID, Quantity: 2})
	require.Nil(t, serr)

	cart, serr := svc.RemoveLine(context.Background(), "sess-1", 0)
	require.Nil(t, serr)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, bread.ID, cart.Lines[0].ItemID)

	_, serr = svc.RemoveLine(context.Background(), "sess-1", 4)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestCartUpdateLineBadIndex(t *testing.T) {
	svc, _, _ := cartFixture()

	_, serr := svc.UpdateLine(context.Background(), "sess-1", 3, 1)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestCartGetMissingReturnsEmpty(t *testing.T) {
	svc, _, _ := cartFixture()

	cart, serr := svc.Get(context.Background(), "fresh")
	require.Nil(t, serr)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, "fresh", cart.Key)
}

func TestCartClear(t *testing.T) {
	svc, menu, store := cartFixture()
	item := models.MenuItem{ID: uuid.New(), Name: "Margherita", Active: true}
	menu.items[item.ID] = item
	_, serr := svc.AddLine(context.Background(), "sess-1", "", models.CartLine{ItemID: item.ID, Quantity: 1})
	require.Nil(t, serr)

	require.Nil(t, svc.Clear(context.Background(), "sess-1"))
	got, _ := store.Get(context.Background(), "sess-1")
	assert.Nil(t, got)
}
