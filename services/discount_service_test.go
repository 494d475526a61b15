package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/models"
)

func activeCode(code string, typ models.DiscountType, value float64) *models.DiscountCode {
	return &models.DiscountCode{
		ID:        uuid.New(),
		Code:      code,
		Type:      typ,
		Value:     value,
		ValidFrom: time.Now().Add(-time.Hour),
		Status:    models.DiscountStatusActive,
	}
}

func TestDiscountValidateUnknownCode(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo(), zap.NewNop())

	out, err := svc.Validate(context.Background(), "NOPE", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, models.RejectionInvalidCode, out.RejectCode)
}

func TestDiscountValidateInactiveCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	dc := activeCode("OLD10", models.DiscountTypePercentage, 10)
	dc.Status = models.DiscountStatusInactive
	repo.codes[dc.Code] = dc
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "OLD10", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, models.RejectionInvalidCode, out.RejectCode)
}

func TestDiscountValidateWindow(t *testing.T) {
	repo := newFakeDiscountRepo()

	future := activeCode("SOON", models.DiscountTypePercentage, 10)
	future.ValidFrom = time.Now().Add(time.Hour)
	repo.codes[future.Code] = future

	past := activeCode("GONE", models.DiscountTypePercentage, 10)
	until := time.Now().Add(-time.Hour)
	past.ValidUntil = &until
	repo.codes[past.Code] = past

	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "SOON", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionNotYetValid, out.RejectCode)

	out, err = svc.Validate(context.Background(), "GONE", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionExpiredCode, out.RejectCode)
}

func TestDiscountValidateOrderTypeApplicability(t *testing.T) {
	repo := newFakeDiscountRepo()
	dc := activeCode("DELIVERYONLY", models.DiscountTypePercentage, 10)
	dc.ApplicableOrderTypes = models.OrderTypeList{models.OrderTypeDelivery}
	repo.codes[dc.Code] = dc
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "DELIVERYONLY", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionNotApplicable, out.RejectCode)

	out, err = svc.Validate(context.Background(), "DELIVERYONLY", nil, models.OrderTypeDelivery, 20)
	require.NoError(t, err)
	assert.True(t, out.Accepted)
}

func TestDiscountValidateMinimumOrderValue(t *testing.T) {
	repo := newFakeDiscountRepo()
	dc := activeCode("BIG5", models.DiscountTypeFixed, 5)
	dc.MinOrderValue = 30
	repo.codes[dc.Code] = dc
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "BIG5", nil, models.OrderTypeCollection, 29.99)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionMinimumNotMet, out.RejectCode)
}

func TestDiscountValidateUsageLimits(t *testing.T) {
	repo := newFakeDiscountRepo()
	dc := activeCode("ONCE", models.DiscountTypeFixed, 5)
	dc.TotalUsageLimit = 100
	dc.TotalUsedCount = 100
	repo.codes[dc.Code] = dc
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "ONCE", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionUsageLimitReached, out.RejectCode)
}

func TestDiscountValidatePerCustomerLimit(t *testing.T) {
	repo := newFakeDiscountRepo()
	dc := activeCode("WELCOME", models.DiscountTypeFixed, 5)
	dc.PerCustomerUsageLimit = 1
	repo.codes[dc.Code] = dc

	userID := uuid.New()
	repo.usage[dc.ID.String()+":"+userID.String()] = 1
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "WELCOME", &userID, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.Equal(t, models.RejectionCustomerLimitReached, out.RejectCode)

	// guests are not tracked against per-customer limits
	out, err = svc.Validate(context.Background(), "WELCOME", nil, models.OrderTypeCollection, 20)
	require.NoError(t, err)
	assert.True(t, out.Accepted)
}

func TestDiscountValidatePercentageAmount(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.codes["TEN"] = activeCode("TEN", models.DiscountTypePercentage, 10)
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "TEN", nil, models.OrderTypeCollection, 16.55)
	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, 1.66, out.Amount) // 1.655 rounds half away from zero
}

func TestDiscountValidateFixedAmountClampedToOrderValue(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.codes["FIVER"] = activeCode("FIVER", models.DiscountTypeFixed, 5)
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "FIVER", nil, models.OrderTypeCollection, 3.20)
	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, 3.20, out.Amount)
}

func TestDiscountValidateDeliveryFeeWaiver(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.codes["FREESHIP"] = activeCode("FREESHIP", models.DiscountTypeDeliveryFee, 0)
	svc := NewDiscountService(repo, zap.NewNop())

	out, err := svc.Validate(context.Background(), "FREESHIP", nil, models.OrderTypeDelivery, 25)
	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.True(t, out.WaivesDelivery)
	assert.Equal(t, 0.0, out.Amount)
}
