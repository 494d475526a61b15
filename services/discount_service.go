package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/repository"
)

// DiscountOutcome is the verdict of validating one code against one
// prospective order. When Accepted is false, RejectCode and Message
// carry the first failed check.
type DiscountOutcome struct {
	Accepted       bool
	RejectCode     models.RejectionCode
	Message        string
	Code           *models.DiscountCode
	Amount         float64
	WaivesDelivery bool
}

// DiscountService validates discount codes. Validation is strictly
// read-only; counters and usage rows are only written at commit time,
// under row locks.
type DiscountService interface {
	Validate(ctx context.Context, code string, userID *uuid.UUID, orderType models.OrderType, orderValue float64) (*DiscountOutcome, error)
}

type discountService struct {
	discounts repository.DiscountRepository
	logger    *zap.Logger
}

// NewDiscountService creates a DiscountService.
func NewDiscountService(discounts repository.DiscountRepository, logger *zap.Logger) DiscountService {
	return &discountService{discounts: discounts, logger: logger}
}

// Validate runs the checks in a fixed order and short-circuits on the
// first failure: existence and status, validity window, order type
// applicability, minimum order value, total usage limit, per-customer
// usage limit.
func (s *discountService) Validate(ctx context.Context, code string, userID *uuid.UUID, orderType models.OrderType, orderValue float64) (*DiscountOutcome, error) {
	dc, err := s.discounts.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rejected(models.RejectionInvalidCode, "discount code not found"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up discount code: %w", err)
	}
	if dc.Status != models.DiscountStatusActive {
		return rejected(models.RejectionInvalidCode, "discount code is not active"), nil
	}

	now := time.Now()
	if now.Before(dc.ValidFrom) {
		return rejected(models.RejectionNotYetValid, "discount code is not valid yet"), nil
	}
	if dc.ValidUntil != nil && now.After(*dc.ValidUntil) {
		return rejected(models.RejectionExpiredCode, "discount code has expired"), nil
	}

	if len(dc.ApplicableOrderTypes) > 0 && !dc.ApplicableOrderTypes.Contains(orderType) {
		return rejected(models.RejectionNotApplicable,
			fmt.Sprintf("discount code does not apply to %s orders", orderType)), nil
	}

	if orderValue < dc.MinOrderValue {
		return rejected(models.RejectionMinimumNotMet,
			fmt.Sprintf("order value must be at least %.2f to use this code", dc.MinOrderValue)), nil
	}

	if dc.TotalUsageLimit > 0 && dc.TotalUsedCount >= dc.TotalUsageLimit {
		return rejected(models.RejectionUsageLimitReached, "discount code usage limit reached"), nil
	}

	if dc.PerCustomerUsageLimit > 0 && userID != nil {
		used, err := s.discounts.CountUsageByUser(ctx, dc.ID, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count discount usage: %w", err)
		}
		if used >= int64(dc.PerCustomerUsageLimit) {
			return rejected(models.RejectionCustomerLimitReached, "you have already used this discount code"), nil
		}
	}

	out := &DiscountOutcome{Accepted: true, Code: dc}
	switch dc.Type {
	case models.DiscountTypePercentage:
		out.Amount = models.Round2(orderValue * dc.Value / 100)
	case models.DiscountTypeFixed:
		out.Amount = models.Round2(dc.Value)
		if out.Amount > orderValue {
			out.Amount = orderValue
		}
	case models.DiscountTypeDeliveryFee:
		out.WaivesDelivery = true
	default:
		return nil, fmt.Errorf("unknown discount type %q", dc.Type)
	}
	return out, nil
}

func rejected(code models.RejectionCode, msg string) *DiscountOutcome {
	return &DiscountOutcome{RejectCode: code, Message: msg}
}
