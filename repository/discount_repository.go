package repository

import (
	"context"
	"storefront/models"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountRepository provides the read-only discount access used by
// the validator. Usage counters are only mutated inside the checkout
// transaction, never here.
type DiscountRepository interface {
	FindByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	CountUsageByUser(ctx context.Context, codeID, userID uuid.UUID) (int64, error)
}

// GormDiscountRepository implements DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository.
func NewGormDiscountRepository(db *gorm.DB) DiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByCode retrieves a discount code case-insensitively.
func (r *GormDiscountRepository) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// CountUsageByUser counts redemption rows for (code, user). Existence
// of DiscountUsage rows is the ground truth for per-customer limits.
func (r *GormDiscountRepository) CountUsageByUser(ctx context.Context, codeID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DiscountUsage{}).
		Where("discount_code_id = ? AND user_id = ?", codeID, userID).
		Count(&count).Error
	return count, err
}
