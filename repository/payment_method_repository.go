package repository

import (
	"context"
	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethodRepository resolves saved payment methods for the
// payment-path check at checkout.
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.PaymentMethod, error)
}

// GormPaymentMethodRepository implements PaymentMethodRepository.
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository.
func NewGormPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID retrieves a saved payment method.
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	if err := r.db.WithContext(ctx).First(&pm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pm, nil
}

// FindByUserID lists a user's saved payment methods.
func (r *GormPaymentMethodRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}
