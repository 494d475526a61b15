package repository

import (
	"context"
	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository provides the read-side catalog access the pricing
// engine needs. Lookups are batched; pricing never queries per option.
type MenuRepository interface {
	FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
	FindOptionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CustomizationOption, error)
}

// GormMenuRepository implements MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository.
func NewGormMenuRepository(db *gorm.DB) MenuRepository {
	return &GormMenuRepository{db: db}
}

// FindItemsByIDs returns all menu items matching the given ids,
// including inactive ones so callers can flag them per line.
func (r *GormMenuRepository) FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOptionsByIDs returns customization options in one batched query.
func (r *GormMenuRepository) FindOptionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CustomizationOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []models.CustomizationOption
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}
