package repository

import (
	"context"
	"storefront/models"

	"gorm.io/gorm"
)

// ZoneRepository provides delivery zone reads for the resolver.
type ZoneRepository interface {
	FindActive(ctx context.Context) ([]models.DeliveryZone, error)
}

// GormZoneRepository implements ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository.
func NewGormZoneRepository(db *gorm.DB) ZoneRepository {
	return &GormZoneRepository{db: db}
}

// FindActive returns active zones ordered so the first geometric match
// wins: priority descending, then most recently created.
func (r *GormZoneRepository) FindActive(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority DESC, created_at DESC").
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}
