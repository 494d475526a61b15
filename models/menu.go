package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is the catalog entry the pricing engine snapshots at order time.
// Stock is the cached current level; the stock ledger holds the history.
type MenuItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(120);not null" json:"name"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	BasePrice         float64        `gorm:"not null" json:"base_price"`
	Active            bool           `gorm:"not null;default:true" json:"active"`
	TrackStock        bool           `gorm:"not null;default:false" json:"track_stock"`
	Stock             int            `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int            `gorm:"not null;default:0" json:"low_stock_threshold"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// CustomizationGroupType controls how many options a group accepts.
type CustomizationGroupType string

const (
	CustomizationGroupSingle   CustomizationGroupType = "single"
	CustomizationGroupMultiple CustomizationGroupType = "multiple"
)

// CustomizationGroup is a named set of options attached to a menu item
// (spice level, remove items, add-ons, extras, drinks).
type CustomizationGroup struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"item_id"`
	Name      string                 `gorm:"type:varchar(80);not null" json:"name"`
	Type      CustomizationGroupType `gorm:"type:varchar(20);not null" json:"type"`
	Required  bool                   `gorm:"not null;default:false" json:"required"`
	SortOrder int                    `gorm:"not null;default:0" json:"sort_order"`
}

// CustomizationOption carries the per-option surcharge added to the
// line's unit price when selected.
type CustomizationOption struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID         uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Name            string    `gorm:"type:varchar(120);not null" json:"name"`
	AdditionalPrice float64   `gorm:"not null;default:0" json:"additional_price"`
	IsDefault       bool      `gorm:"not null;default:false" json:"is_default"`
	SortOrder       int       `gorm:"not null;default:0" json:"sort_order"`
}
