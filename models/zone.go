package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ZoneType selects the geometry test used for a delivery zone.
type ZoneType string

const (
	ZoneTypePolygon    ZoneType = "polygon"
	ZoneTypeRadius     ZoneType = "radius"
	ZoneTypePostalCode ZoneType = "postal_code"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PolygonRing is a zone boundary stored as JSONB.
type PolygonRing []Coordinate

func (r PolygonRing) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *PolygonRing) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("polygon ring: unsupported scan type %T", value)
	}
	return json.Unmarshal(b, r)
}

// DeliveryZone is a geographic area with its own fee, ETA and minimum
// order value. Overlapping zones are resolved by priority then recency.
type DeliveryZone struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(80);not null" json:"name"`
	Type             ZoneType       `gorm:"type:varchar(20);not null" json:"type"`
	Ring             PolygonRing    `gorm:"type:jsonb" json:"ring,omitempty"`
	DeliveryFee      float64        `gorm:"not null;default:0" json:"delivery_fee"`
	MinOrderValue    float64        `gorm:"not null;default:0" json:"min_order_value"`
	EstimatedMinutes int            `gorm:"not null;default:0" json:"estimated_minutes"`
	Active           bool           `gorm:"not null;default:true" json:"active"`
	Priority         int            `gorm:"not null;default:0" json:"priority"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
