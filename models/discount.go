package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountType represents how a discount code reduces the order total.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixed       DiscountType = "fixed"
	DiscountTypeDeliveryFee DiscountType = "delivery_fee"
)

// DiscountStatus marks whether a code can currently be applied.
type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "active"
	DiscountStatusInactive DiscountStatus = "inactive"
)

// OrderTypeList is an optional applicability filter stored as JSONB.
type OrderTypeList []OrderType

func (l OrderTypeList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *OrderTypeList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("order type list: unsupported scan type %T", value)
	}
	return json.Unmarshal(b, l)
}

// Contains reports whether t is in the list.
func (l OrderTypeList) Contains(t OrderType) bool {
	for _, v := range l {
		if v == t {
			return true
		}
	}
	return false
}

// DiscountCode is a promotional code. Codes are stored uppercase and
// matched case-insensitively. Usage limits of 0 mean unlimited.
type DiscountCode struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code                  string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Type                  DiscountType   `gorm:"type:varchar(20);not null" json:"type"`
	Value                 float64        `gorm:"not null" json:"value"`
	ApplicableOrderTypes  OrderTypeList  `gorm:"type:jsonb" json:"applicable_order_types,omitempty"`
	MinOrderValue         float64        `gorm:"not null;default:0" json:"min_order_value"`
	TotalUsageLimit       int            `gorm:"not null;default:0" json:"total_usage_limit"`
	PerCustomerUsageLimit int            `gorm:"not null;default:0" json:"per_customer_usage_limit"`
	TotalUsedCount        int            `gorm:"not null;default:0" json:"total_used_count"`
	ValidFrom             time.Time      `gorm:"not null" json:"valid_from"`
	ValidUntil            *time.Time     `json:"valid_until,omitempty"`
	Status                DiscountStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	RewardID              *uuid.UUID     `gorm:"type:uuid" json:"reward_id,omitempty"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountUsage records one redemption per (code, user, order). Rows
// are the ground truth for per-customer limits and are only written
// inside the checkout transaction.
type DiscountUsage struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DiscountCodeID uuid.UUID `gorm:"type:uuid;not null;index" json:"discount_code_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null" json:"order_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
