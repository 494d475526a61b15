package models

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyAccount holds a customer's points balance. The balance must
// always equal the latest transaction's running balance.
type LoyaltyAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Balance   int       `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PointsTransactionType classifies a loyalty ledger movement.
type PointsTransactionType string

const (
	PointsEarned   PointsTransactionType = "earned"
	PointsRedeemed PointsTransactionType = "redeemed"
	PointsExpired  PointsTransactionType = "expired"
	PointsAdjusted PointsTransactionType = "adjusted"
)

// PointsTransaction is the append-only loyalty ledger entry carrying a
// running balance.
type PointsTransaction struct {
	ID             uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID      uuid.UUID             `gorm:"type:uuid;not null;index" json:"account_id"`
	OrderID        *uuid.UUID            `gorm:"type:uuid" json:"order_id,omitempty"`
	Type           PointsTransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Points         int                   `gorm:"not null" json:"points"`
	RunningBalance int                   `gorm:"not null" json:"running_balance"`
	Note           string                `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

// LoyaltyRewardStatus tracks whether a redeemed reward's discount code
// has been spent on an order yet.
type LoyaltyRewardStatus string

const (
	RewardStatusIssued   LoyaltyRewardStatus = "issued"
	RewardStatusConsumed LoyaltyRewardStatus = "consumed"
)

// LoyaltyReward links a points redemption to the single-use discount
// code it produced. Checkout marks the reward consumed when the code
// is spent.
type LoyaltyReward struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	DiscountCodeID uuid.UUID           `gorm:"type:uuid;not null" json:"discount_code_id"`
	PointsSpent    int                 `gorm:"not null" json:"points_spent"`
	Status         LoyaltyRewardStatus `gorm:"type:varchar(20);not null;default:'issued'" json:"status"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	ConsumedAt     *time.Time          `json:"consumed_at,omitempty"`
}
