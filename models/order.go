package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderType distinguishes collection from delivery orders.
type OrderType string

const (
	OrderTypeCollection OrderType = "collection"
	OrderTypeDelivery   OrderType = "delivery"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "received"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusRefunded       OrderStatus = "refunded"
)

// PaymentStatus tracks the money side of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMode is how the customer chose to pay.
type PaymentMode string

const (
	PaymentModeCash        PaymentMode = "cash"
	PaymentModeSavedMethod PaymentMode = "saved_method"
	PaymentModeCardToken   PaymentMode = "card_token"
)

// SelectionList is the customization snapshot on an order line,
// stored as JSONB and decoupled from future catalog changes.
type SelectionList []Selection

func (l SelectionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SelectionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("selection list: unsupported scan type %T", value)
	}
	return json.Unmarshal(b, l)
}

// Order is the durable record produced by checkout. The money fields
// are frozen at creation time and never recomputed.
type Order struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber    string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	TrackingTicket string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"tracking_ticket"`
	TrackingToken  string     `gorm:"type:varchar(64);not null" json:"-"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Type   OrderType   `gorm:"type:varchar(20);not null" json:"type"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'received'" json:"status"`

	CustomerName  string `gorm:"type:varchar(120);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	CustomerPhone string `gorm:"type:varchar(40)" json:"customer_phone,omitempty"`

	DeliveryAddress string     `gorm:"type:text" json:"delivery_address,omitempty"`
	ZoneID          *uuid.UUID `gorm:"type:uuid" json:"zone_id,omitempty"`
	CollectionTime  *time.Time `json:"collection_time,omitempty"`

	Subtotal       float64 `gorm:"not null" json:"subtotal"`
	DiscountAmount float64 `gorm:"not null;default:0" json:"discount_amount"`
	DeliveryFee    float64 `gorm:"not null;default:0" json:"delivery_fee"`
	TaxAmount      float64 `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount    float64 `gorm:"not null" json:"total_amount"`

	DiscountCodeID *uuid.UUID    `gorm:"type:uuid" json:"discount_code_id,omitempty"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMode    PaymentMode   `gorm:"type:varchar(20);not null" json:"payment_mode"`
	PaymentRef     string        `gorm:"type:varchar(255)" json:"-"`
	RefundRef      string        `gorm:"type:varchar(255)" json:"-"`

	LoyaltyPointsAwarded int    `gorm:"not null;default:0" json:"loyalty_points_awarded"`
	InvoiceURL           string `gorm:"type:text" json:"invoice_url,omitempty"`

	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Lines        []OrderLine        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	StatusEvents []OrderStatusEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_events,omitempty"`
}

// OrderLine is an immutable snapshot of one priced cart line. The unit
// price already includes customization surcharges.
type OrderLine struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID     uuid.UUID     `gorm:"type:uuid;not null" json:"item_id"`
	ItemName   string        `gorm:"type:varchar(120);not null" json:"item_name"`
	Quantity   int           `gorm:"not null" json:"quantity"`
	UnitPrice  float64       `gorm:"not null" json:"unit_price"`
	LineTotal  float64       `gorm:"not null" json:"line_total"`
	Selections SelectionList `gorm:"type:jsonb" json:"selections,omitempty"`
}

// OrderStatusEvent is the append-only transition log. The order's
// status column always equals the latest event's status.
type OrderStatusEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Actor     string      `gorm:"type:varchar(120)" json:"actor,omitempty"`
	Note      string      `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// PaymentMethod is a saved card reference owned by a signed-in user.
// Guests can never reference one.
type PaymentMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(255);not null" json:"-"`
	Brand     string    `gorm:"type:varchar(20)" json:"brand,omitempty"`
	Last4     string    `gorm:"type:varchar(4)" json:"last4,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
