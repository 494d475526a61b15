package models

import (
	"time"

	"github.com/google/uuid"
)

// RejectionCode is a named, user-facing reason a checkout request was
// refused. Codes are stable across transports.
type RejectionCode string

const (
	// Discount rejections.
	RejectionInvalidCode          RejectionCode = "INVALID_CODE"
	RejectionExpiredCode          RejectionCode = "EXPIRED_CODE"
	RejectionNotYetValid          RejectionCode = "NOT_YET_VALID"
	RejectionNotApplicable        RejectionCode = "NOT_APPLICABLE"
	RejectionMinimumNotMet        RejectionCode = "MINIMUM_NOT_MET"
	RejectionUsageLimitReached    RejectionCode = "USAGE_LIMIT_REACHED"
	RejectionCustomerLimitReached RejectionCode = "CUSTOMER_LIMIT_REACHED"

	// Cart and eligibility rejections.
	RejectionItemUnavailable   RejectionCode = "ITEM_UNAVAILABLE"
	RejectionInsufficientStock RejectionCode = "INSUFFICIENT_STOCK"
	RejectionAddressOutOfRange RejectionCode = "ADDRESS_OUT_OF_RANGE"
	RejectionMOQNotMet         RejectionCode = "MOQ_NOT_MET"
	RejectionCartEmpty         RejectionCode = "CART_EMPTY"
	RejectionInvalidTime       RejectionCode = "INVALID_COLLECTION_TIME"

	// Commit-time outcomes.
	RejectionStockChanged    RejectionCode = "STOCK_CHANGED"
	RejectionPaymentDeclined RejectionCode = "PAYMENT_DECLINED"
	RejectionInvalidPayment  RejectionCode = "INVALID_PAYMENT"
)

// FieldError is a structured validation or business error tied to a
// request field.
type FieldError struct {
	Field   string        `json:"field"`
	Code    RejectionCode `json:"code"`
	Message string        `json:"message"`
}

// LineAvailability flags why a cart line cannot currently be sold.
type LineAvailability string

const (
	LineAvailable         LineAvailability = "ok"
	LineUnavailable       LineAvailability = "unavailable"
	LineInsufficientStock LineAvailability = "insufficient_stock"
)

// CustomerContact is the contact block submitted at checkout.
type CustomerContact struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// PaymentSelection picks exactly one payment path.
type PaymentSelection struct {
	Mode          PaymentMode `json:"mode" binding:"required,oneof=cash saved_method card_token"`
	SavedMethodID *uuid.UUID  `json:"saved_method_id,omitempty"`
	CardToken     string      `json:"card_token,omitempty"`
}

// CheckoutRequest is the payload for validate, calculate and create.
type CheckoutRequest struct {
	OrderType       OrderType        `json:"order_type" binding:"required,oneof=collection delivery"`
	CollectionTime  *time.Time       `json:"collection_time,omitempty"`
	DeliveryAddress string           `json:"delivery_address,omitempty"`
	DiscountCode    string           `json:"discount_code,omitempty"`
	Contact         CustomerContact  `json:"contact" binding:"required"`
	Payment         PaymentSelection `json:"payment" binding:"required"`
}

// QuoteLine is one priced cart line with its availability flag so the
// caller can render a correctable cart.
type QuoteLine struct {
	ItemID       uuid.UUID        `json:"item_id"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	UnitPrice    float64          `json:"unit_price"`
	LineTotal    float64          `json:"line_total"`
	Availability LineAvailability `json:"availability"`
}

// Quote is the response of calculate: fully derived totals plus any
// errors that would block order creation.
type Quote struct {
	Lines          []QuoteLine  `json:"line_items"`
	Subtotal       float64      `json:"subtotal"`
	DiscountAmount float64      `json:"discount_amount"`
	DeliveryFee    float64      `json:"delivery_fee"`
	TaxAmount      float64      `json:"tax_amount"`
	Total          float64      `json:"total"`
	Errors         []FieldError `json:"errors,omitempty"`
}

// ValidateResult is the response of validate.
type ValidateResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// CreateOrderResponse is returned on successful order creation.
type CreateOrderResponse struct {
	OrderID              uuid.UUID   `json:"order_id"`
	OrderNumber          string      `json:"order_number"`
	TrackingTicket       string      `json:"tracking_ticket"`
	TrackingToken        string      `json:"tracking_token"`
	Status               OrderStatus `json:"status"`
	TotalAmount          float64     `json:"total_amount"`
	LoyaltyPointsAwarded int         `json:"loyalty_points_awarded"`
	InvoiceURL           string      `json:"invoice_url,omitempty"`
}

// TrackedEvent is one entry of the public status history.
type TrackedEvent struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// TrackResponse is the public, ticket-only view of an order.
type TrackResponse struct {
	OrderNumber    string         `json:"order_number"`
	Status         OrderStatus    `json:"status"`
	Type           OrderType      `json:"type"`
	Items          []QuoteLine    `json:"items"`
	History        []TrackedEvent `json:"status_history"`
	Subtotal       float64        `json:"subtotal"`
	DiscountAmount float64        `json:"discount_amount"`
	DeliveryFee    float64        `json:"delivery_fee"`
	TaxAmount      float64        `json:"tax_amount"`
	TotalAmount    float64        `json:"total_amount"`
}
