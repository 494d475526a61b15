package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is the billing-facing projection of an order, or a
// standalone document for catering/manual quotes (OrderID nil). It
// carries its own line snapshot so it never depends on the order's
// internal line storage.
type Invoice struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber  string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"invoice_number"`
	OrderID        *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	CustomerName   string     `gorm:"type:varchar(120);not null" json:"customer_name"`
	CustomerEmail  string     `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	Subtotal       float64    `gorm:"not null" json:"subtotal"`
	DiscountAmount float64    `gorm:"not null;default:0" json:"discount_amount"`
	DeliveryFee    float64    `gorm:"not null;default:0" json:"delivery_fee"`
	TaxAmount      float64    `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount    float64    `gorm:"not null" json:"total_amount"`
	Currency       string     `gorm:"type:varchar(3);not null" json:"currency"`
	DocumentURL    string     `gorm:"type:text" json:"document_url,omitempty"`
	IssuedAt       time.Time  `gorm:"autoCreateTime" json:"issued_at"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// InvoiceLine is one billed row on an invoice.
type InvoiceLine struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	LineTotal   float64   `gorm:"not null" json:"line_total"`
}
