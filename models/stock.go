package models

import (
	"time"

	"github.com/google/uuid"
)

// StockLedgerType classifies a stock mutation.
type StockLedgerType string

const (
	StockLedgerRestock    StockLedgerType = "restock"
	StockLedgerSale       StockLedgerType = "sale"
	StockLedgerAdjustment StockLedgerType = "adjustment"
	StockLedgerWaste      StockLedgerType = "waste"
)

// StockLedgerEntry is the append-only audit trail of every stock
// change. The item row carries the cached current level; the ledger is
// authoritative for history.
type StockLedgerEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Type          StockLedgerType `gorm:"type:varchar(20);not null" json:"type"`
	Delta         int             `gorm:"not null" json:"delta"`
	PreviousStock int             `gorm:"not null" json:"previous_stock"`
	NewStock      int             `gorm:"not null" json:"new_stock"`
	Note          string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
