package repository

import (
	"context"
	"errors"
	"storefront/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutTx is the set of writes available inside the single atomic
// checkout transaction. Lock methods take exclusive row locks; two
// concurrent checkouts contending for the same item, code or account
// serialize on them.
type CheckoutTx interface {
	LockMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	UpdateItemStock(ctx context.Context, id uuid.UUID, newStock int) error
	AppendStockLedger(ctx context.Context, entry *models.StockLedgerEntry) error

	TicketExists(ctx context.Context, ticket string) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error
	UpdateOrderPayment(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus, paymentRef string) error

	LockDiscountCode(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error)
	IncrementDiscountUsage(ctx context.Context, id uuid.UUID) error
	CreateDiscountUsage(ctx context.Context, usage *models.DiscountUsage) error
	CountDiscountUsageByUser(ctx context.Context, codeID, userID uuid.UUID) (int64, error)
	ConsumeReward(ctx context.Context, rewardID uuid.UUID) error

	LockLoyaltyAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error)
	UpdateLoyaltyBalance(ctx context.Context, accountID uuid.UUID, balance int) error
	AppendPointsTransaction(ctx context.Context, txn *models.PointsTransaction) error

	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
}

// CheckoutRepository wraps the atomic unit of work. Any error returned
// from fn rolls everything back; commit happens only on nil.
type CheckoutRepository interface {
	WithinTransaction(ctx context.Context, fn func(tx CheckoutTx) error) error
	// SetInvoiceDocument persists the rendered document reference after
	// commit, on both the order and the invoice.
	SetInvoiceDocument(ctx context.Context, orderID, invoiceID uuid.UUID, url string) error
}

// GormCheckoutRepository implements CheckoutRepository on Postgres.
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewGormCheckoutRepository creates a new GormCheckoutRepository.
func NewGormCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

// WithinTransaction runs fn inside one database transaction.
func (r *GormCheckoutRepository) WithinTransaction(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutTx{tx: tx})
	})
}

// SetInvoiceDocument stores the rendered document URL after commit.
func (r *GormCheckoutRepository) SetInvoiceDocument(ctx context.Context, orderID, invoiceID uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Update("invoice_url", url).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).
			Update("document_url", url).Error
	})
}

type gormCheckoutTx struct {
	tx *gorm.DB
}

func (t *gormCheckoutTx) LockMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *gormCheckoutTx) UpdateItemStock(ctx context.Context, id uuid.UUID, newStock int) error {
	return t.tx.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("stock", newStock).Error
}

func (t *gormCheckoutTx) AppendStockLedger(ctx context.Context, entry *models.StockLedgerEntry) error {
	return t.tx.WithContext(ctx).Create(entry).Error
}

func (t *gormCheckoutTx) TicketExists(ctx context.Context, ticket string) (bool, error) {
	var count int64
	err := t.tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("tracking_ticket = ?", ticket).
		Count(&count).Error
	return count > 0, err
}

func (t *gormCheckoutTx) CreateOrder(ctx context.Context, order *models.Order) error {
	return t.tx.WithContext(ctx).Create(order).Error
}

func (t *gormCheckoutTx) AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error {
	return t.tx.WithContext(ctx).Create(event).Error
}

func (t *gormCheckoutTx) UpdateOrderPayment(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus, paymentRef string) error {
	return t.tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"payment_status": status, "payment_ref": paymentRef}).Error
}

func (t *gormCheckoutTx) LockDiscountCode(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func (t *gormCheckoutTx) IncrementDiscountUsage(ctx context.Context, id uuid.UUID) error {
	return t.tx.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ?", id).
		UpdateColumn("total_used_count", gorm.Expr("total_used_count + 1")).Error
}

func (t *gormCheckoutTx) CreateDiscountUsage(ctx context.Context, usage *models.DiscountUsage) error {
	return t.tx.WithContext(ctx).Create(usage).Error
}

func (t *gormCheckoutTx) CountDiscountUsageByUser(ctx context.Context, codeID, userID uuid.UUID) (int64, error) {
	var count int64
	err := t.tx.WithContext(ctx).
		Model(&models.DiscountUsage{}).
		Where("discount_code_id = ? AND user_id = ?", codeID, userID).
		Count(&count).Error
	return count, err
}

func (t *gormCheckoutTx) ConsumeReward(ctx context.Context, rewardID uuid.UUID) error {
	now := time.Now()
	return t.tx.WithContext(ctx).
		Model(&models.LoyaltyReward{}).
		Where("id = ?", rewardID).
		Updates(map[string]interface{}{"status": models.RewardStatusConsumed, "consumed_at": now}).Error
}

// LockLoyaltyAccount locks the customer's account row, creating the
// account first if this is their first order.
func (t *gormCheckoutTx) LockLoyaltyAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.LoyaltyAccount{UserID: userID}
		if err := t.tx.WithContext(ctx).Create(&account).Error; err != nil {
			return nil, err
		}
		return &account, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (t *gormCheckoutTx) UpdateLoyaltyBalance(ctx context.Context, accountID uuid.UUID, balance int) error {
	return t.tx.WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", balance).Error
}

func (t *gormCheckoutTx) AppendPointsTransaction(ctx context.Context, txn *models.PointsTransaction) error {
	return t.tx.WithContext(ctx).Create(txn).Error
}

func (t *gormCheckoutTx) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return t.tx.WithContext(ctx).Create(invoice).Error
}
