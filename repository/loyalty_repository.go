package repository

import (
	"context"
	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoyaltyTx is the write set for a points redemption.
type LoyaltyTx interface {
	LockAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error)
	UpdateBalance(ctx context.Context, accountID uuid.UUID, balance int) error
	AppendTransaction(ctx context.Context, txn *models.PointsTransaction) error
	CreateDiscountCode(ctx context.Context, code *models.DiscountCode) error
	CreateReward(ctx context.Context, reward *models.LoyaltyReward) error
}

// LoyaltyRepository provides loyalty account reads and the redemption
// transaction scope.
type LoyaltyRepository interface {
	FindAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error)
	FindTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.PointsTransaction, error)
	WithinTransaction(ctx context.Context, fn func(tx LoyaltyTx) error) error
}

// GormLoyaltyRepository implements LoyaltyRepository using GORM.
type GormLoyaltyRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyRepository creates a new GormLoyaltyRepository.
func NewGormLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &GormLoyaltyRepository{db: db}
}

// FindAccount retrieves the loyalty account for a user.
func (r *GormLoyaltyRepository) FindAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	if err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindTransactions returns the most recent ledger entries.
func (r *GormLoyaltyRepository) FindTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.PointsTransaction, error) {
	var txns []models.PointsTransaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// WithinTransaction runs fn in one database transaction.
func (r *GormLoyaltyRepository) WithinTransaction(ctx context.Context, fn func(tx LoyaltyTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLoyaltyTx{tx: tx})
	})
}

type gormLoyaltyTx struct {
	tx *gorm.DB
}

func (t *gormLoyaltyTx) LockAccount(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (t *gormLoyaltyTx) UpdateBalance(ctx context.Context, accountID uuid.UUID, balance int) error {
	return t.tx.WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", balance).Error
}

func (t *gormLoyaltyTx) AppendTransaction(ctx context.Context, txn *models.PointsTransaction) error {
	return t.tx.WithContext(ctx).Create(txn).Error
}

func (t *gormLoyaltyTx) CreateDiscountCode(ctx context.Context, code *models.DiscountCode) error {
	return t.tx.WithContext(ctx).Create(code).Error
}

func (t *gormLoyaltyTx) CreateReward(ctx context.Context, reward *models.LoyaltyReward) error {
	return t.tx.WithContext(ctx).Create(reward).Error
}
