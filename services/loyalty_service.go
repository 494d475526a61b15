package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/repository"
)

// LoyaltyConfig controls points redemption.
type LoyaltyConfig struct {
	// RedeemRate is the currency value of one point when redeemed.
	RedeemRate float64
	// MinRedeemPoints is the smallest redeemable points amount.
	MinRedeemPoints int
	// RewardValidity is how long a redeemed code stays usable.
	RewardValidity time.Duration
}

// BalanceResponse is the customer-facing loyalty summary.
type BalanceResponse struct {
	Balance      int                        `json:"balance"`
	Transactions []models.PointsTransaction `json:"transactions"`
}

// RedeemResponse is returned after exchanging points for a code.
type RedeemResponse struct {
	Code        string    `json:"code"`
	Value       float64   `json:"value"`
	PointsSpent int       `json:"points_spent"`
	Balance     int       `json:"balance"`
	ValidUntil  time.Time `json:"valid_until"`
}

// LoyaltyService serves balances and exchanges points for single-use
// discount codes. Accrual happens inside checkout, not here.
type LoyaltyService struct {
	loyalty repository.LoyaltyRepository
	cfg     LoyaltyConfig
	logger  *zap.Logger
}

// NewLoyaltyService creates a LoyaltyService.
func NewLoyaltyService(loyalty repository.LoyaltyRepository, cfg LoyaltyConfig, logger *zap.Logger) *LoyaltyService {
	return &LoyaltyService{loyalty: loyalty, cfg: cfg, logger: logger}
}

// Balance returns the account balance and recent ledger entries. A
// customer who never earned points gets a zero balance, not an error.
func (s *LoyaltyService) Balance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, *ServiceError) {
	account, err := s.loyalty.FindAccount(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &BalanceResponse{Balance: 0, Transactions: []models.PointsTransaction{}}, nil
	}
	if err != nil {
		s.logger.Error("failed to fetch loyalty account", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to fetch loyalty account"}
	}

	txns, err := s.loyalty.FindTransactions(ctx, account.ID, 50)
	if err != nil {
		s.logger.Error("failed to fetch loyalty transactions", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to fetch loyalty history"}
	}
	return &BalanceResponse{Balance: account.Balance, Transactions: txns}, nil
}

// Redeem exchanges points for a fixed-amount, single-use discount
// code tied to the customer. Balance decrement, ledger entry, code and
// reward are created in one transaction under the account's row lock.
func (s *LoyaltyService) Redeem(ctx context.Context, userID uuid.UUID, points int) (*RedeemResponse, *ServiceError) {
	if points < s.cfg.MinRedeemPoints {
		return nil, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("minimum redemption is %d points", s.cfg.MinRedeemPoints),
		}
	}

	var resp *RedeemResponse
	err := s.loyalty.WithinTransaction(ctx, func(tx repository.LoyaltyTx) error {
		account, err := tx.LockAccount(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: http.StatusBadRequest, Message: "insufficient points"}
		}
		if err != nil {
			return err
		}
		if account.Balance < points {
			return &ServiceError{StatusCode: http.StatusBadRequest, Message: "insufficient points"}
		}

		value := models.Round2(float64(points) * s.cfg.RedeemRate)
		validUntil := time.Now().Add(s.cfg.RewardValidity)

		code := &models.DiscountCode{
			ID:                    uuid.New(),
			Code:                  newRewardCode(),
			Type:                  models.DiscountTypeFixed,
			Value:                 value,
			TotalUsageLimit:       1,
			PerCustomerUsageLimit: 1,
			ValidFrom:             time.Now(),
			ValidUntil:            &validUntil,
			Status:                models.DiscountStatusActive,
		}
		reward := &models.LoyaltyReward{
			ID:             uuid.New(),
			UserID:         userID,
			DiscountCodeID: code.ID,
			PointsSpent:    points,
			Status:         models.RewardStatusIssued,
		}
		code.RewardID = &reward.ID

		if err := tx.CreateDiscountCode(ctx, code); err != nil {
			return fmt.Errorf("failed to create reward code: %w", err)
		}
		if err := tx.CreateReward(ctx, reward); err != nil {
			return fmt.Errorf("failed to create reward: %w", err)
		}

		newBalance := account.Balance - points
		if err := tx.UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, &models.PointsTransaction{
			AccountID:      account.ID,
			Type:           models.PointsRedeemed,
			Points:         -points,
			RunningBalance: newBalance,
			Note:           "redeemed for code " + code.Code,
		}); err != nil {
			return err
		}

		resp = &RedeemResponse{
			Code:        code.Code,
			Value:       value,
			PointsSpent: points,
			Balance:     newBalance,
			ValidUntil:  validUntil,
		}
		return nil
	})
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) {
			return nil, se
		}
		s.logger.Error("points redemption failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "redemption failed"}
	}
	return resp, nil
}

// newRewardCode generates an RWD-prefixed code from the same
// unambiguous alphabet as tracking tickets.
func newRewardCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 8)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "RWD-" + uuid.NewString()[:8]
		}
		buf[i] = alphabet[n.Int64()]
	}
	return "RWD-" + string(buf)
}
