package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/models"
)

func loyaltyFixture() (*LoyaltyService, *memState) {
	state := newMemState()
	cfg := LoyaltyConfig{RedeemRate: 0.05, MinRedeemPoints: 100, RewardValidity: 90 * 24 * time.Hour}
	return NewLoyaltyService(&memLoyaltyRepo{state: state}, cfg, zap.NewNop()), state
}

func TestBalanceForNewCustomerIsZero(t *testing.T) {
	svc, _ := loyaltyFixture()

	resp, serr := svc.Balance(context.Background(), uuid.New())
	require.Nil(t, serr)
	assert.Equal(t, 0, resp.Balance)
	assert.Empty(t, resp.Transactions)
}

func TestBalanceReturnsLedger(t *testing.T) {
	svc, state := loyaltyFixture()
	userID := uuid.New()
	account := &models.LoyaltyAccount{ID: uuid.New(), UserID: userID, Balance: 150}
	state.accounts[userID] = account
	state.pointsTxns = append(state.pointsTxns, models.PointsTransaction{
		AccountID: account.ID, Type: models.PointsEarned, Points: 150, RunningBalance: 150,
	})

	resp, serr := svc.Balance(context.Background(), userID)
	require.Nil(t, serr)
	assert.Equal(t, 150, resp.Balance)
	require.Len(t, resp.Transactions, 1)
}

func TestRedeemIssuesSingleUseCode(t *testing.T) {
	svc, state := loyaltyFixture()
	userID := uuid.New()
	state.accounts[userID] = &models.LoyaltyAccount{ID: uuid.New(), UserID: userID, Balance: 250}

	resp, serr := svc.Redeem(context.Background(), userID, 200)
	require.Nil(t, serr)

	assert.True(t, strings.HasPrefix(resp.Code, "RWD-"))
	assert.Equal(t, 10.0, resp.Value) // 200 points at 0.05 each
	assert.Equal(t, 50, resp.Balance)

	codeID, ok := state.codesByStr[resp.Code]
	require.True(t, ok)
	code := state.codes[codeID]
	assert.Equal(t, models.DiscountTypeFixed, code.Type)
	assert.Equal(t, 1, code.TotalUsageLimit)
	assert.Equal(t, 1, code.PerCustomerUsageLimit)
	require.NotNil(t, code.RewardID)

	reward := state.rewards[*code.RewardID]
	require.NotNil(t, reward)
	assert.Equal(t, models.RewardStatusIssued, reward.Status)
	assert.Equal(t, 200, reward.PointsSpent)
	assert.Equal(t, code.ID, reward.DiscountCodeID)

	// ledger entry with running balance
	require.Len(t, state.pointsTxns, 1)
	assert.Equal(t, models.PointsRedeemed, state.pointsTxns[0].Type)
	assert.Equal(t, -200, state.pointsTxns[0].Points)
	assert.Equal(t, 50, state.pointsTxns[0].RunningBalance)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, state := loyaltyFixture()
	userID := uuid.New()
	state.accounts[userID] = &models.LoyaltyAccount{ID: uuid.New(), UserID: userID, Balance: 120}

	_, serr := svc.Redeem(context.Background(), userID, 200)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)

	// nothing changed
	assert.Equal(t, 120, state.accounts[userID].Balance)
	assert.Empty(t, state.codes)
	assert.Empty(t, state.pointsTxns)
}

func TestRedeemBelowMinimum(t *testing.T) {
	svc, _ := loyaltyFixture()

	_, serr := svc.Redeem(context.Background(), uuid.New(), 50)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestRedeemWithoutAccount(t *testing.T) {
	svc, _ := loyaltyFixture()

	_, serr := svc.Redeem(context.Background(), uuid.New(), 200)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}
