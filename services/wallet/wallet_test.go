package wallet

import (
	"context"
	"testing"

	"rentify/database/repository/memory"
	"rentify/models"
	"rentify/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*DefaultWalletService, *memory.Store) {
	store := memory.NewStore()
	return &DefaultWalletService{Repo: store.Wallets(), Tx: store}, store
}

func TestDebitRecordsApprovedTransaction(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()
	store.SetBalance("renter", models.AmountFromUnits(500))

	tx, err := svc.Debit(ctx, "renter", models.AmountFromUnits(200), models.LedgerRef{BookingID: "b1", Kind: models.TransactionPayment})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionApproved, tx.Status)
	assert.Equal(t, -models.AmountFromUnits(200), tx.Amount)
	assert.Equal(t, models.AmountFromUnits(300), tx.BalanceAfter)

	history, err := svc.History(ctx, "renter", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "b1", history[0].BookingID)
}

func TestDebitInsufficientFundsLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()
	store.SetBalance("renter", models.AmountFromUnits(50))

	_, err := svc.Debit(ctx, "renter", models.AmountFromUnits(200), models.LedgerRef{Kind: models.TransactionPayment})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInsufficientFunds))
	assert.Contains(t, err.Error(), "50.00")

	w, err := svc.Balance(ctx, "renter")
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(50), w.Balance)

	history, err := svc.History(ctx, "renter", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCreditCreatesWallet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Credit(ctx, "provider", models.AmountFromUnits(75), models.LedgerRef{Kind: models.TransactionPenalty})
	require.NoError(t, err)

	w, err := svc.Balance(ctx, "provider")
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(75), w.Balance)
}

func TestRejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Credit(ctx, "u", 0, models.LedgerRef{Kind: models.TransactionRefund})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))
	_, err = svc.Debit(ctx, "u", -1, models.LedgerRef{Kind: models.TransactionPayment})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))
}

func TestBalanceOfUnknownUserIsZero(t *testing.T) {
	svc, _ := newService()
	w, err := svc.Balance(context.Background(), "ghost")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}
