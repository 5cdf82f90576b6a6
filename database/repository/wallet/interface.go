package walletRepo

import (
	"context"
	"errors"

	"rentify/models"
)

// ErrInsufficientBalance is returned by Debit when the wallet is missing or
// holds less than the requested amount.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// WalletRepository mutates balances and stores the matching transaction rows.
// Callers pair Debit/Credit with InsertTransaction inside one transaction.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	// Debit decrements the balance only if it covers amount and returns the new balance.
	Debit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error)
	// Credit increments the balance, creating the wallet if needed, and returns the new balance.
	Credit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error)
	InsertTransaction(ctx context.Context, tx *models.WalletTransaction) error
	ListTransactions(ctx context.Context, userID string, limit int64) ([]models.WalletTransaction, error)
}
