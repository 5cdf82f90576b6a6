package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentify/database"
	walletRepo "rentify/database/repository/wallet"
	"rentify/models"
	"rentify/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WalletService is the wallet ledger. Debit and Credit are driven by booking
// transitions and join the caller's transaction when ctx carries one.
type WalletService interface {
	Debit(ctx context.Context, userID string, amount models.Amount, ref models.LedgerRef) (*models.WalletTransaction, error)
	Credit(ctx context.Context, userID string, amount models.Amount, ref models.LedgerRef) (*models.WalletTransaction, error)
	Balance(ctx context.Context, userID string) (*models.Wallet, error)
	History(ctx context.Context, userID string, limit int64) ([]models.WalletTransaction, error)
}

// DefaultWalletService implements WalletService.
type DefaultWalletService struct {
	Repo walletRepo.WalletRepository
	Tx   database.Transactor
	Now  func() time.Time
}

func (s *DefaultWalletService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultWalletService) Debit(ctx context.Context, userID string, amount models.Amount, ref models.LedgerRef) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, utils.BadRequest("debit amount must be positive, got %s", amount)
	}

	var record *models.WalletTransaction
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		record = nil
		balance, err := s.Repo.Debit(ctx, userID, amount)
		if errors.Is(err, walletRepo.ErrInsufficientBalance) {
			return s.insufficientFunds(ctx, userID, amount)
		}
		if err != nil {
			return err
		}
		record, err = s.record(ctx, userID, -amount, balance, ref)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.WalletMovements.WithLabelValues(string(ref.Kind)).Inc()
	utils.GetLogger().Info("wallet debited",
		zap.String("userId", userID),
		zap.String("bookingId", ref.BookingID),
		zap.Stringer("amount", amount))
	return record, nil
}

func (s *DefaultWalletService) Credit(ctx context.Context, userID string, amount models.Amount, ref models.LedgerRef) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, utils.BadRequest("credit amount must be positive, got %s", amount)
	}

	var record *models.WalletTransaction
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		record = nil
		balance, err := s.Repo.Credit(ctx, userID, amount)
		if err != nil {
			return err
		}
		record, err = s.record(ctx, userID, amount, balance, ref)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.WalletMovements.WithLabelValues(string(ref.Kind)).Inc()
	utils.GetLogger().Info("wallet credited",
		zap.String("userId", userID),
		zap.String("bookingId", ref.BookingID),
		zap.Stringer("amount", amount))
	return record, nil
}

func (s *DefaultWalletService) record(ctx context.Context, userID string, signed, balance models.Amount, ref models.LedgerRef) (*models.WalletTransaction, error) {
	tx := &models.WalletTransaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		BookingID:    ref.BookingID,
		Kind:         ref.Kind,
		Amount:       signed,
		BalanceAfter: balance,
		Status:       models.TransactionApproved,
		Note:         ref.Note,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("record wallet transaction: %w", err)
	}
	return tx, nil
}

func (s *DefaultWalletService) insufficientFunds(ctx context.Context, userID string, amount models.Amount) error {
	var balance models.Amount
	if w, err := s.Repo.GetByUserID(ctx, userID); err == nil {
		balance = w.Balance
	}
	return utils.NewAppError(utils.KindInsufficientFunds,
		"wallet balance %s is below the required %s", balance, amount)
}

// Balance returns the caller's wallet; a user without one has a zero balance.
func (s *DefaultWalletService) Balance(ctx context.Context, userID string) (*models.Wallet, error) {
	w, err := s.Repo.GetByUserID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Wallet{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wallet %s: %w", userID, err)
	}
	return w, nil
}

func (s *DefaultWalletService) History(ctx context.Context, userID string, limit int64) ([]models.WalletTransaction, error) {
	txs, err := s.Repo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load wallet history %s: %w", userID, err)
	}
	return txs, nil
}
