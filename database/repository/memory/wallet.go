package memory

import (
	"context"
	"sort"
	"time"

	walletRepo "rentify/database/repository/wallet"
	"rentify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type WalletRepo struct{ s *Store }

func (r *WalletRepo) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	defer r.s.lock(ctx)()

	w, ok := r.s.state.wallets[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &w, nil
}

func (r *WalletRepo) Debit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error) {
	defer r.s.lock(ctx)()

	w, ok := r.s.state.wallets[userID]
	if !ok || w.Balance < amount {
		return 0, walletRepo.ErrInsufficientBalance
	}
	w.Balance -= amount
	w.UpdatedAt = time.Now()
	r.s.state.wallets[userID] = w
	return w.Balance, nil
}

func (r *WalletRepo) Credit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error) {
	defer r.s.lock(ctx)()

	now := time.Now()
	w, ok := r.s.state.wallets[userID]
	if !ok {
		w = models.Wallet{UserID: userID, CreatedAt: now}
	}
	w.Balance += amount
	w.UpdatedAt = now
	r.s.state.wallets[userID] = w
	return w.Balance, nil
}

func (r *WalletRepo) InsertTransaction(ctx context.Context, tx *models.WalletTransaction) error {
	defer r.s.lock(ctx)()
	r.s.state.walletTxs = append(r.s.state.walletTxs, *tx)
	return nil
}

func (r *WalletRepo) ListTransactions(ctx context.Context, userID string, limit int64) ([]models.WalletTransaction, error) {
	defer r.s.lock(ctx)()

	var out []models.WalletTransaction
	for _, tx := range r.s.state.walletTxs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
