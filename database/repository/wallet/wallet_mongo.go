package walletRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentify/database"
	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoWalletRepo struct {
	wallets      *mongo.Collection
	transactions *mongo.Collection
}

func NewMongoWalletRepo() WalletRepository {
	db := database.DB()
	repo := &MongoWalletRepo{
		wallets:      db.Collection("wallets"),
		transactions: db.Collection("wallet_transactions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("wallets", err)
	}
	return repo
}

func (r *MongoWalletRepo) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var w models.Wallet
	if err := r.wallets.FindOne(ctx, bson.M{"userId": userID}).Decode(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *MongoWalletRepo) Debit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	// The balance guard and the decrement are one document update.
	filter := bson.M{"userId": userID, "balance": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var w models.Wallet
	err := r.wallets.FindOneAndUpdate(ctx, filter, update, opts).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("debit wallet %s failed: %w", userID, err)
	}
	return w.Balance, nil
}

func (r *MongoWalletRepo) Credit(ctx context.Context, userID string, amount models.Amount) (models.Amount, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$inc":         bson.M{"balance": amount},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var w models.Wallet
	if err := r.wallets.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&w); err != nil {
		return 0, fmt.Errorf("credit wallet %s failed: %w", userID, err)
	}
	return w.Balance, nil
}

func (r *MongoWalletRepo) InsertTransaction(ctx context.Context, tx *models.WalletTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if _, err := r.transactions.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("insert wallet transaction failed: %w", err)
	}
	return nil
}

func (r *MongoWalletRepo) ListTransactions(ctx context.Context, userID string, limit int64) ([]models.WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.transactions.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.WalletTransaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoWalletRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.wallets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create wallet indexes: %w", err)
	}

	txIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	}
	if _, err := r.transactions.Indexes().CreateMany(ctx, txIndexes); err != nil {
		return fmt.Errorf("failed to create wallet transaction indexes: %w", err)
	}
	return nil
}
