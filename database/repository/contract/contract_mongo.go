package contractRepo

import (
	"context"
	"fmt"
	"time"

	"rentify/database"
	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoContractRepo struct {
	contracts *mongo.Collection
	finals    *mongo.Collection
}

func NewMongoContractRepo() ContractRepository {
	db := database.DB()
	repo := &MongoContractRepo{
		contracts: db.Collection("contracts"),
		finals:    db.Collection("final_contracts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("contracts", err)
	}
	return repo
}

func (r *MongoContractRepo) Create(ctx context.Context, contract *models.Contract) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if _, err := r.contracts.InsertOne(ctx, contract); err != nil {
		return fmt.Errorf("insert contract failed: %w", err)
	}
	return nil
}

func (r *MongoContractRepo) GetOpenByBooking(ctx context.Context, bookingID string) (*models.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{
		"bookingId": bookingID,
		"status":    bson.M{"$in": []models.ContractStatus{models.ContractProcessing, models.ContractRenting}},
	}
	var c models.Contract
	if err := r.contracts.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoContractRepo) UpdateStatus(ctx context.Context, contractID string, status models.ContractStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
	res, err := r.contracts.UpdateOne(ctx, bson.M{"id": contractID}, update)
	if err != nil {
		return fmt.Errorf("update contract %s failed: %w", contractID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoContractRepo) CreateFinal(ctx context.Context, final *models.FinalContract) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if _, err := r.finals.InsertOne(ctx, final); err != nil {
		return fmt.Errorf("insert final contract failed: %w", err)
	}
	return nil
}

func (r *MongoContractRepo) GetFinalByContract(ctx context.Context, contractID string) (*models.FinalContract, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var f models.FinalContract
	if err := r.finals.FindOne(ctx, bson.M{"contractId": contractID}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *MongoContractRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	contractIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// At most one open contract per booking.
		{
			Keys: bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("one_open_contract").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": []models.ContractStatus{models.ContractProcessing, models.ContractRenting}}}),
		},
	}
	if _, err := r.contracts.Indexes().CreateMany(ctx, contractIndexes); err != nil {
		return fmt.Errorf("failed to create contract indexes: %w", err)
	}

	if _, err := r.finals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contractId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create final contract indexes: %w", err)
	}
	return nil
}
