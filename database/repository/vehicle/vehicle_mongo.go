package vehicleRepo

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

type MongoVehicleDirectory struct {
	vehicles  *mongo.Collection
	providers *mongo.Collection
}

func NewMongoVehicleDirectory() *MongoVehicleDirectory {
	db := database.DB()
	repo := &MongoVehicleDirectory{
		vehicles:  db.Collection("vehicles"),
		providers: db.Collection("providers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("vehicles", err)
	}
	return repo
}

func (r *MongoVehicleDirectory) GetVehicles(ctx context.Context, ids []string) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	cursor, err := r.vehicles.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Vehicle
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoVehicleDirectory) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var p models.Provider
	if err := r.providers.FindOne(ctx, bson.M{"id": providerID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoVehicleDirectory) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.vehicles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create vehicle indexes: %w", err)
	}
	if _, err := r.providers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
