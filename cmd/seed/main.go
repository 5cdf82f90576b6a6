// Command seed loads providers, vehicles, coupons and opening wallet
// balances into MongoDB from the same JSON file the in-memory driver reads.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"rentify/config"
	"rentify/database"
	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "", "seed file (defaults to SEED_FILE)")
	reset := flag.Bool("reset", false, "clear the directory collections first")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if *path == "" {
		*path = config.AppConfig.SeedFile
	}
	if *path == "" {
		logger.Fatal("seed: no seed file given")
	}
	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal("seed: failed to open seed file", zap.String("path", *path), zap.Error(err))
	}
	seed, err := models.DecodeSeed(f)
	f.Close()
	if err != nil {
		logger.Fatal("seed: invalid seed file", zap.Error(err))
	}

	database.InitDB()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.CloseDB(ctx)

	db := database.DB()
	if *reset {
		for _, name := range []string{"providers", "vehicles", "coupons"} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				logger.Fatal("seed: failed to clear collection", zap.String("collection", name), zap.Error(err))
			}
		}
	}

	upsert := options.Replace().SetUpsert(true)
	for _, p := range seed.Providers {
		if _, err := db.Collection("providers").ReplaceOne(ctx, bson.M{"id": p.ID}, p, upsert); err != nil {
			logger.Fatal("seed: failed to write provider", zap.String("providerId", p.ID), zap.Error(err))
		}
	}
	for _, v := range seed.Vehicles {
		if _, err := db.Collection("vehicles").ReplaceOne(ctx, bson.M{"id": v.ID}, v, upsert); err != nil {
			logger.Fatal("seed: failed to write vehicle", zap.String("vehicleId", v.ID), zap.Error(err))
		}
	}
	for _, c := range seed.Coupons {
		if _, err := db.Collection("coupons").ReplaceOne(ctx, bson.M{"id": c.ID}, c, upsert); err != nil {
			logger.Fatal("seed: failed to write coupon", zap.String("couponId", c.ID), zap.Error(err))
		}
	}
	if err := seedWallets(ctx, db, seed.Wallets); err != nil {
		logger.Fatal("seed: failed to write wallets", zap.Error(err))
	}

	logger.Info("seed: done",
		zap.Int("providers", len(seed.Providers)),
		zap.Int("vehicles", len(seed.Vehicles)),
		zap.Int("coupons", len(seed.Coupons)),
		zap.Int("wallets", len(seed.Wallets)))
}

// seedWallets sets opening balances. Ledger history is left untouched.
func seedWallets(ctx context.Context, db *mongo.Database, balances map[string]models.Amount) error {
	now := time.Now().UTC()
	coll := db.Collection("wallets")
	for userID, balance := range balances {
		_, err := coll.UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{
				"$set":         bson.M{"balance": balance, "updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}
