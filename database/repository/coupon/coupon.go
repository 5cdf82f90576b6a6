package couponRepo

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

// CouponRepository is the read-only coupon directory.
type CouponRepository interface {
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
}

type MongoCouponRepo struct {
	coll *mongo.Collection
}

func NewMongoCouponRepo() CouponRepository {
	repo := &MongoCouponRepo{coll: database.DB().Collection("coupons")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		database.LogIndexError("coupons", fmt.Errorf("failed to create coupon indexes: %w", err))
	}
	return repo
}

func (r *MongoCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var c models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
