package memory

import (
	"context"

	"rentify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type DirectoryRepo struct{ s *Store }

func (r *DirectoryRepo) GetVehicles(ctx context.Context, ids []string) ([]models.Vehicle, error) {
	defer r.s.lock(ctx)()

	var out []models.Vehicle
	for _, id := range ids {
		if v, ok := r.s.state.vehicles[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *DirectoryRepo) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.state.providers[providerID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

type CouponRepo struct{ s *Store }

func (r *CouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.state.coupons[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}
