package memory

import (
	"context"
	"fmt"
	"time"

	"rentify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ContractRepo struct{ s *Store }

func (r *ContractRepo) Create(ctx context.Context, contract *models.Contract) error {
	defer r.s.lock(ctx)()

	for _, c := range r.s.state.contracts {
		if c.BookingID == contract.BookingID && c.IsOpen() {
			return fmt.Errorf("insert contract failed: booking %s already has an open contract", contract.BookingID)
		}
	}
	r.s.state.contracts[contract.ID] = *contract
	return nil
}

func (r *ContractRepo) GetOpenByBooking(ctx context.Context, bookingID string) (*models.Contract, error) {
	defer r.s.lock(ctx)()

	for _, c := range r.s.state.contracts {
		if c.BookingID == bookingID && c.IsOpen() {
			out := c
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *ContractRepo) UpdateStatus(ctx context.Context, contractID string, status models.ContractStatus, at time.Time) error {
	defer r.s.lock(ctx)()

	c, ok := r.s.state.contracts[contractID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.Status = status
	c.UpdatedAt = at
	r.s.state.contracts[contractID] = c
	return nil
}

func (r *ContractRepo) CreateFinal(ctx context.Context, final *models.FinalContract) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.state.finals[final.ContractID]; ok {
		return fmt.Errorf("insert final contract failed: contract %s already settled", final.ContractID)
	}
	r.s.state.finals[final.ContractID] = *final
	return nil
}

func (r *ContractRepo) GetFinalByContract(ctx context.Context, contractID string) (*models.FinalContract, error) {
	defer r.s.lock(ctx)()

	f, ok := r.s.state.finals[contractID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &f, nil
}

// ListByBooking returns every contract of a booking, open or closed.
func (r *ContractRepo) ListByBooking(ctx context.Context, bookingID string) []models.Contract {
	defer r.s.lock(ctx)()

	var out []models.Contract
	for _, c := range r.s.state.contracts {
		if c.BookingID == bookingID {
			out = append(out, c)
		}
	}
	return out
}
