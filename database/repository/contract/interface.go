package contractRepo

import (
	"context"
	"time"

	"rentify/models"
)

// ContractRepository stores contracts and the final settlements that close them.
type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	// GetOpenByBooking returns the PROCESSING or RENTING contract of a booking, or mongo.ErrNoDocuments.
	GetOpenByBooking(ctx context.Context, bookingID string) (*models.Contract, error)
	UpdateStatus(ctx context.Context, contractID string, status models.ContractStatus, at time.Time) error
	CreateFinal(ctx context.Context, final *models.FinalContract) error
	GetFinalByContract(ctx context.Context, contractID string) (*models.FinalContract, error)
}
