package vehicleRepo

import (
	"context"

	"rentify/models"
)

// VehicleDirectory is the read-only view of vehicles and their providers.
type VehicleDirectory interface {
	// GetVehicles returns the vehicles found among ids; missing ids are simply absent.
	GetVehicles(ctx context.Context, ids []string) ([]models.Vehicle, error)
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
}
