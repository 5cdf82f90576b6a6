package timeslotRepo

import (
	"context"
	"time"

	"rentify/database"
	"rentify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository is the reservation ledger. It reports overlap; turning
// overlap into a business error is the caller's job, as is calling LockVehicle
// and IsAvailable in the same transaction as Reserve.
type TimeSlotRepository interface {
	IsAvailable(ctx context.Context, vehicleID string, start, end time.Time) (bool, error)
	Reserve(ctx context.Context, slot models.TimeSlotReservation) error
	Release(ctx context.Context, vehicleID string, start, end time.Time) error
	ListBusyVehicleIDs(ctx context.Context, start, end time.Time) ([]string, error)
	ListUpcoming(ctx context.Context, vehicleID string, after time.Time) ([]models.TimeSlotReservation, error)
	LockVehicle(ctx context.Context, vehicleID string) error
}

type mongoTimeSlotRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	db := database.DB()
	repo := &mongoTimeSlotRepo{
		coll:  db.Collection("booked_time_slots"),
		locks: db.Collection("vehicle_locks"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		database.LogIndexError("booked_time_slots", err)
	}
	return repo
}
