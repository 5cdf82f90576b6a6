package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reservation collection.
func (r *mongoTimeSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One reservation per exact (vehicle, window).
		{
			Keys:    bson.D{{Key: "vehicleId", Value: 1}, {Key: "timeFrom", Value: 1}, {Key: "timeTo", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_vehicle_window"),
		},
		// Window scans across vehicles for busy listings.
		{
			Keys:    bson.D{{Key: "timeFrom", Value: 1}, {Key: "timeTo", Value: 1}},
			Options: options.Index().SetName("window_idx"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}
	return nil
}
