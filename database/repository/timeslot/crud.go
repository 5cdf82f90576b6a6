package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches reservations intersecting [start, end).
func overlapFilter(start, end time.Time) bson.M {
	return bson.M{
		"timeFrom": bson.M{"$lt": end},
		"timeTo":   bson.M{"$gt": start},
	}
}

func (r *mongoTimeSlotRepo) IsAvailable(ctx context.Context, vehicleID string, start, end time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := overlapFilter(start, end)
	filter["vehicleId"] = vehicleID
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check availability for vehicle %s: %w", vehicleID, err)
	}
	return n == 0, nil
}

func (r *mongoTimeSlotRepo) Reserve(ctx context.Context, slot models.TimeSlotReservation) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to reserve vehicle %s: %w", slot.VehicleID, err)
	}
	return nil
}

// Release is idempotent: a missing reservation is not an error.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, vehicleID string, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{"vehicleId": vehicleID, "timeFrom": start, "timeTo": end}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to release vehicle %s: %w", vehicleID, err)
	}
	return nil
}

func (r *mongoTimeSlotRepo) ListBusyVehicleIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "vehicleId", overlapFilter(start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to list busy vehicles: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

func (r *mongoTimeSlotRepo) ListUpcoming(ctx context.Context, vehicleID string, after time.Time) ([]models.TimeSlotReservation, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{"vehicleId": vehicleID, "timeTo": bson.M{"$gt": after}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timeFrom", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for vehicle %s: %w", vehicleID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlotReservation
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// LockVehicle bumps the vehicle's guard document inside the caller's
// transaction. Two transactions that both bump the same guard cannot both
// commit; the loser is retried and re-runs its overlap check.
func (r *mongoTimeSlotRepo) LockVehicle(ctx context.Context, vehicleID string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"lockedAt": time.Now()},
	}
	_, err := r.locks.UpdateOne(ctx, bson.M{"_id": vehicleID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to lock vehicle %s: %w", vehicleID, err)
	}
	return nil
}
