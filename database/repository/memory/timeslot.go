package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rentify/models"
)

type TimeSlotRepo struct{ s *Store }

func (r *TimeSlotRepo) IsAvailable(ctx context.Context, vehicleID string, start, end time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	for _, slot := range r.s.state.slots[vehicleID] {
		if slot.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

func (r *TimeSlotRepo) Reserve(ctx context.Context, slot models.TimeSlotReservation) error {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.state.slots[slot.VehicleID] {
		if existing.TimeFrom.Equal(slot.TimeFrom) && existing.TimeTo.Equal(slot.TimeTo) {
			return fmt.Errorf("failed to reserve vehicle %s: duplicate reservation", slot.VehicleID)
		}
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now()
	}
	r.s.state.slots[slot.VehicleID] = append(r.s.state.slots[slot.VehicleID], slot)
	return nil
}

func (r *TimeSlotRepo) Release(ctx context.Context, vehicleID string, start, end time.Time) error {
	defer r.s.lock(ctx)()

	slots := r.s.state.slots[vehicleID]
	kept := slots[:0]
	for _, slot := range slots {
		if slot.TimeFrom.Equal(start) && slot.TimeTo.Equal(end) {
			continue
		}
		kept = append(kept, slot)
	}
	if len(kept) == 0 {
		delete(r.s.state.slots, vehicleID)
		return nil
	}
	r.s.state.slots[vehicleID] = kept
	return nil
}

func (r *TimeSlotRepo) ListBusyVehicleIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	defer r.s.lock(ctx)()

	var ids []string
	for vehicleID, slots := range r.s.state.slots {
		for _, slot := range slots {
			if slot.Overlaps(start, end) {
				ids = append(ids, vehicleID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *TimeSlotRepo) ListUpcoming(ctx context.Context, vehicleID string, after time.Time) ([]models.TimeSlotReservation, error) {
	defer r.s.lock(ctx)()

	var out []models.TimeSlotReservation
	for _, slot := range r.s.state.slots[vehicleID] {
		if slot.TimeTo.After(after) {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeFrom.Before(out[j].TimeFrom) })
	return out, nil
}

// LockVehicle is a no-op: transactions on this store are already serialized.
func (r *TimeSlotRepo) LockVehicle(ctx context.Context, vehicleID string) error {
	return nil
}
