package booking

import (
	"context"
	"errors"
	"fmt"

	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CleanupAbandoned deletes a booking that is still UNPAID and frees its
// vehicles. It reports whether anything was removed; a missing or already
// paid booking is not an error, so the call is safe to repeat.
func (s *DefaultBookingService) CleanupAbandoned(ctx context.Context, bookingID string) (bool, error) {
	var removed bool
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		removed = false

		b, err := s.Bookings.GetByID(ctx, bookingID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load booking %s: %w", bookingID, err)
		}
		if b.Status != models.BookingStatusUnpaid {
			return nil
		}

		for _, vehicleID := range b.VehicleIDs {
			if err := s.TimeSlots.Release(ctx, vehicleID, b.TimeBookingStart, b.TimeBookingEnd); err != nil {
				return fmt.Errorf("release vehicle %s: %w", vehicleID, err)
			}
		}
		if err := s.Bookings.Delete(ctx, b.ID); err != nil {
			return fmt.Errorf("delete booking %s: %w", b.ID, err)
		}
		removed = true
		return nil
	})

	result := "skipped"
	switch {
	case err != nil:
		result = "error"
	case removed:
		result = "removed"
	}
	utils.BookingCleanups.WithLabelValues(result).Inc()

	if err != nil {
		return false, err
	}
	if removed {
		utils.GetLogger().Info("Abandoned booking removed", zap.String("bookingId", bookingID))
	}
	return removed, nil
}

// SweepAbandoned cleans up UNPAID bookings older than the cleanup delay whose
// scheduled check never ran. Failures on one booking do not stop the sweep.
func (s *DefaultBookingService) SweepAbandoned(ctx context.Context, limit int64) (int, error) {
	cutoff := s.now().Add(-s.cleanupDelay())
	ids, err := s.Bookings.ListUnpaidCreatedBefore(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("SweepAbandoned: %w", err)
	}

	var (
		removed int
		errs    []error
	)
	for _, id := range ids {
		ok, err := s.CleanupAbandoned(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("booking %s: %w", id, err))
			continue
		}
		if ok {
			removed++
		}
	}

	if len(ids) > 0 {
		utils.GetLogger().Info("Abandoned booking sweep finished",
			zap.Int("candidates", len(ids)),
			zap.Int("removed", removed),
			zap.Int("failed", len(errs)))
	}
	return removed, errors.Join(errs...)
}
