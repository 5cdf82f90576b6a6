package bookingRepo

import (
	"context"
	"time"

	"rentify/models"
)

// BookingRepository persists bookings together with their per-vehicle details.
// Lookups of missing bookings return mongo.ErrNoDocuments.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking, details []models.BookingDetail) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	// Delete removes the booking and its details. Deleting a missing booking is a no-op.
	Delete(ctx context.Context, id string) error
	ListDetails(ctx context.Context, bookingID string) ([]models.BookingDetail, error)
	ExistsActive(ctx context.Context, renterID, vehicleID string, start, end time.Time) (bool, error)
	ListByRenter(ctx context.Context, renterID string, status models.BookingStatus) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string, status models.BookingStatus) ([]models.Booking, error)
	ListUnpaidCreatedBefore(ctx context.Context, before time.Time, limit int64) ([]string, error)
}
