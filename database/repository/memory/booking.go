package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rentify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking, details []models.BookingDetail) error {
	defer r.s.lock(ctx)()
	st := r.s.state

	if _, ok := st.bookings[booking.ID]; ok {
		return fmt.Errorf("insert booking failed: duplicate id %s", booking.ID)
	}
	st.bookings[booking.ID] = copyBooking(*booking)
	st.details[booking.ID] = append([]models.BookingDetail(nil), details...)
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.state.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := copyBooking(b)
	return &out, nil
}

func (r *BookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.state.bookings[booking.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.s.state.bookings[booking.ID] = copyBooking(*booking)
	return nil
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	delete(r.s.state.bookings, id)
	delete(r.s.state.details, id)
	return nil
}

func (r *BookingRepo) ListDetails(ctx context.Context, bookingID string) ([]models.BookingDetail, error) {
	defer r.s.lock(ctx)()
	return append([]models.BookingDetail(nil), r.s.state.details[bookingID]...), nil
}

func (r *BookingRepo) ExistsActive(ctx context.Context, renterID, vehicleID string, start, end time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	for _, b := range r.s.state.bookings {
		if b.RenterID != renterID || !b.IsActive() {
			continue
		}
		if !b.TimeBookingStart.Equal(start) || !b.TimeBookingEnd.Equal(end) {
			continue
		}
		for _, v := range b.VehicleIDs {
			if v == vehicleID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *BookingRepo) ListByRenter(ctx context.Context, renterID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, func(b models.Booking) bool { return b.RenterID == renterID }, status), nil
}

func (r *BookingRepo) ListByProvider(ctx context.Context, providerID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, func(b models.Booking) bool { return b.ProviderID == providerID }, status), nil
}

func (r *BookingRepo) list(ctx context.Context, match func(models.Booking) bool, status models.BookingStatus) []models.Booking {
	defer r.s.lock(ctx)()

	var out []models.Booking
	for _, b := range r.s.state.bookings {
		if !match(b) || (status != "" && b.Status != status) {
			continue
		}
		out = append(out, copyBooking(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeBookingStart.After(out[j].TimeBookingStart)
	})
	return out
}

func (r *BookingRepo) ListUnpaidCreatedBefore(ctx context.Context, before time.Time, limit int64) ([]string, error) {
	defer r.s.lock(ctx)()

	var stale []models.Booking
	for _, b := range r.s.state.bookings {
		if b.Status == models.BookingStatusUnpaid && b.CreatedAt.Before(before) {
			stale = append(stale, b)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })

	ids := make([]string, 0, len(stale))
	for _, b := range stale {
		if limit > 0 && int64(len(ids)) >= limit {
			break
		}
		ids = append(ids, b.ID)
	}
	return ids, nil
}
