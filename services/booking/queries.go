package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentify/models"
	"rentify/services/pricing"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// GetBooking returns a booking with its details. Only the two parties and
// admins may read it.
func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.BookingView, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("booking %s not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("GetBooking: %w", err)
	}
	if PartyOf(b, actor) == PartyNone && actor.Role != models.RoleAdmin {
		return nil, utils.Forbidden("you are not a party to booking %s", bookingID)
	}

	details, err := s.Bookings.ListDetails(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("GetBooking: details: %w", err)
	}
	return &models.BookingView{
		Booking:        *b,
		Details:        details,
		RentalDuration: pricing.FormatRentalDuration(pricing.CalculateRentalDuration(b.TimeBookingStart, b.TimeBookingEnd)),
	}, nil
}

// ListBookings lists the actor's bookings: as provider for provider accounts,
// as renter otherwise. An empty status lists all.
func (s *DefaultBookingService) ListBookings(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error) {
	if actor.Role == models.RoleProvider {
		return s.Bookings.ListByProvider(ctx, actor.UserID, status)
	}
	return s.Bookings.ListByRenter(ctx, actor.UserID, status)
}

// ListBusyVehicleIDs returns the vehicles with a reservation overlapping [start, end).
func (s *DefaultBookingService) ListBusyVehicleIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	if !start.Before(end) {
		return nil, utils.BadRequest("start must be before end")
	}
	return s.TimeSlots.ListBusyVehicleIDs(ctx, start.UTC(), end.UTC())
}

// ListVehicleSlots returns a vehicle's reservations that have not ended yet.
func (s *DefaultBookingService) ListVehicleSlots(ctx context.Context, vehicleID string) ([]models.TimeSlotReservation, error) {
	return s.TimeSlots.ListUpcoming(ctx, vehicleID, s.now())
}
