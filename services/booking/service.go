package booking

import (
	"context"
	"strings"
	"time"

	"rentify/database"
	bookingRepo "rentify/database/repository/booking"
	contractRepo "rentify/database/repository/contract"
	couponRepo "rentify/database/repository/coupon"
	timeslotRepo "rentify/database/repository/timeslot"
	vehicleRepo "rentify/database/repository/vehicle"
	"rentify/models"
	"rentify/services/contract"
	"rentify/services/notification"
	"rentify/services/wallet"
	"rentify/utils"

	"github.com/google/uuid"
)

// BookingService drives the booking lifecycle. Every mutating call runs in a
// single transaction; notifications and cleanup arming happen after commit.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.BookingView, error)
	GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.BookingView, error)
	ListBookings(ctx context.Context, actor models.Actor, status models.BookingStatus) ([]models.Booking, error)

	Pay(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	RecordExternalPayment(ctx context.Context, actor models.Actor, bookingID, reference string) (*models.Booking, error)
	Confirm(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Deliver(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Receive(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Return(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	ReportNoShow(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)

	CleanupAbandoned(ctx context.Context, bookingID string) (bool, error)
	SweepAbandoned(ctx context.Context, limit int64) (int, error)

	ListBusyVehicleIDs(ctx context.Context, start, end time.Time) ([]string, error)
	ListVehicleSlots(ctx context.Context, vehicleID string) ([]models.TimeSlotReservation, error)
}

// CleanupScheduler arms the delayed abandoned-checkout check for a booking.
type CleanupScheduler interface {
	Arm(ctx context.Context, bookingID string, delay time.Duration) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Tx          database.Transactor
	Bookings    bookingRepo.BookingRepository
	TimeSlots   timeslotRepo.TimeSlotRepository
	Contracts   contractRepo.ContractRepository
	Directory   vehicleRepo.VehicleDirectory
	Coupons     couponRepo.CouponRepository
	Wallet      wallet.WalletService
	ContractSvc contract.ContractService
	Notifier    notification.Sink
	Cleanup     CleanupScheduler

	// Location is where operating hours and half-hour alignment are judged.
	Location       *time.Location
	CleanupDelay   time.Duration
	DeliveryWindow time.Duration

	Now   func() time.Time
	NewID func() string
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultBookingService) cleanupDelay() time.Duration {
	if s.CleanupDelay > 0 {
		return s.CleanupDelay
	}
	return utils.DefaultCleanupDelay
}

func (s *DefaultBookingService) policy() Policy {
	return Policy{DeliveryWindow: s.DeliveryWindow}
}

// transactionCode is the human-facing payment reference, e.g. BOOK-3F9A1C2E.
func transactionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BOOK-" + strings.ToUpper(raw[:8])
}
