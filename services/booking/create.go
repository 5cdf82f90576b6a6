package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"rentify/models"
	"rentify/services/pricing"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateBooking prices and reserves a rental for the actor. The booking is
// created UNPAID and a cleanup check is armed for it.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.BookingView, error) {
	logger := utils.GetLogger()
	now := s.now()
	loc := s.location()

	vehicleIDs, err := normalizeVehicleIDs(req.VehicleIDs)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.TimeBookingStart, req.TimeBookingEnd, now, loc); err != nil {
		return nil, err
	}
	pickup, err := validatePickup(req.PickupMethod)
	if err != nil {
		return nil, err
	}
	start := req.TimeBookingStart.UTC()
	end := req.TimeBookingEnd.UTC()

	vehicles, err := s.loadVehicles(ctx, vehicleIDs)
	if err != nil {
		return nil, err
	}
	providerID := vehicles[0].ProviderID
	for _, v := range vehicles[1:] {
		if v.ProviderID != providerID {
			return nil, utils.BadRequest("all vehicles in a booking must belong to the same provider")
		}
	}
	if actor.UserID == providerID {
		return nil, utils.Forbidden("providers cannot book their own vehicles")
	}

	provider, err := s.Directory.GetProvider(ctx, providerID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("provider %s not found", providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("CreateBooking: load provider: %w", err)
	}
	if err := validateOperatingHours(provider, start, end, loc); err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	if req.CouponID != "" {
		coupon, err = s.Coupons.GetByID(ctx, req.CouponID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("coupon %s not found", req.CouponID)
		}
		if err != nil {
			return nil, fmt.Errorf("CreateBooking: load coupon: %w", err)
		}
	}

	bookingID := s.newID()
	calc := pricing.CalculateRentalDuration(start, end)
	details := make([]models.BookingDetail, 0, len(vehicles))
	var preDiscount models.Amount
	for _, v := range vehicles {
		d := models.BookingDetail{
			ID:        s.newID(),
			BookingID: bookingID,
			VehicleID: v.ID,
			Cost:      pricing.CalculateRentalPrice(calc, v.DailyRate),
		}
		if req.WithDriver && v.DriverFee != nil {
			fee := pricing.CalculateRentalPrice(calc, *v.DriverFee)
			d.DriverFee = &fee
			preDiscount += fee
		}
		preDiscount += d.Cost
		details = append(details, d)
	}

	discount, err := pricing.ApplyCoupon(preDiscount, coupon, now)
	if err != nil {
		return nil, err
	}
	total := preDiscount - discount
	if total < 0 {
		total = 0
	}

	booking := &models.Booking{
		ID:               bookingID,
		RenterID:         actor.UserID,
		ProviderID:       providerID,
		VehicleIDs:       vehicleIDs,
		TimeBookingStart: start,
		TimeBookingEnd:   end,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		PickupMethod:     pickup,
		Status:           models.BookingStatusUnpaid,
		PriceType:        calc.PriceType,
		PreDiscountCost:  preDiscount,
		Discount:         discount,
		TotalCost:        total,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if coupon != nil {
		booking.AppliedCouponID = coupon.ID
	}
	if provider.Penalty != nil {
		booking.PenaltyType = provider.Penalty.Type
		booking.PenaltyValue = provider.Penalty.Value
		if provider.Penalty.MinCancelHour != nil {
			h := *provider.Penalty.MinCancelHour
			booking.MinCancelHour = &h
		}
	}

	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.reserve(ctx, booking, details, now)
	})
	utils.BookingTransitions.WithLabelValues("create", utils.Outcome(err)).Inc()
	if err != nil {
		logger.Info("Booking creation rejected",
			zap.String("renterId", actor.UserID),
			zap.Strings("vehicleIds", vehicleIDs),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Booking created",
		zap.String("bookingId", booking.ID),
		zap.String("renterId", booking.RenterID),
		zap.String("providerId", booking.ProviderID),
		zap.Stringer("totalCost", booking.TotalCost))

	if s.Cleanup != nil {
		if err := s.Cleanup.Arm(ctx, booking.ID, s.cleanupDelay()); err != nil {
			logger.Error("Failed to arm booking cleanup", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	s.notifyAll(ctx, s.creationNotifications(booking))

	return &models.BookingView{
		Booking:        *booking,
		Details:        details,
		RentalDuration: pricing.FormatRentalDuration(calc),
	}, nil
}

// loadVehicles returns the vehicles in request order, failing on any unknown id.
func (s *DefaultBookingService) loadVehicles(ctx context.Context, ids []string) ([]models.Vehicle, error) {
	found, err := s.Directory.GetVehicles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("CreateBooking: load vehicles: %w", err)
	}
	byID := make(map[string]models.Vehicle, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	out := make([]models.Vehicle, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, utils.NotFound("vehicle %s not found", id)
		}
		out = append(out, v)
	}
	return out, nil
}

// reserve runs inside the creation transaction. Vehicle guards are taken in
// id order so two multi-vehicle bookings cannot deadlock.
func (s *DefaultBookingService) reserve(ctx context.Context, b *models.Booking, details []models.BookingDetail, now time.Time) error {
	locked := append([]string(nil), b.VehicleIDs...)
	sort.Strings(locked)
	for _, id := range locked {
		if err := s.TimeSlots.LockVehicle(ctx, id); err != nil {
			return fmt.Errorf("lock vehicle %s: %w", id, err)
		}
	}

	for _, id := range b.VehicleIDs {
		dup, err := s.Bookings.ExistsActive(ctx, b.RenterID, id, b.TimeBookingStart, b.TimeBookingEnd)
		if err != nil {
			return fmt.Errorf("check active bookings: %w", err)
		}
		if dup {
			return utils.Conflict("you already have an active booking for vehicle %s in this window", id)
		}
		free, err := s.TimeSlots.IsAvailable(ctx, id, b.TimeBookingStart, b.TimeBookingEnd)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if !free {
			return utils.Conflict("vehicle %s is already booked for this window", id)
		}
	}

	for _, id := range b.VehicleIDs {
		err := s.TimeSlots.Reserve(ctx, models.TimeSlotReservation{
			VehicleID: id,
			TimeFrom:  b.TimeBookingStart,
			TimeTo:    b.TimeBookingEnd,
			BookingID: b.ID,
			CreatedAt: now,
		})
		if mongo.IsDuplicateKeyError(err) {
			return utils.Conflict("vehicle %s is already booked for this window", id)
		}
		if err != nil {
			return err
		}
	}

	if err := s.Bookings.Create(ctx, b, details); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}
