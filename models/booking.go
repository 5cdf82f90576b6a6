package models

import "time"

type BookingStatus string

const (
	BookingStatusUnpaid             BookingStatus = "UNPAID"
	BookingStatusPending            BookingStatus = "PENDING"
	BookingStatusConfirmed          BookingStatus = "CONFIRMED"
	BookingStatusDelivered          BookingStatus = "DELIVERED"
	BookingStatusReceivedByCustomer BookingStatus = "RECEIVED_BY_CUSTOMER"
	BookingStatusReturned           BookingStatus = "RETURNED"
	BookingStatusCompleted          BookingStatus = "COMPLETED"
	BookingStatusCancelled          BookingStatus = "CANCELLED"
)

// ActiveBookingStatuses are the statuses that block a renter from booking the
// same vehicle and window twice.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusUnpaid,
	BookingStatusPending,
	BookingStatusConfirmed,
}

type PickupMethod string

const (
	PickupOffice   PickupMethod = "office"
	PickupDelivery PickupMethod = "delivery"
)

type PenaltyType string

const (
	PenaltyFixed   PenaltyType = "FIXED"
	PenaltyPercent PenaltyType = "PERCENT"
)

// Booking is the aggregate root of a rental.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	RenterID         string        `bson:"renterId" json:"renterId"`
	ProviderID       string        `bson:"providerId" json:"providerId"`
	VehicleIDs       []string      `bson:"vehicleIds" json:"vehicleIds"`
	TimeBookingStart time.Time     `bson:"timeBookingStart" json:"timeBookingStart"`
	TimeBookingEnd   time.Time     `bson:"timeBookingEnd" json:"timeBookingEnd"`
	PhoneNumber      string        `bson:"phoneNumber" json:"phoneNumber"`
	Address          string        `bson:"address" json:"address"`
	PickupMethod     PickupMethod  `bson:"pickupMethod" json:"pickupMethod"`
	Status           BookingStatus `bson:"status" json:"status"`

	// Pricing snapshot.
	PriceType       PriceType `bson:"priceType" json:"priceType"`
	PreDiscountCost Amount    `bson:"preDiscountCost" json:"preDiscountCost"`
	Discount        Amount    `bson:"discount" json:"discount"`
	TotalCost       Amount    `bson:"totalCost" json:"totalCost"`
	AppliedCouponID string    `bson:"appliedCouponId,omitempty" json:"appliedCouponId,omitempty"`

	// Cancellation policy copied from the provider at creation.
	PenaltyType   PenaltyType `bson:"penaltyType,omitempty" json:"penaltyType,omitempty"`
	PenaltyValue  Amount      `bson:"penaltyValue" json:"penaltyValue"`
	MinCancelHour *int        `bson:"minCancelHour,omitempty" json:"minCancelHour,omitempty"`

	// Set by payment.
	CodeTransaction string     `bson:"codeTransaction,omitempty" json:"codeTransaction,omitempty"`
	TimeTransaction *time.Time `bson:"timeTransaction,omitempty" json:"timeTransaction,omitempty"`

	// Set by cancellation.
	CancelledBy    string `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	PenaltyCharged Amount `bson:"penaltyCharged" json:"penaltyCharged"`
	RefundAmount   Amount `bson:"refundAmount" json:"refundAmount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the booking still blocks a duplicate request.
func (b *Booking) IsActive() bool {
	for _, s := range ActiveBookingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// HoldsFunds reports whether the renter has already paid for the booking.
func (b *Booking) HoldsFunds() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusDelivered:
		return true
	}
	return false
}

// BookingDetail is the per-vehicle line of a booking.
type BookingDetail struct {
	ID        string  `bson:"id" json:"id"`
	BookingID string  `bson:"bookingId" json:"bookingId"`
	VehicleID string  `bson:"vehicleId" json:"vehicleId"`
	Cost      Amount  `bson:"cost" json:"cost"`
	DriverFee *Amount `bson:"driverFee,omitempty" json:"driverFee,omitempty"`
}

// CreateBookingRequest is the renter's booking input.
type CreateBookingRequest struct {
	VehicleIDs       []string     `json:"vehicleIds" binding:"required,min=1"`
	TimeBookingStart time.Time    `json:"timeBookingStart" binding:"required"`
	TimeBookingEnd   time.Time    `json:"timeBookingEnd" binding:"required"`
	PhoneNumber      string       `json:"phoneNumber" binding:"required"`
	Address          string       `json:"address"`
	PickupMethod     PickupMethod `json:"pickupMethod"`
	CouponID         string       `json:"couponId,omitempty"`
	WithDriver       bool         `json:"withDriver,omitempty"`
}

// BookingView is the booking as returned to API callers.
type BookingView struct {
	Booking
	Details        []BookingDetail `json:"details"`
	RentalDuration string          `json:"rentalDuration"`
}
