package booking

import (
	"time"

	"rentify/models"
	"rentify/services/pricing"
	"rentify/utils"
)

// Event is a lifecycle request against an existing booking.
type Event string

const (
	EventPay         Event = "pay"
	EventExternalPay Event = "external-pay"
	EventConfirm     Event = "confirm"
	EventDeliver     Event = "deliver"
	EventReceive     Event = "receive"
	EventReturn      Event = "return"
	EventComplete    Event = "complete"
	EventCancel      Event = "cancel"
	EventNoShow      Event = "cancel-no-show"
)

// Events lists every lifecycle event, in lifecycle order.
var Events = []Event{
	EventPay, EventExternalPay, EventConfirm, EventDeliver, EventReceive,
	EventReturn, EventComplete, EventCancel, EventNoShow,
}

// Party is the caller's relation to a booking.
type Party string

const (
	PartyNone     Party = ""
	PartyRenter   Party = "renter"
	PartyProvider Party = "provider"
)

// PartyOf resolves which side of the booking the actor is on.
func PartyOf(b *models.Booking, actor models.Actor) Party {
	switch actor.UserID {
	case "":
		return PartyNone
	case b.RenterID:
		return PartyRenter
	case b.ProviderID:
		return PartyProvider
	}
	return PartyNone
}

type rule struct {
	from     []models.BookingStatus
	parties  []Party
	to       models.BookingStatus
	stateMsg string
	partyMsg string
}

var rules = map[Event]rule{
	EventPay: {
		from:     []models.BookingStatus{models.BookingStatusUnpaid},
		parties:  []Party{PartyRenter},
		to:       models.BookingStatusConfirmed,
		stateMsg: "only UNPAID bookings can be paid",
		partyMsg: "only the renter can pay for a booking",
	},
	EventExternalPay: {
		from:     []models.BookingStatus{models.BookingStatusUnpaid},
		parties:  []Party{PartyRenter},
		to:       models.BookingStatusPending,
		stateMsg: "only UNPAID bookings can take an external payment",
		partyMsg: "only the renter can pay for a booking",
	},
	EventConfirm: {
		from:     []models.BookingStatus{models.BookingStatusPending},
		parties:  []Party{PartyProvider},
		to:       models.BookingStatusConfirmed,
		stateMsg: "only PENDING bookings can be confirmed",
		partyMsg: "only the provider can confirm a booking",
	},
	EventDeliver: {
		from:     []models.BookingStatus{models.BookingStatusConfirmed},
		parties:  []Party{PartyProvider},
		to:       models.BookingStatusDelivered,
		stateMsg: "only CONFIRMED bookings can be delivered",
		partyMsg: "only the provider can deliver a vehicle",
	},
	EventReceive: {
		from:     []models.BookingStatus{models.BookingStatusDelivered},
		parties:  []Party{PartyRenter},
		to:       models.BookingStatusReceivedByCustomer,
		stateMsg: "only DELIVERED bookings can be received",
		partyMsg: "only the renter can confirm receipt of a vehicle",
	},
	EventReturn: {
		from:     []models.BookingStatus{models.BookingStatusReceivedByCustomer},
		parties:  []Party{PartyRenter},
		to:       models.BookingStatusReturned,
		stateMsg: "only RECEIVED_BY_CUSTOMER bookings can be returned",
		partyMsg: "only the renter can return a vehicle",
	},
	EventComplete: {
		from:     []models.BookingStatus{models.BookingStatusReturned},
		parties:  []Party{PartyRenter, PartyProvider},
		to:       models.BookingStatusCompleted,
		stateMsg: "only RETURNED bookings can be completed",
		partyMsg: "only the renter or the provider can complete a booking",
	},
	EventCancel: {
		from: []models.BookingStatus{
			models.BookingStatusUnpaid,
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusDelivered,
		},
		parties:  []Party{PartyRenter, PartyProvider},
		to:       models.BookingStatusCancelled,
		stateMsg: "bookings can only be cancelled before the customer receives the vehicle",
		partyMsg: "only the renter or the provider can cancel a booking",
	},
	EventNoShow: {
		from:     []models.BookingStatus{models.BookingStatusConfirmed},
		parties:  []Party{PartyProvider},
		to:       models.BookingStatusCancelled,
		stateMsg: "only CONFIRMED bookings can be marked as a no-show",
		partyMsg: "only the provider can report a no-show",
	},
}

// Policy carries the time-based rules of the lifecycle.
type Policy struct {
	// DeliveryWindow is how long before the rental start delivery may happen.
	DeliveryWindow time.Duration
}

// Decision is everything a transition does, computed without touching storage.
type Decision struct {
	Event Event
	Party Party
	From  models.BookingStatus
	To    models.BookingStatus

	// Charge is debited from the renter's wallet.
	Charge models.Amount
	// MoveFunds is set when a cancellation returns held funds. Refund goes to
	// the renter, Penalty to the provider, and Refund+Penalty == TotalCost.
	MoveFunds bool
	Refund    models.Amount
	Penalty   models.Amount

	OpenContract   bool
	ContractStatus models.ContractStatus
	ReleaseSlots   bool
	// SettleContract asks for a FinalContract after commit.
	SettleContract bool

	Notify []models.Role
}

// Decide validates ev against the booking and returns what applying it means.
// It never mutates b.
func Decide(b *models.Booking, party Party, ev Event, now time.Time, policy Policy) (Decision, error) {
	r, ok := rules[ev]
	if !ok {
		return Decision{}, utils.BadRequest("unknown booking action %q", ev)
	}
	if party == PartyNone {
		return Decision{}, utils.Forbidden("you are not a party to booking %s", b.ID)
	}
	if !containsStatus(r.from, b.Status) {
		return Decision{}, utils.InvalidState("%s (booking %s is %s)", r.stateMsg, b.ID, b.Status)
	}
	if !containsParty(r.parties, party) {
		return Decision{}, utils.Forbidden("%s", r.partyMsg)
	}

	d := Decision{Event: ev, Party: party, From: b.Status, To: r.to}

	switch ev {
	case EventPay:
		d.Charge = b.TotalCost
		d.OpenContract = true
		d.Notify = []models.Role{models.RoleRenter}

	case EventExternalPay:
		d.Notify = []models.Role{models.RoleProvider}

	case EventConfirm:
		d.OpenContract = true
		d.Notify = []models.Role{models.RoleRenter}

	case EventDeliver:
		window := policy.DeliveryWindow
		if window <= 0 {
			window = utils.DefaultDeliveryWindow
		}
		if now.Before(b.TimeBookingStart.Add(-window)) {
			return Decision{}, utils.BadRequest("vehicle can be delivered at most %s before the rental starts; earliest delivery is %s",
				window, b.TimeBookingStart.Add(-window).Format(time.RFC3339))
		}
		d.Notify = []models.Role{models.RoleRenter}

	case EventReceive:
		d.ContractStatus = models.ContractRenting
		d.Notify = []models.Role{models.RoleProvider}

	case EventReturn:
		d.Notify = []models.Role{models.RoleProvider}

	case EventComplete:
		d.ReleaseSlots = true
		d.ContractStatus = models.ContractFinished
		d.SettleContract = true
		d.Notify = []models.Role{models.RoleRenter}

	case EventNoShow:
		if now.Before(b.TimeBookingStart) {
			return Decision{}, utils.BadRequest("a no-show can only be reported once the rental has started at %s",
				b.TimeBookingStart.Format(time.RFC3339))
		}
		fallthrough

	case EventCancel:
		d.MoveFunds, d.Refund, d.Penalty = cancellationSettlement(b, party, ev, now)
		d.ReleaseSlots = true
		d.ContractStatus = models.ContractCancelled
		d.SettleContract = true
		d.Notify = []models.Role{models.RoleRenter, models.RoleProvider}
	}

	return d, nil
}

// cancellationSettlement applies the refund policy. Nothing moves unless the
// booking holds the renter's money.
func cancellationSettlement(b *models.Booking, party Party, ev Event, now time.Time) (bool, models.Amount, models.Amount) {
	if !b.HoldsFunds() {
		return false, 0, 0
	}

	var penalty models.Amount
	switch {
	case ev == EventNoShow:
		penalty = pricing.CalculatePenalty(b)
	case party == PartyRenter && b.MinCancelHour != nil && !b.TimeBookingStart.IsZero():
		hoursBeforeStart := b.TimeBookingStart.Sub(now).Hours()
		if hoursBeforeStart < float64(*b.MinCancelHour) {
			penalty = pricing.CalculatePenalty(b)
		}
	}

	refund, charged := pricing.Settle(b.TotalCost, penalty)
	return true, refund, charged
}

func containsStatus(list []models.BookingStatus, s models.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsParty(list []Party, p Party) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
