package models

import "time"

// TimeSlotReservation marks a vehicle busy over [TimeFrom, TimeTo).
type TimeSlotReservation struct {
	VehicleID string    `bson:"vehicleId" json:"vehicleId"`
	TimeFrom  time.Time `bson:"timeFrom" json:"timeFrom"`
	TimeTo    time.Time `bson:"timeTo" json:"timeTo"`
	BookingID string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Overlaps uses half-open semantics: touching intervals do not overlap.
func (r TimeSlotReservation) Overlaps(start, end time.Time) bool {
	return r.TimeFrom.Before(end) && start.Before(r.TimeTo)
}
