package models

import "time"

type Role string

const (
	RoleRenter   Role = "renter"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller, as resolved by the identity middleware.
type Actor struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// Notification is the payload handed to the notification sink and, from
// there, to the push worker.
type Notification struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	RecipientID string            `json:"recipientId"`
	Role        Role              `json:"role"`
	BookingID   string            `json:"bookingId"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// BookingCleanupPayload is carried by the delayed abandoned-checkout task.
type BookingCleanupPayload struct {
	BookingID string    `json:"bookingId"`
	ArmedAt   time.Time `json:"armedAt"`
}
