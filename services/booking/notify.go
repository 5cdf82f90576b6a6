package booking

import (
	"context"
	"fmt"

	"rentify/models"
	"rentify/utils"

	"go.uber.org/zap"
)

const (
	NotifyBookingCreated   = "booking_created"
	NotifyBookingRequested = "booking_requested"
	NotifyBookingUpdated   = "booking_updated"
	NotifyBookingCancelled = "booking_cancelled"
)

// notifyAll hands notifications to the sink. Failures are logged only: a
// committed transition stays committed.
func (s *DefaultBookingService) notifyAll(ctx context.Context, ns []models.Notification) {
	if s.Notifier == nil {
		return
	}
	for _, n := range ns {
		err := s.Notifier.Notify(ctx, n)
		utils.NotificationsDispatched.WithLabelValues(n.Type, utils.Outcome(err)).Inc()
		if err != nil {
			utils.GetLogger().Error("Failed to dispatch notification",
				zap.String("type", n.Type),
				zap.String("bookingId", n.BookingID),
				zap.String("recipientId", n.RecipientID),
				zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) notification(b *models.Booking, role models.Role, typ, title, body string) models.Notification {
	recipient := b.RenterID
	if role == models.RoleProvider {
		recipient = b.ProviderID
	}
	return models.Notification{
		ID:          s.newID(),
		Type:        typ,
		RecipientID: recipient,
		Role:        role,
		BookingID:   b.ID,
		Title:       title,
		Body:        body,
		Data:        map[string]string{"status": string(b.Status)},
		CreatedAt:   s.now(),
	}
}

func (s *DefaultBookingService) window(b *models.Booking) string {
	loc := s.location()
	return fmt.Sprintf("%s to %s",
		b.TimeBookingStart.In(loc).Format("Jan 2 15:04"),
		b.TimeBookingEnd.In(loc).Format("Jan 2 15:04"))
}

func (s *DefaultBookingService) creationNotifications(b *models.Booking) []models.Notification {
	return []models.Notification{
		s.notification(b, models.RoleRenter, NotifyBookingCreated, "Booking created",
			fmt.Sprintf("Your booking for %s is reserved. Pay %s to confirm it.", s.window(b), b.TotalCost)),
		s.notification(b, models.RoleProvider, NotifyBookingRequested, "New booking request",
			fmt.Sprintf("You have a new booking for %s.", s.window(b))),
	}
}

func (s *DefaultBookingService) transitionNotifications(b *models.Booking, dec Decision) []models.Notification {
	typ := NotifyBookingUpdated
	if dec.To == models.BookingStatusCancelled {
		typ = NotifyBookingCancelled
	}

	var out []models.Notification
	for _, role := range dec.Notify {
		title, body := transitionMessage(b, dec, role)
		out = append(out, s.notification(b, role, typ, title, body))
	}
	return out
}

func transitionMessage(b *models.Booking, dec Decision, role models.Role) (string, string) {
	switch dec.Event {
	case EventPay:
		return "Payment received", fmt.Sprintf("Booking %s is paid and confirmed. Reference %s.", b.ID, b.CodeTransaction)
	case EventExternalPay:
		return "Payment awaiting confirmation", fmt.Sprintf("The renter paid booking %s (reference %s). Please confirm it.", b.ID, b.CodeTransaction)
	case EventConfirm:
		return "Booking confirmed", fmt.Sprintf("Your booking %s was confirmed by the provider.", b.ID)
	case EventDeliver:
		return "Vehicle delivered", fmt.Sprintf("The vehicle for booking %s has been delivered.", b.ID)
	case EventReceive:
		return "Vehicle received", fmt.Sprintf("The renter picked up the vehicle for booking %s.", b.ID)
	case EventReturn:
		return "Vehicle returned", fmt.Sprintf("The vehicle for booking %s was returned.", b.ID)
	case EventComplete:
		return "Rental completed", fmt.Sprintf("Booking %s is complete. Thanks for riding with us.", b.ID)
	case EventNoShow:
		if role == models.RoleRenter {
			return "Booking cancelled", fmt.Sprintf("Booking %s was cancelled as a no-show. Refund %s, penalty %s.", b.ID, b.RefundAmount, b.PenaltyCharged)
		}
		return "No-show recorded", fmt.Sprintf("Booking %s was cancelled as a no-show. You receive %s.", b.ID, b.PenaltyCharged)
	case EventCancel:
		if role == models.RoleRenter {
			return "Booking cancelled", fmt.Sprintf("Booking %s was cancelled. Refund %s.", b.ID, b.RefundAmount)
		}
		return "Booking cancelled", fmt.Sprintf("Booking %s was cancelled. Penalty credited %s.", b.ID, b.PenaltyCharged)
	}
	return "Booking updated", fmt.Sprintf("Booking %s is now %s.", b.ID, b.Status)
}
