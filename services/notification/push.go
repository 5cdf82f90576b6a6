package notification

import (
	"context"
	"fmt"

	"rentify/models"
	"rentify/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Pusher delivers a queued notification to a device.
type Pusher interface {
	Push(ctx context.Context, n models.Notification) error
}

// FCMPusher publishes to the recipient's FCM topic. Devices subscribe to
// "<role>_<userId>" at sign-in, so no token lookup is needed here.
type FCMPusher struct {
	Client *messaging.Client
}

func topicFor(n models.Notification) string {
	return fmt.Sprintf("%s_%s", n.Role, n.RecipientID)
}

func (p *FCMPusher) Push(ctx context.Context, n models.Notification) error {
	data := map[string]string{
		"type":      n.Type,
		"bookingId": n.BookingID,
		"role":      string(n.Role),
	}
	for k, v := range n.Data {
		data[k] = v
	}

	msg := &messaging.Message{
		Topic: topicFor(n),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := p.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("FCMPusher: failed to send %s to %s: %w", n.Type, msg.Topic, err)
	}
	utils.GetLogger().Debug("push sent", zap.String("messageId", id), zap.String("topic", msg.Topic))
	return nil
}

// LogPusher stands in for FCM when no credentials are configured.
type LogPusher struct{}

func (LogPusher) Push(ctx context.Context, n models.Notification) error {
	utils.GetLogger().Info("push (log only)",
		zap.String("topic", topicFor(n)),
		zap.String("type", n.Type),
		zap.String("title", n.Title),
		zap.String("body", n.Body))
	return nil
}

// NewPusher picks FCM when a client is available.
func NewPusher(client *messaging.Client) Pusher {
	if client == nil {
		return LogPusher{}
	}
	return &FCMPusher{Client: client}
}
