package notification

import (
	"context"
	"fmt"

	"rentify/models"
	"rentify/services/tasks"
	"rentify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sink accepts notifications from the booking engine. Delivery failures are
// the caller's to log; they never roll back a booking transition.
type Sink interface {
	Notify(ctx context.Context, n models.Notification) error
}

// QueueSink hands notifications to the worker through the task queue so
// request handlers never wait on push delivery.
type QueueSink struct {
	Client *asynq.Client
}

func NewQueueSink(client *asynq.Client) *QueueSink {
	return &QueueSink{Client: client}
}

func (s *QueueSink) Notify(ctx context.Context, n models.Notification) error {
	task, opts, err := tasks.NewNotificationTask(n)
	if err != nil {
		return fmt.Errorf("QueueSink: build task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("QueueSink: enqueue %s for %s: %w", n.Type, n.RecipientID, err)
	}
	return nil
}

// LogSink only logs. Used with the in-memory storage driver.
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, n models.Notification) error {
	utils.GetLogger().Info("notification",
		zap.String("type", n.Type),
		zap.String("recipientId", n.RecipientID),
		zap.String("bookingId", n.BookingID),
		zap.String("title", n.Title))
	return nil
}
