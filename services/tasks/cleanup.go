package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentify/models"
	"rentify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeBookingCleanup = "booking:cleanup"
	TypeBookingSweep   = "booking:sweep"
)

// CleanupQueue carries abandoned-checkout work, apart from notifications.
const CleanupQueue = "cleanup"

func cleanupTaskID(bookingID string) string {
	return "booking-cleanup:" + bookingID
}

// NewBookingCleanupTask builds the delayed UNPAID check for one booking. The
// task id is derived from the booking so arming twice enqueues once.
func NewBookingCleanupTask(bookingID string, delay time.Duration, armedAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.BookingCleanupPayload{BookingID: bookingID, ArmedAt: armedAt})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingCleanup, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.TaskID(cleanupTaskID(bookingID)),
		asynq.Queue(CleanupQueue),
		asynq.MaxRetry(5),
		// Keep the id reserved past firing so a late duplicate is dropped too.
		asynq.Retention(24 * time.Hour),
	}
	return task, opts, nil
}

// NewBookingSweepTask is the periodic catch-all for cleanup tasks that were lost.
func NewBookingSweepTask() *asynq.Task {
	return asynq.NewTask(TypeBookingSweep, nil)
}

// CleanupScheduler arms abandoned-checkout checks on the durable task queue.
type CleanupScheduler struct {
	Client *asynq.Client
}

func NewCleanupScheduler(client *asynq.Client) *CleanupScheduler {
	return &CleanupScheduler{Client: client}
}

func (s *CleanupScheduler) Arm(ctx context.Context, bookingID string, delay time.Duration) error {
	if delay <= 0 {
		delay = utils.DefaultCleanupDelay
	}
	task, opts, err := NewBookingCleanupTask(bookingID, delay, time.Now())
	if err != nil {
		return fmt.Errorf("build cleanup task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue cleanup task: %w", err)
	}
	return nil
}

// TimerScheduler runs cleanup checks in-process. Used with the memory driver;
// pending checks do not survive a restart.
type TimerScheduler struct {
	Run func(ctx context.Context, bookingID string) (bool, error)
}

func (s *TimerScheduler) Arm(ctx context.Context, bookingID string, delay time.Duration) error {
	if delay <= 0 {
		delay = utils.DefaultCleanupDelay
	}
	time.AfterFunc(delay, func() {
		if _, err := s.Run(context.Background(), bookingID); err != nil {
			utils.GetLogger().Error("TimerScheduler: cleanup failed", zap.String("bookingId", bookingID), zap.Error(err))
		}
	})
	return nil
}
