package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rentify/config"
	"rentify/models"
	"rentify/services/notification"
	"rentify/services/tasks"
	"rentify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// sweepBatch bounds how many stale bookings one sweep run handles.
const sweepBatch = 500

// Cleaner is the part of the booking service the worker drives.
type Cleaner interface {
	CleanupAbandoned(ctx context.Context, bookingID string) (bool, error)
	SweepAbandoned(ctx context.Context, limit int64) (int, error)
}

// Worker runs queued booking tasks and the periodic sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
}

// NewMux routes every task type the booking engine enqueues.
func NewMux(cleaner Cleaner, pusher notification.Pusher) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingCleanup, handleCleanupTask(cleaner))
	mux.HandleFunc(tasks.TypeBookingSweep, handleSweepTask(cleaner))
	mux.HandleFunc(tasks.TypeNotificationSend, handleNotificationTask(pusher))
	return mux
}

// InitBookingWorker starts the task server and the sweep scheduler in the
// background. Call Shutdown on exit.
func InitBookingWorker(cleaner Cleaner, pusher notification.Pusher) *Worker {
	logger := utils.GetLogger()
	redisOpt := utils.QueueRedisOpt()

	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			tasks.CleanupQueue:      6,
			tasks.NotificationQueue: 3,
			"default":               1,
		},
		Logger:   logger.Sugar(),
		LogLevel: asynq.WarnLevel,
	})
	mux := NewMux(cleaner, pusher)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: config.BusinessLocation(),
		Logger:   logger.Sugar(),
		LogLevel: asynq.WarnLevel,
	})
	interval := config.AppConfig.BookingSweepInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if _, err := scheduler.Register("@every "+interval.String(), tasks.NewBookingSweepTask(),
		asynq.Queue(tasks.CleanupQueue), asynq.Unique(interval)); err != nil {
		logger.Error("BookingWorker: failed to register sweep", zap.Error(err))
	}

	w := &Worker{server: srv, scheduler: scheduler}

	// Start with retry so a Redis that is still booting does not kill the process.
	go func() {
		logger.Info("BookingWorker: starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				break
			}
			logger.Warn("BookingWorker: failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("BookingWorker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}

		if err := scheduler.Start(); err != nil {
			logger.Error("BookingWorker: sweep scheduler failed to start", zap.Error(err))
		}
	}()

	return w
}

// Shutdown stops the scheduler and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleCleanupTask(cleaner Cleaner) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingCleanupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil || p.BookingID == "" {
			utils.GetLogger().Error("CleanupHandler: invalid payload", zap.ByteString("payload", task.Payload()), zap.Error(err))
			return fmt.Errorf("invalid cleanup payload: %w", asynq.SkipRetry)
		}

		removed, err := cleaner.CleanupAbandoned(ctx, p.BookingID)
		if err != nil {
			return fmt.Errorf("cleanup booking %s: %w", p.BookingID, err)
		}
		utils.GetLogger().Debug("CleanupHandler: checked booking",
			zap.String("bookingId", p.BookingID),
			zap.Bool("removed", removed),
			zap.Duration("armedFor", time.Since(p.ArmedAt)))
		return nil
	}
}

func handleSweepTask(cleaner Cleaner) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		_, err := cleaner.SweepAbandoned(ctx, sweepBatch)
		return err
	}
}

func handleNotificationTask(pusher notification.Pusher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.Notification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			utils.GetLogger().Error("NotificationHandler: invalid payload", zap.Error(err))
			return fmt.Errorf("invalid notification payload: %w", asynq.SkipRetry)
		}
		if n.RecipientID == "" {
			return fmt.Errorf("notification %s has no recipient: %w", n.ID, asynq.SkipRetry)
		}
		return pusher.Push(ctx, n)
	}
}
