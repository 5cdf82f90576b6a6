package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rentify/models"
	"rentify/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	cleaned []string
	swept   int
	err     error
}

func (c *fakeCleaner) CleanupAbandoned(ctx context.Context, bookingID string) (bool, error) {
	c.cleaned = append(c.cleaned, bookingID)
	return c.err == nil, c.err
}

func (c *fakeCleaner) SweepAbandoned(ctx context.Context, limit int64) (int, error) {
	c.swept++
	return 0, c.err
}

type fakePusher struct {
	pushed []models.Notification
}

func (p *fakePusher) Push(ctx context.Context, n models.Notification) error {
	p.pushed = append(p.pushed, n)
	return nil
}

func TestCleanupTaskRunsCleaner(t *testing.T) {
	cleaner := &fakeCleaner{}
	mux := NewMux(cleaner, &fakePusher{})

	task, _, err := tasks.NewBookingCleanupTask("b1", time.Minute, time.Now())
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"b1"}, cleaner.cleaned)
}

func TestCleanupTaskRetriesOnError(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("mongo unavailable")}
	mux := NewMux(cleaner, &fakePusher{})

	task, _, err := tasks.NewBookingCleanupTask("b1", time.Minute, time.Now())
	require.NoError(t, err)
	err = mux.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestCleanupTaskRejectsBadPayload(t *testing.T) {
	cleaner := &fakeCleaner{}
	mux := NewMux(cleaner, &fakePusher{})

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBookingCleanup, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Empty(t, cleaner.cleaned)
}

func TestSweepTask(t *testing.T) {
	cleaner := &fakeCleaner{}
	mux := NewMux(cleaner, &fakePusher{})

	require.NoError(t, mux.ProcessTask(context.Background(), tasks.NewBookingSweepTask()))
	assert.Equal(t, 1, cleaner.swept)
}

func TestNotificationTaskPushes(t *testing.T) {
	pusher := &fakePusher{}
	mux := NewMux(&fakeCleaner{}, pusher)

	n := models.Notification{ID: "n1", Type: "booking_updated", RecipientID: "renter-1", Role: models.RoleRenter, BookingID: "b1"}
	task, _, err := tasks.NewNotificationTask(n)
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))
	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, "renter-1", pusher.pushed[0].RecipientID)

	payload, err := json.Marshal(models.Notification{ID: "n2"})
	require.NoError(t, err)
	err = mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeNotificationSend, payload))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
