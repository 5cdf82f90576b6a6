package tasks

import (
	"encoding/json"

	"rentify/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationSend = "notification:send"

// NotificationQueue is drained at a lower priority than cleanup.
const NotificationQueue = "notifications"

func NewNotificationTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationSend, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationQueue),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}
