package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booklibrary/internal/notify"
)

// SendReminderTask delivers one reminder message.
type SendReminderTask struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Config returns the queue configuration for reminder delivery. Failed
// deliveries are not retried.
func (t SendReminderTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "send_reminder",
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SendReminderProcessor delivers queued reminders through sender.
func SendReminderProcessor(sender notify.Sender) backlite.QueueProcessor[SendReminderTask] {
	return func(ctx context.Context, task SendReminderTask) error {
		if sender == nil {
			return fmt.Errorf("sender not configured")
		}
		if err := sender.Send(ctx, task.To, task.Subject, task.Body); err != nil {
			return fmt.Errorf("deliver reminder to %s: %w", task.To, err)
		}
		log.Printf("[TASK] Delivered reminder to %s", task.To)
		return nil
	}
}

// NewSendReminderQueue creates a backlite queue for reminder delivery.
func NewSendReminderQueue(sender notify.Sender) backlite.Queue {
	return backlite.NewQueue(SendReminderProcessor(sender))
}

// QueueSender implements notify.Sender by enqueueing a SendReminderTask.
// Send succeeds once the task is stored; delivery happens on a worker.
type QueueSender struct {
	client *Client
}

func NewQueueSender(client *Client) *QueueSender {
	return &QueueSender{client: client}
}

func (s *QueueSender) Send(ctx context.Context, to, subject, body string) error {
	task := SendReminderTask{To: to, Subject: subject, Body: body}
	if _, err := s.client.Add(task).Ctx(ctx).Save(); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", to, err)
	}
	return nil
}
