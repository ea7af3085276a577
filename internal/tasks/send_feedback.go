package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/shialibrary/hadith-server/internal/feedback"
)

// SendFeedbackTask relays one feedback submission by email. Submissions are
// queued so a slow or flapping SMTP relay never blocks the HTTP handler, and
// failed sends retry with backoff.
type SendFeedbackTask struct {
	Message feedback.Message `json:"message"`
	AuditID string           `json:"audit_id,omitempty"`
}

// Config returns the queue configuration for feedback relay tasks.
func (t SendFeedbackTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "send_feedback",
		MaxAttempts: 3,
		Backoff:     1 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SendFeedbackProcessor creates a processor function for SendFeedbackTask.
func SendFeedbackProcessor(relay *feedback.Service) backlite.QueueProcessor[SendFeedbackTask] {
	return func(ctx context.Context, task SendFeedbackTask) error {
		if relay == nil {
			return fmt.Errorf("feedback relay not configured")
		}

		if err := relay.Relay(&task.Message); err != nil {
			return fmt.Errorf("relay feedback (audit %s): %w", task.AuditID, err)
		}

		log.Printf("[TASK] Relayed feedback to %s (audit %s)",
			relay.Recipient(task.Message.Type), task.AuditID)
		return nil
	}
}

// NewSendFeedbackQueue creates a backlite queue for feedback relay tasks.
func NewSendFeedbackQueue(relay *feedback.Service) backlite.Queue {
	return backlite.NewQueue(SendFeedbackProcessor(relay))
}
