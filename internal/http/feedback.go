package http

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/shialibrary/hadith-server/internal/feedback"
	"github.com/shialibrary/hadith-server/internal/tasks"
)

// AuditSaver persists a submitted payload for later inspection.
type AuditSaver interface {
	SaveJSON(data any) (string, error)
}

// FeedbackController accepts reader feedback and queues it for email relay.
// The HTTP handler never talks to SMTP directly; delivery runs on the task
// queue with its own retries.
type FeedbackController struct {
	auditor AuditSaver
	enqueue func(task tasks.SendFeedbackTask) error
}

// NewFeedbackController creates a new FeedbackController. auditor may be nil
// to disable payload audits.
func NewFeedbackController(auditor AuditSaver, enqueue func(task tasks.SendFeedbackTask) error) *FeedbackController {
	return &FeedbackController{auditor: auditor, enqueue: enqueue}
}

// Submit validates a feedback message and enqueues its relay.
// POST /api/feedback
func (fc *FeedbackController) Submit(c *gin.Context) {
	var msg feedback.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := msg.Validate(); err != nil {
		if errors.Is(err, feedback.ErrMissingComments) {
			respondBadRequest(c, "missing feedback")
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	// The audit copy is best-effort; a full disk must not lose the message.
	var auditID string
	if fc.auditor != nil {
		id, err := fc.auditor.SaveJSON(msg)
		if err != nil {
			log.Printf("Failed to audit feedback payload: %v", err)
		} else {
			auditID = id
		}
	}

	if err := fc.enqueue(tasks.SendFeedbackTask{Message: msg, AuditID: auditID}); err != nil {
		respondInternalError(c, err, "enqueue feedback")
		return
	}

	respondAccepted(c, "feedback received", nil)
}
