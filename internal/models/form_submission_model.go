package models

import "time"

// FormSubmission holds raw multi-step intake data. Downstream processing may
// materialize a Draft and link it via DraftID.
type FormSubmission struct {
	SubmissionID string            `db:"submission_id" json:"submission_id"`
	FormData     map[string]string `db:"form_data" json:"form_data"`
	Source       string            `db:"source" json:"source"`
	Status       string            `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time        `db:"processed_at" json:"processed_at,omitempty"`
	DraftID      *string           `db:"draft_id" json:"draft_id,omitempty"`
	ErrorMessage *string           `db:"error_message" json:"error_message,omitempty"`
}

const (
	FormStatusPending    = "pending"
	FormStatusProcessing = "processing"
	FormStatusCompleted  = "completed"
	FormStatusFailed     = "failed"
)
