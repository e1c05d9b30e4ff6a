package queue

import (
	"github.com/sasreliability/draftflow/internal/service"
)

type Queue struct {
	fs service.FormService
}

func NewQueue(fs service.FormService) *Queue {
	return &Queue{fs: fs}
}

const TaskTypeProcessForm = "form:process"

type ProcessFormPayload struct {
	SubmissionID string `json:"submission_id"`
}
