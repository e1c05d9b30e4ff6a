package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandleProcessFormTask(ctx context.Context, task *asynq.Task) error {
	var payload ProcessFormPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.fs.Process(ctx, payload.SubmissionID)
}
