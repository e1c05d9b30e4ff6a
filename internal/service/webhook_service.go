package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type WebhookService interface {
	NotifyPublished(ctx context.Context, draft *models.Draft, result *transfer.PublishResult) error
	ForwardForm(ctx context.Context, submission *models.FormSubmission) error
	Configured() bool
}

type webhookService struct {
	cfg    config.Config
	client *http.Client
}

func NewWebhookService(cfg config.Config) WebhookService {
	return &webhookService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *webhookService) Configured() bool {
	return s.cfg.WebhookURL != ""
}

// NotifyPublished posts a publish event to the configured webhook. Callers
// treat failures as log-only.
func (s *webhookService) NotifyPublished(ctx context.Context, draft *models.Draft, result *transfer.PublishResult) error {
	if !s.Configured() {
		return nil
	}

	event := transfer.PublishedEvent{
		Event:          "linkedin_post_published",
		PostID:         draft.DraftID,
		LinkedInPostID: result.PostID,
		LinkedInURL:    result.URL,
		Content:        draft.Content,
		PublishedAt:    time.Now().Format(time.RFC3339),
		Industry:       draft.Industry,
		Audience:       draft.Audience,
	}

	return s.post(ctx, event)
}

func (s *webhookService) ForwardForm(ctx context.Context, submission *models.FormSubmission) error {
	if !s.Configured() {
		return nil
	}

	event := transfer.FormEvent{
		SubmissionID: submission.SubmissionID,
		FormData:     submission.FormData,
		Source:       submission.Source,
		Timestamp:    time.Now().Format(time.RFC3339),
	}

	return s.post(ctx, event)
}

func (s *webhookService) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
