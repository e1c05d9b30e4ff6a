package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type FormService interface {
	Submit(ctx context.Context, fc *transfer.FormCreation) (string, error)
	Process(ctx context.Context, submissionID string) error
}

type formService struct {
	cfg config.Config
	fr  repository.FormSubmissionRepository
	dr  repository.DraftRepository
	wh  WebhookService
}

func NewFormService(
	cfg config.Config,
	fr repository.FormSubmissionRepository,
	dr repository.DraftRepository,
	wh WebhookService) FormService {
	return &formService{
		cfg: cfg,
		fr:  fr,
		dr:  dr,
		wh:  wh,
	}
}

func (s *formService) Submit(ctx context.Context, fc *transfer.FormCreation) (string, error) {
	if fc == nil {
		return "", errors.New("form data is nil")
	}
	if strings.TrimSpace(fc.Situation) == "" || strings.TrimSpace(fc.KeyInsight) == "" {
		err := errors.New("situation and key insight are required")
		slog.Info(err.Error())
		return "", err
	}

	source := "api-form"
	if fc.Username != "" {
		source = "discord-form-" + fc.Username
	}

	submission := &models.FormSubmission{
		FormData: map[string]string{
			"industry":             fc.Industry,
			"audience":             fc.Audience,
			"situation":            fc.Situation,
			"key_insight":          fc.KeyInsight,
			"experience":           fc.Experience,
			"credibility_signpost": fc.CredibilitySignpost,
			"personal_anecdote":    fc.PersonalAnecdote,
			"timeframe":            fc.Timeframe,
			"contextual_info":      fc.ContextualInfo,
		},
		Source: source,
	}

	id, err := s.fr.Create(ctx, submission)
	if err != nil {
		return "", fmt.Errorf("error creating form submission: %w", err)
	}

	return id, nil
}

// Process advances one submission through its pipeline. When a generation
// webhook is configured the form is forwarded there and the draft arrives
// through the external workflow; otherwise a draft is materialized locally.
func (s *formService) Process(ctx context.Context, submissionID string) error {
	submission, err := s.fr.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if submission == nil {
		return fmt.Errorf("form submission %s does not exist", submissionID)
	}

	ok, err := s.fr.MarkProcessing(ctx, submissionID)
	if err != nil {
		return err
	}
	if !ok {
		// Already picked up by an earlier attempt.
		slog.Info("form submission already processed", "submission_id", submissionID)
		return nil
	}

	if s.wh.Configured() {
		if err := s.wh.ForwardForm(ctx, submission); err != nil {
			if _, markErr := s.fr.MarkFailed(ctx, submissionID, err.Error()); markErr != nil {
				slog.Info(markErr.Error())
			}
			return fmt.Errorf("forwarding form submission %s: %w", submissionID, err)
		}
		if _, err := s.fr.MarkCompleted(ctx, submissionID, nil); err != nil {
			return err
		}
		return nil
	}

	draftID, err := s.materializeDraft(ctx, submission)
	if err != nil {
		if _, markErr := s.fr.MarkFailed(ctx, submissionID, err.Error()); markErr != nil {
			slog.Info(markErr.Error())
		}
		return err
	}

	if _, err := s.fr.MarkCompleted(ctx, submissionID, &draftID); err != nil {
		return err
	}

	slog.Info("form submission completed", "submission_id", submissionID, "draft_id", draftID)
	return nil
}

func (s *formService) materializeDraft(ctx context.Context, submission *models.FormSubmission) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	draft := &models.Draft{
		DraftID: id,
		Content: BuildFormContent(submission.FormData),
		Source:  submission.Source,
	}
	if industry := submission.FormData["industry"]; industry != "" {
		draft.Industry = &industry
	}
	if audience := submission.FormData["audience"]; audience != "" {
		draft.Audience = &audience
	}

	return s.dr.Create(ctx, draft)
}

// BuildFormContent assembles draft content from the intake form fields.
func BuildFormContent(data map[string]string) string {
	parts := []string{
		"Industry: " + data["industry"],
		"Target Audience: " + data["audience"],
		"",
		"Situation/Challenge:",
		data["situation"],
		"",
		"Key Insight/Lesson:",
		data["key_insight"],
		"",
		"Experience/Background:",
		data["experience"],
		"",
		"Credibility Signpost: " + data["credibility_signpost"],
		"",
		"Personal Anecdote:",
		data["personal_anecdote"],
		"",
		"Timeframe: " + data["timeframe"],
	}

	if info := data["contextual_info"]; info != "" {
		parts = append(parts, "", "Contextual Information:", info)
	}

	return strings.Join(parts, "\n")
}
