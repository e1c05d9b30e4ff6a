package jobs

import (
	"context"
	"log/slog"
	"time"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/service"
)

// errorBackoff is how long a cycle waits after a store-level failure before
// the loop resumes.
const errorBackoff = 10 * time.Second

// MessageRef identifies the approval-surface message a draft was surfaced with.
type MessageRef struct {
	MessageID string
	ChannelID string
}

// Notifier is the outbound edge to the approval surface. Implementations hold
// no workflow state.
type Notifier interface {
	NewPending(ctx context.Context, draft *models.Draft) (*MessageRef, error)
	PublishResult(ctx context.Context, draft *models.Draft, success bool, detail string) error
}

// Monitor is the reconciliation loop: a fixed-interval sweep that surfaces new
// pending drafts for review and publishes approved ones. The store is the only
// synchronization point with the approval path, so a lost push notification is
// always repaired by a later cycle.
type Monitor struct {
	dr       repository.DraftRepository
	notifier Notifier
	li       service.LinkedInService
	interval time.Duration
}

func NewMonitor(cfg config.Config, dr repository.DraftRepository, notifier Notifier, li service.LinkedInService) *Monitor {
	return &Monitor{
		dr:       dr,
		notifier: notifier,
		li:       li,
		interval: cfg.PollInterval,
	}
}

// Run loops until ctx is cancelled. Cancellation is observed between cycles;
// in-flight work for the current cycle completes first. Processing errors
// never terminate the loop.
func (m *Monitor) Run(ctx context.Context) {
	slog.Info("starting draft monitor", "poll_interval", m.interval.String())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("draft monitor stopped")
			return
		case <-timer.C:
		}

		next := m.interval
		if err := m.Cycle(ctx); err != nil {
			slog.Error("monitor cycle failed", "error", err.Error())
			next = errorBackoff
		}

		timer.Reset(next)
	}
}

// Cycle runs one reconciliation pass: surface, then publish.
func (m *Monitor) Cycle(ctx context.Context) error {
	if err := m.surfacePending(ctx); err != nil {
		return err
	}
	return m.publishApproved(ctx)
}

// surfacePending sends every pending, not-yet-surfaced draft to the approval
// surface and records the resulting message. If notification or the store
// write fails, the message gate stays unset and the next cycle retries.
func (m *Monitor) surfacePending(ctx context.Context) error {
	drafts, err := m.dr.ListPendingUnsurfaced(ctx)
	if err != nil {
		return err
	}

	for _, draft := range drafts {
		ref, err := m.notifier.NewPending(ctx, draft)
		if err != nil {
			slog.Error("failed to surface draft", "draft_id", draft.DraftID, "error", err.Error())
			continue
		}

		ok, err := m.dr.SetDiscordMessage(ctx, draft.DraftID, ref.MessageID, ref.ChannelID)
		if err != nil {
			slog.Error("failed to record approval message", "draft_id", draft.DraftID, "error", err.Error())
			continue
		}
		if !ok {
			// Lost a race with a concurrent decision or an earlier surfacing.
			slog.Info("draft no longer eligible for surfacing", "draft_id", draft.DraftID)
			continue
		}

		slog.Info("draft surfaced for approval", "draft_id", draft.DraftID, "message_id", ref.MessageID)
	}

	return nil
}

// publishApproved makes one publish attempt per approved, unpublished draft
// and writes the outcome back. Failures are isolated per draft.
func (m *Monitor) publishApproved(ctx context.Context) error {
	drafts, err := m.dr.ListApprovedUnpublished(ctx)
	if err != nil {
		return err
	}

	for _, draft := range drafts {
		m.publishOne(ctx, draft)
	}

	return nil
}

func (m *Monitor) publishOne(ctx context.Context, draft *models.Draft) {
	result, err := m.li.Publish(ctx, draft)
	if err != nil {
		ok, markErr := m.dr.MarkPublishFailed(ctx, draft.DraftID, err.Error())
		if markErr != nil {
			slog.Error("failed to record publish failure", "draft_id", draft.DraftID, "error", markErr.Error())
			return
		}
		if !ok {
			slog.Info("draft changed during publish attempt", "draft_id", draft.DraftID)
			return
		}

		slog.Error("publish failed", "draft_id", draft.DraftID, "error", err.Error())
		m.notifyResult(ctx, draft, false, err.Error())
		return
	}

	ok, err := m.dr.MarkPublished(ctx, draft.DraftID, result.PostID, result.URL)
	if err != nil {
		slog.Error("failed to record publish success", "draft_id", draft.DraftID, "error", err.Error())
		return
	}
	if !ok {
		slog.Info("draft changed during publish attempt", "draft_id", draft.DraftID)
		return
	}

	slog.Info("draft published", "draft_id", draft.DraftID, "linkedin_post_id", result.PostID)
	m.notifyResult(ctx, draft, true, result.URL)
}

func (m *Monitor) notifyResult(ctx context.Context, draft *models.Draft, success bool, detail string) {
	if err := m.notifier.PublishResult(ctx, draft, success, detail); err != nil {
		slog.Error("failed to notify publish result", "draft_id", draft.DraftID, "error", err.Error())
	}
}
