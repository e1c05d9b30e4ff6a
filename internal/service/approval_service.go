package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
)

// Action is the closed set of reviewer decisions.
type Action string

const (
	ActionApprove     Action = "approve"
	ActionDecline     Action = "decline"
	ActionRequestEdit Action = "request_edit"
)

type ApprovalService interface {
	Decide(ctx context.Context, draftID string, action Action, reviewer, reason string) (*models.Draft, error)
}

type approvalService struct {
	dr repository.DraftRepository
}

func NewApprovalService(dr repository.DraftRepository) ApprovalService {
	return &approvalService{dr: dr}
}

// Decide applies exactly one transition to a pending draft. The store's
// conditional update is the only serialization point: when two reviewers race,
// one write lands and the other observes ErrInvalidTransition. A stale
// decision on an already-decided draft is rejected the same way, never
// silently repeated.
func (s *approvalService) Decide(ctx context.Context, draftID string, action Action, reviewer, reason string) (*models.Draft, error) {
	var ok bool
	var err error

	switch action {
	case ActionApprove:
		ok, err = s.dr.Approve(ctx, draftID, reviewer)
	case ActionDecline:
		ok, err = s.dr.Decline(ctx, draftID, reviewer, reason)
	case ActionRequestEdit:
		ok, err = s.dr.RequestEdit(ctx, draftID, reviewer, reason)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		return nil, fmt.Errorf("applying %s to draft %s: %w", action, draftID, err)
	}

	if !ok {
		draft, err := s.dr.GetByID(ctx, draftID)
		if err != nil {
			return nil, err
		}
		if draft == nil {
			return nil, ErrNotFound
		}
		slog.Info("decision rejected", "draft_id", draftID, "action", string(action), "status", draft.Status)
		return nil, ErrInvalidTransition
	}

	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNotFound
	}

	slog.Info("decision applied", "draft_id", draftID, "action", string(action), "reviewer", reviewer)
	return draft, nil
}
