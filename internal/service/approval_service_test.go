package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sasreliability/draftflow/internal/models"
)

// fakeDraftRepo is an in-memory DraftRepository. Conditional updates are
// applied under one mutex, mirroring the atomicity of the SQL transitions.
type fakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]*models.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*models.Draft)}
}

func (f *fakeDraftRepo) add(d *models.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.Status == "" {
		d.Status = models.DraftStatusPending
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	f.drafts[d.DraftID] = d
}

func (f *fakeDraftRepo) Create(ctx context.Context, d *models.Draft) (string, error) {
	f.add(d)
	return d.DraftID, nil
}

func (f *fakeDraftRepo) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDraftRepo) List(ctx context.Context) ([]*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Draft
	for _, d := range f.drafts {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeDraftRepo) ListPendingUnsurfaced(ctx context.Context) ([]*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Draft
	for _, d := range f.drafts {
		if d.Status == models.DraftStatusPending && d.DiscordMessageID == nil {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDraftRepo) ListApprovedUnpublished(ctx context.Context) ([]*models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Draft
	for _, d := range f.drafts {
		if d.Status == models.DraftStatusApproved && d.LinkedInPostID == nil {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDraftRepo) SetDiscordMessage(ctx context.Context, id, messageID, channelID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusPending || d.DiscordMessageID != nil {
		return false, nil
	}
	d.DiscordMessageID = &messageID
	d.DiscordChannelID = &channelID
	return true, nil
}

func (f *fakeDraftRepo) Approve(ctx context.Context, id, reviewer string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusPending {
		return false, nil
	}
	now := time.Now()
	d.Status = models.DraftStatusApproved
	d.DiscordApprover = &reviewer
	d.ApprovedAt = &now
	return true, nil
}

func (f *fakeDraftRepo) Decline(ctx context.Context, id, reviewer, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusPending {
		return false, nil
	}
	now := time.Now()
	d.Status = models.DraftStatusDeclined
	d.DiscordApprover = &reviewer
	d.LastError = &reason
	d.ApprovedAt = &now
	return true, nil
}

func (f *fakeDraftRepo) RequestEdit(ctx context.Context, id, reviewer, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusPending {
		return false, nil
	}
	d.DiscordApprover = &reviewer
	d.LastError = &reason
	return true, nil
}

func (f *fakeDraftRepo) MarkPublished(ctx context.Context, id, postID, postURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusApproved || d.LinkedInPostID != nil {
		return false, nil
	}
	now := time.Now()
	d.Status = models.DraftStatusPosted
	d.LinkedInPostID = &postID
	d.LinkedInURL = &postURL
	d.PostedAt = &now
	return true, nil
}

func (f *fakeDraftRepo) MarkPublishFailed(ctx context.Context, id, lastError string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok || d.Status != models.DraftStatusApproved {
		return false, nil
	}
	d.Status = models.DraftStatusDeclined
	d.LastError = &lastError
	d.RetryCount++
	return true, nil
}

func (f *fakeDraftRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, d := range f.drafts {
		if d.Status == status {
			count++
		}
	}
	return count, nil
}

func TestDecideApprove(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	draft, err := s.Decide(context.Background(), "d1", ActionApprove, "alice", "")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if draft.Status != models.DraftStatusApproved {
		t.Fatalf("expected status %q, got %q", models.DraftStatusApproved, draft.Status)
	}
	if draft.DiscordApprover == nil || *draft.DiscordApprover != "alice" {
		t.Fatalf("expected reviewer alice, got %v", draft.DiscordApprover)
	}
	if draft.ApprovedAt == nil {
		t.Fatal("expected approved_at to be set")
	}
}

func TestDecideDoubleDecisionRejected(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	if _, err := s.Decide(context.Background(), "d1", ActionApprove, "alice", ""); err != nil {
		t.Fatalf("first decide: %v", err)
	}

	_, err := s.Decide(context.Background(), "d1", ActionDecline, "bob", "nope")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	draft, _ := repo.GetByID(context.Background(), "d1")
	if draft.Status != models.DraftStatusApproved {
		t.Fatalf("expected status unchanged, got %q", draft.Status)
	}
	if *draft.DiscordApprover != "alice" {
		t.Fatalf("expected reviewer alice, got %q", *draft.DiscordApprover)
	}
}

func TestDecideDecline(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	draft, err := s.Decide(context.Background(), "d1", ActionDecline, "bob", "off brand")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if draft.Status != models.DraftStatusDeclined {
		t.Fatalf("expected status %q, got %q", models.DraftStatusDeclined, draft.Status)
	}
	if draft.LastError == nil || *draft.LastError != "off brand" {
		t.Fatalf("expected reason recorded, got %v", draft.LastError)
	}
}

func TestDecideRequestEditKeepsPending(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	draft, err := s.Decide(context.Background(), "d1", ActionRequestEdit, "carol", "tighten the hook")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if draft.Status != models.DraftStatusPending {
		t.Fatalf("expected status to stay pending, got %q", draft.Status)
	}
	if draft.LastError == nil || *draft.LastError != "tighten the hook" {
		t.Fatalf("expected edit reason recorded, got %v", draft.LastError)
	}
}

func TestDecideNotFound(t *testing.T) {
	repo := newFakeDraftRepo()
	s := NewApprovalService(repo)

	_, err := s.Decide(context.Background(), "missing", ActionApprove, "alice", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.drafts) != 0 {
		t.Fatalf("expected no records created, got %d", len(repo.drafts))
	}
}

func TestDecideUnknownAction(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	if _, err := s.Decide(context.Background(), "d1", Action("escalate"), "alice", ""); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestDecideConcurrentOneWins(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.add(&models.Draft{DraftID: "d1", Content: "Hello world"})
	s := NewApprovalService(repo)

	start := make(chan struct{})
	errs := make(chan error, 2)

	go func() {
		<-start
		_, err := s.Decide(context.Background(), "d1", ActionApprove, "alice", "")
		errs <- err
	}()
	go func() {
		<-start
		_, err := s.Decide(context.Background(), "d1", ActionDecline, "bob", "nope")
		errs <- err
	}()

	close(start)

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition for the loser, got %v", err)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly one loser, got %d", failures)
	}

	draft, _ := repo.GetByID(context.Background(), "d1")
	switch draft.Status {
	case models.DraftStatusApproved:
		if *draft.DiscordApprover != "alice" {
			t.Fatalf("approved but reviewer is %q", *draft.DiscordApprover)
		}
	case models.DraftStatusDeclined:
		if *draft.DiscordApprover != "bob" {
			t.Fatalf("declined but reviewer is %q", *draft.DiscordApprover)
		}
	default:
		t.Fatalf("unexpected final status %q", draft.Status)
	}
}
