package service

import (
	"context"
	"strings"
	"testing"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/transfer"
)

func newTestDraftService(dr *fakeDraftRepo) DraftService {
	return NewDraftService(config.Config{ContentLimit: 3000}, dr, nil)
}

func TestCreateDraft(t *testing.T) {
	dr := newFakeDraftRepo()
	s := newTestDraftService(dr)

	draft, err := s.CreateDraft(context.Background(), &transfer.DraftCreation{
		Content:  "A lesson from the field",
		Industry: "Mining",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if draft.Source != "api" {
		t.Fatalf("expected default source api, got %q", draft.Source)
	}
	if draft.Industry == nil || *draft.Industry != "Mining" {
		t.Fatalf("expected industry recorded, got %v", draft.Industry)
	}
}

func TestCreateDraftRejectsEmptyContent(t *testing.T) {
	s := newTestDraftService(newFakeDraftRepo())

	if _, err := s.CreateDraft(context.Background(), &transfer.DraftCreation{Content: "  "}, nil); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestCreateDraftCountsCharactersNotBytes(t *testing.T) {
	dr := newFakeDraftRepo()
	s := newTestDraftService(dr)

	// 2000 characters, 4000 bytes; inside the 3000-character limit.
	if _, err := s.CreateDraft(context.Background(), &transfer.DraftCreation{
		Content: strings.Repeat("é", 2000),
	}, nil); err != nil {
		t.Fatalf("multibyte content within the limit should be accepted: %v", err)
	}

	_, err := s.CreateDraft(context.Background(), &transfer.DraftCreation{
		Content: strings.Repeat("é", 3500),
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "3000 character limit") {
		t.Fatalf("expected character limit error, got %v", err)
	}
}
