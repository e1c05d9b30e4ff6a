package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type fakeTokenRepo struct {
	token *models.PlatformToken
}

func (f *fakeTokenRepo) Get(ctx context.Context, platform string) (*models.PlatformToken, error) {
	return f.token, nil
}

func (f *fakeTokenRepo) Upsert(ctx context.Context, token *models.PlatformToken) error {
	f.token = token
	return nil
}

func (f *fakeTokenRepo) ListExpiringBefore(ctx context.Context, deadline time.Time) ([]*models.PlatformToken, error) {
	return nil, nil
}

type fakeWebhook struct {
	published int
	err       error
}

func (f *fakeWebhook) NotifyPublished(ctx context.Context, draft *models.Draft, result *transfer.PublishResult) error {
	f.published++
	return f.err
}

func (f *fakeWebhook) ForwardForm(ctx context.Context, submission *models.FormSubmission) error {
	return nil
}

func (f *fakeWebhook) Configured() bool { return true }

func newTestLinkedInService(baseURL string, wh WebhookService) *linkedinService {
	cfg := config.Config{
		LinkedInAccessToken: "token-123",
		LinkedInPersonID:    "abc",
		ContentLimit:        3000,
	}
	if wh == nil {
		wh = &fakeWebhook{}
	}
	return &linkedinService{
		cfg:     cfg,
		tr:      &fakeTokenRepo{},
		wh:      wh,
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

func TestPublishSuccess(t *testing.T) {
	var gotAuth, gotRestli string
	var gotPost transfer.UGCPost

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ugcPosts" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotRestli = r.Header.Get("X-Restli-Protocol-Version")
		if err := json.NewDecoder(r.Body).Decode(&gotPost); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.UGCPostResponse{ID: "urn:li:share:7216"})
	}))
	defer srv.Close()

	wh := &fakeWebhook{}
	s := newTestLinkedInService(srv.URL, wh)

	result, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: "Hello LinkedIn"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if gotRestli != "2.0.0" {
		t.Fatalf("unexpected Restli header %q", gotRestli)
	}
	if gotPost.Author != "urn:li:person:abc" {
		t.Fatalf("unexpected author %q", gotPost.Author)
	}
	if gotPost.SpecificContent.ShareContent.ShareCommentary.Text != "Hello LinkedIn" {
		t.Fatalf("unexpected commentary %q", gotPost.SpecificContent.ShareContent.ShareCommentary.Text)
	}
	if result.PostID != "urn:li:share:7216" {
		t.Fatalf("unexpected post id %q", result.PostID)
	}
	if result.URL != "https://www.linkedin.com/posts/activity-7216" {
		t.Fatalf("unexpected post url %q", result.URL)
	}
	if wh.published != 1 {
		t.Fatalf("expected 1 webhook notification, got %d", wh.published)
	}
}

func TestPublishRejectsOverlongContent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := newTestLinkedInService(srv.URL, nil)

	_, err := s.Publish(context.Background(), &models.Draft{
		DraftID: "d1",
		Content: strings.Repeat("a", 3500),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "3000 character limit") {
		t.Fatalf("error should name the limit, got %q", err.Error())
	}
	if called {
		t.Fatal("no request should be made for invalid content")
	}
}

func TestPublishCountsCharactersNotBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.UGCPostResponse{ID: "urn:li:share:3"})
	}))
	defer srv.Close()

	s := newTestLinkedInService(srv.URL, nil)

	// 2000 characters but 4000 bytes; well within the 3000-character limit.
	content := strings.Repeat("é", 2000)
	if _, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: content}); err != nil {
		t.Fatalf("multibyte content within the limit should publish: %v", err)
	}

	// 3500 characters of the same rune is over the limit regardless of bytes.
	_, err := s.Publish(context.Background(), &models.Draft{
		DraftID: "d2",
		Content: strings.Repeat("é", 3500),
	})
	if err == nil || !strings.Contains(err.Error(), "3000 character limit") {
		t.Fatalf("expected character limit error, got %v", err)
	}
}

func TestPublishRejectsEmptyContent(t *testing.T) {
	s := newTestLinkedInService("http://127.0.0.1:1", nil)

	if _, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: "   "}); err == nil {
		t.Fatal("expected validation error for empty content")
	}
}

func TestPublishMissingToken(t *testing.T) {
	s := newTestLinkedInService("http://127.0.0.1:1", nil)
	s.cfg.LinkedInAccessToken = ""

	_, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: "Hello"})
	if err == nil || !strings.Contains(err.Error(), "access token") {
		t.Fatalf("expected access token error, got %v", err)
	}
}

func TestPublishAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"duplicate post"}`))
	}))
	defer srv.Close()

	s := newTestLinkedInService(srv.URL, nil)

	_, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: "Hello"})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "duplicate post") {
		t.Fatalf("error should carry status and body, got %q", err.Error())
	}
}

func TestPublishWebhookFailureDoesNotFailPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.UGCPostResponse{ID: "urn:li:share:1"})
	}))
	defer srv.Close()

	wh := &fakeWebhook{err: context.DeadlineExceeded}
	s := newTestLinkedInService(srv.URL, wh)

	if _, err := s.Publish(context.Background(), &models.Draft{DraftID: "d1", Content: "Hello"}); err != nil {
		t.Fatalf("publish should succeed despite webhook failure: %v", err)
	}
}

func TestPublishAttachesImage(t *testing.T) {
	var gotPost transfer.UGCPost
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPost)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.UGCPostResponse{ID: "urn:li:share:2"})
	}))
	defer srv.Close()

	s := newTestLinkedInService(srv.URL, nil)
	imagePath := "https://cdn.example.com/drafts/d1.png"

	_, err := s.Publish(context.Background(), &models.Draft{
		DraftID:   "d1",
		Content:   "With image",
		ImagePath: &imagePath,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	sc := gotPost.SpecificContent.ShareContent
	if sc.ShareMediaCategory != "IMAGE" {
		t.Fatalf("expected media category IMAGE, got %q", sc.ShareMediaCategory)
	}
	if len(sc.Media) != 1 || sc.Media[0].Media != imagePath {
		t.Fatalf("unexpected media %+v", sc.Media)
	}
}

func TestPostURL(t *testing.T) {
	tests := []struct {
		postID string
		want   string
	}{
		{"urn:li:share:7216918237", "https://www.linkedin.com/posts/activity-7216918237"},
		{"X123", "https://www.linkedin.com/feed/update/X123"},
	}
	for _, tt := range tests {
		if got := PostURL(tt.postID); got != tt.want {
			t.Fatalf("PostURL(%q) = %q, want %q", tt.postID, got, tt.want)
		}
	}
}
