package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/transfer"
	"github.com/sasreliability/draftflow/pkg/utils"
)

const linkedinBaseURL = "https://api.linkedin.com/v2"

type LinkedInService interface {
	Publish(ctx context.Context, draft *models.Draft) (*transfer.PublishResult, error)
	TestConnection(ctx context.Context) error
}

type linkedinService struct {
	cfg     config.Config
	tr      repository.TokenRepository
	wh      WebhookService
	client  *http.Client
	baseURL string
}

func NewLinkedInService(cfg config.Config, tr repository.TokenRepository, wh WebhookService) LinkedInService {
	return &linkedinService{
		cfg:     cfg,
		tr:      tr,
		wh:      wh,
		client:  &http.Client{Timeout: cfg.PublishTimeout},
		baseURL: linkedinBaseURL,
	}
}

// Publish makes exactly one attempt for the given draft. Retries happen across
// reconciliation cycles, not here. Any error return is a failed attempt; the
// caller records it against the draft.
func (s *linkedinService) Publish(ctx context.Context, draft *models.Draft) (*transfer.PublishResult, error) {
	accessToken, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validate(draft, accessToken); err != nil {
		return nil, err
	}

	body, err := json.Marshal(s.buildPost(draft))
	if err != nil {
		return nil, fmt.Errorf("encoding post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("LinkedIn request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("LinkedIn API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		slog.Info(err.Error())
		return nil, err
	}

	var ugc transfer.UGCPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&ugc); err != nil {
		return nil, fmt.Errorf("decoding ugcPosts response: %w", err)
	}
	if ugc.ID == "" {
		return nil, errors.New("ugcPosts response missing post id")
	}

	result := &transfer.PublishResult{
		PostID: ugc.ID,
		URL:    PostURL(ugc.ID),
	}

	// Best effort; a webhook failure is not a publish failure.
	if err := s.wh.NotifyPublished(ctx, draft, result); err != nil {
		slog.Info("webhook notification failed", "draft_id", draft.DraftID, "error", err.Error())
	}

	return result, nil
}

func (s *linkedinService) validate(draft *models.Draft, accessToken string) error {
	if accessToken == "" {
		return errors.New("LinkedIn access token not configured")
	}
	if s.cfg.LinkedInPersonID == "" {
		return errors.New("LinkedIn person ID not configured")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return errors.New("post content is empty")
	}
	if utf8.RuneCountInString(draft.Content) > s.cfg.ContentLimit {
		return fmt.Errorf("post content exceeds LinkedIn's %d character limit", s.cfg.ContentLimit)
	}
	return nil
}

func (s *linkedinService) buildPost(draft *models.Draft) *transfer.UGCPost {
	post := &transfer.UGCPost{
		Author:         "urn:li:person:" + s.cfg.LinkedInPersonID,
		LifecycleState: "PUBLISHED",
		SpecificContent: transfer.SpecificContent{
			ShareContent: transfer.ShareContent{
				ShareCommentary:    transfer.Text{Text: draft.Content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: transfer.Visibility{MemberNetworkVisibility: "PUBLIC"},
	}

	media := ""
	if draft.ImagePath != nil && *draft.ImagePath != "" {
		media = *draft.ImagePath
	} else if draft.ImageBase64 != nil && *draft.ImageBase64 != "" {
		media = *draft.ImageBase64
	}
	if media != "" {
		post.SpecificContent.ShareContent.ShareMediaCategory = "IMAGE"
		post.SpecificContent.ShareContent.Media = []transfer.ShareMedia{{
			Status:      "READY",
			Description: transfer.Text{Text: "LinkedIn post image"},
			Media:       media,
			Title:       transfer.Text{Text: "LinkedIn Post"},
		}}
	}

	return post
}

// PostURL derives the canonical public URL for a published post id.
func PostURL(postID string) string {
	if numericID, ok := strings.CutPrefix(postID, "urn:li:share:"); ok {
		return "https://www.linkedin.com/posts/activity-" + numericID
	}
	return "https://www.linkedin.com/feed/update/" + postID
}

func (s *linkedinService) accessToken(ctx context.Context) (string, error) {
	token, err := s.tr.Get(ctx, "linkedin")
	if err != nil {
		return "", err
	}
	if token == nil {
		return s.cfg.LinkedInAccessToken, nil
	}

	decrypted, err := utils.Decrypt(token.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("decrypting stored access token: %w", err)
	}
	return decrypted, nil
}

func (s *linkedinService) TestConnection(ctx context.Context) error {
	accessToken, err := s.accessToken(ctx)
	if err != nil {
		return err
	}
	if accessToken == "" {
		return errors.New("LinkedIn access token not configured")
	}

	url := fmt.Sprintf("%s/people/(id:%s)", s.baseURL, s.cfg.LinkedInPersonID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LinkedIn profile check returned %d", resp.StatusCode)
	}
	return nil
}
