package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

type LinkedInAuthService interface {
	AuthURL(state string) string
	Callback(ctx context.Context, code string) error
	Refresh(ctx context.Context, token *models.PlatformToken) error
}

type linkedinAuthService struct {
	cfg   config.Config
	tr    repository.TokenRepository
	oauth *oauth2.Config
}

func NewLinkedInAuthService(cfg config.Config, tr repository.TokenRepository) LinkedInAuthService {
	return &linkedinAuthService{
		cfg: cfg,
		tr:  tr,
		oauth: &oauth2.Config{
			ClientID:     cfg.LinkedInClientID,
			ClientSecret: cfg.LinkedInClientSecret,
			RedirectURL:  cfg.LinkedInRedirectURI,
			Endpoint:     linkedin.Endpoint,
			Scopes:       []string{"openid", "profile", "w_member_social"},
		},
	}
}

func (s *linkedinAuthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Callback exchanges the authorization code and stores the encrypted token.
func (s *linkedinAuthService) Callback(ctx context.Context, code string) error {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return err
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("exchanging authorization code: %w", err)
	}

	return s.store(ctx, token)
}

// Refresh renews a stored token through the refresh grant and re-encrypts it.
func (s *linkedinAuthService) Refresh(ctx context.Context, stored *models.PlatformToken) error {
	refreshToken, err := utils.Decrypt(stored.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("decrypting refresh token: %w", err)
	}

	source := s.oauth.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})

	token, err := source.Token()
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("refreshing LinkedIn token: %w", err)
	}

	return s.store(ctx, token)
}

func (s *linkedinAuthService) store(ctx context.Context, token *oauth2.Token) error {
	encryptedAccess, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefresh := ""
	if token.RefreshToken != "" {
		encryptedRefresh, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	return s.tr.Upsert(ctx, &models.PlatformToken{
		Platform:       "linkedin",
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenExpiresAt: token.Expiry,
	})
}
