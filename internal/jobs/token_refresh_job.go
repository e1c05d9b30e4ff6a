package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/service"
)

type TokenRefreshJob struct {
	tr   repository.TokenRepository
	auth service.LinkedInAuthService
}

func NewTokenRefreshJob(tr repository.TokenRepository, auth service.LinkedInAuthService) *TokenRefreshJob {
	return &TokenRefreshJob{tr: tr, auth: auth}
}

// RefreshTokens renews platform tokens expiring within the next 30 minutes.
func (j *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	deadline := time.Now().Add(30 * time.Minute)
	tokens, err := j.tr.ListExpiringBefore(ctx, deadline)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, token := range tokens {
		if token.RefreshToken == "" {
			continue
		}
		if err := j.auth.Refresh(ctx, token); err != nil {
			slog.Info("unable to refresh token", "platform", token.Platform, "error", err.Error())
			continue
		}
		slog.Info("token refreshed", "platform", token.Platform)
	}
}
