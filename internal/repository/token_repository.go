package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sasreliability/draftflow/internal/models"
)

type TokenRepository interface {
	Get(ctx context.Context, platform string) (*models.PlatformToken, error)
	Upsert(ctx context.Context, token *models.PlatformToken) error
	ListExpiringBefore(ctx context.Context, deadline time.Time) ([]*models.PlatformToken, error)
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Get(ctx context.Context, platform string) (*models.PlatformToken, error) {
	query := `SELECT platform, access_token, refresh_token, token_expires_at, updated_at
		FROM platform_tokens WHERE platform = $1`
	row := r.db.QueryRowContext(ctx, query, platform)

	var t models.PlatformToken
	err := row.Scan(&t.Platform, &t.AccessToken, &t.RefreshToken, &t.TokenExpiresAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &t, nil
}

func (r *tokenRepository) Upsert(ctx context.Context, token *models.PlatformToken) error {
	query := `
		INSERT INTO platform_tokens (platform, access_token, refresh_token, token_expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform) DO UPDATE
		SET access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, token.Platform, token.AccessToken, token.RefreshToken, token.TokenExpiresAt, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tokenRepository) ListExpiringBefore(ctx context.Context, deadline time.Time) ([]*models.PlatformToken, error) {
	query := `SELECT platform, access_token, refresh_token, token_expires_at, updated_at
		FROM platform_tokens WHERE token_expires_at < $1`

	rows, err := r.db.QueryContext(ctx, query, deadline)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tokens []*models.PlatformToken
	for rows.Next() {
		var t models.PlatformToken
		if err := rows.Scan(&t.Platform, &t.AccessToken, &t.RefreshToken, &t.TokenExpiresAt, &t.UpdatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}
