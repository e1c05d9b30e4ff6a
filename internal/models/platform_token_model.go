package models

import "time"

// PlatformToken stores OAuth credentials for a publish target. Tokens are
// AES-GCM encrypted before they reach the table.
type PlatformToken struct {
	Platform       string    `db:"platform"`
	AccessToken    string    `db:"access_token"`
	RefreshToken   string    `db:"refresh_token"`
	TokenExpiresAt time.Time `db:"token_expires_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
