package models

import "time"

// Draft is a LinkedIn post moving through the review/publish workflow.
// Nullable columns are pointer fields.
type Draft struct {
	DraftID          string     `db:"draft_id" json:"id"`
	Status           string     `db:"status" json:"status"`
	Content          string     `db:"post" json:"content"`
	ImageBase64      *string    `db:"image_base64" json:"image_base64,omitempty"`
	ImageMime        *string    `db:"image_mime" json:"image_mime,omitempty"`
	ImagePath        *string    `db:"image_path" json:"image_path,omitempty"`
	Source           string     `db:"source" json:"source"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	PostedAt         *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	LinkedInPostID   *string    `db:"linkedin_post_id" json:"linkedin_post_id,omitempty"`
	LinkedInURL      *string    `db:"linkedin_url" json:"linkedin_url,omitempty"`
	DiscordMessageID *string    `db:"discord_message_id" json:"discord_message_id,omitempty"`
	DiscordChannelID *string    `db:"discord_channel_id" json:"discord_channel_id,omitempty"`
	DiscordApprover  *string    `db:"discord_approver" json:"discord_approver,omitempty"`
	Industry         *string    `db:"industry" json:"industry,omitempty"`
	Audience         *string    `db:"audience" json:"audience,omitempty"`
	GoldenThreads    *string    `db:"golden_threads" json:"golden_threads,omitempty"`
	LastError        *string    `db:"last_error" json:"last_error,omitempty"`
	RetryCount       int        `db:"retry_count" json:"retry_count"`
}

// Status values persisted in the linkedin_drafts table. No other value is
// ever written.
const (
	DraftStatusPending  = "pending"
	DraftStatusApproved = "approved_for_socials"
	DraftStatusDeclined = "declined"
	DraftStatusPosted   = "posted"
)
