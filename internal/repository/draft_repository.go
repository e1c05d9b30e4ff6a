package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sasreliability/draftflow/internal/models"
)

// DraftRepository is the writer-of-record for drafts. Every transition is a
// single conditional UPDATE keyed on the current status; the boolean return
// reports whether the precondition held and the row was changed.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) (string, error)
	GetByID(ctx context.Context, id string) (*models.Draft, error)
	List(ctx context.Context) ([]*models.Draft, error)
	ListPendingUnsurfaced(ctx context.Context) ([]*models.Draft, error)
	ListApprovedUnpublished(ctx context.Context) ([]*models.Draft, error)
	SetDiscordMessage(ctx context.Context, id, messageID, channelID string) (bool, error)
	Approve(ctx context.Context, id, reviewer string) (bool, error)
	Decline(ctx context.Context, id, reviewer, reason string) (bool, error)
	RequestEdit(ctx context.Context, id, reviewer, reason string) (bool, error)
	MarkPublished(ctx context.Context, id, postID, postURL string) (bool, error)
	MarkPublishFailed(ctx context.Context, id, lastError string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) DraftRepository {
	return &draftRepository{db: db}
}

const draftColumns = `draft_id, status, post, image_base64, image_mime, image_path, source,
	created_at, approved_at, posted_at, linkedin_post_id, linkedin_url,
	discord_message_id, discord_channel_id, discord_approver,
	industry, audience, golden_threads, last_error, retry_count`

func (r *draftRepository) Create(ctx context.Context, draft *models.Draft) (string, error) {
	query := `
		INSERT INTO linkedin_drafts (draft_id, status, post, image_base64, image_mime, image_path, source, industry, audience, golden_threads)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING draft_id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		draft.DraftID, models.DraftStatusPending, draft.Content,
		draft.ImageBase64, draft.ImageMime, draft.ImagePath, draft.Source,
		draft.Industry, draft.Audience, draft.GoldenThreads).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return id, nil
}

func (r *draftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM linkedin_drafts WHERE draft_id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	draft, err := scanDraft(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return draft, nil
}

func (r *draftRepository) List(ctx context.Context) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM linkedin_drafts ORDER BY created_at DESC`
	return r.queryDrafts(ctx, query)
}

func (r *draftRepository) ListPendingUnsurfaced(ctx context.Context) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM linkedin_drafts
		WHERE status = $1 AND discord_message_id IS NULL
		ORDER BY created_at`
	return r.queryDrafts(ctx, query, models.DraftStatusPending)
}

func (r *draftRepository) ListApprovedUnpublished(ctx context.Context) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM linkedin_drafts
		WHERE status = $1 AND linkedin_post_id IS NULL
		ORDER BY approved_at`
	return r.queryDrafts(ctx, query, models.DraftStatusApproved)
}

func (r *draftRepository) queryDrafts(ctx context.Context, query string, args ...any) ([]*models.Draft, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

// SetDiscordMessage records the approval message a pending draft was surfaced
// with. The unset gate makes repeated surfacing attempts idempotent.
func (r *draftRepository) SetDiscordMessage(ctx context.Context, id, messageID, channelID string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET discord_message_id = $1,
			discord_channel_id = $2
		WHERE draft_id = $3 AND status = $4 AND discord_message_id IS NULL
	`
	return r.execTransition(ctx, query, messageID, channelID, id, models.DraftStatusPending)
}

func (r *draftRepository) Approve(ctx context.Context, id, reviewer string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET status = $1,
			discord_approver = $2,
			approved_at = $3
		WHERE draft_id = $4 AND status = $5
	`
	return r.execTransition(ctx, query, models.DraftStatusApproved, reviewer, time.Now(), id, models.DraftStatusPending)
}

func (r *draftRepository) Decline(ctx context.Context, id, reviewer, reason string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET status = $1,
			discord_approver = $2,
			last_error = $3,
			approved_at = $4
		WHERE draft_id = $5 AND status = $6
	`
	return r.execTransition(ctx, query, models.DraftStatusDeclined, reviewer, reason, time.Now(), id, models.DraftStatusPending)
}

// RequestEdit keeps the draft pending; the reviewer and reason are recorded so
// the request is never silently dropped.
func (r *draftRepository) RequestEdit(ctx context.Context, id, reviewer, reason string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET discord_approver = $1,
			last_error = $2
		WHERE draft_id = $3 AND status = $4
	`
	return r.execTransition(ctx, query, reviewer, reason, id, models.DraftStatusPending)
}

func (r *draftRepository) MarkPublished(ctx context.Context, id, postID, postURL string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET status = $1,
			linkedin_post_id = $2,
			linkedin_url = $3,
			posted_at = $4
		WHERE draft_id = $5 AND status = $6 AND linkedin_post_id IS NULL
	`
	return r.execTransition(ctx, query, models.DraftStatusPosted, postID, postURL, time.Now(), id, models.DraftStatusApproved)
}

func (r *draftRepository) MarkPublishFailed(ctx context.Context, id, lastError string) (bool, error) {
	query := `
		UPDATE linkedin_drafts
		SET status = $1,
			last_error = $2,
			retry_count = retry_count + 1
		WHERE draft_id = $3 AND status = $4
	`
	return r.execTransition(ctx, query, models.DraftStatusDeclined, lastError, id, models.DraftStatusApproved)
}

func (r *draftRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	query := `SELECT COUNT(*) FROM linkedin_drafts WHERE status = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, status).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return count, nil
}

func (r *draftRepository) execTransition(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*models.Draft, error) {
	var d models.Draft
	err := row.Scan(&d.DraftID, &d.Status, &d.Content, &d.ImageBase64, &d.ImageMime, &d.ImagePath,
		&d.Source, &d.CreatedAt, &d.ApprovedAt, &d.PostedAt, &d.LinkedInPostID, &d.LinkedInURL,
		&d.DiscordMessageID, &d.DiscordChannelID, &d.DiscordApprover,
		&d.Industry, &d.Audience, &d.GoldenThreads, &d.LastError, &d.RetryCount)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
