package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sasreliability/draftflow/internal/models"
)

type FormSubmissionRepository interface {
	Create(ctx context.Context, fs *models.FormSubmission) (string, error)
	GetByID(ctx context.Context, id string) (*models.FormSubmission, error)
	ListPending(ctx context.Context) ([]*models.FormSubmission, error)
	MarkProcessing(ctx context.Context, id string) (bool, error)
	MarkCompleted(ctx context.Context, id string, draftID *string) (bool, error)
	MarkFailed(ctx context.Context, id, errorMessage string) (bool, error)
}

type formSubmissionRepository struct {
	db *sql.DB
}

func NewFormSubmissionRepository(db *sql.DB) FormSubmissionRepository {
	return &formSubmissionRepository{db: db}
}

func (r *formSubmissionRepository) Create(ctx context.Context, fs *models.FormSubmission) (string, error) {
	formData, err := json.Marshal(fs.FormData)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	query := `
		INSERT INTO form_submissions (submission_id, form_data, source, status)
		VALUES ($1, $2, $3, $4)
		RETURNING submission_id
	`

	var id string
	err = r.db.QueryRowContext(ctx, query, uuid.NewString(), formData, fs.Source, models.FormStatusPending).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return id, nil
}

func (r *formSubmissionRepository) GetByID(ctx context.Context, id string) (*models.FormSubmission, error) {
	query := `SELECT submission_id, form_data, source, status, created_at, processed_at, draft_id, error_message
		FROM form_submissions WHERE submission_id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	fs, err := scanFormSubmission(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return fs, nil
}

func (r *formSubmissionRepository) ListPending(ctx context.Context) ([]*models.FormSubmission, error) {
	query := `SELECT submission_id, form_data, source, status, created_at, processed_at, draft_id, error_message
		FROM form_submissions WHERE status = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, models.FormStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.FormSubmission
	for rows.Next() {
		fs, err := scanFormSubmission(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		submissions = append(submissions, fs)
	}
	return submissions, rows.Err()
}

func (r *formSubmissionRepository) MarkProcessing(ctx context.Context, id string) (bool, error) {
	query := `UPDATE form_submissions SET status = $1 WHERE submission_id = $2 AND status = $3`
	return r.exec(ctx, query, models.FormStatusProcessing, id, models.FormStatusPending)
}

func (r *formSubmissionRepository) MarkCompleted(ctx context.Context, id string, draftID *string) (bool, error) {
	query := `
		UPDATE form_submissions
		SET status = $1,
			draft_id = $2,
			processed_at = $3
		WHERE submission_id = $4 AND status = $5
	`
	return r.exec(ctx, query, models.FormStatusCompleted, draftID, time.Now(), id, models.FormStatusProcessing)
}

func (r *formSubmissionRepository) MarkFailed(ctx context.Context, id, errorMessage string) (bool, error) {
	query := `
		UPDATE form_submissions
		SET status = $1,
			error_message = $2,
			processed_at = $3
		WHERE submission_id = $4 AND status = $5
	`
	return r.exec(ctx, query, models.FormStatusFailed, errorMessage, time.Now(), id, models.FormStatusProcessing)
}

func (r *formSubmissionRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
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

func scanFormSubmission(row rowScanner) (*models.FormSubmission, error) {
	var fs models.FormSubmission
	var formData []byte
	err := row.Scan(&fs.SubmissionID, &formData, &fs.Source, &fs.Status, &fs.CreatedAt,
		&fs.ProcessedAt, &fs.DraftID, &fs.ErrorMessage)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(formData, &fs.FormData); err != nil {
		return nil, err
	}
	return &fs, nil
}
