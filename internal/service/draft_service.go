package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type DraftService interface {
	CreateDraft(ctx context.Context, dc *transfer.DraftCreation, image *multipart.FileHeader) (*models.Draft, error)
	DraftInfo(ctx context.Context, draftID string) (*models.Draft, error)
	List(ctx context.Context) ([]*models.Draft, error)
}

type draftService struct {
	cfg config.Config
	dr  repository.DraftRepository
	r2  *R2Service
}

func NewDraftService(cfg config.Config, dr repository.DraftRepository, r2 *R2Service) DraftService {
	return &draftService{cfg: cfg, dr: dr, r2: r2}
}

// CreateDraft validates intake and persists a new pending draft.
func (s *draftService) CreateDraft(ctx context.Context, dc *transfer.DraftCreation, image *multipart.FileHeader) (*models.Draft, error) {
	if dc == nil {
		err := errors.New("draft creation data is nil")
		slog.Error(err.Error())
		return nil, err
	}
	if strings.TrimSpace(dc.Content) == "" {
		err := errors.New("content cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}
	if utf8.RuneCountInString(dc.Content) > s.cfg.ContentLimit {
		err := fmt.Errorf("content exceeds the %d character limit", s.cfg.ContentLimit)
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	source := dc.Source
	if source == "" {
		source = "api"
	}

	draft := &models.Draft{
		DraftID: id,
		Content: dc.Content,
		Source:  source,
	}
	if dc.Industry != "" {
		draft.Industry = &dc.Industry
	}
	if dc.Audience != "" {
		draft.Audience = &dc.Audience
	}
	if dc.GoldenThreads != "" {
		draft.GoldenThreads = &dc.GoldenThreads
	}

	if image != nil {
		imagePath, imageMime, err := s.uploadImage(ctx, id, image)
		if err != nil {
			return nil, fmt.Errorf("error uploading image: %w", err)
		}
		draft.ImagePath = &imagePath
		draft.ImageMime = &imageMime
	}

	if _, err := s.dr.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("error creating draft: %w", err)
	}

	return s.dr.GetByID(ctx, id)
}

func (s *draftService) uploadImage(ctx context.Context, draftID string, image *multipart.FileHeader) (string, string, error) {
	allowedTypes := map[string]struct{}{
		"jpg": {}, "jpeg": {}, "png": {},
	}

	file, err := image.Open()
	if err != nil {
		return "", "", fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", "", errors.New("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return "", "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key := fmt.Sprintf("drafts/%s.%s", draftID, fileType.Extension)
	url, err := s.r2.Upload(ctx, key, fileBytes, fileType.MIME.Value)
	if err != nil {
		return "", "", err
	}

	return url, fileType.MIME.Value, nil
}

func (s *draftService) DraftInfo(ctx context.Context, draftID string) (*models.Draft, error) {
	if draftID == "" {
		err := errors.New("draft id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNotFound
	}

	return draft, nil
}

func (s *draftService) List(ctx context.Context) ([]*models.Draft, error) {
	drafts, err := s.dr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}
	return drafts, nil
}
