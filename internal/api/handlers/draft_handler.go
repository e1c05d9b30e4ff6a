package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sasreliability/draftflow/internal/service"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type DraftHandler struct {
	s service.DraftService
}

func NewDraftHandler(service service.DraftService) *DraftHandler {
	return &DraftHandler{s: service}
}

func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	dc := &transfer.DraftCreation{
		Content:       c.FormValue("content"),
		Source:        c.FormValue("source"),
		Industry:      c.FormValue("industry"),
		Audience:      c.FormValue("audience"),
		GoldenThreads: c.FormValue("golden_threads"),
	}

	var image *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["image"]; len(files) > 0 {
			image = files[0]
		}
	}

	draft, err := h.s.CreateDraft(c.Context(), dc, image)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(draft)
}

func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	draftID := c.Query("id")

	if draftID != "" {
		draft, err := h.s.DraftInfo(c.Context(), draftID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Draft not found",
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get draft info",
			})
		}

		return c.Status(fiber.StatusOK).JSON(draft)
	}

	drafts, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list drafts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(drafts)
}
