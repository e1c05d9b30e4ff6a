package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sasreliability/draftflow/internal/models"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/service"
)

type StatusHandler struct {
	dr repository.DraftRepository
	li service.LinkedInService
}

func NewStatusHandler(dr repository.DraftRepository, li service.LinkedInService) *StatusHandler {
	return &StatusHandler{dr: dr, li: li}
}

func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	counts := fiber.Map{}
	for _, status := range []string{
		models.DraftStatusPending,
		models.DraftStatusApproved,
		models.DraftStatusDeclined,
		models.DraftStatusPosted,
	} {
		count, err := h.dr.CountByStatus(c.Context(), status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unable to query draft counts",
			})
		}
		counts[status] = count
	}

	linkedinStatus := "connected"
	if err := h.li.TestConnection(c.Context()); err != nil {
		linkedinStatus = "disconnected"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"drafts":   counts,
		"linkedin": linkedinStatus,
	})
}
