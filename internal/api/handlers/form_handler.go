package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/sasreliability/draftflow/internal/queue"
	"github.com/sasreliability/draftflow/internal/service"
	"github.com/sasreliability/draftflow/internal/transfer"
)

type FormHandler struct {
	s           service.FormService
	AsynqClient *asynq.Client
}

func NewFormHandler(service service.FormService, asynqClient *asynq.Client) *FormHandler {
	return &FormHandler{s: service, AsynqClient: asynqClient}
}

func (h *FormHandler) SubmitForm(c *fiber.Ctx) error {
	var fc transfer.FormCreation
	if err := c.BodyParser(&fc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	submissionID, err := h.s.Submit(c.Context(), &fc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = queue.EnqueueForm(h.AsynqClient, queue.ProcessFormPayload{SubmissionID: submissionID})
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling form processing",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"submission_id": submissionID,
		"message":       "Form submitted successfully",
	})
}
