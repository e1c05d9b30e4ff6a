package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/service"
)

type PlatformHandler struct {
	auth service.LinkedInAuthService
	cfg  config.Config
}

func NewPlatformHandler(auth service.LinkedInAuthService, cfg config.Config) *PlatformHandler {
	return &PlatformHandler{auth: auth, cfg: cfg}
}

func (h *PlatformHandler) ConnectLinkedIn(c *fiber.Ctx) error {
	return c.Redirect(h.auth.AuthURL("draftflow"), fiber.StatusTemporaryRedirect)
}

func (h *PlatformHandler) LinkedInCallback(c *fiber.Ctx) error {
	code := c.Query("code")

	if err := h.auth.Callback(c.Context(), code); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "LinkedIn authorization failed",
		})
	}

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}
