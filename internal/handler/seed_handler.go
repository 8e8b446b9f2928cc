package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for loading the global day
// template catalog.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/templates", h.templates)
	router.Get("/templates", h.list)
}

func (h *SeedHandler) templates(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")

	affected, err := h.service.SeedTemplates(c.Context(), token, c.Body())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedTokenInvalid):
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		case errors.Is(err, service.ErrSeedPayload):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("seed operation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
		}
	}

	return utils.SendSuccess(c, "templates seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) list(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")

	templates, err := h.service.ListTemplates(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrSeedTokenInvalid) {
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		}
		h.logger.Error().Err(err).Msg("failed to list templates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list templates")
	}

	return utils.SendSuccess(c, "templates retrieved", templates)
}
