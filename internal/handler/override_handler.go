package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// OverrideHandler wires supervisor score override endpoints.
type OverrideHandler struct {
	overrides service.OverrideService
	logger    zerolog.Logger
}

// NewOverrideHandler constructs the handler.
func NewOverrideHandler(overrides service.OverrideService, logger zerolog.Logger) *OverrideHandler {
	return &OverrideHandler{
		overrides: overrides,
		logger:    logger.With().Str("component", "override_handler").Logger(),
	}
}

// Register attaches override endpoints. Apply lives on the submission
// resource; the audit listing on the group resource.
func (h *OverrideHandler) Register(submissions fiber.Router, groups fiber.Router) {
	submissions.Patch("/:id/override", h.apply)
	groups.Get("/:groupID/overrides", h.list)
}

func (h *OverrideHandler) apply(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.OverrideRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.overrides.Apply(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "override applied", result)
}

func (h *OverrideHandler) list(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	entries, err := h.overrides.ListByGroup(c.Context(), groupID, userIDFromContext(c), limit)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "overrides retrieved", entries)
}
