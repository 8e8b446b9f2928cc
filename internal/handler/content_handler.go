package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// ContentHandler wires supervisor day content editing endpoints. The
// responses here include the answer key, so the routes sit behind the
// supervisor role check.
type ContentHandler struct {
	contents service.ContentService
	logger   zerolog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(contents service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		contents: contents,
		logger:   logger.With().Str("component", "content_handler").Logger(),
	}
}

// Register attaches content endpoints to the router group.
func (h *ContentHandler) Register(router fiber.Router) {
	router.Get("/:day/content", h.get)
	router.Put("/:day/content", h.update)
}

func (h *ContentHandler) get(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	day, err := parseIntParam(c, "day")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	content, err := h.contents.GetDayContent(c.Context(), groupID, userIDFromContext(c), day)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "content retrieved", content)
}

func (h *ContentHandler) update(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	day, err := parseIntParam(c, "day")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DayContentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	content, err := h.contents.UpdateDayContent(c.Context(), groupID, userIDFromContext(c), day, payload)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "content updated", content)
}
