package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// DayHandler serves the composite day view and the supervisor's post action.
type DayHandler struct {
	days   service.DayService
	logger zerolog.Logger
}

// NewDayHandler constructs the handler.
func NewDayHandler(days service.DayService, logger zerolog.Logger) *DayHandler {
	return &DayHandler{
		days:   days,
		logger: logger.With().Str("component", "day_handler").Logger(),
	}
}

// Register attaches day endpoints to the router group.
func (h *DayHandler) Register(router fiber.Router) {
	router.Get("/:day", h.get)
	router.Post("/:day/post", h.post)
}

func (h *DayHandler) get(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	day, err := parseIntParam(c, "day")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	view, err := h.days.GetDay(c.Context(), groupID, userIDFromContext(c), day)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "day retrieved", view)
}

func (h *DayHandler) post(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	day, err := parseIntParam(c, "day")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	posted, err := h.days.PostDay(c.Context(), groupID, userIDFromContext(c), day)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "day posted", posted)
}
