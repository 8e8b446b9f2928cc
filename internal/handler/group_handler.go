package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// GroupHandler wires group lifecycle endpoints.
type GroupHandler struct {
	service service.GroupService
	logger  zerolog.Logger
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(service service.GroupService, logger zerolog.Logger) *GroupHandler {
	return &GroupHandler{
		service: service,
		logger:  logger.With().Str("component", "group_handler").Logger(),
	}
}

// Register attaches group endpoints to the router group.
func (h *GroupHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Post("/join", h.join)
	router.Get("/:groupID", h.get)
	router.Get("/:groupID/members", h.members)
}

func (h *GroupHandler) create(c *fiber.Ctx) error {
	var payload dto.GroupCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	group, err := h.service.Create(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "group created", group)
}

func (h *GroupHandler) join(c *fiber.Ctx) error {
	var payload dto.GroupJoinRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	group, err := h.service.Join(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "group joined", group)
}

func (h *GroupHandler) get(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	group, err := h.service.Get(c.Context(), groupID, userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "group retrieved", group)
}

func (h *GroupHandler) members(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	members, err := h.service.Members(c.Context(), groupID, userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "members retrieved", members)
}
