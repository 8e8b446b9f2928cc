package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// LeaderboardHandler serves the group boards.
type LeaderboardHandler struct {
	boards service.LeaderboardService
	logger zerolog.Logger
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(boards service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		boards: boards,
		logger: logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register attaches the leaderboard endpoint to the router group.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("/leaderboard", h.board)
}

func (h *LeaderboardHandler) board(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	tab := c.Query("tab", dto.LeaderboardOverall)
	day := c.QueryInt("day")

	board, err := h.boards.Board(c.Context(), groupID, userIDFromContext(c), tab, day)
	if err != nil {
		switch tab {
		case dto.LeaderboardDaily, dto.LeaderboardOverall, dto.LeaderboardStreaks:
			return handleServiceError(c, requestLogger(h.logger, c), err)
		default:
			return utils.SendError(c, fiber.StatusBadRequest, "unknown leaderboard tab")
		}
	}

	return utils.SendSuccess(c, "leaderboard retrieved", board)
}
