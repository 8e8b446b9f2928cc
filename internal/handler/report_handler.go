package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/service"
	"github.com/tahadi-app/tahadi-api/internal/utils"
)

// ReportHandler serves CSV exports and per-player reports.
type ReportHandler struct {
	reports service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report endpoints to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/:groupID/export", h.export)
	router.Get("/:groupID/players/:playerID/report", h.playerReport)
}

func (h *ReportHandler) export(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	data, filename, err := h.reports.ExportCSV(c.Context(), groupID, userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *ReportHandler) playerReport(c *fiber.Ctx) error {
	groupID, err := parseUintParam(c, "groupID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	playerID, err := parseUintParam(c, "playerID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.reports.PlayerReport(c.Context(), groupID, userIDFromContext(c), playerID)
	if err != nil {
		return handleServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "report retrieved", report)
}
