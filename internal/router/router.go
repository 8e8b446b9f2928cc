package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tahadi-app/tahadi-api/internal/config"
	"github.com/tahadi-app/tahadi-api/internal/handler"
	"github.com/tahadi-app/tahadi-api/internal/middleware"
	"github.com/tahadi-app/tahadi-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	GroupHandler       *handler.GroupHandler
	DayHandler         *handler.DayHandler
	SubmissionHandler  *handler.SubmissionHandler
	OverrideHandler    *handler.OverrideHandler
	LeaderboardHandler *handler.LeaderboardHandler
	ContentHandler     *handler.ContentHandler
	ReportHandler      *handler.ReportHandler
	SeedHandler        *handler.SeedHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	groups := api.Group("/groups", jwtMiddleware)
	if deps.GroupHandler != nil {
		deps.GroupHandler.Register(groups)
	}

	// Day-scoped routes share the /groups/:groupID/days prefix. Submission
	// routes register first so /days/history is not captured by /days/:day.
	days := groups.Group("/:groupID/days", middleware.RateLimit("days", 60, time.Minute))
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(days)
	}
	if deps.DayHandler != nil {
		deps.DayHandler.Register(days)
	}
	if deps.ContentHandler != nil {
		deps.ContentHandler.Register(days)
	}
	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(groups.Group("/:groupID"))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(groups)
	}
	if deps.OverrideHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.OverrideHandler.Register(submissions, groups)
	}
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed", middleware.RateLimit("seed", 10, time.Minute)))
	}
}
