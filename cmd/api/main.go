package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/config"
	"github.com/tahadi-app/tahadi-api/internal/database"
	"github.com/tahadi-app/tahadi-api/internal/handler"
	"github.com/tahadi-app/tahadi-api/internal/middleware"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/router"
	"github.com/tahadi-app/tahadi-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Group{},
		&models.GroupMember{},
		&models.DayContent{},
		&models.DayAnswerKey{},
		&models.DayPost{},
		&models.DayTemplate{},
		&models.Submission{},
		&models.OverrideLog{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	groupRepo := repository.NewGroupRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	contentRepo := repository.NewContentRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	events := service.NewNatsPublisher(natsConn, logger)
	activity := service.NewActivityRecorder(activityRepo, logger)

	leaderboardService := service.NewLeaderboardService(groupRepo, memberRepo, submissionRepo, redisClient, cfg.BoardCacheTTL, logger)
	groupService := service.NewGroupService(groupRepo, memberRepo, templateRepo, validate, events, logger)
	submissionService := service.NewSubmissionService(groupRepo, memberRepo, submissionRepo, contentRepo, validate, leaderboardService, events, logger)
	overrideService := service.NewOverrideService(groupRepo, memberRepo, overrideRepo, submissionRepo, validate, activity, leaderboardService, events, logger)
	dayService := service.NewDayService(groupRepo, memberRepo, contentRepo, submissionRepo, activity, events, logger)
	contentService := service.NewContentService(groupRepo, memberRepo, contentRepo, validate, activity, logger)
	reportService := service.NewReportService(groupRepo, memberRepo, submissionRepo, logger)
	seedService, err := service.NewSeedService(templateRepo, cfg.SeedToken, logger)
	if err != nil {
		log.Fatalf("failed to create seed service: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		GroupHandler:       handler.NewGroupHandler(groupService, logger),
		DayHandler:         handler.NewDayHandler(dayService, logger),
		SubmissionHandler:  handler.NewSubmissionHandler(submissionService, logger),
		OverrideHandler:    handler.NewOverrideHandler(overrideService, logger),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService, logger),
		ContentHandler:     handler.NewContentHandler(contentService, logger),
		ReportHandler:      handler.NewReportHandler(reportService, logger),
		SeedHandler:        handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
