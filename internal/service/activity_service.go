package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
)

// ActivityActor identifies who performed an auditable action.
type ActivityActor struct {
	ID   uint
	Role string
}

// ActivityEntry describes one auditable action.
type ActivityEntry struct {
	GroupID    uint
	Actor      ActivityActor
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// ActivityRecorder persists supervisor actions for later review. Recording
// is best-effort; failures are logged, never propagated.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

type activityRecorder struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityRecorder constructs the recorder.
func NewActivityRecorder(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityRecorder {
	return &activityRecorder{
		repo:   repo,
		logger: logger.With().Str("component", "activity_recorder").Logger(),
	}
}

func (r *activityRecorder) Record(ctx context.Context, entry ActivityEntry) {
	record := models.ActivityLog{
		GroupID:    entry.GroupID,
		ActorID:    entry.Actor.ID,
		ActorRole:  entry.Actor.Role,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   datatypes.JSONMap(entry.Metadata),
	}

	if err := r.repo.Create(ctx, &record); err != nil {
		r.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to persist activity entry")
	}
}
