package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/observability"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// OverrideService encapsulates supervisor score overrides and the audit
// trail around them.
type OverrideService interface {
	Apply(ctx context.Context, submissionID uint, payload dto.OverrideRequest, actor ActivityActor) (dto.OverrideResult, error)
	ListByGroup(ctx context.Context, groupID, userID uint, limit int) ([]dto.OverrideLogResponse, error)
}

type overrideService struct {
	access
	overrides   repository.OverrideRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	boards      BoardInvalidator
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOverrideService constructs the override service.
func NewOverrideService(groups repository.GroupRepository, members repository.MemberRepository, overrides repository.OverrideRepository, submissions repository.SubmissionRepository, validate *validator.Validate, activity ActivityRecorder, boards BoardInvalidator, events EventPublisher, logger zerolog.Logger) OverrideService {
	return &overrideService{
		access:      access{groups: groups, members: members},
		overrides:   overrides,
		submissions: submissions,
		validator:   validate,
		activity:    activity,
		boards:      boards,
		events:      events,
		logger:      logger.With().Str("component", "override_service").Logger(),
		now:         time.Now,
	}
}

func (s *overrideService) Apply(ctx context.Context, submissionID uint, payload dto.OverrideRequest, actor ActivityActor) (dto.OverrideResult, error) {
	tracer := otel.Tracer("github.com/tahadi-app/tahadi-api/internal/service/override")
	ctx, span := tracer.Start(ctx, "override.apply")
	span.SetAttributes(
		attribute.Int64("override.submission_id", int64(submissionID)),
		attribute.Int64("override.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.OverrideResult{}, err
	}

	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		span.SetStatus(codes.Error, "empty_reason")
		return dto.OverrideResult{}, ErrEmptyReason
	}

	if err := scoring.ValidateOverride(payload.OverrideTotal); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "override_out_of_range")
		return dto.OverrideResult{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.OverrideResult{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.OverrideResult{}, err
	}

	if _, _, err := s.requireSupervisor(ctx, submission.GroupID, actor.ID); err != nil {
		span.SetStatus(codes.Error, "not_supervisor")
		return dto.OverrideResult{}, err
	}

	updated, entry, err := s.overrides.Apply(ctx, submissionID, payload.OverrideTotal, reason, actor.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "override_write_failed")
		return dto.OverrideResult{}, err
	}

	kind := "set"
	if payload.OverrideTotal == nil {
		kind = "clear"
	}
	observability.OverridesApplied().WithLabelValues(kind).Inc()

	if s.boards != nil {
		s.boards.InvalidateBoards(ctx, updated.GroupID)
	}

	entryID := entry.ID
	s.activity.Record(ctx, ActivityEntry{
		GroupID:    updated.GroupID,
		Actor:      actor,
		Action:     "submission.overridden",
		EntityType: "submission",
		EntityID:   &updated.ID,
		Metadata: map[string]interface{}{
			"log_entry_id":     entryID,
			"day_number":       updated.DayNumber,
			"previous_total":   entry.PreviousTotalPoints,
			"new_total":        entry.NewTotalPoints,
			"override_cleared": payload.OverrideTotal == nil,
		},
	})

	s.events.Publish(Event{
		Subject: EventOverrideApplied,
		GroupID: updated.GroupID,
		ActorID: actor.ID,
		Payload: map[string]interface{}{
			"submission_id": updated.ID,
			"new_total":     entry.NewTotalPoints,
		},
	})

	span.SetAttributes(
		attribute.Int("override.previous_total", entry.PreviousTotalPoints),
		attribute.Int("override.new_total", entry.NewTotalPoints),
	)

	s.logger.Info().
		Uint("submission_id", updated.ID).
		Uint("supervisor_id", actor.ID).
		Int("previous_total", entry.PreviousTotalPoints).
		Int("new_total", entry.NewTotalPoints).
		Msg("override applied")

	return dto.OverrideResult{
		Submission: dto.NewSubmissionResponse(updated),
		LogEntry:   dto.NewOverrideLogResponse(entry),
	}, nil
}

func (s *overrideService) ListByGroup(ctx context.Context, groupID, userID uint, limit int) ([]dto.OverrideLogResponse, error) {
	if _, _, err := s.requireSupervisor(ctx, groupID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	entries, err := s.overrides.ListByGroup(ctx, groupID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewOverrideLogResponseSlice(entries), nil
}
