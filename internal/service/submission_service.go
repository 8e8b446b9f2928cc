package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/observability"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// SubmissionService handles daily entry submission and the participant's
// 30-day history grid.
type SubmissionService interface {
	SubmitDay(ctx context.Context, groupID, userID uint, dayNumber int, payload dto.SubmitDayRequest) (dto.SubmissionResponse, error)
	History(ctx context.Context, groupID, userID uint) (dto.HistoryResponse, error)
}

type submissionService struct {
	access
	submissions repository.SubmissionRepository
	contents    repository.ContentRepository
	validator   *validator.Validate
	boards      BoardInvalidator
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(groups repository.GroupRepository, members repository.MemberRepository, submissions repository.SubmissionRepository, contents repository.ContentRepository, validate *validator.Validate, boards BoardInvalidator, events EventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		access:      access{groups: groups, members: members},
		submissions: submissions,
		contents:    contents,
		validator:   validate,
		boards:      boards,
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) SubmitDay(ctx context.Context, groupID, userID uint, dayNumber int, payload dto.SubmitDayRequest) (dto.SubmissionResponse, error) {
	if err := scoring.ValidateDay(dayNumber); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	raw := scoring.RawEntry{
		QuranPoints:  payload.QuranPoints,
		HadithPoints: payload.HadithPoints,
		FiqhAnswer:   *payload.FiqhAnswer,
		ImpactDone:   payload.ImpactDone,
	}
	// Authenticated writes are strict; clamping is reserved for totals
	// computed from data we did not validate on the way in.
	if err := scoring.ValidateRaw(raw); err != nil {
		return dto.SubmissionResponse{}, err
	}

	group, member, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	schedule, err := scoring.NewSchedule(group.StartDate, group.Timezone, group.CutoffTime)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if !member.IsSupervisor() && !schedule.Editable(dayNumber, s.now()) {
		observability.SubmissionsSaved().WithLabelValues("locked").Inc()
		return dto.SubmissionResponse{}, ErrDayLocked
	}

	correctAnswer, err := s.correctAnswerFor(ctx, groupID, dayNumber)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	autoTotal := scoring.ComputeAutoTotal(raw, correctAnswer)
	submission := models.Submission{
		GroupID:      groupID,
		UserID:       userID,
		DayNumber:    dayNumber,
		QuranPoints:  raw.QuranPoints,
		HadithPoints: raw.HadithPoints,
		FiqhAnswer:   raw.FiqhAnswer,
		ImpactDone:   raw.ImpactDone,
		FiqhPoints:   scoring.FiqhPoints(raw.FiqhAnswer, correctAnswer),
		ImpactPoints: scoring.ImpactPoints(raw.ImpactDone),
		AutoTotal:    autoTotal,
		// Resolved against the stored override inside the upsert; for a
		// fresh row there is no override and the auto total stands.
		TotalPoints: autoTotal,
	}

	saved, err := s.submissions.Upsert(ctx, &submission)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionsSaved().WithLabelValues("accepted").Inc()

	if s.boards != nil {
		s.boards.InvalidateBoards(ctx, groupID)
	}

	s.events.Publish(Event{
		Subject: EventSubmissionSaved,
		GroupID: groupID,
		ActorID: userID,
		Payload: map[string]interface{}{
			"day_number":   dayNumber,
			"total_points": saved.TotalPoints,
		},
	})

	s.logger.Info().
		Uint("group_id", groupID).
		Uint("user_id", userID).
		Int("day_number", dayNumber).
		Int("total_points", saved.TotalPoints).
		Msg("submission saved")

	return dto.NewSubmissionResponse(saved), nil
}

func (s *submissionService) History(ctx context.Context, groupID, userID uint) (dto.HistoryResponse, error) {
	group, member, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return dto.HistoryResponse{}, err
	}

	schedule, err := scoring.NewSchedule(group.StartDate, group.Timezone, group.CutoffTime)
	if err != nil {
		return dto.HistoryResponse{}, err
	}

	submissions, err := s.submissions.ListByGroupUser(ctx, groupID, userID)
	if err != nil {
		return dto.HistoryResponse{}, err
	}

	byDay := make(map[int]models.Submission, len(submissions))
	for _, submission := range submissions {
		byDay[submission.DayNumber] = submission
	}

	now := s.now()
	response := dto.HistoryResponse{Days: make([]dto.DayCell, 0, scoring.MaxDay)}
	for day := scoring.MinDay; day <= scoring.MaxDay; day++ {
		submission, submitted := byDay[day]
		cell := dto.DayCell{
			DayNumber: day,
			Date:      schedule.DayDate(day),
			Status:    schedule.DayStatus(day, submitted, member.IsSupervisor(), now),
		}
		if submitted {
			cell.TotalPoints = submission.TotalPoints
			response.TotalPoints += submission.TotalPoints
		}
		response.Days = append(response.Days, cell)
	}

	return response, nil
}

func (s *submissionService) correctAnswerFor(ctx context.Context, groupID uint, dayNumber int) (bool, error) {
	key, err := s.contents.GetAnswerKey(ctx, groupID, dayNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultCorrectAnswer, nil
		}
		return false, err
	}

	return key.CorrectAnswer, nil
}
