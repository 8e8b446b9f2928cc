package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// ContentService manages supervisor editing of day texts and answer keys.
type ContentService interface {
	GetDayContent(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayContentResponse, error)
	UpdateDayContent(ctx context.Context, groupID, userID uint, dayNumber int, payload dto.DayContentUpdateRequest) (dto.DayContentResponse, error)
}

type contentService struct {
	access
	contents  repository.ContentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewContentService constructs a ContentService instance. Day texts are
// supervisor-entered free text rendered to every member, so they pass
// through a strict sanitizer on the way in.
func NewContentService(groups repository.GroupRepository, members repository.MemberRepository, contents repository.ContentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ContentService {
	return &contentService{
		access:    access{groups: groups, members: members},
		contents:  contents,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "content_service").Logger(),
	}
}

func (s *contentService) GetDayContent(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayContentResponse, error) {
	if err := scoring.ValidateDay(dayNumber); err != nil {
		return dto.DayContentResponse{}, err
	}

	if _, _, err := s.requireSupervisor(ctx, groupID, userID); err != nil {
		return dto.DayContentResponse{}, err
	}

	content, err := s.contents.GetContent(ctx, groupID, dayNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DayContentResponse{}, ErrContentNotFound
		}
		return dto.DayContentResponse{}, err
	}

	correctAnswer := models.DefaultCorrectAnswer
	if key, err := s.contents.GetAnswerKey(ctx, groupID, dayNumber); err == nil {
		correctAnswer = key.CorrectAnswer
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DayContentResponse{}, err
	}

	return dto.NewDayContentResponse(content, correctAnswer), nil
}

func (s *contentService) UpdateDayContent(ctx context.Context, groupID, userID uint, dayNumber int, payload dto.DayContentUpdateRequest) (dto.DayContentResponse, error) {
	if err := scoring.ValidateDay(dayNumber); err != nil {
		return dto.DayContentResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.DayContentResponse{}, err
	}

	_, member, err := s.requireSupervisor(ctx, groupID, userID)
	if err != nil {
		return dto.DayContentResponse{}, err
	}

	content := models.DayContent{
		GroupID:           groupID,
		DayNumber:         dayNumber,
		HadithText:        s.clean(payload.HadithText),
		FiqhStatementText: s.clean(payload.FiqhStatementText),
		ImpactTaskText:    s.clean(payload.ImpactTaskText),
	}
	if err := s.contents.UpsertContent(ctx, &content); err != nil {
		return dto.DayContentResponse{}, err
	}

	// The answer key row is created lazily here; days never edited keep
	// the documented default of true.
	key := models.DayAnswerKey{
		GroupID:       groupID,
		DayNumber:     dayNumber,
		CorrectAnswer: *payload.CorrectAnswer,
	}
	if err := s.contents.UpsertAnswerKey(ctx, &key); err != nil {
		return dto.DayContentResponse{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		GroupID:    groupID,
		Actor:      ActivityActor{ID: userID, Role: member.Role},
		Action:     "content.updated",
		EntityType: "day_content",
		Metadata: map[string]interface{}{
			"day_number":     dayNumber,
			"correct_answer": *payload.CorrectAnswer,
		},
	})

	s.logger.Info().Uint("group_id", groupID).Int("day_number", dayNumber).Msg("day content updated")

	return dto.NewDayContentResponse(content, key.CorrectAnswer), nil
}

func (s *contentService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
