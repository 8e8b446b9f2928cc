package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// DayService serves the composite day screen and the supervisor's daily
// post action.
type DayService interface {
	GetDay(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayViewResponse, error)
	PostDay(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayPostResponse, error)
}

type dayService struct {
	access
	contents    repository.ContentRepository
	submissions repository.SubmissionRepository
	activity    ActivityRecorder
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDayService constructs a DayService instance.
func NewDayService(groups repository.GroupRepository, members repository.MemberRepository, contents repository.ContentRepository, submissions repository.SubmissionRepository, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) DayService {
	return &dayService{
		access:      access{groups: groups, members: members},
		contents:    contents,
		submissions: submissions,
		activity:    activity,
		events:      events,
		logger:      logger.With().Str("component", "day_service").Logger(),
		now:         time.Now,
	}
}

func (s *dayService) GetDay(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayViewResponse, error) {
	if err := scoring.ValidateDay(dayNumber); err != nil {
		return dto.DayViewResponse{}, err
	}

	group, member, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return dto.DayViewResponse{}, err
	}

	schedule, err := scoring.NewSchedule(group.StartDate, group.Timezone, group.CutoffTime)
	if err != nil {
		return dto.DayViewResponse{}, err
	}

	now := s.now()
	response := dto.DayViewResponse{
		DayNumber: dayNumber,
		Date:      schedule.DayDate(dayNumber),
		Editable:  member.IsSupervisor() || schedule.Editable(dayNumber, now),
	}

	if content, err := s.contents.GetContent(ctx, groupID, dayNumber); err == nil {
		texts := dto.NewDayTextsResponse(content)
		response.Content = &texts
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DayViewResponse{}, err
	}

	if post, err := s.contents.GetDayPost(ctx, groupID, dayNumber); err == nil {
		posted := dto.NewDayPostResponse(post)
		response.Post = &posted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DayViewResponse{}, err
	}

	hasSubmission := false
	myScore := 0
	if submission, err := s.submissions.GetByKey(ctx, groupID, userID, dayNumber); err == nil {
		own := dto.NewSubmissionResponse(submission)
		response.Submission = &own
		hasSubmission = true
		myScore = submission.TotalPoints
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DayViewResponse{}, err
	}

	response.Status = schedule.DayStatus(dayNumber, hasSubmission, member.IsSupervisor(), now)

	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return dto.DayViewResponse{}, err
	}
	daySubmissions, err := s.submissions.ListByGroupDay(ctx, groupID, dayNumber)
	if err != nil {
		return dto.DayViewResponse{}, err
	}

	scoreByUser := make(map[uint]int, len(daySubmissions))
	for _, submission := range daySubmissions {
		scoreByUser[submission.UserID] = submission.TotalPoints
	}

	standings := make([]scoring.Standing, 0, len(members))
	for _, m := range members {
		standings = append(standings, scoring.Standing{
			UserID: m.UserID,
			Name:   m.DisplayName,
			Score:  scoreByUser[m.UserID],
		})
	}
	scoring.SortStandings(standings, localeTag(group.Locale))

	response.DailyBoard = make([]dto.LeaderboardRow, 0, len(standings))
	for _, standing := range standings {
		response.DailyBoard = append(response.DailyBoard, dto.LeaderboardRow{
			Rank:        scoring.RankOf(standings, standing.Score),
			UserID:      standing.UserID,
			DisplayName: standing.Name,
			Score:       standing.Score,
		})
	}
	response.MyRank = scoring.RankOf(standings, myScore)

	return response, nil
}

func (s *dayService) PostDay(ctx context.Context, groupID, userID uint, dayNumber int) (dto.DayPostResponse, error) {
	if err := scoring.ValidateDay(dayNumber); err != nil {
		return dto.DayPostResponse{}, err
	}

	_, member, err := s.requireSupervisor(ctx, groupID, userID)
	if err != nil {
		return dto.DayPostResponse{}, err
	}

	post := models.DayPost{
		GroupID:   groupID,
		DayNumber: dayNumber,
		PostedBy:  userID,
		PostedAt:  s.now(),
	}
	if err := s.contents.UpsertDayPost(ctx, &post); err != nil {
		return dto.DayPostResponse{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		GroupID:    groupID,
		Actor:      ActivityActor{ID: userID, Role: member.Role},
		Action:     "day.posted",
		EntityType: "day_post",
		Metadata:   map[string]interface{}{"day_number": dayNumber},
	})

	s.events.Publish(Event{
		Subject: EventDayPosted,
		GroupID: groupID,
		ActorID: userID,
		Payload: map[string]interface{}{"day_number": dayNumber},
	})

	s.logger.Info().Uint("group_id", groupID).Int("day_number", dayNumber).Msg("day posted")

	return dto.NewDayPostResponse(post), nil
}
