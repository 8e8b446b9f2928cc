package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

const (
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeAttempts = 5
)

// GroupService manages the group lifecycle: creation with seeded content,
// joining by invite code, and member listing.
type GroupService interface {
	Create(ctx context.Context, payload dto.GroupCreateRequest, creatorID uint) (dto.GroupResponse, error)
	Join(ctx context.Context, payload dto.GroupJoinRequest, userID uint) (dto.GroupResponse, error)
	Get(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error)
	Members(ctx context.Context, groupID, userID uint) ([]dto.MemberResponse, error)
}

type groupService struct {
	access
	templates repository.TemplateRepository
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewGroupService constructs a GroupService instance.
func NewGroupService(groups repository.GroupRepository, members repository.MemberRepository, templates repository.TemplateRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) GroupService {
	return &groupService{
		access:    access{groups: groups, members: members},
		templates: templates,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "group_service").Logger(),
		now:       time.Now,
	}
}

func (s *groupService) Create(ctx context.Context, payload dto.GroupCreateRequest, creatorID uint) (dto.GroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GroupResponse{}, err
	}

	// Reject unparseable schedules up front; every later read assumes a
	// valid start date, timezone, and cutoff.
	if _, err := scoring.NewSchedule(payload.StartDate, payload.Timezone, payload.CutoffTime); err != nil {
		return dto.GroupResponse{}, err
	}

	locale := payload.Locale
	if locale == "" {
		locale = "ar"
	}

	templates, err := s.templates.List(ctx)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	contents := make([]models.DayContent, 0, len(templates))
	keys := make([]models.DayAnswerKey, 0, len(templates))
	for _, t := range templates {
		contents = append(contents, models.DayContent{
			DayNumber:         t.DayNumber,
			HadithText:        t.HadithText,
			FiqhStatementText: t.FiqhStatementText,
			ImpactTaskText:    t.ImpactTaskText,
		})
		keys = append(keys, models.DayAnswerKey{
			DayNumber:     t.DayNumber,
			CorrectAnswer: t.CorrectAnswer,
		})
	}

	group := models.Group{
		Name:       strings.TrimSpace(payload.Name),
		StartDate:  payload.StartDate,
		Timezone:   payload.Timezone,
		CutoffTime: payload.CutoffTime,
		MaxPlayers: payload.MaxPlayers,
		Locale:     locale,
		CreatedBy:  creatorID,
	}
	supervisor := models.GroupMember{
		UserID:      creatorID,
		Role:        models.RoleSupervisor,
		DisplayName: strings.TrimSpace(payload.DisplayName),
	}

	// Invite codes collide rarely; retry with a fresh code instead of
	// surfacing the unique violation.
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		group.ID = 0
		group.InviteCode = generateInviteCode()

		err = s.groups.CreateWithSeed(ctx, &group, &supervisor, contents, keys)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.GroupResponse{}, err
		}
	}
	if err != nil {
		return dto.GroupResponse{}, err
	}

	s.events.Publish(Event{
		Subject: EventGroupCreated,
		GroupID: group.ID,
		ActorID: creatorID,
		Payload: map[string]interface{}{"invite_code": group.InviteCode},
	})

	s.logger.Info().Uint("group_id", group.ID).Str("invite_code", group.InviteCode).Msg("group created")

	return dto.NewGroupResponse(group), nil
}

func (s *groupService) Join(ctx context.Context, payload dto.GroupJoinRequest, userID uint) (dto.GroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GroupResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.InviteCode))
	group, err := s.groups.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrInviteNotFound
		}
		return dto.GroupResponse{}, err
	}

	if _, err := s.members.GetMember(ctx, group.ID, userID); err == nil {
		// Already a member; joining again is a no-op.
		return dto.NewGroupResponse(group), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.GroupResponse{}, err
	}

	count, err := s.members.CountByGroup(ctx, group.ID)
	if err != nil {
		return dto.GroupResponse{}, err
	}
	if count >= int64(group.MaxPlayers) {
		return dto.GroupResponse{}, ErrGroupFull
	}

	displayName := strings.TrimSpace(payload.DisplayName)
	taken, err := s.members.DisplayNameTaken(ctx, group.ID, displayName)
	if err != nil {
		return dto.GroupResponse{}, err
	}
	if taken {
		return dto.GroupResponse{}, ErrNameTaken
	}

	member := models.GroupMember{
		GroupID:     group.ID,
		UserID:      userID,
		Role:        models.RolePlayer,
		DisplayName: displayName,
	}
	if err := s.members.Create(ctx, &member); err != nil {
		return dto.GroupResponse{}, err
	}

	s.events.Publish(Event{
		Subject: EventMemberJoined,
		GroupID: group.ID,
		ActorID: userID,
	})

	s.logger.Info().Uint("group_id", group.ID).Uint("user_id", userID).Msg("member joined")

	return dto.NewGroupResponse(group), nil
}

func (s *groupService) Get(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error) {
	group, _, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	return dto.NewGroupResponse(group), nil
}

func (s *groupService) Members(ctx context.Context, groupID, userID uint) ([]dto.MemberResponse, error) {
	if _, _, err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return dto.NewMemberResponseSlice(members), nil
}

func generateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to the first symbol rather than panic.
			code[i] = inviteCodeAlphabet[0]
			continue
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code)
}
