package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// BoardInvalidator drops cached leaderboards after a scoring write.
type BoardInvalidator interface {
	InvalidateBoards(ctx context.Context, groupID uint)
}

// LeaderboardService produces the daily, overall, and streak boards.
// Day 0 resolves to the group's current challenge day; any other value
// pins the board to that day.
type LeaderboardService interface {
	BoardInvalidator
	Board(ctx context.Context, groupID, userID uint, tab string, day int) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	access
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewLeaderboardService builds the leaderboard aggregator.
func NewLeaderboardService(groups repository.GroupRepository, members repository.MemberRepository, submissions repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		access:      access{groups: groups, members: members},
		submissions: submissions,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "leaderboard_service").Logger(),
		now:         time.Now,
	}
}

func boardCacheKey(groupID uint, tab string, day int) string {
	return fmt.Sprintf("board:group:%d:%s:%d", groupID, tab, day)
}

func (s *leaderboardService) Board(ctx context.Context, groupID, userID uint, tab string, day int) (dto.LeaderboardResponse, error) {
	switch tab {
	case dto.LeaderboardDaily, dto.LeaderboardOverall, dto.LeaderboardStreaks:
	default:
		return dto.LeaderboardResponse{}, fmt.Errorf("unknown leaderboard tab %q", tab)
	}
	if day != 0 {
		if err := scoring.ValidateDay(day); err != nil {
			return dto.LeaderboardResponse{}, err
		}
	}

	group, _, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	schedule, err := scoring.NewSchedule(group.StartDate, group.Timezone, group.CutoffTime)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}
	if day == 0 {
		day = schedule.CurrentDay(s.now())
	}

	cacheKey := boardCacheKey(groupID, tab, day)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("group_id", groupID).Str("tab", tab).Msg("board cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read board cache")
		}
	}

	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	submissions, err := s.submissions.ListByGroup(ctx, groupID)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	response := s.buildBoard(group, members, submissions, tab, day)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store board cache")
			}
		}
	}

	return response, nil
}

func (s *leaderboardService) buildBoard(group models.Group, members []models.GroupMember, submissions []models.Submission, tab string, day int) dto.LeaderboardResponse {
	type userDays struct {
		byDay map[int]int
		total int
	}

	byUser := make(map[uint]*userDays, len(members))
	for _, member := range members {
		byUser[member.UserID] = &userDays{byDay: map[int]int{}}
	}
	for _, submission := range submissions {
		entry, ok := byUser[submission.UserID]
		if !ok {
			continue
		}
		entry.byDay[submission.DayNumber] = submission.TotalPoints
		entry.total += submission.TotalPoints
	}

	standings := make([]scoring.Standing, 0, len(members))
	for _, member := range members {
		entry := byUser[member.UserID]
		var score int
		switch tab {
		case dto.LeaderboardDaily:
			score = entry.byDay[day]
		case dto.LeaderboardOverall:
			score = entry.total
		case dto.LeaderboardStreaks:
			submitted := make(map[int]bool, len(entry.byDay))
			for d := range entry.byDay {
				submitted[d] = true
			}
			score = scoring.Streak(submitted, day)
		}
		standings = append(standings, scoring.Standing{
			UserID: member.UserID,
			Name:   member.DisplayName,
			Score:  score,
		})
	}

	scoring.SortStandings(standings, localeTag(group.Locale))

	rows := make([]dto.LeaderboardRow, 0, len(standings))
	for _, standing := range standings {
		rows = append(rows, dto.LeaderboardRow{
			Rank:        scoring.RankOf(standings, standing.Score),
			UserID:      standing.UserID,
			DisplayName: standing.Name,
			Score:       standing.Score,
		})
	}

	return dto.LeaderboardResponse{Tab: tab, DayNumber: day, Rows: rows}
}

func (s *leaderboardService) InvalidateBoards(ctx context.Context, groupID uint) {
	if s.cache == nil {
		return
	}

	pattern := fmt.Sprintf("board:group:%d:*", groupID)
	iter := s.cache.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Str("key", iter.Val()).Msg("failed to invalidate board cache")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("board cache scan failed")
	}
}

func localeTag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Arabic
	}
	return tag
}
