package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

func newLeaderboardFixture(t *testing.T, cache *redis.Client) (*leaderboardService, *fakeSubmissionRepo) {
	t.Helper()
	members := newFakeMemberRepo(
		models.GroupMember{GroupID: 1, UserID: 7, Role: models.RoleSupervisor, DisplayName: "خالد"},
		models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "بدر"},
		models.GroupMember{GroupID: 1, UserID: 9, Role: models.RolePlayer, DisplayName: "أحمد"},
	)
	groups := newFakeGroupRepo(members, challengeGroup())
	submissions := newFakeSubmissionRepo(
		// Day 4 and day 5 scores; user 9 skipped day 4.
		models.Submission{ID: 1, GroupID: 1, UserID: 7, DayNumber: 4, AutoTotal: 6, TotalPoints: 6},
		models.Submission{ID: 2, GroupID: 1, UserID: 8, DayNumber: 4, AutoTotal: 4, TotalPoints: 4},
		models.Submission{ID: 3, GroupID: 1, UserID: 7, DayNumber: 5, AutoTotal: 6, TotalPoints: 6},
		models.Submission{ID: 4, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 8, TotalPoints: 8},
		models.Submission{ID: 5, GroupID: 1, UserID: 9, DayNumber: 5, AutoTotal: 8, TotalPoints: 8},
	)

	svc := NewLeaderboardService(groups, members, submissions, cache, time.Minute, testLogger()).(*leaderboardService)
	svc.now = func() time.Time { return riyadhTime(t, 5, 10) }

	return svc, submissions
}

func TestLeaderboardServiceDailyBoard(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	board, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardDaily, 0)
	require.NoError(t, err)
	require.Equal(t, dto.LeaderboardDaily, board.Tab)
	require.Equal(t, 5, board.DayNumber)
	require.Len(t, board.Rows, 3)

	// Users 8 and 9 tie on 8 points; the tie breaks on the Arabic
	// collation of display names, so أحمد lists before بدر at the same rank.
	require.Equal(t, 1, board.Rows[0].Rank)
	require.Equal(t, "أحمد", board.Rows[0].DisplayName)
	require.Equal(t, 1, board.Rows[1].Rank)
	require.Equal(t, "بدر", board.Rows[1].DisplayName)
	require.Equal(t, 3, board.Rows[2].Rank)
	require.Equal(t, uint(7), board.Rows[2].UserID)
}

func TestLeaderboardServiceOverallBoard(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	board, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardOverall, 0)
	require.NoError(t, err)
	require.Len(t, board.Rows, 3)
	require.Equal(t, uint(8), board.Rows[0].UserID)
	require.Equal(t, 12, board.Rows[0].Score)
	require.Equal(t, 1, board.Rows[0].Rank)
	require.Equal(t, uint(7), board.Rows[1].UserID)
	require.Equal(t, 12, board.Rows[1].Score)
}

func TestLeaderboardServiceStreaksBoard(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	board, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardStreaks, 0)
	require.NoError(t, err)
	require.Len(t, board.Rows, 3)

	scores := map[uint]int{}
	for _, row := range board.Rows {
		scores[row.UserID] = row.Score
	}
	require.Equal(t, 2, scores[7])
	require.Equal(t, 2, scores[8])
	// User 9 missed day 4, so the run counts from day 5 only.
	require.Equal(t, 1, scores[9])
}

func TestLeaderboardServiceCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	svc, submissions := newLeaderboardFixture(t, redisClient)

	board, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardOverall, 0)
	require.NoError(t, err)
	require.Equal(t, 12, board.Rows[0].Score)

	// Mutate the repo; the cached board keeps serving the old rows.
	for id, submission := range submissions.byID {
		submission.TotalPoints = 0
		submissions.byID[id] = submission
	}

	cached, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardOverall, 0)
	require.NoError(t, err)
	require.Equal(t, 12, cached.Rows[0].Score)

	svc.InvalidateBoards(context.Background(), 1)

	rebuilt, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardOverall, 0)
	require.NoError(t, err)
	require.Equal(t, 0, rebuilt.Rows[0].Score)
}

func TestLeaderboardServiceDailyBoardForPastDay(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	board, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardDaily, 4)
	require.NoError(t, err)
	require.Equal(t, 4, board.DayNumber)

	scores := map[uint]int{}
	for _, row := range board.Rows {
		scores[row.UserID] = row.Score
	}
	require.Equal(t, 6, scores[7])
	require.Equal(t, 4, scores[8])
	// User 9 skipped day 4 and stays on the board with zero.
	require.Equal(t, 0, scores[9])
}

func TestLeaderboardServiceRejectsDayOutOfRange(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	var oor scoring.ErrOutOfRange
	_, err := svc.Board(context.Background(), 1, 8, dto.LeaderboardDaily, 31)
	require.ErrorAs(t, err, &oor)

	_, err = svc.Board(context.Background(), 1, 8, dto.LeaderboardDaily, -1)
	require.ErrorAs(t, err, &oor)
}

func TestLeaderboardServiceUnknownTab(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	_, err := svc.Board(context.Background(), 1, 8, "weekly", 0)
	require.Error(t, err)
}

func TestLeaderboardServiceRequiresMembership(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, nil)

	_, err := svc.Board(context.Background(), 1, 99, dto.LeaderboardOverall, 0)
	require.ErrorIs(t, err, ErrNotMember)
}
