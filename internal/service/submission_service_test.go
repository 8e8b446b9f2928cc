package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

func challengeGroup() models.Group {
	return models.Group{
		ID:         1,
		Name:       "Circle",
		InviteCode: "QW3RTY",
		StartDate:  "2026-01-01",
		Timezone:   "Asia/Riyadh",
		CutoffTime: "21:00:00",
		MaxPlayers: 10,
		Locale:     "ar",
	}
}

// riyadhTime builds an instant on challenge day `day` at the given local
// hour for the fixture group starting 2026-01-01.
func riyadhTime(t *testing.T, day, hour int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	return time.Date(2026, 1, day, hour, 0, 0, 0, loc)
}

func newSubmissionFixture(t *testing.T, now time.Time, membersList ...models.GroupMember) (*submissionService, *fakeSubmissionRepo, *fakeContentRepo, *captureBoards, *capturePublisher) {
	t.Helper()
	members := newFakeMemberRepo(membersList...)
	groups := newFakeGroupRepo(members, challengeGroup())
	submissions := newFakeSubmissionRepo()
	contents := newFakeContentRepo()
	boards := &captureBoards{}
	events := &capturePublisher{}

	svc := NewSubmissionService(groups, members, submissions, contents, validator.New(validator.WithRequiredStructEnabled()), boards, events, testLogger()).(*submissionService)
	svc.now = func() time.Time { return now }

	return svc, submissions, contents, boards, events
}

func submitRequest(quran, hadith int, fiqh, impact bool) dto.SubmitDayRequest {
	return dto.SubmitDayRequest{QuranPoints: quran, HadithPoints: hadith, FiqhAnswer: &fiqh, ImpactDone: impact}
}

func TestSubmissionServiceSubmitDayScores(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, _, _, boards, events := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)

	saved, err := svc.SubmitDay(context.Background(), 1, 8, 5, submitRequest(3, 2, true, true))
	require.NoError(t, err)
	require.Equal(t, 2, saved.FiqhPoints)
	require.Equal(t, 2, saved.ImpactPoints)
	require.Equal(t, 9, saved.AutoTotal)
	require.Equal(t, 9, saved.TotalPoints)
	require.Nil(t, saved.OverrideTotal)

	require.Equal(t, []uint{1}, boards.invalidated)
	require.Len(t, events.events, 1)
	require.Equal(t, EventSubmissionSaved, events.events[0].Subject)
}

func TestSubmissionServiceAnswerKeyFalse(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, _, contents, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)
	require.NoError(t, contents.UpsertAnswerKey(context.Background(), &models.DayAnswerKey{GroupID: 1, DayNumber: 5, CorrectAnswer: false}))

	saved, err := svc.SubmitDay(context.Background(), 1, 8, 5, submitRequest(3, 2, true, true))
	require.NoError(t, err)
	require.Equal(t, 0, saved.FiqhPoints)
	require.Equal(t, 7, saved.AutoTotal)
}

func TestSubmissionServiceRejectsOutOfRange(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, submissions, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)

	_, err := svc.SubmitDay(context.Background(), 1, 8, 5, submitRequest(4, 0, true, false))
	require.Error(t, err)
	require.Equal(t, 0, submissions.upsertCalls)

	_, err = svc.SubmitDay(context.Background(), 1, 8, 31, submitRequest(1, 1, true, false))
	require.Error(t, err)
}

func TestSubmissionServiceCutoffLocksPlayers(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	supervisor := models.GroupMember{GroupID: 1, UserID: 7, Role: models.RoleSupervisor, DisplayName: "Abu Khalid"}
	svc, submissions, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 22), player, supervisor)

	_, err := svc.SubmitDay(context.Background(), 1, 8, 5, submitRequest(1, 1, true, false))
	require.ErrorIs(t, err, ErrDayLocked)
	require.Equal(t, 0, submissions.upsertCalls)

	// Supervisors are exempt from the cutoff.
	_, err = svc.SubmitDay(context.Background(), 1, 7, 5, submitRequest(1, 1, true, false))
	require.NoError(t, err)
	require.Equal(t, 1, submissions.upsertCalls)
}

func TestSubmissionServicePastDayLocked(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, _, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)

	_, err := svc.SubmitDay(context.Background(), 1, 8, 4, submitRequest(1, 1, true, false))
	require.ErrorIs(t, err, ErrDayLocked)
}

func TestSubmissionServiceResubmissionPreservesOverride(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, submissions, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)

	override := 4
	_, err := submissions.Upsert(context.Background(), &models.Submission{
		GroupID: 1, UserID: 8, DayNumber: 5,
		QuranPoints: 2, HadithPoints: 2, FiqhAnswer: true, ImpactDone: false,
		FiqhPoints: 2, AutoTotal: 6, OverrideTotal: &override, TotalPoints: 4,
	})
	require.NoError(t, err)

	saved, err := svc.SubmitDay(context.Background(), 1, 8, 5, submitRequest(3, 2, true, true))
	require.NoError(t, err)
	require.Equal(t, 9, saved.AutoTotal)
	require.NotNil(t, saved.OverrideTotal)
	require.Equal(t, 4, *saved.OverrideTotal)
	require.Equal(t, 4, saved.TotalPoints)
}

func TestSubmissionServiceHistory(t *testing.T) {
	player := models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"}
	svc, submissions, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10), player)

	for _, day := range []int{1, 2, 3, 5} {
		_, err := submissions.Upsert(context.Background(), &models.Submission{
			GroupID: 1, UserID: 8, DayNumber: day, AutoTotal: 6, TotalPoints: 6,
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Len(t, history.Days, 30)
	require.Equal(t, 24, history.TotalPoints)

	require.Equal(t, scoring.StatusSubmitted, history.Days[0].Status)
	require.Equal(t, scoring.StatusLocked, history.Days[3].Status)
	require.Equal(t, scoring.StatusSubmitted, history.Days[4].Status)
	require.Equal(t, scoring.StatusFuture, history.Days[5].Status)
	require.Equal(t, "2026-01-04", history.Days[3].Date)
}

func TestSubmissionServiceRequiresMembership(t *testing.T) {
	svc, _, _, _, _ := newSubmissionFixture(t, riyadhTime(t, 5, 10))

	_, err := svc.SubmitDay(context.Background(), 1, 99, 5, submitRequest(1, 1, true, false))
	require.ErrorIs(t, err, ErrNotMember)
}
