package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
)

func newOverrideFixture(t *testing.T, submissions ...models.Submission) (OverrideService, *fakeOverrideRepo, *captureBoards, *captureActivity) {
	t.Helper()
	members := newFakeMemberRepo(
		models.GroupMember{GroupID: 1, UserID: 7, Role: models.RoleSupervisor, DisplayName: "Abu Khalid"},
		models.GroupMember{GroupID: 1, UserID: 8, Role: models.RolePlayer, DisplayName: "Huda"},
	)
	groups := newFakeGroupRepo(members, challengeGroup())
	subRepo := newFakeSubmissionRepo(submissions...)
	overrides := &fakeOverrideRepo{submissions: subRepo}
	boards := &captureBoards{}
	activity := &captureActivity{}

	svc := NewOverrideService(groups, members, overrides, subRepo, validator.New(validator.WithRequiredStructEnabled()), activity, boards, &capturePublisher{}, testLogger())

	return svc, overrides, boards, activity
}

func TestOverrideServiceApplyWritesAudit(t *testing.T) {
	svc, overrides, boards, activity := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, TotalPoints: 6,
	})

	newTotal := 9
	result, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "manual recount"}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.NoError(t, err)

	require.NotNil(t, result.Submission.OverrideTotal)
	require.Equal(t, 9, *result.Submission.OverrideTotal)
	require.Equal(t, 9, result.Submission.TotalPoints)
	require.Equal(t, 6, result.Submission.AutoTotal)

	require.Nil(t, result.LogEntry.PreviousOverrideTotal)
	require.NotNil(t, result.LogEntry.NewOverrideTotal)
	require.Equal(t, 9, *result.LogEntry.NewOverrideTotal)
	require.Equal(t, 6, result.LogEntry.PreviousTotalPoints)
	require.Equal(t, 9, result.LogEntry.NewTotalPoints)
	require.Equal(t, "manual recount", result.LogEntry.Reason)
	require.Equal(t, uint(7), result.LogEntry.SupervisorID)

	require.Len(t, overrides.logs, 1)
	require.Equal(t, []uint{1}, boards.invalidated)
	require.Len(t, activity.entries, 1)
	require.Equal(t, "submission.overridden", activity.entries[0].Action)
}

func TestOverrideServiceClearRevertsToAuto(t *testing.T) {
	existing := 9
	svc, overrides, _, _ := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, OverrideTotal: &existing, TotalPoints: 9,
	})

	result, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: nil, Reason: "score stands as computed"}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.NoError(t, err)

	require.Nil(t, result.Submission.OverrideTotal)
	require.Equal(t, 6, result.Submission.TotalPoints)

	require.NotNil(t, result.LogEntry.PreviousOverrideTotal)
	require.Equal(t, 9, *result.LogEntry.PreviousOverrideTotal)
	require.Nil(t, result.LogEntry.NewOverrideTotal)
	require.Equal(t, 9, result.LogEntry.PreviousTotalPoints)
	require.Equal(t, 6, result.LogEntry.NewTotalPoints)
	require.Len(t, overrides.logs, 1)
}

func TestOverrideServiceRequiresReason(t *testing.T) {
	svc, overrides, _, _ := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, TotalPoints: 6,
	})

	newTotal := 9
	_, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "   "}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.ErrorIs(t, err, ErrEmptyReason)
	require.Empty(t, overrides.logs)
}

func TestOverrideServiceRejectsOutOfRange(t *testing.T) {
	svc, overrides, _, _ := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, TotalPoints: 6,
	})

	newTotal := 11
	_, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "typo"}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.Error(t, err)
	require.Empty(t, overrides.logs)
}

func TestOverrideServiceRequiresSupervisor(t *testing.T) {
	svc, overrides, _, _ := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, TotalPoints: 6,
	})

	newTotal := 9
	_, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "nope"}, ActivityActor{ID: 8, Role: models.RolePlayer})
	require.ErrorIs(t, err, ErrNotSupervisor)
	require.Empty(t, overrides.logs)
}

func TestOverrideServiceUnknownSubmission(t *testing.T) {
	svc, _, _, _ := newOverrideFixture(t)

	newTotal := 9
	_, err := svc.Apply(context.Background(), 42, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "missing"}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestOverrideServiceListRequiresSupervisor(t *testing.T) {
	svc, overrides, _, _ := newOverrideFixture(t, models.Submission{
		ID: 1, GroupID: 1, UserID: 8, DayNumber: 5, AutoTotal: 6, TotalPoints: 6,
	})

	newTotal := 9
	_, err := svc.Apply(context.Background(), 1, dto.OverrideRequest{OverrideTotal: &newTotal, Reason: "recount"}, ActivityActor{ID: 7, Role: models.RoleSupervisor})
	require.NoError(t, err)
	require.Len(t, overrides.logs, 1)

	entries, err := svc.ListByGroup(context.Background(), 1, 7, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = svc.ListByGroup(context.Background(), 1, 8, 0)
	require.ErrorIs(t, err, ErrNotSupervisor)
}
