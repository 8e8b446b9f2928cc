package service

import (
	"context"
	"io"
	"sort"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memberKey struct {
	groupID uint
	userID  uint
}

type groupDayKey struct {
	groupID   uint
	dayNumber int
}

type fakeGroupRepo struct {
	groups         map[uint]models.Group
	nextID         uint
	seedCalls      int
	seededContents []models.DayContent
	seededKeys     []models.DayAnswerKey
	members        *fakeMemberRepo
}

func newFakeGroupRepo(members *fakeMemberRepo, groups ...models.Group) *fakeGroupRepo {
	repo := &fakeGroupRepo{groups: map[uint]models.Group{}, nextID: 1, members: members}
	for _, group := range groups {
		repo.groups[group.ID] = group
		if group.ID >= repo.nextID {
			repo.nextID = group.ID + 1
		}
	}
	return repo
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id uint) (models.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return models.Group{}, gorm.ErrRecordNotFound
	}
	return group, nil
}

func (f *fakeGroupRepo) GetByInviteCode(ctx context.Context, code string) (models.Group, error) {
	for _, group := range f.groups {
		if group.InviteCode == code {
			return group, nil
		}
	}
	return models.Group{}, gorm.ErrRecordNotFound
}

func (f *fakeGroupRepo) CreateWithSeed(ctx context.Context, group *models.Group, supervisor *models.GroupMember, contents []models.DayContent, keys []models.DayAnswerKey) error {
	for _, existing := range f.groups {
		if existing.InviteCode == group.InviteCode {
			return gorm.ErrDuplicatedKey
		}
	}
	group.ID = f.nextID
	f.nextID++
	f.groups[group.ID] = *group

	supervisor.GroupID = group.ID
	if f.members != nil {
		if err := f.members.Create(ctx, supervisor); err != nil {
			return err
		}
	}

	f.seedCalls++
	f.seededContents = append([]models.DayContent(nil), contents...)
	f.seededKeys = append([]models.DayAnswerKey(nil), keys...)
	return nil
}

type fakeMemberRepo struct {
	members map[memberKey]models.GroupMember
	nextID  uint
}

func newFakeMemberRepo(members ...models.GroupMember) *fakeMemberRepo {
	repo := &fakeMemberRepo{members: map[memberKey]models.GroupMember{}, nextID: 1}
	for _, member := range members {
		if member.ID == 0 {
			member.ID = repo.nextID
		}
		repo.nextID = member.ID + 1
		repo.members[memberKey{member.GroupID, member.UserID}] = member
	}
	return repo
}

func (f *fakeMemberRepo) GetMember(ctx context.Context, groupID, userID uint) (models.GroupMember, error) {
	member, ok := f.members[memberKey{groupID, userID}]
	if !ok {
		return models.GroupMember{}, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (f *fakeMemberRepo) ListByGroup(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	var out []models.GroupMember
	for key, member := range f.members {
		if key.groupID == groupID {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (f *fakeMemberRepo) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	for key := range f.members {
		if key.groupID == groupID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) DisplayNameTaken(ctx context.Context, groupID uint, displayName string) (bool, error) {
	for key, member := range f.members {
		if key.groupID == groupID && member.DisplayName == displayName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *models.GroupMember) error {
	if member.ID == 0 {
		member.ID = f.nextID
		f.nextID++
	}
	f.members[memberKey{member.GroupID, member.UserID}] = *member
	return nil
}

// fakeSubmissionRepo mirrors the preserve-override upsert contract: a
// re-submission replaces raw fields and AutoTotal but an existing
// OverrideTotal stays and keeps deciding TotalPoints.
type fakeSubmissionRepo struct {
	byID        map[uint]models.Submission
	nextID      uint
	upsertCalls int
}

func newFakeSubmissionRepo(submissions ...models.Submission) *fakeSubmissionRepo {
	repo := &fakeSubmissionRepo{byID: map[uint]models.Submission{}, nextID: 1}
	for _, submission := range submissions {
		if submission.ID == 0 {
			submission.ID = repo.nextID
		}
		repo.nextID = submission.ID + 1
		repo.byID[submission.ID] = submission
	}
	return repo
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	submission, ok := f.byID[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (f *fakeSubmissionRepo) GetByKey(ctx context.Context, groupID, userID uint, dayNumber int) (models.Submission, error) {
	for _, submission := range f.byID {
		if submission.GroupID == groupID && submission.UserID == userID && submission.DayNumber == dayNumber {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) Upsert(ctx context.Context, submission *models.Submission) (models.Submission, error) {
	f.upsertCalls++
	existing, err := f.GetByKey(ctx, submission.GroupID, submission.UserID, submission.DayNumber)
	if err == nil {
		existing.QuranPoints = submission.QuranPoints
		existing.HadithPoints = submission.HadithPoints
		existing.FiqhAnswer = submission.FiqhAnswer
		existing.ImpactDone = submission.ImpactDone
		existing.FiqhPoints = submission.FiqhPoints
		existing.ImpactPoints = submission.ImpactPoints
		existing.AutoTotal = submission.AutoTotal
		existing.TotalPoints = scoring.ResolveTotal(submission.AutoTotal, existing.OverrideTotal)
		f.byID[existing.ID] = existing
		return existing, nil
	}

	submission.ID = f.nextID
	f.nextID++
	f.byID[submission.ID] = *submission
	return *submission, nil
}

func (f *fakeSubmissionRepo) ListByGroupDay(ctx context.Context, groupID uint, dayNumber int) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.byID {
		if submission.GroupID == groupID && submission.DayNumber == dayNumber {
			out = append(out, submission)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPoints > out[j].TotalPoints })
	return out, nil
}

func (f *fakeSubmissionRepo) ListByGroupUser(ctx context.Context, groupID, userID uint) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.byID {
		if submission.GroupID == groupID && submission.UserID == userID {
			out = append(out, submission)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (f *fakeSubmissionRepo) ListByGroup(ctx context.Context, groupID uint) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.byID {
		if submission.GroupID == groupID {
			out = append(out, submission)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayNumber != out[j].DayNumber {
			return out[i].DayNumber < out[j].DayNumber
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

type fakeContentRepo struct {
	contents map[groupDayKey]models.DayContent
	keys     map[groupDayKey]models.DayAnswerKey
	posts    map[groupDayKey]models.DayPost
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		contents: map[groupDayKey]models.DayContent{},
		keys:     map[groupDayKey]models.DayAnswerKey{},
		posts:    map[groupDayKey]models.DayPost{},
	}
}

func (f *fakeContentRepo) GetContent(ctx context.Context, groupID uint, dayNumber int) (models.DayContent, error) {
	content, ok := f.contents[groupDayKey{groupID, dayNumber}]
	if !ok {
		return models.DayContent{}, gorm.ErrRecordNotFound
	}
	return content, nil
}

func (f *fakeContentRepo) ListContents(ctx context.Context, groupID uint) ([]models.DayContent, error) {
	var out []models.DayContent
	for key, content := range f.contents {
		if key.groupID == groupID {
			out = append(out, content)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (f *fakeContentRepo) UpsertContent(ctx context.Context, content *models.DayContent) error {
	f.contents[groupDayKey{content.GroupID, content.DayNumber}] = *content
	return nil
}

func (f *fakeContentRepo) GetAnswerKey(ctx context.Context, groupID uint, dayNumber int) (models.DayAnswerKey, error) {
	key, ok := f.keys[groupDayKey{groupID, dayNumber}]
	if !ok {
		return models.DayAnswerKey{}, gorm.ErrRecordNotFound
	}
	return key, nil
}

func (f *fakeContentRepo) ListAnswerKeys(ctx context.Context, groupID uint) ([]models.DayAnswerKey, error) {
	var out []models.DayAnswerKey
	for k, key := range f.keys {
		if k.groupID == groupID {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (f *fakeContentRepo) UpsertAnswerKey(ctx context.Context, key *models.DayAnswerKey) error {
	f.keys[groupDayKey{key.GroupID, key.DayNumber}] = *key
	return nil
}

func (f *fakeContentRepo) GetDayPost(ctx context.Context, groupID uint, dayNumber int) (models.DayPost, error) {
	post, ok := f.posts[groupDayKey{groupID, dayNumber}]
	if !ok {
		return models.DayPost{}, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (f *fakeContentRepo) UpsertDayPost(ctx context.Context, post *models.DayPost) error {
	f.posts[groupDayKey{post.GroupID, post.DayNumber}] = *post
	return nil
}

type fakeTemplateRepo struct {
	templates []models.DayTemplate
	upserted  int64
}

func (f *fakeTemplateRepo) List(ctx context.Context) ([]models.DayTemplate, error) {
	return f.templates, nil
}

func (f *fakeTemplateRepo) UpsertBatch(ctx context.Context, templates []models.DayTemplate) (int64, error) {
	f.templates = append([]models.DayTemplate(nil), templates...)
	f.upserted = int64(len(templates))
	return f.upserted, nil
}

// fakeOverrideRepo applies overrides against a fakeSubmissionRepo and keeps
// the audit entries it wrote.
type fakeOverrideRepo struct {
	submissions *fakeSubmissionRepo
	logs        []models.OverrideLog
}

func (f *fakeOverrideRepo) Apply(ctx context.Context, submissionID uint, newOverrideTotal *int, reason string, supervisorID uint) (models.Submission, models.OverrideLog, error) {
	submission, ok := f.submissions.byID[submissionID]
	if !ok {
		return models.Submission{}, models.OverrideLog{}, gorm.ErrRecordNotFound
	}

	entry := models.OverrideLog{
		ID:                    uint(len(f.logs) + 1),
		SubmissionID:          submission.ID,
		GroupID:               submission.GroupID,
		SupervisorID:          supervisorID,
		PreviousOverrideTotal: submission.OverrideTotal,
		NewOverrideTotal:      newOverrideTotal,
		PreviousTotalPoints:   submission.TotalPoints,
		NewTotalPoints:        scoring.ResolveTotal(submission.AutoTotal, newOverrideTotal),
		Reason:                reason,
	}

	submission.OverrideTotal = newOverrideTotal
	submission.TotalPoints = entry.NewTotalPoints
	f.submissions.byID[submission.ID] = submission
	f.logs = append(f.logs, entry)

	return submission, entry, nil
}

func (f *fakeOverrideRepo) ListByGroup(ctx context.Context, groupID uint, limit int) ([]models.OverrideLog, error) {
	var out []models.OverrideLog
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].GroupID == groupID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeOverrideRepo) ListBySubmission(ctx context.Context, submissionID uint) ([]models.OverrideLog, error) {
	var out []models.OverrideLog
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].SubmissionID == submissionID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

type capturePublisher struct {
	events []Event
}

func (p *capturePublisher) Publish(event Event) {
	p.events = append(p.events, event)
}

type captureActivity struct {
	entries []ActivityEntry
}

func (a *captureActivity) Record(ctx context.Context, entry ActivityEntry) {
	a.entries = append(a.entries, entry)
}

type captureBoards struct {
	invalidated []uint
}

func (b *captureBoards) InvalidateBoards(ctx context.Context, groupID uint) {
	b.invalidated = append(b.invalidated, groupID)
}

var (
	_ repository.GroupRepository      = (*fakeGroupRepo)(nil)
	_ repository.MemberRepository     = (*fakeMemberRepo)(nil)
	_ repository.SubmissionRepository = (*fakeSubmissionRepo)(nil)
	_ repository.ContentRepository    = (*fakeContentRepo)(nil)
	_ repository.TemplateRepository   = (*fakeTemplateRepo)(nil)
	_ repository.OverrideRepository   = (*fakeOverrideRepo)(nil)
)
