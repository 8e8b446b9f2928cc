package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// csvHeader is the fixed export column order. Spreadsheets built on top
// of earlier exports key off positions, so the order is part of the
// contract.
var csvHeader = []string{
	"group_id",
	"group_name",
	"day_number",
	"user_id",
	"display_name",
	"quran_points",
	"hadith_points",
	"fiqh_answer",
	"fiqh_points",
	"impact_done",
	"impact_points",
	"auto_total",
	"override_total",
	"total_points",
	"created_at",
	"updated_at",
}

// ReportService produces supervisor-facing exports and per-player reports.
type ReportService interface {
	ExportCSV(ctx context.Context, groupID, userID uint) ([]byte, string, error)
	PlayerReport(ctx context.Context, groupID, supervisorID, playerID uint) (dto.PlayerReportResponse, error)
}

type reportService struct {
	access
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService constructs a ReportService instance.
func NewReportService(groups repository.GroupRepository, members repository.MemberRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		access:      access{groups: groups, members: members},
		submissions: submissions,
		logger:      logger.With().Str("component", "report_service").Logger(),
		now:         time.Now,
	}
}

// ExportCSV renders every submission in the group as CSV, one row per
// (user, day), ordered by day then save time. Returns the file content
// and a suggested filename.
func (s *reportService) ExportCSV(ctx context.Context, groupID, userID uint) ([]byte, string, error) {
	group, _, err := s.requireSupervisor(ctx, groupID, userID)
	if err != nil {
		return nil, "", err
	}

	members, err := s.members.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	names := make(map[uint]string, len(members))
	for _, member := range members {
		names[member.UserID] = member.DisplayName
	}

	submissions, err := s.submissions.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, "", err
	}
	for _, submission := range submissions {
		record := []string{
			strconv.FormatUint(uint64(group.ID), 10),
			group.Name,
			strconv.Itoa(submission.DayNumber),
			strconv.FormatUint(uint64(submission.UserID), 10),
			names[submission.UserID],
			strconv.Itoa(submission.QuranPoints),
			strconv.Itoa(submission.HadithPoints),
			strconv.FormatBool(submission.FiqhAnswer),
			strconv.Itoa(submission.FiqhPoints),
			strconv.FormatBool(submission.ImpactDone),
			strconv.Itoa(submission.ImpactPoints),
			strconv.Itoa(submission.AutoTotal),
			formatOverride(submission.OverrideTotal),
			strconv.Itoa(submission.TotalPoints),
			submission.CreatedAt.UTC().Format(time.RFC3339),
			submission.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := "tahadi-group-" + strconv.FormatUint(uint64(group.ID), 10) + "-" + s.now().UTC().Format("20060102") + ".csv"

	s.logger.Info().
		Uint("group_id", groupID).
		Int("rows", len(submissions)).
		Msg("csv export generated")

	return buf.Bytes(), filename, nil
}

// PlayerReport builds one participant's 30-day grid with streak and
// running total, for supervisor review.
func (s *reportService) PlayerReport(ctx context.Context, groupID, supervisorID, playerID uint) (dto.PlayerReportResponse, error) {
	group, _, err := s.requireSupervisor(ctx, groupID, supervisorID)
	if err != nil {
		return dto.PlayerReportResponse{}, err
	}

	player, err := s.members.GetMember(ctx, groupID, playerID)
	if err != nil {
		return dto.PlayerReportResponse{}, ErrNotMember
	}

	schedule, err := scoring.NewSchedule(group.StartDate, group.Timezone, group.CutoffTime)
	if err != nil {
		return dto.PlayerReportResponse{}, err
	}

	submissions, err := s.submissions.ListByGroupUser(ctx, groupID, playerID)
	if err != nil {
		return dto.PlayerReportResponse{}, err
	}

	byDay := make(map[int]models.Submission, len(submissions))
	submitted := make(map[int]bool, len(submissions))
	for _, submission := range submissions {
		byDay[submission.DayNumber] = submission
		submitted[submission.DayNumber] = true
	}

	now := s.now()
	report := dto.PlayerReportResponse{
		UserID:      player.UserID,
		DisplayName: player.DisplayName,
		Days:        make([]dto.DayCell, 0, scoring.MaxDay),
	}
	for day := scoring.MinDay; day <= scoring.MaxDay; day++ {
		cell := dto.DayCell{
			DayNumber: day,
			Date:      schedule.DayDate(day),
			Status:    schedule.DayStatus(day, submitted[day], player.IsSupervisor(), now),
		}
		if submission, ok := byDay[day]; ok {
			cell.TotalPoints = submission.TotalPoints
			report.TotalPoints += submission.TotalPoints
		}
		report.Days = append(report.Days, cell)
	}

	report.Streak = scoring.Streak(submitted, schedule.CurrentDay(now))

	return report, nil
}

func formatOverride(override *int) string {
	if override == nil {
		return ""
	}
	return strconv.Itoa(*override)
}
