package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// SubmissionRepository defines data operations for daily submissions.
type SubmissionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	GetByKey(ctx context.Context, groupID, userID uint, dayNumber int) (models.Submission, error)
	// Upsert writes the submission keyed by (group, user, day). On conflict
	// only the raw fields and derived auto scores are replaced; an existing
	// override_total is preserved and total_points is resolved against it
	// in the same statement, so a concurrent override is never clobbered.
	Upsert(ctx context.Context, submission *models.Submission) (models.Submission, error)
	ListByGroupDay(ctx context.Context, groupID uint, dayNumber int) ([]models.Submission, error)
	ListByGroupUser(ctx context.Context, groupID, userID uint) ([]models.Submission, error)
	ListByGroup(ctx context.Context, groupID uint) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByKey(ctx context.Context, groupID, userID uint, dayNumber int) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		Where("day_number = ?", dayNumber).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Upsert(ctx context.Context, submission *models.Submission) (models.Submission, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "user_id"}, {Name: "day_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quran_points":  submission.QuranPoints,
			"hadith_points": submission.HadithPoints,
			"fiqh_answer":   submission.FiqhAnswer,
			"impact_done":   submission.ImpactDone,
			"fiqh_points":   submission.FiqhPoints,
			"impact_points": submission.ImpactPoints,
			"auto_total":    submission.AutoTotal,
			"total_points": gorm.Expr(
				"CASE WHEN submissions.override_total IS NOT NULL THEN submissions.override_total ELSE ? END",
				submission.AutoTotal,
			),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(submission).Error
	if err != nil {
		return models.Submission{}, err
	}

	return r.GetByKey(ctx, submission.GroupID, submission.UserID, submission.DayNumber)
}

func (r *submissionRepository) ListByGroupDay(ctx context.Context, groupID uint, dayNumber int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("day_number = ?", dayNumber).
		Order("total_points DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByGroupUser(ctx context.Context, groupID, userID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		Order("day_number ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("day_number ASC").
		Order("updated_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}
