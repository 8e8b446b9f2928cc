package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// OverrideRepository applies supervisor score overrides and serves the
// audit trail.
type OverrideRepository interface {
	// Apply sets the submission's override total and appends the audit
	// entry in one transaction. The previous values recorded in the log are
	// read under a row lock inside the same transaction, so no concurrent
	// override can interleave between read and commit.
	Apply(ctx context.Context, submissionID uint, newOverrideTotal *int, reason string, supervisorID uint) (models.Submission, models.OverrideLog, error)
	ListByGroup(ctx context.Context, groupID uint, limit int) ([]models.OverrideLog, error)
	ListBySubmission(ctx context.Context, submissionID uint) ([]models.OverrideLog, error)
}

type overrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository instantiates the repository.
func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

func (r *overrideRepository) Apply(ctx context.Context, submissionID uint, newOverrideTotal *int, reason string, supervisorID uint) (models.Submission, models.OverrideLog, error) {
	var (
		submission models.Submission
		entry      models.OverrideLog
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&submission, submissionID).Error; err != nil {
			return err
		}

		entry = models.OverrideLog{
			SubmissionID:          submission.ID,
			GroupID:               submission.GroupID,
			SupervisorID:          supervisorID,
			PreviousOverrideTotal: submission.OverrideTotal,
			NewOverrideTotal:      newOverrideTotal,
			PreviousTotalPoints:   submission.TotalPoints,
			Reason:                reason,
		}

		submission.OverrideTotal = newOverrideTotal
		submission.TotalPoints = scoring.ResolveTotal(submission.AutoTotal, newOverrideTotal)
		entry.NewTotalPoints = submission.TotalPoints

		if err := tx.Save(&submission).Error; err != nil {
			return err
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.Submission{}, models.OverrideLog{}, err
	}

	return submission, entry, nil
}

func (r *overrideRepository) ListByGroup(ctx context.Context, groupID uint, limit int) ([]models.OverrideLog, error) {
	query := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.OverrideLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *overrideRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]models.OverrideLog, error) {
	var entries []models.OverrideLog
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
