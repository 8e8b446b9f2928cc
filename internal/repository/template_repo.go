package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// TemplateRepository persists the global 30-day seed templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]models.DayTemplate, error)
	UpsertBatch(ctx context.Context, templates []models.DayTemplate) (int64, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository instantiates the repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) List(ctx context.Context) ([]models.DayTemplate, error) {
	var templates []models.DayTemplate
	err := r.db.WithContext(ctx).
		Order("day_number ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *templateRepository) UpsertBatch(ctx context.Context, templates []models.DayTemplate) (int64, error) {
	if len(templates) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day_number"}},
		UpdateAll: true,
	}).Create(&templates)

	return result.RowsAffected, result.Error
}
