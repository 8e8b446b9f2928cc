package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// ContentRepository defines data operations for day contents, answer keys,
// and day posts.
type ContentRepository interface {
	GetContent(ctx context.Context, groupID uint, dayNumber int) (models.DayContent, error)
	ListContents(ctx context.Context, groupID uint) ([]models.DayContent, error)
	UpsertContent(ctx context.Context, content *models.DayContent) error
	GetAnswerKey(ctx context.Context, groupID uint, dayNumber int) (models.DayAnswerKey, error)
	ListAnswerKeys(ctx context.Context, groupID uint) ([]models.DayAnswerKey, error)
	UpsertAnswerKey(ctx context.Context, key *models.DayAnswerKey) error
	GetDayPost(ctx context.Context, groupID uint, dayNumber int) (models.DayPost, error)
	UpsertDayPost(ctx context.Context, post *models.DayPost) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository instantiates the repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func groupDayConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "day_number"}},
		UpdateAll: true,
	}
}

func (r *contentRepository) GetContent(ctx context.Context, groupID uint, dayNumber int) (models.DayContent, error) {
	var content models.DayContent
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("day_number = ?", dayNumber).
		First(&content).Error
	if err != nil {
		return models.DayContent{}, err
	}

	return content, nil
}

func (r *contentRepository) ListContents(ctx context.Context, groupID uint) ([]models.DayContent, error) {
	var contents []models.DayContent
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("day_number ASC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}

	return contents, nil
}

func (r *contentRepository) UpsertContent(ctx context.Context, content *models.DayContent) error {
	return r.db.WithContext(ctx).Clauses(groupDayConflict()).Create(content).Error
}

func (r *contentRepository) GetAnswerKey(ctx context.Context, groupID uint, dayNumber int) (models.DayAnswerKey, error) {
	var key models.DayAnswerKey
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("day_number = ?", dayNumber).
		First(&key).Error
	if err != nil {
		return models.DayAnswerKey{}, err
	}

	return key, nil
}

func (r *contentRepository) ListAnswerKeys(ctx context.Context, groupID uint) ([]models.DayAnswerKey, error) {
	var keys []models.DayAnswerKey
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("day_number ASC").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func (r *contentRepository) UpsertAnswerKey(ctx context.Context, key *models.DayAnswerKey) error {
	return r.db.WithContext(ctx).Clauses(groupDayConflict()).Create(key).Error
}

func (r *contentRepository) GetDayPost(ctx context.Context, groupID uint, dayNumber int) (models.DayPost, error) {
	var post models.DayPost
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("day_number = ?", dayNumber).
		First(&post).Error
	if err != nil {
		return models.DayPost{}, err
	}

	return post, nil
}

func (r *contentRepository) UpsertDayPost(ctx context.Context, post *models.DayPost) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "day_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"posted_by", "posted_at"}),
	}).Create(post).Error
}
