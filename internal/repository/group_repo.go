package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// GroupRepository defines data operations for challenge groups.
type GroupRepository interface {
	GetByID(ctx context.Context, id uint) (models.Group, error)
	GetByInviteCode(ctx context.Context, code string) (models.Group, error)
	// CreateWithSeed inserts the group, its supervisor membership, and the
	// seeded day contents and answer keys in one transaction.
	CreateWithSeed(ctx context.Context, group *models.Group, supervisor *models.GroupMember, contents []models.DayContent, keys []models.DayAnswerKey) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository instantiates the repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return models.Group{}, err
	}

	return group, nil
}

func (r *groupRepository) GetByInviteCode(ctx context.Context, code string) (models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&group).Error; err != nil {
		return models.Group{}, err
	}

	return group, nil
}

func (r *groupRepository) CreateWithSeed(ctx context.Context, group *models.Group, supervisor *models.GroupMember, contents []models.DayContent, keys []models.DayAnswerKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		supervisor.GroupID = group.ID
		if err := tx.Create(supervisor).Error; err != nil {
			return err
		}

		for i := range contents {
			contents[i].GroupID = group.ID
		}
		if len(contents) > 0 {
			if err := tx.Create(&contents).Error; err != nil {
				return err
			}
		}

		for i := range keys {
			keys[i].GroupID = group.ID
		}
		if len(keys) > 0 {
			if err := tx.Create(&keys).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
