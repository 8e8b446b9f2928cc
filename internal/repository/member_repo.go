package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// MemberRepository defines data operations for group membership.
type MemberRepository interface {
	GetMember(ctx context.Context, groupID, userID uint) (models.GroupMember, error)
	ListByGroup(ctx context.Context, groupID uint) ([]models.GroupMember, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	DisplayNameTaken(ctx context.Context, groupID uint, displayName string) (bool, error)
	Create(ctx context.Context, member *models.GroupMember) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository instantiates the repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetMember(ctx context.Context, groupID, userID uint) (models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		return models.GroupMember{}, err
	}

	return member, nil
}

func (r *memberRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("display_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error

	return count, err
}

func (r *memberRepository) DisplayNameTaken(ctx context.Context, groupID uint, displayName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Where("display_name = ?", displayName).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}
