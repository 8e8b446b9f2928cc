package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
)

// access resolves a caller's group and membership. Services embed it so
// every operation runs the same group-scoping checks before touching data.
type access struct {
	groups  repository.GroupRepository
	members repository.MemberRepository
}

func (a access) requireMember(ctx context.Context, groupID, userID uint) (models.Group, models.GroupMember, error) {
	group, err := a.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Group{}, models.GroupMember{}, ErrGroupNotFound
		}
		return models.Group{}, models.GroupMember{}, err
	}

	member, err := a.members.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Group{}, models.GroupMember{}, ErrNotMember
		}
		return models.Group{}, models.GroupMember{}, err
	}

	return group, member, nil
}

func (a access) requireSupervisor(ctx context.Context, groupID, userID uint) (models.Group, models.GroupMember, error) {
	group, member, err := a.requireMember(ctx, groupID, userID)
	if err != nil {
		return models.Group{}, models.GroupMember{}, err
	}
	if !member.IsSupervisor() {
		return models.Group{}, models.GroupMember{}, ErrNotSupervisor
	}

	return group, member, nil
}
