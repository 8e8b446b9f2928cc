package dto

import (
	"time"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// GroupCreateRequest is the payload for creating a challenge group.
type GroupCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=128"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=64"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Timezone    string `json:"timezone" validate:"required"`
	CutoffTime  string `json:"cutoff_time" validate:"required,datetime=15:04:05"`
	MaxPlayers  int    `json:"max_players" validate:"required,gte=2,lte=20"`
	Locale      string `json:"locale" validate:"omitempty,bcp47_language_tag"`
}

// GroupJoinRequest is the payload for joining a group by invite code.
type GroupJoinRequest struct {
	InviteCode  string `json:"invite_code" validate:"required,len=6"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=64"`
}

// GroupResponse is returned to API clients when viewing a group.
type GroupResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	StartDate  string    `json:"start_date"`
	Timezone   string    `json:"timezone"`
	CutoffTime string    `json:"cutoff_time"`
	MaxPlayers int       `json:"max_players"`
	Locale     string    `json:"locale"`
	CreatedAt  time.Time `json:"created_at"`
}

// MemberResponse summarizes one group member.
type MemberResponse struct {
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// NewGroupResponse converts a Group model into a DTO.
func NewGroupResponse(model models.Group) GroupResponse {
	return GroupResponse{
		ID:         model.ID,
		Name:       model.Name,
		InviteCode: model.InviteCode,
		StartDate:  model.StartDate,
		Timezone:   model.Timezone,
		CutoffTime: model.CutoffTime,
		MaxPlayers: model.MaxPlayers,
		Locale:     model.Locale,
		CreatedAt:  model.CreatedAt,
	}
}

// NewMemberResponseSlice converts member models into DTOs.
func NewMemberResponseSlice(members []models.GroupMember) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, MemberResponse{
			UserID:      member.UserID,
			Role:        member.Role,
			DisplayName: member.DisplayName,
		})
	}

	return responses
}
