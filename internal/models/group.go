package models

import "time"

// Group is one private cohort running a 30-day challenge on its own
// schedule. Day numbers map to calendar dates via StartDate in Timezone.
type Group struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	InviteCode string    `gorm:"size:12;uniqueIndex;not null" json:"invite_code"`
	StartDate  string    `gorm:"size:10;not null" json:"start_date"`
	Timezone   string    `gorm:"size:64;not null" json:"timezone"`
	CutoffTime string    `gorm:"size:8;not null" json:"cutoff_time"`
	MaxPlayers int       `gorm:"not null" json:"max_players"`
	Locale     string    `gorm:"size:16;not null;default:ar" json:"locale"`
	CreatedBy  uint      `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	// RoleSupervisor can edit content, override scores, and export reports.
	RoleSupervisor = "supervisor"
	// RolePlayer submits their own daily entries.
	RolePlayer = "player"
)

// GroupMember ties a user to a group under one role and display name.
// Display names are unique within a group.
type GroupMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GroupID     uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	Role        string    `gorm:"size:16;not null" json:"role"`
	DisplayName string    `gorm:"size:64;not null" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsSupervisor reports whether the member holds the supervisor role.
func (m GroupMember) IsSupervisor() bool {
	return m.Role == RoleSupervisor
}
