package models

import "time"

// Submission is one participant's scored entry for one challenge day.
// Exactly one row exists per (group, user, day); re-submission replaces the
// raw fields and recomputes AutoTotal but never touches OverrideTotal.
type Submission struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	GroupID   uint `gorm:"not null;uniqueIndex:idx_sub_group_user_day" json:"group_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_sub_group_user_day" json:"user_id"`
	DayNumber int  `gorm:"not null;uniqueIndex:idx_sub_group_user_day" json:"day_number"`

	QuranPoints  int  `gorm:"not null" json:"quran_points"`
	HadithPoints int  `gorm:"not null" json:"hadith_points"`
	FiqhAnswer   bool `gorm:"not null" json:"fiqh_answer"`
	ImpactDone   bool `gorm:"not null" json:"impact_done"`

	FiqhPoints    int  `gorm:"not null" json:"fiqh_points"`
	ImpactPoints  int  `gorm:"not null" json:"impact_points"`
	AutoTotal     int  `gorm:"not null" json:"auto_total"`
	OverrideTotal *int `json:"override_total"`
	TotalPoints   int  `gorm:"not null" json:"total_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOverridden reports whether a supervisor override supersedes AutoTotal.
func (s Submission) IsOverridden() bool {
	return s.OverrideTotal != nil
}
