package models

import "time"

// DayContent holds the supervisor-editable texts shown for one challenge
// day of one group.
type DayContent struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	GroupID           uint      `gorm:"not null;uniqueIndex:idx_content_group_day" json:"group_id"`
	DayNumber         int       `gorm:"not null;uniqueIndex:idx_content_group_day" json:"day_number"`
	HadithText        string    `gorm:"type:text" json:"hadith_text"`
	FiqhStatementText string    `gorm:"type:text" json:"fiqh_statement_text"`
	ImpactTaskText    string    `gorm:"type:text" json:"impact_task_text"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DayAnswerKey stores the correct true/false answer for a day's fiqh
// statement. Rows are created lazily on the first supervisor edit; a
// missing row means the answer defaults to true.
type DayAnswerKey struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GroupID       uint      `gorm:"not null;uniqueIndex:idx_key_group_day" json:"group_id"`
	DayNumber     int       `gorm:"not null;uniqueIndex:idx_key_group_day" json:"day_number"`
	CorrectAnswer bool      `gorm:"not null" json:"correct_answer"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultCorrectAnswer is assumed whenever no DayAnswerKey row exists.
const DefaultCorrectAnswer = true

// DayPost records that the supervisor published the day's challenge card.
type DayPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_post_group_day" json:"group_id"`
	DayNumber int       `gorm:"not null;uniqueIndex:idx_post_group_day" json:"day_number"`
	PostedBy  uint      `gorm:"not null" json:"posted_by"`
	PostedAt  time.Time `json:"posted_at"`
}

// DayTemplate is global seed content copied into a group's DayContent and
// DayAnswerKey rows when the group is created.
type DayTemplate struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DayNumber         int       `gorm:"not null;uniqueIndex" json:"day_number"`
	HadithText        string    `gorm:"type:text;not null" json:"hadith_text"`
	FiqhStatementText string    `gorm:"type:text;not null" json:"fiqh_statement_text"`
	ImpactTaskText    string    `gorm:"type:text;not null" json:"impact_task_text"`
	CorrectAnswer     bool      `gorm:"not null" json:"correct_answer"`
	UpdatedAt         time.Time `json:"updated_at"`
}
