package models

import "time"

// OverrideLog is the append-only audit record written every time a
// supervisor changes a submission's override total, including clearing it.
// Rows are never mutated after creation and are listed most recent first.
type OverrideLog struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SubmissionID uint `gorm:"not null;index" json:"submission_id"`
	GroupID      uint `gorm:"not null;index" json:"group_id"`
	SupervisorID uint `gorm:"not null" json:"supervisor_id"`

	PreviousOverrideTotal *int `json:"previous_override_total"`
	NewOverrideTotal      *int `json:"new_override_total"`
	PreviousTotalPoints   int  `gorm:"not null" json:"previous_total_points"`
	NewTotalPoints        int  `gorm:"not null" json:"new_total_points"`

	Reason    string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
