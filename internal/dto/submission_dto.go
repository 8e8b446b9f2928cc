package dto

import (
	"time"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// SubmitDayRequest carries a participant's raw inputs for one day.
// FiqhAnswer is a pointer so that an omitted answer fails validation
// instead of silently defaulting to false.
type SubmitDayRequest struct {
	QuranPoints  int   `json:"quran_points" validate:"gte=0,lte=3"`
	HadithPoints int   `json:"hadith_points" validate:"gte=0,lte=3"`
	FiqhAnswer   *bool `json:"fiqh_answer" validate:"required"`
	ImpactDone   bool  `json:"impact_done"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID            uint      `json:"id"`
	GroupID       uint      `json:"group_id"`
	UserID        uint      `json:"user_id"`
	DayNumber     int       `json:"day_number"`
	QuranPoints   int       `json:"quran_points"`
	HadithPoints  int       `json:"hadith_points"`
	FiqhAnswer    bool      `json:"fiqh_answer"`
	ImpactDone    bool      `json:"impact_done"`
	FiqhPoints    int       `json:"fiqh_points"`
	ImpactPoints  int       `json:"impact_points"`
	AutoTotal     int       `json:"auto_total"`
	OverrideTotal *int      `json:"override_total"`
	TotalPoints   int       `json:"total_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            model.ID,
		GroupID:       model.GroupID,
		UserID:        model.UserID,
		DayNumber:     model.DayNumber,
		QuranPoints:   model.QuranPoints,
		HadithPoints:  model.HadithPoints,
		FiqhAnswer:    model.FiqhAnswer,
		ImpactDone:    model.ImpactDone,
		FiqhPoints:    model.FiqhPoints,
		ImpactPoints:  model.ImpactPoints,
		AutoTotal:     model.AutoTotal,
		OverrideTotal: model.OverrideTotal,
		TotalPoints:   model.TotalPoints,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// DayCell is one slot of a participant's 30-day history grid.
type DayCell struct {
	DayNumber   int               `json:"day_number"`
	Date        string            `json:"date"`
	Status      scoring.DayStatus `json:"status"`
	TotalPoints int               `json:"total_points"`
}

// HistoryResponse is the full 30-day grid plus the running total.
type HistoryResponse struct {
	TotalPoints int       `json:"total_points"`
	Days        []DayCell `json:"days"`
}
