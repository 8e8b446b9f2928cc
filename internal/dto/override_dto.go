package dto

import (
	"time"

	"github.com/tahadi-app/tahadi-api/internal/models"
)

// OverrideRequest is the supervisor payload for overriding a submission's
// total. A nil OverrideTotal clears the override and reverts to
// auto-scoring; the reason is mandatory either way.
type OverrideRequest struct {
	OverrideTotal *int   `json:"override_total" validate:"omitempty,gte=0,lte=10"`
	Reason        string `json:"reason" validate:"required"`
}

// OverrideLogResponse serializes one audit trail entry.
type OverrideLogResponse struct {
	ID                    uint      `json:"id"`
	SubmissionID          uint      `json:"submission_id"`
	GroupID               uint      `json:"group_id"`
	SupervisorID          uint      `json:"supervisor_id"`
	PreviousOverrideTotal *int      `json:"previous_override_total"`
	NewOverrideTotal      *int      `json:"new_override_total"`
	PreviousTotalPoints   int       `json:"previous_total_points"`
	NewTotalPoints        int       `json:"new_total_points"`
	Reason                string    `json:"reason"`
	CreatedAt             time.Time `json:"created_at"`
}

// OverrideResult bundles the updated submission with its audit entry so a
// caller can refresh derived views without a second read.
type OverrideResult struct {
	Submission SubmissionResponse  `json:"submission"`
	LogEntry   OverrideLogResponse `json:"log_entry"`
}

// NewOverrideLogResponse converts an OverrideLog model into a DTO.
func NewOverrideLogResponse(model models.OverrideLog) OverrideLogResponse {
	return OverrideLogResponse{
		ID:                    model.ID,
		SubmissionID:          model.SubmissionID,
		GroupID:               model.GroupID,
		SupervisorID:          model.SupervisorID,
		PreviousOverrideTotal: model.PreviousOverrideTotal,
		NewOverrideTotal:      model.NewOverrideTotal,
		PreviousTotalPoints:   model.PreviousTotalPoints,
		NewTotalPoints:        model.NewTotalPoints,
		Reason:                model.Reason,
		CreatedAt:             model.CreatedAt,
	}
}

// NewOverrideLogResponseSlice converts audit entries into DTOs.
func NewOverrideLogResponseSlice(entries []models.OverrideLog) []OverrideLogResponse {
	responses := make([]OverrideLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewOverrideLogResponse(entry))
	}

	return responses
}
