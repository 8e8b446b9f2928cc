package dto

import (
	"time"

	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// DayContentUpdateRequest is the supervisor payload for editing one day's
// texts and answer key.
type DayContentUpdateRequest struct {
	HadithText        string `json:"hadith_text" validate:"required"`
	FiqhStatementText string `json:"fiqh_statement_text" validate:"required"`
	ImpactTaskText    string `json:"impact_task_text" validate:"required"`
	CorrectAnswer     *bool  `json:"correct_answer" validate:"required"`
}

// DayContentResponse serializes a day's content. CorrectAnswer carries the
// effective answer key, which defaults to true when no key row exists.
type DayContentResponse struct {
	DayNumber         int    `json:"day_number"`
	HadithText        string `json:"hadith_text"`
	FiqhStatementText string `json:"fiqh_statement_text"`
	ImpactTaskText    string `json:"impact_task_text"`
	CorrectAnswer     bool   `json:"correct_answer"`
}

// DayTextsResponse carries a day's texts without the answer key, for
// participant-facing views.
type DayTextsResponse struct {
	DayNumber         int    `json:"day_number"`
	HadithText        string `json:"hadith_text"`
	FiqhStatementText string `json:"fiqh_statement_text"`
	ImpactTaskText    string `json:"impact_task_text"`
}

// DayPostResponse records the supervisor's published day card.
type DayPostResponse struct {
	DayNumber int       `json:"day_number"`
	PostedBy  uint      `json:"posted_by"`
	PostedAt  time.Time `json:"posted_at"`
}

// DayViewResponse is the composite payload for the day screen: content,
// post state, the caller's own submission, and the daily board.
type DayViewResponse struct {
	DayNumber  int                 `json:"day_number"`
	Date       string              `json:"date"`
	Status     scoring.DayStatus   `json:"status"`
	Editable   bool                `json:"editable"`
	Content    *DayTextsResponse   `json:"content"`
	Post       *DayPostResponse    `json:"post"`
	Submission *SubmissionResponse `json:"submission"`
	DailyBoard []LeaderboardRow    `json:"daily_board"`
	MyRank     int                 `json:"my_rank"`
}

// NewDayTextsResponse strips the answer key from a day's content.
func NewDayTextsResponse(content models.DayContent) DayTextsResponse {
	return DayTextsResponse{
		DayNumber:         content.DayNumber,
		HadithText:        content.HadithText,
		FiqhStatementText: content.FiqhStatementText,
		ImpactTaskText:    content.ImpactTaskText,
	}
}

// NewDayContentResponse converts content plus its effective answer key.
func NewDayContentResponse(content models.DayContent, correctAnswer bool) DayContentResponse {
	return DayContentResponse{
		DayNumber:         content.DayNumber,
		HadithText:        content.HadithText,
		FiqhStatementText: content.FiqhStatementText,
		ImpactTaskText:    content.ImpactTaskText,
		CorrectAnswer:     correctAnswer,
	}
}

// NewDayPostResponse converts a DayPost model into a DTO.
func NewDayPostResponse(post models.DayPost) DayPostResponse {
	return DayPostResponse{
		DayNumber: post.DayNumber,
		PostedBy:  post.PostedBy,
		PostedAt:  post.PostedAt,
	}
}
