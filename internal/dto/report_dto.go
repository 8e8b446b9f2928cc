package dto

// PlayerReportResponse aggregates one participant's run for supervisor
// reporting.
type PlayerReportResponse struct {
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"display_name"`
	TotalPoints int       `json:"total_points"`
	Streak      int       `json:"streak"`
	Days        []DayCell `json:"days"`
}

// SeedTemplate is one day of global seed content.
type SeedTemplate struct {
	DayNumber         int    `json:"day_number"`
	HadithText        string `json:"hadith_text"`
	FiqhStatementText string `json:"fiqh_statement_text"`
	ImpactTaskText    string `json:"impact_task_text"`
	CorrectAnswer     bool   `json:"correct_answer"`
}
