package dto

// Leaderboard tabs.
const (
	LeaderboardDaily   = "daily"
	LeaderboardOverall = "overall"
	LeaderboardStreaks = "streaks"
)

// LeaderboardRow is one ranked row of a board.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// LeaderboardResponse is a full board for one tab.
type LeaderboardResponse struct {
	Tab       string           `json:"tab"`
	DayNumber int              `json:"day_number"`
	Rows      []LeaderboardRow `json:"rows"`
}
