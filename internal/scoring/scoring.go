package scoring

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// MinDay is the first challenge day number.
	MinDay = 1
	// MaxDay is the last challenge day number.
	MaxDay = 30
	// MaxDailyTotal caps a day's total points.
	MaxDailyTotal = 10

	maxReadingPoints = 3
	bonusPoints      = 2
)

// RawEntry carries a participant's raw inputs for one challenge day.
type RawEntry struct {
	QuranPoints  int
	HadithPoints int
	FiqhAnswer   bool
	ImpactDone   bool
}

// ErrOutOfRange reports a raw input outside its declared range.
type ErrOutOfRange struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// ValidateRaw strictly checks raw input ranges. Authenticated write paths
// must call this before computing totals; less trusted inputs may skip it
// and rely on the clamping inside ComputeAutoTotal instead.
func ValidateRaw(raw RawEntry) error {
	if raw.QuranPoints < 0 || raw.QuranPoints > maxReadingPoints {
		return ErrOutOfRange{Field: "quran_points", Value: raw.QuranPoints, Min: 0, Max: maxReadingPoints}
	}
	if raw.HadithPoints < 0 || raw.HadithPoints > maxReadingPoints {
		return ErrOutOfRange{Field: "hadith_points", Value: raw.HadithPoints, Min: 0, Max: maxReadingPoints}
	}
	return nil
}

// ValidateDay checks a day number against the challenge range.
func ValidateDay(day int) error {
	if day < MinDay || day > MaxDay {
		return ErrOutOfRange{Field: "day_number", Value: day, Min: MinDay, Max: MaxDay}
	}
	return nil
}

// ValidateOverride checks a supervisor override value. A nil override is
// always valid and means "revert to auto-scoring".
func ValidateOverride(override *int) error {
	if override == nil {
		return nil
	}
	if *override < 0 || *override > MaxDailyTotal {
		return ErrOutOfRange{Field: "override_total", Value: *override, Min: 0, Max: MaxDailyTotal}
	}
	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// FiqhPoints scores the true/false quiz answer against the day's key.
func FiqhPoints(answer, correctAnswer bool) int {
	if answer == correctAnswer {
		return bonusPoints
	}
	return 0
}

// ImpactPoints scores the daily impact task.
func ImpactPoints(done bool) int {
	if done {
		return bonusPoints
	}
	return 0
}

// ComputeAutoTotal computes the day's automatic score. Out-of-range reading
// points are clamped into [0,3] rather than rejected so that stale client
// state still produces a bounded total; the final clamp into [0,10] is a
// defensive invariant, not a normal code path.
func ComputeAutoTotal(raw RawEntry, correctAnswer bool) int {
	total := clamp(raw.QuranPoints, 0, maxReadingPoints) +
		clamp(raw.HadithPoints, 0, maxReadingPoints) +
		FiqhPoints(raw.FiqhAnswer, correctAnswer) +
		ImpactPoints(raw.ImpactDone)
	return clamp(total, 0, MaxDailyTotal)
}

// ResolveTotal returns the score that is displayed and ranked: the
// supervisor override when present, the automatic total otherwise. Every
// view of a total (leaderboards, history, reports) must go through here.
func ResolveTotal(autoTotal int, overrideTotal *int) int {
	if overrideTotal != nil {
		return *overrideTotal
	}
	return autoTotal
}

// Standing is one leaderboard row before ranking.
type Standing struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// SortStandings orders rows descending by score; equal scores are broken by
// ascending name under the group's display language collation. Names are
// unique within a group, so the result is deterministic.
func SortStandings(rows []Standing, tag language.Tag) {
	coll := collate.New(tag)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return coll.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

// RankOf returns the competition rank of a score within rows: one plus the
// number of strictly greater scores.
func RankOf(rows []Standing, score int) int {
	rank := 1
	for _, row := range rows {
		if row.Score > score {
			rank++
		}
	}
	return rank
}

// Streak counts consecutive submitted days walking backward from today,
// today included, stopping at the first gap. Any submission counts; there
// is no points threshold.
func Streak(submitted map[int]bool, today int) int {
	streak := 0
	for day := today; day >= MinDay; day-- {
		if !submitted[day] {
			break
		}
		streak++
	}
	return streak
}
