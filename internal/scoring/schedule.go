package scoring

import (
	"fmt"
	"time"
)

// DayStatus describes the availability of one challenge day for a
// participant. It is recomputed from wall-clock time on every call; the
// transition into locked is time-driven, never explicit.
type DayStatus string

const (
	// StatusFuture means the day's date has not arrived in the group's timezone.
	StatusFuture DayStatus = "future"
	// StatusNotSubmitted means the day is open and no submission exists yet.
	StatusNotSubmitted DayStatus = "not_submitted"
	// StatusLocked means the day passed (or passed today's cutoff) without a submission.
	StatusLocked DayStatus = "locked"
	// StatusSubmitted means a submission exists, regardless of date.
	StatusSubmitted DayStatus = "submitted"
)

const (
	ymdLayout = "2006-01-02"
	hmsLayout = "15:04:05"
)

// Schedule maps challenge day numbers to calendar dates in a group's
// timezone and answers cutoff questions.
type Schedule struct {
	start  time.Time
	loc    *time.Location
	cutoff string
}

// NewSchedule builds a schedule from a group's start date (YYYY-MM-DD),
// IANA timezone name, and daily cutoff time (HH:MM:SS).
func NewSchedule(startDate, timezone, cutoffTime string) (Schedule, error) {
	start, err := time.Parse(ymdLayout, startDate)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	if _, err := time.Parse(hmsLayout, cutoffTime); err != nil {
		return Schedule{}, fmt.Errorf("invalid cutoff time %q: %w", cutoffTime, err)
	}

	return Schedule{start: start, loc: loc, cutoff: cutoffTime}, nil
}

// DayDate returns the calendar date (YYYY-MM-DD) of a challenge day.
func (s Schedule) DayDate(day int) string {
	return s.start.AddDate(0, 0, day-1).Format(ymdLayout)
}

// DayNumberAt returns the challenge day number for the given instant in the
// group's timezone. The result may fall outside [MinDay,MaxDay] before the
// challenge starts or after it ends.
func (s Schedule) DayNumberAt(now time.Time) int {
	today, _ := time.Parse(ymdLayout, now.In(s.loc).Format(ymdLayout))
	return int(today.Sub(s.start).Hours()/24) + 1
}

// CurrentDay returns DayNumberAt clamped into the challenge range.
func (s Schedule) CurrentDay(now time.Time) int {
	return clamp(s.DayNumberAt(now), MinDay, MaxDay)
}

// InChallenge reports whether the instant falls on a challenge day at all.
func (s Schedule) InChallenge(now time.Time) bool {
	n := s.DayNumberAt(now)
	return n >= MinDay && n <= MaxDay
}

// Editable reports whether a player may still submit or edit the given day:
// the day must be today in the group's timezone and the local time must not
// have passed the cutoff. Supervisors bypass this check entirely.
func (s Schedule) Editable(day int, now time.Time) bool {
	local := now.In(s.loc)
	if s.DayDate(day) != local.Format(ymdLayout) {
		return false
	}
	return local.Format(hmsLayout) < s.cutoff
}

// DayStatus classifies a day for a participant. Supervisors are exempt from
// the cutoff, so an unsubmitted today never locks for them.
func (s Schedule) DayStatus(day int, hasSubmission, supervisor bool, now time.Time) DayStatus {
	local := now.In(s.loc)
	today := local.Format(ymdLayout)
	date := s.DayDate(day)

	if date > today {
		return StatusFuture
	}
	if hasSubmission {
		return StatusSubmitted
	}
	if date < today {
		return StatusLocked
	}
	if supervisor || local.Format(hmsLayout) < s.cutoff {
		return StatusNotSubmitted
	}
	return StatusLocked
}
