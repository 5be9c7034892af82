// Package stats computes derived statistics from a state snapshot. Nothing here
// is cached or persisted; every figure is recomputed from the collections on read.
package stats

import (
	"math"
	"time"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/utils"
)

// NextStreak returns the streak after an activity dated activityDate.
// Only activity dated today moves the streak.
func NextStreak(s models.StreakData, activityDate string, now time.Time) models.StreakData {
	today := utils.DateOf(now)
	if activityDate != today {
		return s
	}
	switch s.LastActivityDate {
	case today:
		return s
	case utils.Yesterday(now):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LastActivityDate = today
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	return s
}

// CompletionRate returns completed/total as a rounded percentage, 0 when total is 0.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// InTrailingWeek reports whether date falls on or after the day seven calendar days before now.
// Dates are zero-padded YYYY-MM-DD so lexical comparison orders them.
func InTrailingWeek(date string, now time.Time) bool {
	return date != "" && date >= utils.DaysAgo(now, 7)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
