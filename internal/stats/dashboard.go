package stats

import (
	"math"
	"time"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/utils"
)

type ActiveStreak struct {
	SystemID string `json:"systemId"`
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
}

type DashboardStats struct {
	LifeScore     int             `json:"lifeScore"`
	Tasks         Ratio           `json:"tasks"`
	WeeklyGoals   Ratio           `json:"weeklyGoals"`
	Meditation    MeditationStats `json:"meditation"`
	Reading       ReadingStats    `json:"reading"`
	Coding        CodingStats     `json:"coding"`
	ActiveStreaks []ActiveStreak  `json:"activeStreaks"`
	DailyFocus    string          `json:"dailyFocus,omitempty"`
}

// Dashboard aggregates the per-tracker stats and the overall life score.
func Dashboard(st *models.State, now time.Time) DashboardStats {
	out := DashboardStats{
		Tasks:         Tasks(st, now),
		WeeklyGoals:   Goals(st, now),
		Meditation:    Meditation(st, now),
		Reading:       Reading(st, now),
		Coding:        Coding(st, now),
		ActiveStreaks: []ActiveStreak{},
	}
	if st.LastDailyFocusDate == utils.DateOf(now) {
		out.DailyFocus = st.DailyFocus
	}

	for _, s := range []models.StreakData{st.MeditationStreak, st.ReadingStreak, st.CodingStreak} {
		if s.CurrentStreak > 0 {
			out.ActiveStreaks = append(out.ActiveStreaks, ActiveStreak{
				SystemID: s.SystemID,
				Current:  s.CurrentStreak,
				Longest:  s.LongestStreak,
			})
		}
	}

	out.LifeScore = LifeScore(out.Meditation.TodayCompleted, out.Reading.TodayCompleted,
		st.CodingStreak.CurrentStreak > 0, out.Tasks)
	return out
}

// LifeScore averages four daily signals, each worth 0 to 100.
func LifeScore(meditated, read, codingActive bool, tasks Ratio) int {
	taskScore := 0.0
	if tasks.Total > 0 {
		taskScore = float64(tasks.Completed) / float64(tasks.Total) * 100
	}
	sum := boolScore(meditated) + boolScore(read) + boolScore(codingActive) + taskScore
	return int(math.Round(sum / 4))
}

func boolScore(b bool) float64 {
	if b {
		return 100
	}
	return 0
}
