package stats

import (
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

// Exercise is one exercise of a workout session, used to compute volume.
type Exercise struct {
	Name string               `json:"name"`
	Sets []models.ExerciseSet `json:"sets"`
}

// TotalVolume sums weight x reps over completed sets.
func TotalVolume(exercises []Exercise) float64 {
	total := 0.0
	for _, ex := range exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				total += set.Weight * float64(set.Reps)
			}
		}
	}
	return total
}

// NextSession is the training recommendation for the next session of a workout.
type NextSession struct {
	WorkoutID         string                   `json:"workoutId"`
	Recommendation    constants.Recommendation `json:"recommendation"`
	PercentageChange  int                      `json:"percentageChange"`
	Reason            string                   `json:"reason"`
	DeloadRecommended bool                     `json:"deloadRecommended"`
}

const recentSessions = 3

// Recommend derives the next-session adjustment from the last three summaries and active injuries.
func Recommend(log *models.WorkoutLog, workoutID string) NextSession {
	summaries := log.SummariesFor(workoutID)
	if len(summaries) > recentSessions {
		summaries = summaries[len(summaries)-recentSessions:]
	}
	rec := func(r constants.Recommendation, pct int, deload bool, reason string) NextSession {
		return NextSession{
			WorkoutID:         workoutID,
			Recommendation:    r,
			PercentageChange:  pct,
			Reason:            reason,
			DeloadRecommended: deload,
		}
	}
	if len(summaries) == 0 {
		return rec(constants.RecommendMaintain, 0, false, "No previous session data available")
	}

	highFatigue := 0
	for _, s := range summaries {
		if s.FatigueStatus == constants.FatigueHigh {
			highFatigue++
		}
	}
	if highFatigue >= 2 {
		return rec(constants.RecommendDecrease, -15, true, "High fatigue detected in multiple sessions. Deload recommended.")
	}

	if injuries := log.ActiveInjuries(workoutID); len(injuries) > 0 {
		for _, inj := range injuries {
			if inj.PainLevel >= 4 {
				return rec(constants.RecommendDecrease, -20, true, "⚠️ Active injury reported. Reduce intensity to prevent aggravation.")
			}
		}
		return rec(constants.RecommendMaintain, 0, false, "⚠️ Minor injury noted. Maintain current weights and monitor.")
	}

	last := summaries[len(summaries)-1]
	switch {
	case last.FatigueStatus == constants.FatigueLow && last.EffortLevel <= 3:
		return rec(constants.RecommendIncrease, 5, false, "Low fatigue and effort. Ready for progressive overload!")
	case last.FatigueStatus == constants.FatigueHigh:
		return rec(constants.RecommendDecrease, -10, false, "High fatigue from last session. Consider reducing weight.")
	}
	return rec(constants.RecommendMaintain, 0, false, "Moderate fatigue. Maintain current intensity.")
}
