package models

import (
	"math"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type ExerciseSet struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// SessionSummary closes one workout session.
type SessionSummary struct {
	ID                 string                  `json:"id"`
	WorkoutID          string                  `json:"workoutId"`
	Date               string                  `json:"date"`
	TotalVolume        float64                 `json:"totalVolume"` // sets x reps x weight
	EffortLevel        int                     `json:"effortLevel"`
	FatigueStatus      constants.FatigueStatus `json:"fatigueStatus"`
	Duration           int                     `json:"duration"`
	ExercisesCompleted int                     `json:"exercisesCompleted"`
	Notes              string                  `json:"notes,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
}

func (s *SessionSummary) Validate() error {
	if err := requireText("workout session", "workoutId", s.WorkoutID); err != nil {
		return err
	}
	if err := requireDate("workout session", "date", s.Date); err != nil {
		return err
	}
	if err := requireRange("workout session", "effortLevel", s.EffortLevel, 1, 5); err != nil {
		return err
	}
	if math.IsNaN(s.TotalVolume) || math.IsInf(s.TotalVolume, 0) || s.TotalVolume < 0 || s.Duration < 0 {
		return invalid("workout session", "totalVolume", "volume and duration cannot be negative")
	}
	return requireOneOf("workout session", "fatigueStatus", s.FatigueStatus,
		constants.FatigueLow, constants.FatigueModerate, constants.FatigueHigh)
}

type InjuryNote struct {
	ID          string `json:"id"`
	WorkoutID   string `json:"workoutId"`
	BodyPart    string `json:"bodyPart"`
	PainLevel   int    `json:"painLevel"` // 1 mild, 5 severe
	Description string `json:"description"`
	Date        string `json:"date"`
	IsActive    bool   `json:"isActive"`
}

func (n *InjuryNote) Validate() error {
	if err := requireText("injury", "bodyPart", n.BodyPart); err != nil {
		return err
	}
	if err := requireRange("injury", "painLevel", n.PainLevel, 1, 5); err != nil {
		return err
	}
	return requireDate("injury", "date", n.Date)
}

type WorkoutLog struct {
	Summaries []SessionSummary `json:"summaries"`
	Injuries  []InjuryNote     `json:"injuries"`
}

// SummariesFor returns the summaries of one workout in insertion order.
func (w *WorkoutLog) SummariesFor(workoutID string) []SessionSummary {
	var out []SessionSummary
	for _, s := range w.Summaries {
		if s.WorkoutID == workoutID {
			out = append(out, s)
		}
	}
	return out
}

// ActiveInjuries returns active injuries, optionally scoped to one workout.
func (w *WorkoutLog) ActiveInjuries(workoutID string) []InjuryNote {
	var out []InjuryNote
	for _, n := range w.Injuries {
		if n.IsActive && (workoutID == "" || n.WorkoutID == workoutID) {
			out = append(out, n)
		}
	}
	return out
}
