package models

// HabitEntry holds the daily habit checklist for one date.
type HabitEntry struct {
	Date   string          `json:"date"`
	Habits map[string]bool `json:"habits"`
}

// LooksProgress is the self-improvement course progress.
type LooksProgress struct {
	CompletedLessons []string       `json:"completedLessons"`
	CompletedModules []string       `json:"completedModules"`
	QuizScores       map[string]int `json:"quizScores"`
	Streak           int            `json:"streak"`
	LastActiveDate   string         `json:"lastActiveDate"`
	Badges           []string       `json:"badges"`
	TotalXP          int            `json:"totalXP"`
	Habits           []HabitEntry   `json:"habits"`
}

// HasBadge reports whether the badge was already earned.
func (p *LooksProgress) HasBadge(id string) bool {
	return contains(p.Badges, id)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
