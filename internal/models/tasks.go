package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type DailyTask struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Category  constants.TaskCategory `json:"category"`
	Completed bool                   `json:"completed"`
	Date      string                 `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time              `json:"createdAt"`
}

func (t *DailyTask) Validate() error {
	if err := requireText("task", "title", t.Title); err != nil {
		return err
	}
	if err := requireOneOf("task", "category", t.Category,
		constants.TaskPhysical, constants.TaskMental, constants.TaskWork, constants.TaskPersonal); err != nil {
		return err
	}
	return requireDate("task", "date", t.Date)
}

type TaskPatch struct {
	Title     *string
	Category  *constants.TaskCategory
	Completed *bool
	Date      *string
}

func (p TaskPatch) Apply(t *DailyTask) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
}

// WeeklyGoal tracks progress (0-100) on a goal for the week starting WeekStart.
type WeeklyGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SystemID  string `json:"systemId"`
	Progress  int    `json:"progress"`
	WeekStart string `json:"weekStart"`
	Completed bool   `json:"completed"`
}

func (g *WeeklyGoal) Validate() error {
	if err := requireText("goal", "title", g.Title); err != nil {
		return err
	}
	if err := requireRange("goal", "progress", g.Progress, 0, 100); err != nil {
		return err
	}
	if g.Completed && g.Progress != 100 {
		return invalid("goal", "completed", "requires progress 100, got %d", g.Progress)
	}
	return requireDate("goal", "weekStart", g.WeekStart)
}

type GoalPatch struct {
	Title    *string
	SystemID *string
	Progress *int
}

// Apply merges the patch. Completion always follows progress.
func (p GoalPatch) Apply(g *WeeklyGoal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.SystemID != nil {
		g.SystemID = *p.SystemID
	}
	if p.Progress != nil {
		g.Progress = *p.Progress
		g.Completed = g.Progress >= 100
	}
}

type LifeNote struct {
	ID              string                 `json:"id"`
	Content         string                 `json:"content"`
	LinkedSystem    constants.LinkedSystem `json:"linkedSystem,omitempty"`
	LinkedSessionID string                 `json:"linkedSessionId,omitempty"`
	Mood            int                    `json:"mood,omitempty"`
	Tags            []string               `json:"tags"`
	Date            string                 `json:"date"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func (n *LifeNote) Validate() error {
	if err := requireText("note", "content", n.Content); err != nil {
		return err
	}
	if n.LinkedSystem != "" {
		if err := requireOneOf("note", "linkedSystem", n.LinkedSystem,
			constants.SystemWorkout, constants.SystemMeditation, constants.SystemReading, constants.SystemGeneral); err != nil {
			return err
		}
	}
	if n.Mood != 0 {
		if err := requireRange("note", "mood", n.Mood, 1, 5); err != nil {
			return err
		}
	}
	return requireDate("note", "date", n.Date)
}

type NotePatch struct {
	Content      *string
	LinkedSystem *constants.LinkedSystem
	Mood         *int
	Tags         []string
}

func (p NotePatch) Apply(n *LifeNote) {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.LinkedSystem != nil {
		n.LinkedSystem = *p.LinkedSystem
	}
	if p.Mood != nil {
		n.Mood = *p.Mood
	}
	if p.Tags != nil {
		n.Tags = append([]string(nil), p.Tags...)
	}
}

// StreakData is the consecutive-day counter of one tracker.
type StreakData struct {
	SystemID         string `json:"systemId"`
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	LastActivityDate string `json:"lastActivityDate"`
}

type UserProfile struct {
	FirstName string `json:"firstName"`
	Avatar    string `json:"avatar,omitempty"`
}

type MeditationSession struct {
	ID                string                   `json:"id"`
	Date              string                   `json:"date"`
	Duration          int                      `json:"duration"` // minutes
	Type              constants.MeditationType `json:"type"`
	Category          string                   `json:"category,omitempty"`
	MoodBefore        int                      `json:"moodBefore"`
	MoodAfter         int                      `json:"moodAfter"`
	MentalClarity     int                      `json:"mentalClarity,omitempty"`
	StressTriggers    string                   `json:"stressTriggers,omitempty"`
	ConsistencyRating bool                     `json:"consistencyRating,omitempty"`
	QualityRating     int                      `json:"qualityRating,omitempty"`
	FocusDrops        int                      `json:"focusDrops,omitempty"`
	Note              string                   `json:"note,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
}

func (m *MeditationSession) Validate() error {
	if err := requireDate("meditation", "date", m.Date); err != nil {
		return err
	}
	if m.Duration <= 0 {
		return invalid("meditation", "duration", "must be positive, got %d", m.Duration)
	}
	if err := requireOneOf("meditation", "type", m.Type,
		constants.MeditationGuided, constants.MeditationUnguided, constants.MeditationBreathing, constants.MeditationBodyScan); err != nil {
		return err
	}
	if err := requireRange("meditation", "moodBefore", m.MoodBefore, 1, 5); err != nil {
		return err
	}
	if err := requireRange("meditation", "moodAfter", m.MoodAfter, 1, 5); err != nil {
		return err
	}
	for field, v := range map[string]int{"mentalClarity": m.MentalClarity, "qualityRating": m.QualityRating} {
		if v != 0 {
			if err := requireRange("meditation", field, v, 1, 5); err != nil {
				return err
			}
		}
	}
	if m.FocusDrops < 0 {
		return invalid("meditation", "focusDrops", "cannot be negative")
	}
	return nil
}

type MeditationPatch struct {
	Duration   *int
	MoodBefore *int
	MoodAfter  *int
	Note       *string
}

func (p MeditationPatch) Apply(m *MeditationSession) {
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.MoodBefore != nil {
		m.MoodBefore = *p.MoodBefore
	}
	if p.MoodAfter != nil {
		m.MoodAfter = *p.MoodAfter
	}
	if p.Note != nil {
		m.Note = *p.Note
	}
}
