package looks

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/utils"
)

// StreakBadgeDays is the streak length that earns BadgeStreak7.
const StreakBadgeDays = 7

// UnknownError reports a lesson, pillar or habit id not in the catalog.
type UnknownError struct {
	Kind string
	ID   string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func award(p *models.LooksProgress, badge string) bool {
	if p.HasBadge(badge) {
		return false
	}
	p.Badges = append(p.Badges, badge)
	return true
}

// CheckIn records activity for the day of now. The streak continues when the last active
// day was yesterday and restarts at 1 otherwise. A second check-in on the same day is a no-op.
func CheckIn(p *models.LooksProgress, now time.Time) {
	today := utils.DateOf(now)
	if p.LastActiveDate == today {
		return
	}
	if p.LastActiveDate == utils.Yesterday(now) {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastActiveDate = today
	if p.Streak >= StreakBadgeDays {
		award(p, BadgeStreak7)
	}
}

// CompleteLesson marks a lesson done once, awarding XP and any badges it unlocks.
// It reports whether the lesson was newly completed.
func CompleteLesson(p *models.LooksProgress, lessonID string) (bool, error) {
	if _, _, ok := FindLesson(lessonID); !ok {
		return false, &UnknownError{Kind: "lesson", ID: lessonID}
	}
	if slices.Contains(p.CompletedLessons, lessonID) {
		return false, nil
	}

	p.CompletedLessons = append(p.CompletedLessons, lessonID)
	p.TotalXP += LessonXP
	if len(p.CompletedLessons) == 1 {
		award(p, BadgeFirstLesson)
	}

	for _, pillar := range Pillars {
		if slices.Contains(p.CompletedModules, pillar.ID) {
			continue
		}
		done := true
		for _, l := range pillar.Lessons {
			if !slices.Contains(p.CompletedLessons, l.ID) {
				done = false
				break
			}
		}
		if done {
			p.CompletedModules = append(p.CompletedModules, pillar.ID)
			award(p, BadgePillarMaster)
		}
	}
	if len(p.CompletedModules) == len(Pillars) {
		award(p, BadgeAllPillars)
	}
	checkXP(p)
	return true, nil
}

func checkXP(p *models.LooksProgress) {
	if p.TotalXP >= 500 {
		award(p, BadgeXP500)
	}
}

// ToggleHabit flips a habit for the day of now. Completing every habit for the first
// time earns BadgeHabitKing and its XP bonus. It returns the habit's new value.
func ToggleHabit(p *models.LooksProgress, habitID string, now time.Time) (bool, error) {
	if !isHabit(habitID) {
		return false, &UnknownError{Kind: "habit", ID: habitID}
	}
	today := utils.DateOf(now)
	idx := slices.IndexFunc(p.Habits, func(h models.HabitEntry) bool { return h.Date == today })
	if idx < 0 {
		p.Habits = append(p.Habits, models.HabitEntry{Date: today, Habits: map[string]bool{}})
		idx = len(p.Habits) - 1
	}
	entry := &p.Habits[idx]
	if entry.Habits == nil {
		entry.Habits = map[string]bool{}
	}
	entry.Habits[habitID] = !entry.Habits[habitID]

	if allHabitsDone(entry) && award(p, BadgeHabitKing) {
		p.TotalXP += HabitKingXP
		checkXP(p)
	}
	return entry.Habits[habitID], nil
}

func allHabitsDone(e *models.HabitEntry) bool {
	for _, h := range DailyHabits {
		if !e.Habits[h.ID] {
			return false
		}
	}
	return true
}

// TodayHabits returns the checklist for the day of now.
func TodayHabits(p *models.LooksProgress, now time.Time) map[string]bool {
	today := utils.DateOf(now)
	out := map[string]bool{}
	for _, h := range p.Habits {
		if h.Date == today {
			for k, v := range h.Habits {
				out[k] = v
			}
		}
	}
	return out
}

// PillarProgress is the rounded percentage of a pillar's lessons completed.
func PillarProgress(p *models.LooksProgress, pillarID string) (int, error) {
	pillar, ok := FindPillar(pillarID)
	if !ok {
		return 0, &UnknownError{Kind: "pillar", ID: pillarID}
	}
	done := 0
	for _, l := range pillar.Lessons {
		if slices.Contains(p.CompletedLessons, l.ID) {
			done++
		}
	}
	return percent(done, len(pillar.Lessons)), nil
}

// TotalProgress is the rounded percentage of all lessons completed.
func TotalProgress(p *models.LooksProgress) int {
	return percent(len(p.CompletedLessons), totalLessons())
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
