package store

import (
	"context"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
	"github.com/julianstephens/lifetrack/internal/utils"
)

func taskID(t *models.DailyTask) string               { return t.ID }
func goalID(g *models.WeeklyGoal) string              { return g.ID }
func noteID(n *models.LifeNote) string                { return n.ID }
func meditationID(m *models.MeditationSession) string { return m.ID }

// AddTask appends a task. An empty date means today.
func (s *Store) AddTask(ctx context.Context, title string, category constants.TaskCategory, date string) (models.DailyTask, error) {
	var task models.DailyTask
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		task = models.DailyTask{
			ID:        models.NewID(),
			Title:     title,
			Category:  category,
			Date:      date,
			CreatedAt: now,
		}
		if task.Date == "" {
			task.Date = today(now)
		}
		if err := task.Validate(); err != nil {
			return err
		}
		st.DailyTasks = append(st.DailyTasks, task)
		return nil
	})
	return task, err
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.DailyTasks, "task", id, taskID, func(t *models.DailyTask) error {
			patch.Apply(t)
			return t.Validate()
		})
	})
}

// ToggleTask flips completion and returns the new value.
func (s *Store) ToggleTask(ctx context.Context, id string) (bool, error) {
	var completed bool
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.DailyTasks, "task", id, taskID, func(t *models.DailyTask) error {
			t.Completed = !t.Completed
			completed = t.Completed
			return nil
		})
	})
	return completed, err
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.DailyTasks, err = removeByID(st.DailyTasks, "task", id, taskID)
		return err
	})
}

// TodayTasks returns tasks dated today in insertion order.
func (s *Store) TodayTasks() []models.DailyTask {
	var out []models.DailyTask
	s.view(func(st *models.State, now time.Time) {
		for _, t := range st.DailyTasks {
			if t.Date == today(now) {
				out = append(out, t)
			}
		}
	})
	return out
}

// AddGoal creates a goal for the current week with zero progress.
func (s *Store) AddGoal(ctx context.Context, title, systemID string) (models.WeeklyGoal, error) {
	var goal models.WeeklyGoal
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		goal = models.WeeklyGoal{
			ID:        models.NewID(),
			Title:     title,
			SystemID:  systemID,
			WeekStart: utils.WeekStart(now),
		}
		if err := goal.Validate(); err != nil {
			return err
		}
		st.WeeklyGoals = append(st.WeeklyGoals, goal)
		return nil
	})
	return goal, err
}

// UpdateGoal applies patch strictly; out-of-range progress is a validation error.
func (s *Store) UpdateGoal(ctx context.Context, id string, patch models.GoalPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.WeeklyGoals, "goal", id, goalID, func(g *models.WeeklyGoal) error {
			patch.Apply(g)
			return g.Validate()
		})
	})
}

// UpdateGoalProgress clamps progress to [0,100]; the goal is completed at 100.
func (s *Store) UpdateGoalProgress(ctx context.Context, id string, progress int) error {
	progress = min(max(progress, 0), 100)
	return s.UpdateGoal(ctx, id, models.GoalPatch{Progress: &progress})
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.WeeklyGoals, err = removeByID(st.WeeklyGoals, "goal", id, goalID)
		return err
	})
}

// CurrentWeekGoals returns goals whose week starts this week.
func (s *Store) CurrentWeekGoals() []models.WeeklyGoal {
	var out []models.WeeklyGoal
	s.view(func(st *models.State, now time.Time) {
		week := utils.WeekStart(now)
		for _, g := range st.WeeklyGoals {
			if g.WeekStart == week {
				out = append(out, g)
			}
		}
	})
	return out
}

// AddNote stores a reflection note. Its content passes through the content filter.
func (s *Store) AddNote(ctx context.Context, note models.LifeNote) (models.LifeNote, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		note.ID = models.NewID()
		note.CreatedAt = now
		if note.Date == "" {
			note.Date = today(now)
		}
		if note.Tags == nil {
			note.Tags = []string{}
		}
		if err := note.Validate(); err != nil {
			return err
		}
		if err := s.screen(st, now, note.Content); err != nil {
			return err
		}
		st.Notes = append(st.Notes, note)
		return nil
	})
	return note, err
}

func (s *Store) UpdateNote(ctx context.Context, id string, patch models.NotePatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		var content string
		err := updateByID(st.Notes, "note", id, noteID, func(n *models.LifeNote) error {
			patch.Apply(n)
			content = n.Content
			return n.Validate()
		})
		if err != nil {
			return err
		}
		if patch.Content != nil {
			return s.screen(st, now, content)
		}
		return nil
	})
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.Notes, err = removeByID(st.Notes, "note", id, noteID)
		return err
	})
}

// Notes returns the newest notes first, at most limit when limit > 0.
func (s *Store) Notes(limit int) []models.LifeNote {
	var out []models.LifeNote
	s.view(func(st *models.State, now time.Time) {
		for i := len(st.Notes) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			out = append(out, st.Notes[i])
		}
	})
	return out
}

func (s *Store) NotesForSystem(system constants.LinkedSystem) []models.LifeNote {
	var out []models.LifeNote
	s.view(func(st *models.State, now time.Time) {
		for _, n := range st.Notes {
			if n.LinkedSystem == system {
				out = append(out, n)
			}
		}
	})
	return out
}

func (s *Store) SetDailyFocus(ctx context.Context, focus string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		st.DailyFocus = focus
		st.LastDailyFocusDate = today(now)
		return nil
	})
}

// DailyFocus returns the focus text and whether it was set today.
func (s *Store) DailyFocus() (focus string, isToday bool) {
	s.view(func(st *models.State, now time.Time) {
		focus = st.DailyFocus
		isToday = st.LastDailyFocusDate == today(now)
	})
	return focus, isToday
}

func (s *Store) UpdateProfile(ctx context.Context, firstName, avatar string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		if firstName != "" {
			st.UserProfile.FirstName = firstName
		}
		if avatar != "" {
			st.UserProfile.Avatar = avatar
		}
		return nil
	})
}

// AddMeditationSession logs a session and moves the meditation streak.
func (s *Store) AddMeditationSession(ctx context.Context, session models.MeditationSession) (models.MeditationSession, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		session.ID = models.NewID()
		session.CreatedAt = now
		if session.Date == "" {
			session.Date = today(now)
		}
		if err := session.Validate(); err != nil {
			return err
		}
		st.MeditationSessions = append(st.MeditationSessions, session)
		st.MeditationStreak = stats.NextStreak(st.MeditationStreak, session.Date, now)
		return nil
	})
	return session, err
}

func (s *Store) UpdateMeditationSession(ctx context.Context, id string, patch models.MeditationPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.MeditationSessions, "meditation session", id, meditationID, func(m *models.MeditationSession) error {
			patch.Apply(m)
			return m.Validate()
		})
	})
}

func (s *Store) DeleteMeditationSession(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.MeditationSessions, err = removeByID(st.MeditationSessions, "meditation session", id, meditationID)
		return err
	})
}
