package store

import (
	"context"
	"time"

	"github.com/julianstephens/lifetrack/internal/looks"
	"github.com/julianstephens/lifetrack/internal/models"
)

// LooksCheckIn records a visit to the course today.
func (s *Store) LooksCheckIn(ctx context.Context) (models.LooksProgress, error) {
	var out models.LooksProgress
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		looks.CheckIn(&st.Looks, now)
		return nil
	})
	if err == nil {
		out = s.State().Looks
	}
	return out, err
}

// CompleteLesson returns false when the lesson was already completed.
func (s *Store) CompleteLesson(ctx context.Context, lessonID string) (bool, error) {
	var added bool
	err := s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		added, err = looks.CompleteLesson(&st.Looks, lessonID)
		if err == nil && !added {
			return errUnchanged
		}
		return err
	})
	return added, ignoreUnchanged(err)
}

// ToggleHabit flips today's habit and returns its new value.
func (s *Store) ToggleHabit(ctx context.Context, habitID string) (bool, error) {
	var done bool
	err := s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		done, err = looks.ToggleHabit(&st.Looks, habitID, now)
		return err
	})
	return done, err
}

func (s *Store) Looks() models.LooksProgress {
	return s.State().Looks
}
