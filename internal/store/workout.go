package store

import (
	"context"
	"time"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
)

func injuryID(n *models.InjuryNote) string { return n.ID }

// LogWorkoutSession stores the summary of a finished session. A zero TotalVolume is
// computed from exercises.
func (s *Store) LogWorkoutSession(ctx context.Context, summary models.SessionSummary, exercises []stats.Exercise) (models.SessionSummary, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		summary.ID = models.NewID()
		summary.CreatedAt = now
		if summary.Date == "" {
			summary.Date = today(now)
		}
		if summary.TotalVolume == 0 && len(exercises) > 0 {
			summary.TotalVolume = stats.TotalVolume(exercises)
		}
		if summary.ExercisesCompleted == 0 {
			summary.ExercisesCompleted = len(exercises)
		}
		if err := summary.Validate(); err != nil {
			return err
		}
		st.Workouts.Summaries = append(st.Workouts.Summaries, summary)
		return nil
	})
	return summary, err
}

func (s *Store) AddInjury(ctx context.Context, note models.InjuryNote) (models.InjuryNote, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		note.ID = models.NewID()
		note.IsActive = true
		if note.Date == "" {
			note.Date = today(now)
		}
		if err := note.Validate(); err != nil {
			return err
		}
		st.Workouts.Injuries = append(st.Workouts.Injuries, note)
		return nil
	})
	return note, err
}

// ResolveInjury marks an injury healed. It stays in the log.
func (s *Store) ResolveInjury(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.Workouts.Injuries, "injury", id, injuryID, func(n *models.InjuryNote) error {
			n.IsActive = false
			return nil
		})
	})
}

// Recommend suggests the next session of a workout from its history.
func (s *Store) Recommend(workoutID string) stats.NextSession {
	st := s.State()
	return stats.Recommend(&st.Workouts, workoutID)
}
