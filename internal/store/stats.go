package store

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
)

func (s *Store) MeditationStats() (out stats.MeditationStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Meditation(st, now) })
	return out
}

func (s *Store) ReadingStats() (out stats.ReadingStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Reading(st, now) })
	return out
}

func (s *Store) CodingStats() (out stats.CodingStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Coding(st, now) })
	return out
}

func (s *Store) TaskStats() (out stats.Ratio) {
	s.view(func(st *models.State, now time.Time) { out = stats.Tasks(st, now) })
	return out
}

func (s *Store) GoalStats() (out stats.Ratio) {
	s.view(func(st *models.State, now time.Time) { out = stats.Goals(st, now) })
	return out
}

func (s *Store) DashboardStats() (out stats.DashboardStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Dashboard(st, now) })
	return out
}

func (s *Store) NetworkingStats() (out stats.NetworkingStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Networking(st, now) })
	return out
}

func (s *Store) BrandingStats() (out stats.BrandingStats) {
	s.view(func(st *models.State, now time.Time) { out = stats.Branding(st) })
	return out
}
