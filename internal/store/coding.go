package store

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
	"github.com/julianstephens/lifetrack/internal/utils"
)

func pathID(p *models.CodingLearningPath) string { return p.ID }
func weekID(w *models.CodingLearningWeek) string { return w.ID }
func problemID(p *models.DSAProblem) string      { return p.ID }
func csNoteID(n *models.CSNote) string           { return n.ID }
func videoID(v *models.VideoResource) string     { return v.ID }
func projectID(p *models.CodingProject) string   { return p.ID }
func debugLogID(d *models.DebugLog) string       { return d.ID }
func skillID(s *models.SkillMastery) string      { return s.ID }

// codingActivity moves the coding streak for activity happening now.
func codingActivity(st *models.State, now time.Time) {
	st.CodingStreak = stats.NextStreak(st.CodingStreak, today(now), now)
}

// editPath runs fn on a learning path, or returns ErrNotFound.
func (s *Store) editPath(ctx context.Context, path string, fn func(st *models.State, p *models.CodingLearningPath, now time.Time) error) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.CodingLearningPaths, "learning path", path, pathID, func(p *models.CodingLearningPath) error {
			return fn(st, p, now)
		})
	})
}

// AddLearningWeek appends a week to a learning path and counts as coding activity.
func (s *Store) AddLearningWeek(ctx context.Context, path string, week models.CodingLearningWeek) (models.CodingLearningWeek, error) {
	err := s.editPath(ctx, path, func(st *models.State, p *models.CodingLearningPath, now time.Time) error {
		week.ID = models.NewID()
		if week.Status == "" {
			week.Status = constants.WeekPending
		}
		if week.Topics == nil {
			week.Topics = []string{}
		}
		if week.Resources == nil {
			week.Resources = []models.Resource{}
		}
		if err := week.Validate(); err != nil {
			return err
		}
		p.Weeks = append(p.Weeks, week)
		codingActivity(st, now)
		return nil
	})
	return week, err
}

func (s *Store) UpdateLearningWeek(ctx context.Context, path, id string, patch models.WeekPatch) error {
	return s.editPath(ctx, path, func(st *models.State, p *models.CodingLearningPath, now time.Time) error {
		return updateByID(p.Weeks, "learning week", id, weekID, func(w *models.CodingLearningWeek) error {
			patch.Apply(w)
			return w.Validate()
		})
	})
}

func (s *Store) DeleteLearningWeek(ctx context.Context, path, id string) error {
	return s.editPath(ctx, path, func(st *models.State, p *models.CodingLearningPath, now time.Time) (err error) {
		p.Weeks, err = removeByID(p.Weeks, "learning week", id, weekID)
		return err
	})
}

// AddDSAProblem appends a problem. A problem added as solved is dated today and moves the coding streak.
func (s *Store) AddDSAProblem(ctx context.Context, problem models.DSAProblem) (models.DSAProblem, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		problem.ID = models.NewID()
		if problem.Status == "" {
			problem.Status = constants.ProblemPending
		}
		if problem.Status == constants.ProblemSolved {
			problem.DateSolved = today(now)
		}
		if err := problem.Validate(); err != nil {
			return err
		}
		if err := s.screen(st, now, problem.Link); err != nil {
			return err
		}
		st.DSAProblems = append(st.DSAProblems, problem)
		if problem.Status == constants.ProblemSolved {
			codingActivity(st, now)
		}
		return nil
	})
	return problem, err
}

// UpdateDSAProblem applies patch. Moving a problem to solved dates it today and moves the coding streak.
func (s *Store) UpdateDSAProblem(ctx context.Context, id string, patch models.ProblemPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.DSAProblems, "problem", id, problemID, func(p *models.DSAProblem) error {
			wasSolved := p.Status == constants.ProblemSolved
			patch.Apply(p)
			if err := p.Validate(); err != nil {
				return err
			}
			if patch.Link != nil {
				if err := s.screen(st, now, p.Link); err != nil {
					return err
				}
			}
			if p.Status == constants.ProblemSolved && !wasSolved {
				p.DateSolved = today(now)
				codingActivity(st, now)
			}
			return nil
		})
	})
}

func (s *Store) DeleteDSAProblem(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.DSAProblems, err = removeByID(st.DSAProblems, "problem", id, problemID)
		return err
	})
}

func (s *Store) AddCSNote(ctx context.Context, note models.CSNote) (models.CSNote, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		note.ID = models.NewID()
		note.UpdatedAt = now
		if note.Tags == nil {
			note.Tags = []string{}
		}
		if err := note.Validate(); err != nil {
			return err
		}
		if err := s.screen(st, now, note.Title, note.Content); err != nil {
			return err
		}
		st.CSNotes = append(st.CSNotes, note)
		return nil
	})
	return note, err
}

func (s *Store) UpdateCSNote(ctx context.Context, id string, patch models.CSNotePatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.CSNotes, "cs note", id, csNoteID, func(n *models.CSNote) error {
			patch.Apply(n)
			n.UpdatedAt = now
			if err := n.Validate(); err != nil {
				return err
			}
			return s.screen(st, now, n.Title, n.Content)
		})
	})
}

func (s *Store) DeleteCSNote(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.CSNotes, err = removeByID(st.CSNotes, "cs note", id, csNoteID)
		return err
	})
}

// videoDomain returns the bare host of a video URL.
func videoDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// AddVideoResource screens the URL and records its domain.
func (s *Store) AddVideoResource(ctx context.Context, video models.VideoResource) (models.VideoResource, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		video.ID = models.NewID()
		video.URL = strings.TrimSpace(video.URL)
		video.Domain = videoDomain(video.URL)
		if video.Tags == nil {
			video.Tags = []string{}
		}
		if err := video.Validate(); err != nil {
			return err
		}
		if err := s.screen(st, now, video.URL, video.Title); err != nil {
			return err
		}
		st.VideoResources = append(st.VideoResources, video)
		return nil
	})
	return video, err
}

func (s *Store) DeleteVideoResource(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.VideoResources, err = removeByID(st.VideoResources, "video", id, videoID)
		return err
	})
}

func (s *Store) AddProject(ctx context.Context, project models.CodingProject) (models.CodingProject, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		project.ID = models.NewID()
		project.UpdatedAt = now
		if project.Status == "" {
			project.Status = constants.ProjectPlanning
		}
		if project.TechStack == nil {
			project.TechStack = []string{}
		}
		if project.Outcomes == nil {
			project.Outcomes = []string{}
		}
		if project.Links == nil {
			project.Links = []models.ProjectLink{}
		}
		if err := project.Validate(); err != nil {
			return err
		}
		st.CodingProjects = append(st.CodingProjects, project)
		return nil
	})
	return project, err
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.CodingProjects, "project", id, projectID, func(p *models.CodingProject) error {
			patch.Apply(p)
			p.UpdatedAt = now
			return p.Validate()
		})
	})
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.CodingProjects, err = removeByID(st.CodingProjects, "project", id, projectID)
		return err
	})
}

// AddDebugLog records a debugging session dated today and moves the coding streak.
func (s *Store) AddDebugLog(ctx context.Context, entry models.DebugLog) (models.DebugLog, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		entry.ID = models.NewID()
		entry.Date = today(now)
		if entry.Tags == nil {
			entry.Tags = []string{}
		}
		if err := entry.Validate(); err != nil {
			return err
		}
		st.DebugLogs = append(st.DebugLogs, entry)
		codingActivity(st, now)
		return nil
	})
	return entry, err
}

func (s *Store) DeleteDebugLog(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.DebugLogs, err = removeByID(st.DebugLogs, "debug log", id, debugLogID)
		return err
	})
}

// AddSkill starts a skill as not ready, revised today, next revision in a week.
func (s *Store) AddSkill(ctx context.Context, skill models.SkillMastery) (models.SkillMastery, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		skill.ID = models.NewID()
		skill.CreatedAt = now
		skill.UpdatedAt = now
		if skill.Readiness == "" {
			skill.Readiness = constants.ReadinessNotReady
		}
		if skill.DepthRating == 0 {
			skill.DepthRating = 1
		}
		skill.LastRevised = today(now)
		next, err := utils.AddDays(skill.LastRevised, constants.SkillRevisionDays)
		if err != nil {
			return err
		}
		skill.NextRevision = next
		if skill.LinkedProjects == nil {
			skill.LinkedProjects = []models.LinkedProject{}
		}
		skill.RevisionHistory = []string{}
		skill.ErrorPatterns = []models.SkillErrorPattern{}
		if err := skill.Validate(); err != nil {
			return err
		}
		st.SkillMastery = append(st.SkillMastery, skill)
		return nil
	})
	return skill, err
}

func (s *Store) UpdateSkill(ctx context.Context, id string, patch models.SkillPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.SkillMastery, "skill", id, skillID, func(sk *models.SkillMastery) error {
			patch.Apply(sk)
			sk.UpdatedAt = now
			return sk.Validate()
		})
	})
}

func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.SkillMastery, err = removeByID(st.SkillMastery, "skill", id, skillID)
		return err
	})
}

// AddErrorPattern records a first occurrence of a recurring mistake.
func (s *Store) AddErrorPattern(ctx context.Context, skill, description string) (models.SkillErrorPattern, error) {
	var pattern models.SkillErrorPattern
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.SkillMastery, "skill", skill, skillID, func(sk *models.SkillMastery) error {
			if strings.TrimSpace(description) == "" {
				return &models.ValidationError{Entity: "error pattern", Field: "description", Reason: "is required"}
			}
			pattern = models.SkillErrorPattern{
				ID:           models.NewID(),
				Description:  description,
				Frequency:    1,
				LastOccurred: now,
			}
			sk.ErrorPatterns = append(sk.ErrorPatterns, pattern)
			sk.UpdatedAt = now
			return nil
		})
	})
	return pattern, err
}

// RecordErrorOccurrence bumps the frequency of an error pattern.
func (s *Store) RecordErrorOccurrence(ctx context.Context, skill, pattern string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.SkillMastery, "skill", skill, skillID, func(sk *models.SkillMastery) error {
			sk.UpdatedAt = now
			return updateByID(sk.ErrorPatterns, "error pattern", pattern,
				func(p *models.SkillErrorPattern) string { return p.ID },
				func(p *models.SkillErrorPattern) error {
					p.Frequency++
					p.LastOccurred = now
					return nil
				})
		})
	})
}

// ReviseSkill logs a revision today and schedules the next one a week out, whatever the depth.
func (s *Store) ReviseSkill(ctx context.Context, id string) (models.SkillMastery, error) {
	var out models.SkillMastery
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.SkillMastery, "skill", id, skillID, func(sk *models.SkillMastery) error {
			day := today(now)
			next, err := utils.AddDays(day, constants.SkillRevisionDays)
			if err != nil {
				return err
			}
			sk.RevisionHistory = append(sk.RevisionHistory, day)
			sk.LastRevised = day
			sk.NextRevision = next
			sk.UpdatedAt = now
			out = *sk
			out.RevisionHistory = slices.Clone(sk.RevisionHistory)
			out.LinkedProjects = slices.Clone(sk.LinkedProjects)
			out.ErrorPatterns = slices.Clone(sk.ErrorPatterns)
			return nil
		})
	})
	return out, err
}

// SkillsDue returns skills whose next revision is today or earlier.
func (s *Store) SkillsDue() []models.SkillMastery {
	var out []models.SkillMastery
	day := today(s.Now())
	for _, sk := range s.State().SkillMastery {
		if sk.NextRevision != "" && sk.NextRevision <= day {
			out = append(out, sk)
		}
	}
	return out
}
