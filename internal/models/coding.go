package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type CodingLearningWeek struct {
	ID         string               `json:"id"`
	WeekNumber int                  `json:"weekNumber"`
	WeekRange  string               `json:"weekRange"`
	Topics     []string             `json:"topics"`
	Resources  []Resource           `json:"resources"`
	Status     constants.WeekStatus `json:"status"`
}

func (w *CodingLearningWeek) Validate() error {
	if w.WeekNumber < 1 {
		return invalid("learning week", "weekNumber", "must be at least 1, got %d", w.WeekNumber)
	}
	return requireOneOf("learning week", "status", w.Status,
		constants.WeekPending, constants.WeekInProgress, constants.WeekCompleted)
}

type WeekPatch struct {
	WeekRange *string
	Topics    []string
	Resources []Resource
	Status    *constants.WeekStatus
}

func (p WeekPatch) Apply(w *CodingLearningWeek) {
	if p.WeekRange != nil {
		w.WeekRange = *p.WeekRange
	}
	if p.Topics != nil {
		w.Topics = append([]string(nil), p.Topics...)
	}
	if p.Resources != nil {
		w.Resources = append([]Resource(nil), p.Resources...)
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
}

type CodingLearningPath struct {
	ID    string               `json:"id"`
	Title string               `json:"title"`
	Weeks []CodingLearningWeek `json:"weeks"`
}

type DSAProblem struct {
	ID         string                      `json:"id"`
	Title      string                      `json:"title"`
	Difficulty constants.ProblemDifficulty `json:"difficulty"`
	Category   constants.ProblemCategory   `json:"category"`
	Notes      string                      `json:"notes,omitempty"`
	Learnings  string                      `json:"learnings,omitempty"`
	Status     constants.ProblemStatus     `json:"status"`
	Link       string                      `json:"link,omitempty"`
	DateSolved string                      `json:"dateSolved,omitempty"`
}

func (p *DSAProblem) Validate() error {
	if err := requireText("problem", "title", p.Title); err != nil {
		return err
	}
	if err := requireOneOf("problem", "difficulty", p.Difficulty,
		constants.DifficultyEasy, constants.DifficultyMedium, constants.DifficultyHard); err != nil {
		return err
	}
	if err := requireOneOf("problem", "category", p.Category,
		constants.CategoryDSA, constants.CategoryCSCore, constants.CategorySystemDesign); err != nil {
		return err
	}
	if err := requireOneOf("problem", "status", p.Status,
		constants.ProblemPending, constants.ProblemSolved, constants.ProblemReview); err != nil {
		return err
	}
	return optionalDate("problem", "dateSolved", p.DateSolved)
}

type ProblemPatch struct {
	Title      *string
	Difficulty *constants.ProblemDifficulty
	Category   *constants.ProblemCategory
	Notes      *string
	Learnings  *string
	Status     *constants.ProblemStatus
	Link       *string
}

func (p ProblemPatch) Apply(d *DSAProblem) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Difficulty != nil {
		d.Difficulty = *p.Difficulty
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.Learnings != nil {
		d.Learnings = *p.Learnings
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Link != nil {
		d.Link = *p.Link
	}
}

type CSNote struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	Category  constants.CSNoteCategory `json:"category"`
	Content   string                   `json:"content"`
	Tags      []string                 `json:"tags"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func (n *CSNote) Validate() error {
	if err := requireText("cs note", "title", n.Title); err != nil {
		return err
	}
	return requireOneOf("cs note", "category", n.Category, constants.NoteCSCore, constants.NoteSystemDesign)
}

type CSNotePatch struct {
	Title    *string
	Category *constants.CSNoteCategory
	Content  *string
	Tags     []string
}

func (p CSNotePatch) Apply(n *CSNote) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = append([]string(nil), p.Tags...)
	}
}

type VideoResource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Domain      string   `json:"domain"`
	Tags        []string `json:"tags"`
}

func (v *VideoResource) Validate() error {
	if err := requireText("video", "title", v.Title); err != nil {
		return err
	}
	return requireText("video", "url", v.URL)
}

type ProjectLink struct {
	Type  constants.LinkType `json:"type"`
	Title string             `json:"title"`
	URL   string             `json:"url"`
}

type ProjectNotes struct {
	Learnings    string `json:"learnings"`
	Blockers     string `json:"blockers"`
	Improvements string `json:"improvements"`
}

type CodingProject struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Objective   string                  `json:"objective"`
	TechStack   []string                `json:"techStack"`
	Description string                  `json:"description"`
	Outcomes    []string                `json:"outcomes"`
	Links       []ProjectLink           `json:"links"`
	Notes       *ProjectNotes           `json:"notes,omitempty"`
	Status      constants.ProjectStatus `json:"status"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func (p *CodingProject) Validate() error {
	if err := requireText("project", "title", p.Title); err != nil {
		return err
	}
	for _, l := range p.Links {
		if err := requireOneOf("project", "link type", l.Type,
			constants.LinkGitHub, constants.LinkBlog, constants.LinkDocs, constants.LinkYouTube); err != nil {
			return err
		}
	}
	return requireOneOf("project", "status", p.Status,
		constants.ProjectPlanning, constants.ProjectInProgress, constants.ProjectCompleted)
}

type ProjectPatch struct {
	Title       *string
	Objective   *string
	TechStack   []string
	Description *string
	Outcomes    []string
	Links       []ProjectLink
	Notes       *ProjectNotes
	Status      *constants.ProjectStatus
}

func (p ProjectPatch) Apply(c *CodingProject) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Objective != nil {
		c.Objective = *p.Objective
	}
	if p.TechStack != nil {
		c.TechStack = append([]string(nil), p.TechStack...)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Outcomes != nil {
		c.Outcomes = append([]string(nil), p.Outcomes...)
	}
	if p.Links != nil {
		c.Links = append([]ProjectLink(nil), p.Links...)
	}
	if p.Notes != nil {
		n := *p.Notes
		c.Notes = &n
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

type DebugLog struct {
	ID       string   `json:"id"`
	Issue    string   `json:"issue"`
	Solution string   `json:"solution"`
	Tags     []string `json:"tags"`
	Date     string   `json:"date"`
}

func (d *DebugLog) Validate() error {
	return requireText("debug log", "issue", d.Issue)
}

type SkillErrorPattern struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Frequency    int       `json:"frequency"`
	LastOccurred time.Time `json:"lastOccurred"`
}

type LinkedProject struct {
	ProjectID    string                 `json:"projectId"`
	ProjectTitle string                 `json:"projectTitle"`
	Depth        constants.ProjectDepth `json:"depth"`
}

type SkillMastery struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	DepthRating     int                 `json:"depthRating"`
	LinkedProjects  []LinkedProject     `json:"linkedProjects"`
	Readiness       constants.Readiness `json:"readiness"`
	LastRevised     string              `json:"lastRevised"`
	NextRevision    string              `json:"nextRevision"`
	RevisionHistory []string            `json:"revisionHistory"`
	ErrorPatterns   []SkillErrorPattern `json:"errorPatterns"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (s *SkillMastery) Validate() error {
	if err := requireText("skill", "name", s.Name); err != nil {
		return err
	}
	if err := requireRange("skill", "depthRating", s.DepthRating, 1, 5); err != nil {
		return err
	}
	if err := requireOneOf("skill", "readiness", s.Readiness,
		constants.ReadinessNotReady, constants.ReadinessCanExplain, constants.ReadinessCanDefend); err != nil {
		return err
	}
	for _, lp := range s.LinkedProjects {
		if err := requireOneOf("skill", "linked project depth", lp.Depth,
			constants.DepthToy, constants.DepthPartial, constants.DepthProduction); err != nil {
			return err
		}
	}
	if err := optionalDate("skill", "lastRevised", s.LastRevised); err != nil {
		return err
	}
	return optionalDate("skill", "nextRevision", s.NextRevision)
}

type SkillPatch struct {
	Name           *string
	Category       *string
	DepthRating    *int
	Readiness      *constants.Readiness
	LinkedProjects []LinkedProject
	NextRevision   *string
}

func (p SkillPatch) Apply(s *SkillMastery) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.DepthRating != nil {
		s.DepthRating = *p.DepthRating
	}
	if p.Readiness != nil {
		s.Readiness = *p.Readiness
	}
	if p.LinkedProjects != nil {
		s.LinkedProjects = append([]LinkedProject(nil), p.LinkedProjects...)
	}
	if p.NextRevision != nil {
		s.NextRevision = *p.NextRevision
	}
}
