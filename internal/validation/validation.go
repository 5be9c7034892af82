// Package validation checks a state snapshot for broken references and invalid records.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictDanglingReference ConflictType = "dangling_reference"
	ConflictInvalidRecord     ConflictType = "invalid_record"
	ConflictDuplicateID       ConflictType = "duplicate_id"
)

// Conflict represents one detected problem. For dangling references Entity/ID name the
// record holding the reference and Ref the id it points at.
type Conflict struct {
	Type        ConflictType
	Description string
	Entity      string
	ID          string
	Field       string
	Ref         string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Dangling returns only the dangling-reference conflicts.
func (vr *ValidationResult) Dangling() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == ConflictDanglingReference {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

type idSet map[string]bool

func ids[T any](items []T, id func(*T) string) idSet {
	set := make(idSet, len(items))
	for i := range items {
		set[id(&items[i])] = true
	}
	return set
}

type checker struct {
	result *ValidationResult
}

func (c *checker) dangling(entity, id, field, ref, target string) {
	c.result.Conflicts = append(c.result.Conflicts, Conflict{
		Type:        ConflictDanglingReference,
		Description: fmt.Sprintf("%s %q: %s references missing %s %q", entity, id, field, target, ref),
		Entity:      entity,
		ID:          id,
		Field:       field,
		Ref:         ref,
	})
}

func (c *checker) invalid(entity, id string, err error) {
	if err == nil {
		return
	}
	c.result.Conflicts = append(c.result.Conflicts, Conflict{
		Type:        ConflictInvalidRecord,
		Description: fmt.Sprintf("%s %q is invalid: %v", entity, id, err),
		Entity:      entity,
		ID:          id,
	})
}

func checkRecords[T any](c *checker, entity string, items []T, id func(*T) string, validate func(*T) error) {
	seen := make(idSet, len(items))
	for i := range items {
		key := id(&items[i])
		if seen[key] {
			c.result.Conflicts = append(c.result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("duplicate %s id %q", entity, key),
				Entity:      entity,
				ID:          key,
			})
		}
		seen[key] = true
		if validate != nil {
			c.invalid(entity, key, validate(&items[i]))
		}
	}
}

// ValidateState checks st for dangling references, duplicate ids and records that fail
// their own validation.
func (v *Validator) ValidateState(st models.State) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	c := &checker{result: &result}

	books := ids(st.Books, func(b *models.Book) string { return b.ID })
	folders := ids(st.Folders, func(f *models.ReadingFolder) string { return f.ID })
	projects := ids(st.CodingProjects, func(p *models.CodingProject) string { return p.ID })
	platforms := ids(st.Branding.Platforms, func(p *models.Platform) string { return p.ID })
	pillars := ids(st.Branding.Positioning.CoreThemes, func(p *models.ExpertisePillar) string { return p.ID })
	sessions := map[constants.LinkedSystem]idSet{
		constants.SystemMeditation: ids(st.MeditationSessions, func(m *models.MeditationSession) string { return m.ID }),
		constants.SystemReading:    ids(st.ReadingSessions, func(r *models.ReadingSession) string { return r.ID }),
		constants.SystemWorkout:    ids(st.Workouts.Summaries, func(s *models.SessionSummary) string { return s.ID }),
	}

	for _, s := range st.ReadingSessions {
		if !books[s.BookID] {
			c.dangling("reading session", s.ID, "bookId", s.BookID, "book")
		}
	}
	for _, b := range st.Books {
		if b.FolderID != "" && !folders[b.FolderID] {
			c.dangling("book", b.ID, "folderId", b.FolderID, "folder")
		}
	}
	for _, f := range st.Folders {
		for _, id := range f.BookIDs {
			if !books[id] {
				c.dangling("folder", f.ID, "bookIds", id, "book")
			}
		}
	}
	for _, in := range st.BookInsights {
		if !books[in.BookID] {
			c.dangling("insight", in.ID, "bookId", in.BookID, "book")
		}
	}
	for _, item := range st.Branding.ContentItems {
		for _, id := range item.PlatformIDs {
			if !platforms[id] {
				c.dangling("content", item.ID, "platformIds", id, "platform")
			}
		}
		if item.PillarID != "" && !pillars[item.PillarID] {
			c.dangling("content", item.ID, "pillarId", item.PillarID, "core theme")
		}
	}
	for _, sk := range st.SkillMastery {
		for _, lp := range sk.LinkedProjects {
			if !projects[lp.ProjectID] {
				c.dangling("skill", sk.ID, "linkedProjects", lp.ProjectID, "project")
			}
		}
	}
	for _, n := range st.Notes {
		if n.LinkedSessionID == "" {
			continue
		}
		if set, ok := sessions[n.LinkedSystem]; ok && !set[n.LinkedSessionID] {
			c.dangling("note", n.ID, "linkedSessionId", n.LinkedSessionID, string(n.LinkedSystem)+" session")
		}
	}

	checkRecords(c, "book", st.Books, func(b *models.Book) string { return b.ID }, (*models.Book).Validate)
	checkRecords(c, "folder", st.Folders, func(f *models.ReadingFolder) string { return f.ID }, (*models.ReadingFolder).Validate)
	checkRecords(c, "reading session", st.ReadingSessions, func(r *models.ReadingSession) string { return r.ID }, (*models.ReadingSession).Validate)
	checkRecords(c, "insight", st.BookInsights, func(i *models.BookInsight) string { return i.ID }, (*models.BookInsight).Validate)
	checkRecords(c, "meditation", st.MeditationSessions, func(m *models.MeditationSession) string { return m.ID }, (*models.MeditationSession).Validate)
	checkRecords(c, "task", st.DailyTasks, func(t *models.DailyTask) string { return t.ID }, (*models.DailyTask).Validate)
	checkRecords(c, "goal", st.WeeklyGoals, func(g *models.WeeklyGoal) string { return g.ID }, (*models.WeeklyGoal).Validate)
	checkRecords(c, "note", st.Notes, func(n *models.LifeNote) string { return n.ID }, (*models.LifeNote).Validate)
	checkRecords(c, "problem", st.DSAProblems, func(p *models.DSAProblem) string { return p.ID }, (*models.DSAProblem).Validate)
	checkRecords(c, "cs note", st.CSNotes, func(n *models.CSNote) string { return n.ID }, (*models.CSNote).Validate)
	checkRecords(c, "project", st.CodingProjects, func(p *models.CodingProject) string { return p.ID }, (*models.CodingProject).Validate)
	checkRecords(c, "skill", st.SkillMastery, func(s *models.SkillMastery) string { return s.ID }, (*models.SkillMastery).Validate)
	checkRecords(c, "platform", st.Branding.Platforms, func(p *models.Platform) string { return p.ID }, (*models.Platform).Validate)
	checkRecords(c, "content", st.Branding.ContentItems, func(i *models.BrandingContentItem) string { return i.ID }, (*models.BrandingContentItem).Validate)
	checkRecords(c, "connection", st.Networking.Connections, func(n *models.NetworkingConnection) string { return n.ID }, (*models.NetworkingConnection).Validate)
	checkRecords(c, "workout session", st.Workouts.Summaries, func(s *models.SessionSummary) string { return s.ID }, (*models.SessionSummary).Validate)
	c.invalid("protection", "settings", st.Protection.Validate())

	return result
}

// Prune removes the reference described by a dangling-reference conflict from st and
// reports whether anything changed.
func Prune(st *models.State, c Conflict) bool {
	if c.Type != ConflictDanglingReference {
		return false
	}
	switch c.Entity {
	case "reading session":
		return removeWhere(&st.ReadingSessions, func(s *models.ReadingSession) bool { return s.ID == c.ID })
	case "insight":
		return removeWhere(&st.BookInsights, func(i *models.BookInsight) bool { return i.ID == c.ID })
	case "book":
		for i := range st.Books {
			if st.Books[i].ID == c.ID && st.Books[i].FolderID == c.Ref {
				st.Books[i].FolderID = ""
				return true
			}
		}
	case "folder":
		for i := range st.Folders {
			if st.Folders[i].ID == c.ID {
				return removeValue(&st.Folders[i].BookIDs, c.Ref)
			}
		}
	case "content":
		for i := range st.Branding.ContentItems {
			item := &st.Branding.ContentItems[i]
			if item.ID != c.ID {
				continue
			}
			if c.Field == "pillarId" && item.PillarID == c.Ref {
				item.PillarID = ""
				return true
			}
			return removeValue(&item.PlatformIDs, c.Ref)
		}
	case "skill":
		for i := range st.SkillMastery {
			if st.SkillMastery[i].ID == c.ID {
				return removeWhere(&st.SkillMastery[i].LinkedProjects, func(lp *models.LinkedProject) bool { return lp.ProjectID == c.Ref })
			}
		}
	case "note":
		for i := range st.Notes {
			if st.Notes[i].ID == c.ID && st.Notes[i].LinkedSessionID == c.Ref {
				st.Notes[i].LinkedSessionID = ""
				return true
			}
		}
	}
	return false
}

func removeWhere[T any](items *[]T, match func(*T) bool) bool {
	kept := (*items)[:0]
	removed := false
	for i := range *items {
		if match(&(*items)[i]) {
			removed = true
			continue
		}
		kept = append(kept, (*items)[i])
	}
	*items = kept
	return removed
}

func removeValue(items *[]string, v string) bool {
	return removeWhere(items, func(s *string) bool { return *s == v })
}

var errNothingToFix = errors.New("nothing to fix")

// RepairFunc applies fn to the state as one committed mutation.
type RepairFunc func(ctx context.Context, fn func(st *models.State) error) error

// AutoFixDanglingReferences removes every dangling reference in conflicts through repair
// in a single mutation and reports what it did.
func AutoFixDanglingReferences(ctx context.Context, conflicts []Conflict, repair RepairFunc) ([]FixAction, error) {
	var actions []FixAction
	err := repair(ctx, func(st *models.State) error {
		actions = actions[:0]
		for _, c := range conflicts {
			if !Prune(st, c) {
				continue
			}
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed %s reference %q from %s %q", c.Field, c.Ref, c.Entity, c.ID),
				SourceConflict: c,
			})
		}
		if len(actions) == 0 {
			return errNothingToFix
		}
		return nil
	})
	if errors.Is(err, errNothingToFix) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return actions, nil
}
