package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	provider := storage.NewJSONStore(t.TempDir(), constants.StorageKey)
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s, err := store.Open(context.Background(), provider, store.WithNotifier(nil), store.WithOutbox(false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

// seedReading adds a folder holding one book with a session, an insight and a note
// linked to the session.
func seedReading(t *testing.T, s *store.Store) (book models.Book, session models.ReadingSession) {
	t.Helper()
	ctx := context.Background()
	folder, err := s.AddFolder(ctx, models.ReadingFolder{Name: "Fiction"})
	if err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	book, err = s.AddBookToFolder(ctx, folder.ID, models.Book{Title: "Dune", TotalPages: 300})
	if err != nil {
		t.Fatalf("AddBookToFolder() error = %v", err)
	}
	session, err = s.AddReadingSession(ctx, models.ReadingSession{BookID: book.ID, PagesRead: 20})
	if err != nil {
		t.Fatalf("AddReadingSession() error = %v", err)
	}
	if _, err := s.SaveBookInsight(ctx, models.BookInsight{BookID: book.ID, FinalSummary: "spice"}); err != nil {
		t.Fatalf("SaveBookInsight() error = %v", err)
	}
	if _, err := s.AddNote(ctx, models.LifeNote{Content: "good chapter", LinkedSystem: constants.SystemReading, LinkedSessionID: session.ID}); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	return book, session
}

func countType(result ValidationResult, typ ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func TestValidateState_Clean(t *testing.T) {
	s := setupTestStore(t)
	seedReading(t, s)

	result := New().ValidateState(s.State())
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts:\n%s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestValidateState_DanglingBook(t *testing.T) {
	s := setupTestStore(t)
	book, _ := seedReading(t, s)

	// Drop the book without the cascade DeleteBook would apply.
	err := s.Repair(context.Background(), func(st *models.State) error {
		st.Books = st.Books[:0]
		return nil
	})
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}

	result := New().ValidateState(s.State())
	dangling := result.Dangling()
	if len(dangling) != 3 {
		t.Fatalf("len(Dangling()) = %d, want 3:\n%s", len(dangling), result.FormatReport())
	}
	entities := map[string]bool{}
	for _, c := range dangling {
		entities[c.Entity] = true
		if c.Ref != book.ID {
			t.Errorf("conflict %q references %q, want %q", c.Description, c.Ref, book.ID)
		}
	}
	for _, want := range []string{"reading session", "folder", "insight"} {
		if !entities[want] {
			t.Errorf("missing dangling %s", want)
		}
	}
	if !strings.Contains(result.FormatReport(), "references missing book") {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateState_InvalidAndDuplicate(t *testing.T) {
	st := models.DefaultState(time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC))
	st.WeeklyGoals = []models.WeeklyGoal{
		{ID: "g1", Title: "Ship", WeekStart: "2026-03-09", Progress: 140},
	}
	st.DailyTasks = []models.DailyTask{
		{ID: "t1", Title: "Run", Category: constants.TaskPhysical, Date: "2026-03-11"},
		{ID: "t1", Title: "Read", Category: constants.TaskMental, Date: "2026-03-11"},
	}
	st.Notes = []models.LifeNote{
		{ID: "n1", Content: "x", Date: "2026-03-11", LinkedSystem: constants.SystemGeneral, LinkedSessionID: "anything"},
	}

	result := New().ValidateState(st)
	if got := countType(result, ConflictInvalidRecord); got != 1 {
		t.Errorf("invalid records = %d, want 1:\n%s", got, result.FormatReport())
	}
	if got := countType(result, ConflictDuplicateID); got != 1 {
		t.Errorf("duplicate ids = %d, want 1:\n%s", got, result.FormatReport())
	}
	// General notes carry free-form links.
	if got := len(result.Dangling()); got != 0 {
		t.Errorf("dangling = %d, want 0", got)
	}
}

func TestAutoFixDanglingReferences(t *testing.T) {
	s := setupTestStore(t)
	_, session := seedReading(t, s)
	ctx := context.Background()

	err := s.Repair(ctx, func(st *models.State) error {
		st.Books = st.Books[:0]
		st.ReadingSessions = st.ReadingSessions[:0]
		return nil
	})
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}

	result := New().ValidateState(s.State())
	// folder, insight and the note's session link
	if got := len(result.Dangling()); got != 3 {
		t.Fatalf("len(Dangling()) = %d, want 3:\n%s", got, result.FormatReport())
	}

	actions, err := AutoFixDanglingReferences(ctx, result.Dangling(), s.Repair)
	if err != nil {
		t.Fatalf("AutoFixDanglingReferences() error = %v", err)
	}
	if len(actions) != 3 {
		t.Errorf("len(actions) = %d, want 3", len(actions))
	}

	st := s.State()
	if after := New().ValidateState(st); after.HasConflicts() {
		t.Errorf("conflicts after fix:\n%s", after.FormatReport())
	}
	if len(st.BookInsights) != 0 || len(st.Folders[0].BookIDs) != 0 {
		t.Errorf("dangling records remain: insights=%d folder books=%v", len(st.BookInsights), st.Folders[0].BookIDs)
	}
	if st.Notes[0].LinkedSessionID != "" {
		t.Errorf("note still links session %q", session.ID)
	}
	if len(st.Notes) != 1 {
		t.Errorf("note removed instead of unlinked")
	}
}

func TestAutoFix_NothingToDo(t *testing.T) {
	s := setupTestStore(t)
	seedReading(t, s)
	rev := s.Revision()

	actions, err := AutoFixDanglingReferences(context.Background(), nil, s.Repair)
	if err != nil || len(actions) != 0 {
		t.Fatalf("AutoFixDanglingReferences() = %v, %v", actions, err)
	}
	if s.Revision() != rev {
		t.Errorf("no-op fix committed revision %d", s.Revision())
	}
}

func TestPrune_ContentReferences(t *testing.T) {
	st := models.DefaultState(time.Now())
	st.Branding.ContentItems = []models.BrandingContentItem{
		{ID: "c1", Title: "Post", PlatformIDs: []string{"p1", "gone"}, PillarID: "lost"},
	}
	st.Branding.Platforms = []models.Platform{{ID: "p1", Name: "Blog"}}

	result := New().ValidateState(st)
	dangling := result.Dangling()
	if len(dangling) != 2 {
		t.Fatalf("len(Dangling()) = %d, want 2:\n%s", len(dangling), result.FormatReport())
	}
	for _, c := range dangling {
		if !Prune(&st, c) {
			t.Errorf("Prune(%q) = false", c.Description)
		}
	}
	item := st.Branding.ContentItems[0]
	if item.PillarID != "" || len(item.PlatformIDs) != 1 || item.PlatformIDs[0] != "p1" {
		t.Errorf("item after prune = %+v", item)
	}
}
