package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
	"github.com/julianstephens/lifetrack/internal/storage"
)

// Wednesday.
var testNow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func setupTestStore(t *testing.T, opts ...Option) (*Store, *storage.JSONStore) {
	t.Helper()
	provider := storage.NewJSONStore(t.TempDir(), constants.StorageKey)
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })

	opts = append([]Option{WithClock(fixedClock), WithNotifier(nil)}, opts...)
	s, err := Open(context.Background(), provider, opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, provider
}

func TestAddTask(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	first, err := s.AddTask(ctx, "Run", constants.TaskPhysical, "")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	second, err := s.AddTask(ctx, "Read", constants.TaskMental, "2026-03-12")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	tasks := s.State().DailyTasks
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("ids not unique: %q, %q", first.ID, second.ID)
	}
	if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Errorf("insertion order not preserved")
	}
	if first.Date != "2026-03-11" {
		t.Errorf("first.Date = %q, want today", first.Date)
	}
	if !first.CreatedAt.Equal(testNow) {
		t.Errorf("first.CreatedAt = %v, want %v", first.CreatedAt, testNow)
	}
	if s.Revision() != 2 {
		t.Errorf("Revision() = %d, want 2", s.Revision())
	}
}

func TestAddTask_Invalid(t *testing.T) {
	s, _ := setupTestStore(t)
	before := s.State()

	_, err := s.AddTask(context.Background(), "  ", constants.TaskWork, "")
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("AddTask() error = %v, want ValidationError", err)
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed on invalid input (-before +after):\n%s", diff)
	}
}

// TestDeleteTask_Idempotent asserts that a repeated delete leaves the state unchanged.
// The second call still reports ErrNotFound so callers can tell; IgnoreNotFound drops it.
func TestDeleteTask_Idempotent(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "Run", constants.TaskPhysical, "")

	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	after := s.State()

	err := s.DeleteTask(ctx, task.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteTask() error = %v, want ErrNotFound", err)
	}
	if IgnoreNotFound(err) != nil {
		t.Errorf("IgnoreNotFound() = %v, want nil", IgnoreNotFound(err))
	}
	if diff := cmp.Diff(after, s.State()); diff != "" {
		t.Errorf("second delete changed state:\n%s", diff)
	}
}

func TestUpdateTask_SiblingsUnchanged(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	a, _ := s.AddTask(ctx, "Run", constants.TaskPhysical, "")
	b, _ := s.AddTask(ctx, "Read", constants.TaskMental, "")
	before := s.State()

	title := "Run 5k"
	if err := s.UpdateTask(ctx, a.ID, models.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	after := s.State()
	want := before.DailyTasks[0]
	want.Title = title
	if diff := cmp.Diff(want, after.DailyTasks[0]); diff != "" {
		t.Errorf("target task (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before.DailyTasks[1], after.DailyTasks[1]); diff != "" {
		t.Errorf("sibling %s changed:\n%s", b.ID, diff)
	}

	if err := s.UpdateTask(ctx, "missing", models.TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestToggleTask(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "Run", constants.TaskPhysical, "")

	for _, want := range []bool{true, false} {
		got, err := s.ToggleTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("ToggleTask() error = %v", err)
		}
		if got != want {
			t.Errorf("ToggleTask() = %v, want %v", got, want)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	goal, err := s.AddGoal(ctx, "Ship", "general")
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	if goal.WeekStart != "2026-03-09" {
		t.Errorf("WeekStart = %q, want Monday 2026-03-09", goal.WeekStart)
	}

	tests := []struct {
		progress      int
		wantProgress  int
		wantCompleted bool
	}{
		{40, 40, false},
		{150, 100, true},
		{-5, 0, false},
	}
	for _, tt := range tests {
		if err := s.UpdateGoalProgress(ctx, goal.ID, tt.progress); err != nil {
			t.Fatalf("UpdateGoalProgress(%d) error = %v", tt.progress, err)
		}
		g := s.State().WeeklyGoals[0]
		if g.Progress != tt.wantProgress || g.Completed != tt.wantCompleted {
			t.Errorf("UpdateGoalProgress(%d) = (%d, %v), want (%d, %v)",
				tt.progress, g.Progress, g.Completed, tt.wantProgress, tt.wantCompleted)
		}
	}

	rev := s.Revision()
	bad := 101
	var verr *models.ValidationError
	if err := s.UpdateGoal(ctx, goal.ID, models.GoalPatch{Progress: &bad}); !errors.As(err, &verr) {
		t.Errorf("UpdateGoal(101) error = %v, want ValidationError", err)
	}
	if s.Revision() != rev {
		t.Errorf("revision moved on invalid update")
	}
}

func TestReadingSessions_AdvanceBook(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	book, err := s.AddBook(ctx, models.Book{Title: "Dune", Author: "Herbert", TotalPages: 300})
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	for _, pages := range []int{50, 30} {
		if _, err := s.AddReadingSession(ctx, models.ReadingSession{BookID: book.ID, PagesRead: pages}); err != nil {
			t.Fatalf("AddReadingSession(%d) error = %v", pages, err)
		}
	}

	st := s.State()
	if got := st.Books[0].CurrentPage; got != 80 {
		t.Errorf("CurrentPage = %d, want 80", got)
	}
	if got := st.ReadingSessions[1]; got.StartPage != 50 || got.EndPage != 80 {
		t.Errorf("second session pages = %d-%d, want 50-80", got.StartPage, got.EndPage)
	}
	stats := s.ReadingStats()
	if stats.PagesThisWeek != 80 {
		t.Errorf("PagesThisWeek = %d, want 80", stats.PagesThisWeek)
	}
	if stats.Streak != 1 {
		t.Errorf("Streak = %d, want 1", stats.Streak)
	}
}

func TestReadingSession_CompletesBook(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	book, _ := s.AddBook(ctx, models.Book{Title: "Short", TotalPages: 100})

	if _, err := s.AddReadingSession(ctx, models.ReadingSession{BookID: book.ID, StartPage: 60, PagesRead: 60, EndPage: 120}); err != nil {
		t.Fatalf("AddReadingSession() error = %v", err)
	}
	got := s.State().Books[0]
	if got.CurrentPage != 100 || got.Status != constants.BookCompleted || got.CompletedAt == nil {
		t.Errorf("book = page %d status %s completedAt %v, want completed at 100", got.CurrentPage, got.Status, got.CompletedAt)
	}

	if _, err := s.AddReadingSession(ctx, models.ReadingSession{BookID: "missing", PagesRead: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("session for missing book error = %v, want ErrNotFound", err)
	}
}

func TestDeleteFolder_RemovesBooks(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	folder, _ := s.AddFolder(ctx, models.ReadingFolder{Name: "Sci-fi"})
	inFolder, err := s.AddBookToFolder(ctx, folder.ID, models.Book{Title: "Dune", TotalPages: 300})
	if err != nil {
		t.Fatalf("AddBookToFolder() error = %v", err)
	}
	loose, _ := s.AddBook(ctx, models.Book{Title: "Essays", TotalPages: 120})
	if _, err := s.AddReadingSession(ctx, models.ReadingSession{BookID: inFolder.ID, PagesRead: 10}); err != nil {
		t.Fatalf("AddReadingSession() error = %v", err)
	}

	if got := s.State().Folders[0].BookIDs; len(got) != 1 || got[0] != inFolder.ID {
		t.Fatalf("folder BookIDs = %v, want [%s]", got, inFolder.ID)
	}
	if err := s.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("DeleteFolder() error = %v", err)
	}

	st := s.State()
	if len(st.Folders) != 0 {
		t.Errorf("folders = %d, want 0", len(st.Folders))
	}
	if len(st.Books) != 1 || st.Books[0].ID != loose.ID {
		t.Errorf("books = %+v, want only %s", st.Books, loose.ID)
	}
	if len(st.ReadingSessions) != 0 {
		t.Errorf("sessions of deleted book kept: %d", len(st.ReadingSessions))
	}
}

func TestInsight_QuoteLinks(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	book, _ := s.AddBook(ctx, models.Book{Title: "Dune", TotalPages: 300})

	idea, err := s.AddCoreIdea(ctx, book.ID, "Fear is the mind-killer")
	if err != nil {
		t.Fatalf("AddCoreIdea() error = %v", err)
	}
	quote, _ := s.AddQuote(ctx, book.ID, models.BookQuote{Content: "I must not fear.", Page: 8})

	linked, err := s.LinkQuote(ctx, book.ID, models.InsightCoreIdea, idea.ID, quote.ID)
	if err != nil || !linked {
		t.Fatalf("LinkQuote() = %v, %v; want linked", linked, err)
	}
	in, ok := s.BookInsight(book.ID)
	if !ok || len(in.CoreIdeas[0].LinkedQuotes) != 1 {
		t.Fatalf("insight = %+v, want one linked quote", in)
	}

	if err := s.RemoveInsightItem(ctx, book.ID, models.InsightQuote, quote.ID); err != nil {
		t.Fatalf("RemoveInsightItem() error = %v", err)
	}
	in, _ = s.BookInsight(book.ID)
	if len(in.Quotes) != 0 || len(in.CoreIdeas[0].LinkedQuotes) != 0 {
		t.Errorf("quote link survived removal: %+v", in)
	}

	if err := s.DeleteBook(ctx, book.ID); err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}
	if _, ok := s.BookInsight(book.ID); ok {
		t.Errorf("insight of deleted book kept")
	}
}

func TestSaveBookInsight_Upserts(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	book, _ := s.AddBook(ctx, models.Book{Title: "Dune", TotalPages: 300})

	first, err := s.SaveBookInsight(ctx, models.BookInsight{BookID: book.ID, FinalSummary: "one"})
	if err != nil {
		t.Fatalf("SaveBookInsight() error = %v", err)
	}
	second, err := s.SaveBookInsight(ctx, models.BookInsight{BookID: book.ID, FinalSummary: "two"})
	if err != nil {
		t.Fatalf("SaveBookInsight() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert changed id: %q -> %q", first.ID, second.ID)
	}
	st := s.State()
	if len(st.BookInsights) != 1 || st.BookInsights[0].FinalSummary != "two" {
		t.Errorf("insights = %+v, want one with summary two", st.BookInsights)
	}
}

func TestMeditation_Streak(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	session := models.MeditationSession{Duration: 10, Type: constants.MeditationGuided, MoodBefore: 2, MoodAfter: 4}
	if _, err := s.AddMeditationSession(ctx, session); err != nil {
		t.Fatalf("AddMeditationSession() error = %v", err)
	}
	if _, err := s.AddMeditationSession(ctx, session); err != nil {
		t.Fatalf("AddMeditationSession() error = %v", err)
	}
	got := s.MeditationStats()
	if got.Streak != 1 || got.TodayMinutes != 20 {
		t.Errorf("stats = %+v, want streak 1 and 20 minutes", got)
	}
}

func TestDSAProblem_SolvedMovesStreak(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	p, err := s.AddDSAProblem(ctx, models.DSAProblem{
		Title:      "Two Sum",
		Difficulty: constants.DifficultyEasy,
		Category:   constants.CategoryDSA,
	})
	if err != nil {
		t.Fatalf("AddDSAProblem() error = %v", err)
	}
	if s.State().CodingStreak.CurrentStreak != 0 {
		t.Fatalf("pending problem moved the streak")
	}

	solved := constants.ProblemSolved
	if err := s.UpdateDSAProblem(ctx, p.ID, models.ProblemPatch{Status: &solved}); err != nil {
		t.Fatalf("UpdateDSAProblem() error = %v", err)
	}
	st := s.State()
	if st.DSAProblems[0].DateSolved != "2026-03-11" {
		t.Errorf("DateSolved = %q, want today", st.DSAProblems[0].DateSolved)
	}
	if st.CodingStreak.CurrentStreak != 1 {
		t.Errorf("coding streak = %d, want 1", st.CodingStreak.CurrentStreak)
	}
}

func TestReviseSkill(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	skill, err := s.AddSkill(ctx, models.SkillMastery{Name: "Go", DepthRating: 5})
	if err != nil {
		t.Fatalf("AddSkill() error = %v", err)
	}
	if skill.Readiness != constants.ReadinessNotReady || skill.NextRevision != "2026-03-18" {
		t.Errorf("new skill = %+v, want not-ready with revision in a week", skill)
	}

	got, err := s.ReviseSkill(ctx, skill.ID)
	if err != nil {
		t.Fatalf("ReviseSkill() error = %v", err)
	}
	// Revisions stay a week apart at every depth.
	if got.NextRevision != "2026-03-18" {
		t.Errorf("NextRevision = %q, want 7 days out", got.NextRevision)
	}
	if diff := cmp.Diff([]string{"2026-03-11"}, got.RevisionHistory); diff != "" {
		t.Errorf("RevisionHistory (-want +got):\n%s", diff)
	}

	pattern, err := s.AddErrorPattern(ctx, skill.ID, "off-by-one")
	if err != nil {
		t.Fatalf("AddErrorPattern() error = %v", err)
	}
	if err := s.RecordErrorOccurrence(ctx, skill.ID, pattern.ID); err != nil {
		t.Fatalf("RecordErrorOccurrence() error = %v", err)
	}
	if f := s.State().SkillMastery[0].ErrorPatterns[0].Frequency; f != 2 {
		t.Errorf("Frequency = %d, want 2", f)
	}
}

func TestConnection_Outcomes(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	conn, err := s.AddConnection(ctx, models.NetworkingConnection{
		Name: "Ada", TrustScore: 8, ResponsivenessScore: 6, MutualValueScore: 7,
	})
	if err != nil {
		t.Fatalf("AddConnection() error = %v", err)
	}
	if _, err := s.AddOutcome(ctx, conn.ID, models.ConnectionOutcome{Type: constants.OutcomeCollaboration, Description: "pairing"}); err != nil {
		t.Fatalf("AddOutcome() error = %v", err)
	}

	bad := 11
	var verr *models.ValidationError
	if err := s.UpdateConnection(ctx, conn.ID, models.ConnectionPatch{TrustScore: &bad}); !errors.As(err, &verr) {
		t.Errorf("UpdateConnection(trust 11) error = %v, want ValidationError", err)
	}
	got := s.State().Networking.Connections[0]
	if got.TrustScore != 8 || len(got.Outcomes) != 1 {
		t.Errorf("connection = %+v", got)
	}
}

func TestAddNote_BlockedIsRecorded(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	if err := s.SetProtectionLevel(ctx, constants.ProtectionLight, ""); err != nil {
		t.Fatalf("SetProtectionLevel() error = %v", err)
	}

	_, err := s.AddNote(ctx, models.LifeNote{Content: "found some nsfw stuff"})
	var blocked *protection.BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("AddNote() error = %v, want BlockedError", err)
	}

	st := s.State()
	if len(st.Notes) != 0 {
		t.Errorf("blocked note was saved")
	}
	if len(st.Protection.BlockHistory) != 1 || st.Protection.BlockHistory[0].Keyword != "nsfw" {
		t.Errorf("BlockHistory = %+v, want one nsfw attempt", st.Protection.BlockHistory)
	}

	if _, err := s.AddNote(ctx, models.LifeNote{Content: "calm morning"}); err != nil {
		t.Errorf("AddNote(clean) error = %v", err)
	}
}

func TestWithFilterDisabled(t *testing.T) {
	s, _ := setupTestStore(t, WithFilter(false))
	ctx := context.Background()
	_ = s.SetProtectionLevel(ctx, constants.ProtectionStrict, "")

	if _, err := s.AddNote(ctx, models.LifeNote{Content: "nsfw"}); err != nil {
		t.Errorf("AddNote() error = %v, want nil with filter off", err)
	}
}

func TestProtection_PIN(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	if err := s.SetPIN(ctx, "1234", ""); err != nil {
		t.Fatalf("SetPIN() error = %v", err)
	}
	if err := s.SetProtectionLevel(ctx, constants.ProtectionStrict, ""); err != nil {
		t.Fatalf("raising level error = %v", err)
	}
	if err := s.SetProtectionLevel(ctx, constants.ProtectionLight, "0000"); !errors.Is(err, protection.ErrWrongPIN) {
		t.Errorf("lowering with wrong PIN error = %v, want ErrWrongPIN", err)
	}
	if err := s.SetProtectionLevel(ctx, constants.ProtectionLight, "1234"); err != nil {
		t.Errorf("lowering with PIN error = %v", err)
	}
	if s.Protection().PINHash != "" {
		t.Errorf("Protection() leaked the PIN hash")
	}
	if !s.HasPIN() {
		t.Errorf("HasPIN() = false")
	}
}

func TestCheckContent(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	_ = s.SetVitalBlocking(ctx, true, "")
	rev := s.Revision()

	res, err := s.CheckContent(ctx, "https://example.com/docs")
	if err != nil || res.Blocked {
		t.Fatalf("CheckContent(clean) = %+v, %v", res, err)
	}
	if s.Revision() != rev {
		t.Errorf("clean check committed a revision")
	}

	res, err = s.CheckContent(ctx, "https://www.x.com/home")
	if err != nil || !res.Blocked {
		t.Fatalf("CheckContent(x.com) = %+v, %v; want blocked", res, err)
	}
	if h := s.Protection().BlockHistory; len(h) != 1 || h[0].URL == "" {
		t.Errorf("BlockHistory = %+v", h)
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	var got []int64
	unsubscribe := s.Subscribe(func(st models.State) { got = append(got, st.Revision) })

	_, _ = s.AddTask(ctx, "one", constants.TaskWork, "")
	_, _ = s.AddTask(ctx, "  ", constants.TaskWork, "")
	unsubscribe()
	_, _ = s.AddTask(ctx, "two", constants.TaskWork, "")

	if diff := cmp.Diff([]int64{1}, got); diff != "" {
		t.Errorf("notified revisions (-want +got):\n%s", diff)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, provider := setupTestStore(t)
	ctx := context.Background()

	_, _ = s.AddTask(ctx, "Run", constants.TaskPhysical, "")
	book, _ := s.AddBook(ctx, models.Book{Title: "Dune", TotalPages: 300})
	_, _ = s.AddReadingSession(ctx, models.ReadingSession{BookID: book.ID, PagesRead: 25})
	_, _ = s.AddQuote(ctx, book.ID, models.BookQuote{Content: "quote"})
	_ = s.SetDailyFocus(ctx, "deep work")

	reopened, err := Open(ctx, provider, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if diff := cmp.Diff(s.State(), reopened.State()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	n, err := provider.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount() error = %v", err)
	}
	if int64(n) != s.Revision() {
		t.Errorf("PendingCount() = %d, want one entry per revision (%d)", n, s.Revision())
	}
}

func TestWithOutboxDisabled(t *testing.T) {
	s, provider := setupTestStore(t, WithOutbox(false))
	_, _ = s.AddTask(context.Background(), "Run", constants.TaskPhysical, "")

	n, _ := provider.PendingCount(context.Background())
	if n != 0 {
		t.Errorf("PendingCount() = %d, want 0", n)
	}
}

func TestLoad_MalformedSnapshot(t *testing.T) {
	provider := storage.NewJSONStore(t.TempDir(), constants.StorageKey)
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	ctx := context.Background()
	snap := storage.Snapshot{Key: constants.StorageKey, Revision: 7, Data: []byte(`{"revision":7,"books":"oops"}`), UpdatedAt: testNow}
	if err := provider.Commit(ctx, snap, false); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	s, err := Open(ctx, provider, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.Revision() != 7 {
		t.Errorf("Revision() = %d, want 7 kept from the bad snapshot", s.Revision())
	}
	if len(s.State().Books) != 0 {
		t.Errorf("expected default state")
	}
	if _, err := s.AddTask(ctx, "Run", constants.TaskPhysical, ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if s.Revision() != 8 {
		t.Errorf("Revision() = %d, want 8", s.Revision())
	}
}

func TestReplace_NotMirrored(t *testing.T) {
	s, provider := setupTestStore(t)
	ctx := context.Background()

	remote := models.DefaultState(testNow)
	remote.Revision = 42
	remote.DailyFocus = "from remote"
	data, _ := remote.Marshal()

	var notified bool
	s.Subscribe(func(models.State) { notified = true })
	if err := s.Replace(ctx, data); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if s.Revision() != 42 || !notified {
		t.Errorf("Revision() = %d notified = %v, want 42 and notified", s.Revision(), notified)
	}
	if focus, _ := s.DailyFocus(); focus != "from remote" {
		t.Errorf("DailyFocus() = %q", focus)
	}
	if n, _ := provider.PendingCount(ctx); n != 0 {
		t.Errorf("Replace enqueued %d outbox entries", n)
	}
}

func TestReload(t *testing.T) {
	s, provider := setupTestStore(t)
	ctx := context.Background()

	other, err := Open(ctx, provider, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := other.AddTask(ctx, "elsewhere", constants.TaskWork, ""); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	var calls int
	s.Subscribe(func(models.State) { calls++ })
	if err := s.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if err := s.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if calls != 1 || len(s.TodayTasks()) != 1 {
		t.Errorf("calls = %d tasks = %d, want 1 and 1", calls, len(s.TodayTasks()))
	}
}

func TestLooks_CompleteLessonOnce(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	added, err := s.CompleteLesson(ctx, "d1")
	if err != nil || !added {
		t.Fatalf("CompleteLesson() = %v, %v", added, err)
	}
	rev := s.Revision()
	added, err = s.CompleteLesson(ctx, "d1")
	if err != nil || added {
		t.Errorf("repeat CompleteLesson() = %v, %v; want false, nil", added, err)
	}
	if s.Revision() != rev {
		t.Errorf("repeat lesson committed a revision")
	}
	if xp := s.Looks().TotalXP; xp != 15 {
		t.Errorf("TotalXP = %d, want 15", xp)
	}
}

// failingCommits rejects every commit once fail is set.
type failingCommits struct {
	*storage.JSONStore
	fail bool
}

func (f *failingCommits) Commit(ctx context.Context, snap storage.Snapshot, enqueue bool) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.JSONStore.Commit(ctx, snap, enqueue)
}

func withPartner(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.SetProtectionLevel(ctx, constants.ProtectionLight, ""); err != nil {
		t.Fatalf("SetProtectionLevel() error = %v", err)
	}
	partner := &models.AccountabilityPartner{Email: "friend@example.com", NotifyOnBlock: true}
	if err := s.SetAccountabilityPartner(ctx, partner, ""); err != nil {
		t.Fatalf("SetAccountabilityPartner() error = %v", err)
	}
}

func TestPartnerAlert_DeliveredOutsideLock(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var delivered []models.BlockedAttempt
	hook := func(_ models.AccountabilityPartner, a models.BlockedAttempt) {
		close(entered)
		<-release
		delivered = append(delivered, a)
	}
	s, _ := setupTestStore(t, WithNotifier(hook))
	withPartner(t, s)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.AddNote(ctx, models.LifeNote{Content: "porn"})
		done <- err
	}()
	<-entered

	// The store stays usable while the hook is still running.
	if n := len(s.State().Protection.BlockHistory); n != 1 {
		t.Errorf("BlockHistory has %d entries while alerting, want 1", n)
	}
	if _, err := s.AddTask(ctx, "Run", constants.TaskPhysical, ""); err != nil {
		t.Errorf("AddTask() during alert error = %v", err)
	}

	close(release)
	var blocked *protection.BlockedError
	if err := <-done; !errors.As(err, &blocked) {
		t.Fatalf("AddNote() error = %v, want BlockedError", err)
	}
	if len(delivered) != 1 || delivered[0].Keyword != "porn" {
		t.Errorf("delivered = %+v, want one porn attempt", delivered)
	}
}

func TestPartnerAlert_NotSentWhenCommitFails(t *testing.T) {
	base := storage.NewJSONStore(t.TempDir(), constants.StorageKey)
	if err := base.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = base.Close() })
	provider := &failingCommits{JSONStore: base}
	calls := 0
	s, err := Open(context.Background(), provider, WithClock(fixedClock),
		WithNotifier(func(models.AccountabilityPartner, models.BlockedAttempt) { calls++ }))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	withPartner(t, s)

	provider.fail = true
	if _, err := s.CheckContent(context.Background(), "https://pornhub.com"); err == nil {
		t.Fatal("CheckContent() error = nil with failing storage")
	}
	if _, err := s.AddNote(context.Background(), models.LifeNote{Content: "porn"}); err == nil {
		t.Fatal("AddNote() error = nil, want BlockedError")
	}
	if calls != 0 {
		t.Errorf("partner notified %d times for attempts that were never saved", calls)
	}
	if n := len(s.State().Protection.BlockHistory); n != 0 {
		t.Errorf("BlockHistory = %d entries, want 0", n)
	}
}

func TestSubscribe_BlockedAttemptPublished(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	if err := s.SetProtectionLevel(ctx, constants.ProtectionLight, ""); err != nil {
		t.Fatalf("SetProtectionLevel() error = %v", err)
	}

	var seen []models.State
	defer s.Subscribe(func(st models.State) { seen = append(seen, st) })()

	if _, err := s.AddNote(ctx, models.LifeNote{Content: "nsfw"}); err == nil {
		t.Fatal("AddNote() error = nil, want BlockedError")
	}
	if len(seen) != 1 {
		t.Fatalf("subscribers notified %d times, want 1", len(seen))
	}
	if h := seen[0].Protection.BlockHistory; len(h) != 1 || h[0].Keyword != "nsfw" {
		t.Errorf("published BlockHistory = %+v, want the nsfw attempt", h)
	}
}
