package reading

import (
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/store"
)

func addBook(t *testing.T, ctx *cli.Context, st *store.Store, cmd BookAddCmd) string {
	t.Helper()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("book add failed: %v", err)
	}
	books := st.State().Books
	return books[len(books)-1].ID
}

func TestBookAndSessions(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendSQLite)
	st := clitest.Store(t, ctx)
	id := addBook(t, ctx, st, BookAddCmd{Title: "Deep Work", Author: "Newport", Pages: 100})

	if err := (&SessionLogCmd{Book: id[:5], Pages: 40}).Run(ctx); err != nil {
		t.Fatalf("session log failed: %v", err)
	}
	if err := (&SessionLogCmd{Book: id, Pages: 60}).Run(ctx); err != nil {
		t.Fatalf("second session failed: %v", err)
	}

	b := st.State().Books[0]
	if b.CurrentPage != 100 || b.Status != constants.BookCompleted {
		t.Errorf("book = %+v, want finished", b)
	}
	sessions := st.State().ReadingSessions
	if len(sessions) != 2 || sessions[1].StartPage != 40 {
		t.Errorf("sessions = %+v", sessions)
	}
	if !strings.Contains(out.String(), "now on page 100") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BookListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Deep Work") || !strings.Contains(out.String(), "100%") {
		t.Errorf("list output = %q", out.String())
	}

	if err := (&SessionDeleteCmd{ID: sessions[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.State().ReadingSessions); n != 1 {
		t.Errorf("sessions after delete = %d", n)
	}
}

func TestSessionLog_Validate(t *testing.T) {
	if err := (&SessionLogCmd{Pages: 0}).Validate(); err == nil {
		t.Error("expected error for zero pages")
	}
}

func TestFolders(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)

	if err := (&FolderAddCmd{Name: "Philosophy"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	folder := st.State().Folders[0].ID
	addBook(t, ctx, st, BookAddCmd{Title: "Meditations", Pages: 200, Folder: folder[:4]})
	loose := addBook(t, ctx, st, BookAddCmd{Title: "Loose", Pages: 50})

	if err := (&BookMoveCmd{ID: loose, Folder: folder}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.BooksInFolder(folder)); n != 2 {
		t.Fatalf("books in folder = %d, want 2", n)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&FolderDeleteCmd{ID: folder}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cancelled.") || len(st.State().Folders) != 1 {
		t.Errorf("cancelled delete should keep the folder, output = %q", out.String())
	}

	if err := (&FolderDeleteCmd{ID: folder, Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.State().Books); n != 0 {
		t.Errorf("books after folder delete = %d, want 0", n)
	}
}

func TestBookStatus(t *testing.T) {
	ctx, _ := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)
	id := addBook(t, ctx, st, BookAddCmd{Title: "Paused one", Pages: 10})

	if err := (&BookStatusCmd{ID: id, Status: "paused"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := st.State().Books[0].Status; got != constants.BookPaused {
		t.Errorf("status = %q", got)
	}
}

func TestInsights(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendSQLite)
	st := clitest.Store(t, ctx)
	book := addBook(t, ctx, st, BookAddCmd{Title: "Atomic Habits", Pages: 300})

	steps := []InsightAddCmd{
		{Book: book, Kind: "idea", Text: []string{"Systems", "beat", "goals"}},
		{Book: book, Kind: "action", Text: []string{"Stack habits"}},
		{Book: book, Kind: "belief", Text: []string{"Motivation first", "Environment first"}},
		{Book: book, Kind: "quote", Text: []string{"You do not rise to the level of your goals."}, Page: 27},
		{Book: book, Kind: "reminder", Text: []string{"2030-01-01", "Re-read chapter 1"}},
		{Book: book, Kind: "summary", Text: []string{"Small", "changes", "compound."}},
	}
	for _, cmd := range steps {
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("insight add %s failed: %v", cmd.Kind, err)
		}
	}
	if err := (&InsightAddCmd{Book: book, Kind: "belief", Text: []string{"only one"}}).Run(ctx); err == nil {
		t.Error("expected error for a belief with one argument")
	}

	in, ok := st.BookInsight(book)
	if !ok {
		t.Fatal("insight not created")
	}
	if in.CoreIdeas[0].Content != "Systems beat goals" || in.FinalSummary != "Small changes compound." {
		t.Errorf("insight = %+v", in)
	}

	if err := (&InsightLinkCmd{Book: book, Kind: "idea", ID: in.CoreIdeas[0].ID, Quote: in.Quotes[0].ID[:6]}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&InsightDoneCmd{Book: book, Kind: "action", ID: in.ActionTakeaways[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	in, _ = st.BookInsight(book)
	if len(in.CoreIdeas[0].LinkedQuotes) != 1 || !in.ActionTakeaways[0].Completed {
		t.Errorf("insight after link/done = %+v", in)
	}

	out.Reset()
	if err := (&InsightShowCmd{Book: book}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Core ideas:", "[x] Stack habits", "(p. 27)", "Summary:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q: %q", want, out.String())
		}
	}

	if err := (&InsightRemoveCmd{Book: book, Kind: "quote", ID: in.Quotes[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	in, _ = st.BookInsight(book)
	if len(in.Quotes) != 0 || len(in.CoreIdeas[0].LinkedQuotes) != 0 {
		t.Errorf("removing a quote should drop its links: %+v", in)
	}
}
