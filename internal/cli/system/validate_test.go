package system

import (
	"context"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

func TestValidateCmd_Clean(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestValidateCmd_FixDangling(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendSQLite)
	st := clitest.Store(t, ctx)
	err := st.Repair(context.Background(), func(s *models.State) error {
		s.Books = append(s.Books, models.Book{ID: "b1", Title: "Dune", Author: "Herbert", TotalPages: 400, Status: constants.BookReading, FolderID: "gone"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Conflicts detected:") {
		t.Fatalf("expected conflicts, output = %q", out.String())
	}

	out.Reset()
	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}
	if !strings.Contains(out.String(), "Applied 1 fix(es)") {
		t.Errorf("output = %q", out.String())
	}
	books := st.State().Books
	if len(books) != 1 || books[0].FolderID != "" {
		t.Errorf("books after fix = %+v", books)
	}
}
