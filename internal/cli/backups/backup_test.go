package backups

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendSQLite)
	st := clitest.Store(t, ctx)
	if _, err := st.AddTask(context.Background(), "back me up", constants.TaskWork, ""); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	for _, backend := range []string{constants.BackendSQLite, constants.BackendJSON} {
		t.Run(backend, func(t *testing.T) {
			ctx, _ := clitest.New(t, backend)
			st := clitest.Store(t, ctx)
			if _, err := st.AddTask(context.Background(), "before", constants.TaskWork, ""); err != nil {
				t.Fatal(err)
			}
			a, err := ctx.App()
			if err != nil {
				t.Fatal(err)
			}
			info, err := a.Backups().Create()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := st.AddTask(context.Background(), "after", constants.TaskWork, ""); err != nil {
				t.Fatal(err)
			}

			cmd := &BackupRestoreCmd{BackupFile: filepath.Base(info.Path), Yes: true}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("restore failed: %v", err)
			}

			tasks := clitest.Store(t, ctx).State().DailyTasks
			if len(tasks) != 1 || tasks[0].Title != "before" {
				t.Errorf("tasks after restore = %+v", tasks)
			}
		})
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendSQLite)
	a, err := ctx.App()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Store.AddTask(context.Background(), "keep", constants.TaskWork, ""); err != nil {
		t.Fatal(err)
	}
	info, err := a.Backups().Create()
	if err != nil {
		t.Fatal(err)
	}
	ctx.In = strings.NewReader("n\n")

	if err := (&BackupRestoreCmd{BackupFile: info.Path}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}
	if !ctx.Opened() {
		t.Error("cancelled restore should leave storage open")
	}
}

func TestBackupRestoreMissing(t *testing.T) {
	ctx, _ := clitest.New(t, constants.BackendSQLite)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}
