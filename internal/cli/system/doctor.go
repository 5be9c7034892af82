package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/app"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/remote"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/storage/sqlite"
	"github.com/julianstephens/lifetrack/internal/validation"
)

type DoctorCmd struct{}

// errSkipped marks a check that does not apply to the current setup.
var errSkipped = errors.New("skipped")

type check struct {
	name string
	run  func(ctx *cli.Context, a *app.App) error
	// warn reports failures without failing the command.
	warn bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Migrations complete", run: checkMigrationsComplete},
	{name: "Snapshot integrity", run: checkSnapshot},
	{name: "Data validation", run: checkValidation},
	{name: "Backups present", run: checkBackupsPresent, warn: true},
	{name: "Outbox", run: checkOutbox, warn: true},
	{name: "Remote mirror", run: checkMirror},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, warn bool, err error) {
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", name, err)
		case warn:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	a, err := checkStorageReachable(ctx)
	report("Storage reachable", false, err)
	for _, c := range checks {
		if a == nil {
			report(c.name, c.warn, fmt.Errorf("%w: storage not reachable", errSkipped))
			continue
		}
		report(c.name, c.warn, c.run(ctx, a))
	}
	report("Clock/timezone", false, checkClockTimezone(ctx))

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) (*app.App, error) {
	a, err := ctx.App()
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if s, ok := a.Local.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRowContext(ctx.Ctx, "SELECT 1").Scan(&result); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
	}
	return a, nil
}

func sqliteStore(a *app.App) (*sqlite.Store, error) {
	s, ok := a.Local.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("%w: JSON backend has no schema", errSkipped)
	}
	return s, nil
}

func checkSchemaVersion(ctx *cli.Context, a *app.App) error {
	s, err := sqliteStore(a)
	if err != nil {
		return err
	}
	status, err := s.MigrationStatus(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context, a *app.App) error {
	s, err := sqliteStore(a)
	if err != nil {
		return err
	}
	status, err := s.MigrationStatus(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if len(status.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'lifetrack migrate')", status.Current, status.Latest)
	}
	return nil
}

// checkSnapshot re-reads the stored document and compares it with the loaded state.
func checkSnapshot(ctx *cli.Context, a *app.App) error {
	snap, err := a.Local.LoadSnapshot(ctx.Ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if _, err := models.Unmarshal(snap.Data); err != nil {
		return fmt.Errorf("snapshot revision %d is not valid state: %w", snap.Revision, err)
	}
	if rev := a.Store.Revision(); snap.Revision != rev {
		return fmt.Errorf("stored revision %d does not match loaded revision %d", snap.Revision, rev)
	}
	return nil
}

func checkValidation(ctx *cli.Context, a *app.App) error {
	result := validation.New().ValidateState(a.Store.State())
	if !result.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%d conflict(s) found, run 'lifetrack validate' for details", len(result.Conflicts))
}

func checkBackupsPresent(ctx *cli.Context, a *app.App) error {
	backups, err := a.Backups().List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'lifetrack backup create'")
	}
	return nil
}

func checkOutbox(ctx *cli.Context, a *app.App) error {
	n, err := a.Local.PendingCount(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to count outbox entries: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%d revision(s) waiting to be pushed, run 'lifetrack sync'", n)
	}
	return nil
}

func checkMirror(ctx *cli.Context, a *app.App) error {
	switch {
	case ctx.Config.RemoteDriver == "":
		return fmt.Errorf("%w: no remote configured", errSkipped)
	case ctx.Offline:
		return fmt.Errorf("%w: offline", errSkipped)
	case a.Mirror == nil:
		return fmt.Errorf("%s mirror could not be reached", ctx.Config.RemoteDriver)
	}
	_, err := a.Mirror.Pull(ctx.Ctx, ctx.Config.UserID)
	if err != nil && !errors.Is(err, remote.ErrNoRemote) {
		return fmt.Errorf("failed to read from mirror: %w", err)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := ctx.Config.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	now := time.Now()
	if ctx.Clock != nil {
		now = ctx.Clock()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
