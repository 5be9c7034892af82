package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lifetrack/internal/app"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/remote"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing local snapshot before initializing."`
	Source string `help:"SQLite database or JSON snapshot file to import data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	target := app.SourcePath(ctx.Config)

	var floor int64
	if c.Force {
		if c.Source != "" {
			absTarget, _ := filepath.Abs(target)
			absSource, _ := filepath.Abs(strings.TrimSpace(c.Source))
			if absTarget == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", target)
			}
		}
		if err := ctx.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		floor = localRevision(ctx)
		if err := wipe(ctx, target); err != nil {
			return err
		}
	}

	a, err := ctx.Init()
	if err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, a.Local.GetConfigPath())

	if c.Force {
		floor = max(floor, mirrorRevision(ctx, a))
		if err := a.Store.Reset(ctx.Ctx, floor); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
		ctx.Printf("    Started fresh at revision %d\n", a.Store.Revision())
	} else if err := a.Store.Seed(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to write initial snapshot: %w", err)
	}

	if c.Source != "" {
		ctx.Printf("Importing data from: %s\n", c.Source)
		if err := c.importSnapshot(ctx, a); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		ctx.Println("Import completed successfully!")
	}
	return nil
}

// wipe deletes the local snapshot together with its outbox.
func wipe(ctx *cli.Context, target string) error {
	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to delete existing snapshot: %w", err)
		}
		ctx.Printf("Deleted existing snapshot at: %s\n", target)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing snapshot: %w", err)
	}

	var extra []string
	if ctx.Config.Backend == constants.BackendJSON {
		extra = append(extra, filepath.Join(filepath.Dir(target), storage.OutboxFile))
	} else {
		extra = append(extra, target+"-wal", target+"-shm")
	}
	for _, path := range extra {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
	}
	return nil
}

// localRevision reads the revision of the snapshot about to be wiped, or 0.
func localRevision(ctx *cli.Context) int64 {
	p := app.NewProvider(ctx.Config)
	if err := p.Load(); err != nil {
		return 0
	}
	defer p.Close()
	snap, err := p.LoadSnapshot(ctx.Ctx)
	if err != nil {
		return 0
	}
	return snap.Revision
}

// mirrorRevision returns the mirror's revision for this user so the wipe can supersede it.
// When a mirror is configured but could not be read, the user is warned that the next
// sync may bring the old data back.
func mirrorRevision(ctx *cli.Context, a *app.App) int64 {
	if ctx.Config.RemoteDriver == "" {
		return 0
	}
	if a.Mirror != nil {
		snap, err := a.Mirror.Pull(ctx.Ctx, ctx.Config.UserID)
		if err == nil {
			return snap.Revision
		}
		if errors.Is(err, remote.ErrNoRemote) {
			return 0
		}
		logger.Warn("Could not read mirror revision", "error", err)
	}
	ctx.Println("⚠️  The remote mirror could not be checked. If it holds a newer revision, the next sync will restore it.")
	return 0
}

// openSource returns a provider reading the snapshot at path.
func openSource(path string) (storage.Provider, error) {
	path = strings.TrimSpace(path)
	if strings.HasSuffix(path, ".json") {
		if filepath.Base(path) != constants.StorageKey+".json" {
			return nil, fmt.Errorf("JSON snapshot must be named %s.json", constants.StorageKey)
		}
		return storage.NewJSONStore(filepath.Dir(path), constants.StorageKey), nil
	}
	return sqlite.NewStore(path, constants.StorageKey), nil
}

func (c *InitCmd) importSnapshot(ctx *cli.Context, a *app.App) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	snap, err := src.LoadSnapshot(ctx.Ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return errors.New("source holds no data")
	}
	if err != nil {
		return err
	}
	imported, err := models.Unmarshal(snap.Data)
	if err != nil {
		return err
	}

	err = a.Store.Repair(ctx.Ctx, func(st *models.State) error {
		*st = imported
		return nil
	})
	if err != nil {
		return err
	}
	ctx.Printf("    Imported revision %d (%d tasks, %d notes, %d books)\n",
		snap.Revision, len(imported.DailyTasks), len(imported.Notes), len(imported.Books))
	return nil
}
