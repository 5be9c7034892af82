package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifetrack/internal/app"
	"github.com/julianstephens/lifetrack/internal/backup"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	info, err := a.Backups().Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s (revision %d)\n", filepath.Base(info.Path), info.Revision)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(app.SourcePath(ctx.Config))
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  rev %-5d (%.1f KB)\n", timestamp, filepath.Base(b.Path), b.Revision, sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(app.SourcePath(ctx.Config))

	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current data with the backup.")
		ctx.Println("⚠️  IMPORTANT: All lifetrack processes (including the TUI and server) must be stopped before restore.")
		ctx.Println("A backup of your current data will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Close(); err != nil {
		ctx.Printf("Warning: failed to close storage: %v\n", err)
	}

	saved, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Data restored successfully!")
	if saved != "" {
		ctx.Printf("  Previous data saved to: %s\n", filepath.Base(saved))
	}
	if ctx.Config.RemoteDriver != "" {
		ctx.Println("⚠️  A newer revision on the remote mirror will be adopted on the next sync.")
	}
	return nil
}

// resolve accepts an absolute path, a path relative to the working directory or a file
// name inside the backup directory.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	p := c.BackupFile
	if filepath.IsAbs(p) {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", p)
		}
		return p, nil
	}
	if _, err := os.Stat(p); err == nil {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.Dir(), p)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.Dir())
}
