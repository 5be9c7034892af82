package system

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/storage/sqlite"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version and pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	s, ok := a.Local.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	if c.Status {
		status, err := s.MigrationStatus(ctx.Ctx)
		if err != nil {
			return err
		}
		ctx.Printf("Schema version: %d (latest %d)\n", status.Current, status.Latest)
		for _, m := range status.Pending {
			ctx.Printf("  pending: %03d_%s\n", m.Version, m.Name)
		}
		return nil
	}

	count, err := s.Migrate(ctx.Ctx, func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
