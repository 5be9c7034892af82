package system

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	if ctx.Offline {
		return fmt.Errorf("sync needs the remote mirror; drop --offline")
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	adopted, err := a.Sync(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if adopted {
		ctx.Printf("✓ Adopted remote revision %d\n", a.Store.Revision())
	} else {
		ctx.Printf("✓ Mirror holds local revision %d\n", a.Store.Revision())
	}
	if n, err := a.Local.PendingCount(ctx.Ctx); err == nil && n > 0 {
		ctx.Printf("ℹ %d revision(s) still waiting in the outbox\n", n)
	}
	return nil
}
