package system

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	// Back up on startup, after a successful load.
	a.PerformAutomaticBackup()

	if err := a.Start(ctx.Ctx); err != nil {
		return err
	}
	return tui.Run(ctx.Ctx, a.Store)
}
