package system

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove dangling references."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	ctx.Println("Validating records...")
	result := validation.New().ValidateState(st.State())
	ctx.Println()
	ctx.Println(result.FormatReport())

	if !cmd.Fix || !result.HasConflicts() {
		return nil
	}
	dangling := result.Dangling()
	if len(dangling) == 0 {
		ctx.Println("Nothing to fix automatically.")
		return nil
	}

	actions, err := validation.AutoFixDanglingReferences(ctx.Ctx, dangling, st.Repair)
	if err != nil {
		return fmt.Errorf("auto-fix failed: %w", err)
	}
	ctx.Printf("Applied %d fix(es):\n", len(actions))
	for _, a := range actions {
		ctx.Printf("- %s\n", a.Action)
	}
	return nil
}
