package daily

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveGoal(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().WeeklyGoals, func(g models.WeeklyGoal) string { return g.ID }))
}

type GoalAddCmd struct {
	Title  string `arg:"" help:"Goal title."`
	System string `short:"s" help:"Life system the goal belongs to (workout, reading, ...)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	goal, err := st.AddGoal(ctx.Ctx, c.Title, c.System)
	if err != nil {
		return err
	}
	ctx.Printf("Added goal for week of %s: %s (ID: %s)\n", goal.WeekStart, goal.Title, cli.ShortID(goal.ID))
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	goals := st.CurrentWeekGoals()
	if len(goals) == 0 {
		ctx.Println("No goals for this week")
		return nil
	}
	ratio := st.GoalStats()
	ctx.Printf("This week's goals (%d/%d complete):\n", ratio.Completed, ratio.Total)
	for _, g := range goals {
		ctx.Printf("  %s  %-30s %s %3d%%\n", cli.ShortID(g.ID), g.Title, progressBar(g.Progress, 20), g.Progress)
	}
	return nil
}

func progressBar(pct, width int) string {
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

type GoalProgressCmd struct {
	ID       string `arg:"" help:"Goal ID or unique prefix."`
	Progress int    `arg:"" help:"Progress percentage, clamped to 0-100."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveGoal(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.UpdateGoalProgress(ctx.Ctx, id, c.Progress); err != nil {
		return err
	}
	ctx.Printf("Updated goal %s\n", cli.ShortID(id))
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID or unique prefix."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveGoal(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteGoal(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	ctx.Printf("Deleted goal %s\n", cli.ShortID(id))
	return nil
}
