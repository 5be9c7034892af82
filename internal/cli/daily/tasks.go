// Package daily holds the task, goal, note and focus commands.
package daily

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveTask(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().DailyTasks, func(t models.DailyTask) string { return t.ID }))
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Category string `short:"c" enum:"physical,mental,work,personal" default:"personal" help:"Category (${enum})."`
	Date     string `short:"d" help:"Day the task belongs to (YYYY-MM-DD, today, yesterday). Defaults to today."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, st)
	if err != nil {
		return err
	}
	task, err := st.AddTask(ctx.Ctx, c.Title, constants.TaskCategory(c.Category), date)
	if err != nil {
		return err
	}
	ctx.Printf("Added task: %s (ID: %s)\n", task.Title, cli.ShortID(task.ID))
	return nil
}

type TaskListCmd struct {
	All     bool `help:"Show tasks for every day, not just today."`
	ShowIDs bool `help:"Show full task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	tasks := st.TodayTasks()
	if c.All {
		tasks = st.State().DailyTasks
	}
	if len(tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	ratio := st.TaskStats()
	ctx.Printf("Tasks (%d/%d done today):\n", ratio.Completed, ratio.Total)
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		id := cli.ShortID(t.ID)
		if c.ShowIDs {
			id = t.ID
		}
		line := fmt.Sprintf("  [%s] %s  %s (%s)", mark, id, t.Title, t.Category)
		if c.All {
			line += "  " + t.Date
		}
		ctx.Println(line)
	}
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID or unique prefix."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveTask(st, c.ID)
	if err != nil {
		return err
	}
	done, err := st.ToggleTask(ctx.Ctx, id)
	if err != nil {
		return err
	}
	if done {
		ctx.Printf("✓ Completed task %s\n", cli.ShortID(id))
	} else {
		ctx.Printf("Reopened task %s\n", cli.ShortID(id))
	}
	return nil
}

type TaskEditCmd struct {
	ID       string  `arg:"" help:"Task ID or unique prefix."`
	Title    *string `help:"New title."`
	Category string  `enum:"physical,mental,work,personal," default:"" help:"New category."`
	Date     *string `help:"Move the task to another day."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveTask(st, c.ID)
	if err != nil {
		return err
	}

	var patch models.TaskPatch
	patch.Title = c.Title
	if c.Category != "" {
		cat := constants.TaskCategory(c.Category)
		patch.Category = &cat
	}
	if c.Date != nil {
		date, err := cli.ParseDate(*c.Date, st)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if err := st.UpdateTask(ctx.Ctx, id, patch); err != nil {
		return err
	}
	ctx.Printf("Updated task %s\n", cli.ShortID(id))
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID or unique prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveTask(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteTask(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	ctx.Printf("Deleted task %s\n", cli.ShortID(id))
	return nil
}
