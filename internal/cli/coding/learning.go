// Package coding holds the learning-path, problem, note, project and skill commands.
package coding

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func findPath(st *store.Store, id string) (models.CodingLearningPath, error) {
	for _, p := range st.State().CodingLearningPaths {
		if p.ID == id {
			return p, nil
		}
	}
	return models.CodingLearningPath{}, fmt.Errorf("unknown learning path %q", id)
}

type WeekAddCmd struct {
	Path   string   `arg:"" help:"Learning path ID (fs, ds, do)."`
	Number int      `arg:"" help:"Week number."`
	Range  string   `help:"Date range label, e.g. 'Jan 6 - Jan 12'."`
	Topics []string `short:"t" help:"Topics covered."`
}

func (c *WeekAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	week, err := st.AddLearningWeek(ctx.Ctx, c.Path, models.CodingLearningWeek{
		WeekNumber: c.Number,
		WeekRange:  c.Range,
		Topics:     c.Topics,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added week %d to %s (ID: %s)\n", week.WeekNumber, c.Path, cli.ShortID(week.ID))
	return nil
}

type WeekListCmd struct {
	Path string `arg:"" optional:"" help:"Only show this learning path."`
}

func (c *WeekListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	for _, p := range st.State().CodingLearningPaths {
		if c.Path != "" && p.ID != c.Path {
			continue
		}
		ctx.Printf("%s (%s)\n", p.Title, p.ID)
		if len(p.Weeks) == 0 {
			ctx.Println("  no weeks yet")
			continue
		}
		for _, w := range p.Weeks {
			ctx.Printf("  %s  week %-3d %-12s %s\n", cli.ShortID(w.ID), w.WeekNumber, w.Status, strings.Join(w.Topics, ", "))
		}
	}
	return nil
}

type WeekStatusCmd struct {
	Path   string `arg:"" help:"Learning path ID."`
	ID     string `arg:"" help:"Week ID or unique prefix."`
	Status string `arg:"" enum:"pending,in-progress,completed" help:"New status (${enum})."`
}

func (c *WeekStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	path, err := findPath(st, c.Path)
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(path.Weeks, func(w models.CodingLearningWeek) string { return w.ID }))
	if err != nil {
		return err
	}
	status := constants.WeekStatus(c.Status)
	if err := st.UpdateLearningWeek(ctx.Ctx, c.Path, id, models.WeekPatch{Status: &status}); err != nil {
		return err
	}
	ctx.Printf("Week %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type WeekDeleteCmd struct {
	Path string `arg:"" help:"Learning path ID."`
	ID   string `arg:"" help:"Week ID or unique prefix."`
}

func (c *WeekDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	path, err := findPath(st, c.Path)
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(path.Weeks, func(w models.CodingLearningWeek) string { return w.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteLearningWeek(ctx.Ctx, c.Path, id); err != nil {
		return err
	}
	ctx.Printf("Deleted week %s\n", cli.ShortID(id))
	return nil
}
