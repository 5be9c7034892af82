package coding

import (
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveProject(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().CodingProjects, func(p models.CodingProject) string { return p.ID }))
}

type ProjectAddCmd struct {
	Title       string   `arg:"" help:"Project title."`
	Objective   string   `short:"o" help:"What the project should prove."`
	Stack       []string `short:"s" help:"Technologies used."`
	Description string   `help:"Longer description."`
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	p, err := st.AddProject(ctx.Ctx, models.CodingProject{
		Title:       c.Title,
		Objective:   c.Objective,
		TechStack:   c.Stack,
		Description: c.Description,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added project: %s (ID: %s)\n", p.Title, cli.ShortID(p.ID))
	return nil
}

type ProjectListCmd struct{}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	projects := st.State().CodingProjects
	if len(projects) == 0 {
		ctx.Println("No projects found")
		return nil
	}
	for _, p := range projects {
		ctx.Printf("  %s  %-12s %s", cli.ShortID(p.ID), p.Status, p.Title)
		if len(p.TechStack) > 0 {
			ctx.Printf(" [%s]", strings.Join(p.TechStack, ", "))
		}
		ctx.Println()
	}
	return nil
}

type ProjectStatusCmd struct {
	ID      string   `arg:"" help:"Project ID or unique prefix."`
	Status  string   `arg:"" enum:"planning,in-progress,completed" help:"New status (${enum})."`
	Outcome []string `help:"Outcomes to record (replaces existing)."`
}

func (c *ProjectStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveProject(st, c.ID)
	if err != nil {
		return err
	}
	status := constants.ProjectStatus(c.Status)
	if err := st.UpdateProject(ctx.Ctx, id, models.ProjectPatch{Status: &status, Outcomes: c.Outcome}); err != nil {
		return err
	}
	ctx.Printf("Project %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type ProjectDeleteCmd struct {
	ID string `arg:"" help:"Project ID or unique prefix."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveProject(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteProject(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted project %s\n", cli.ShortID(id))
	return nil
}
