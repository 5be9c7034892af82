package coding

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveProblem(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().DSAProblems, func(p models.DSAProblem) string { return p.ID }))
}

type ProblemAddCmd struct {
	Title      string `arg:"" help:"Problem title."`
	Difficulty string `short:"D" enum:"easy,medium,hard" default:"medium" help:"Difficulty (${enum})."`
	Category   string `short:"c" enum:"DSA,CS Core,System Design" default:"DSA" help:"Category (${enum})."`
	Status     string `short:"s" enum:"pending,solved,review" default:"pending" help:"Status (${enum})."`
	Link       string `short:"l" help:"Problem URL."`
	Notes      string `short:"n" help:"Notes."`
}

func (c *ProblemAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	p, err := st.AddDSAProblem(ctx.Ctx, models.DSAProblem{
		Title:      c.Title,
		Difficulty: constants.ProblemDifficulty(c.Difficulty),
		Category:   constants.ProblemCategory(c.Category),
		Status:     constants.ProblemStatus(c.Status),
		Link:       c.Link,
		Notes:      c.Notes,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added problem: %s (ID: %s)\n", p.Title, cli.ShortID(p.ID))
	return nil
}

type ProblemListCmd struct {
	Status string `short:"s" enum:",pending,solved,review" default:"" help:"Filter by status."`
}

func (c *ProblemListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	shown := 0
	for _, p := range st.State().DSAProblems {
		if c.Status != "" && string(p.Status) != c.Status {
			continue
		}
		ctx.Printf("  %s  %-8s %-6s %-13s %s\n", cli.ShortID(p.ID), p.Status, p.Difficulty, p.Category, p.Title)
		shown++
	}
	if shown == 0 {
		ctx.Println("No problems found")
		return nil
	}
	cs := st.CodingStats()
	ctx.Printf("\n%d solved this week, coding streak %d\n", cs.ProblemsSolvedThisWeek, cs.Streak)
	return nil
}

type ProblemStatusCmd struct {
	ID        string `arg:"" help:"Problem ID or unique prefix."`
	Status    string `arg:"" enum:"pending,solved,review" help:"New status (${enum})."`
	Learnings string `help:"What the problem taught you."`
}

func (c *ProblemStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveProblem(st, c.ID)
	if err != nil {
		return err
	}
	status := constants.ProblemStatus(c.Status)
	patch := models.ProblemPatch{Status: &status}
	if c.Learnings != "" {
		patch.Learnings = &c.Learnings
	}
	if err := st.UpdateDSAProblem(ctx.Ctx, id, patch); err != nil {
		return err
	}
	ctx.Printf("Problem %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type ProblemDeleteCmd struct {
	ID string `arg:"" help:"Problem ID or unique prefix."`
}

func (c *ProblemDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveProblem(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteDSAProblem(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted problem %s\n", cli.ShortID(id))
	return nil
}
