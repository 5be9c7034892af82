package coding

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveSkill(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().SkillMastery, func(s models.SkillMastery) string { return s.ID }))
}

type SkillAddCmd struct {
	Name     string `arg:"" help:"Skill name."`
	Category string `short:"c" help:"Free-form category, e.g. backend."`
	Depth    int    `short:"D" default:"1" help:"Depth rating, 1-5."`
}

func (c *SkillAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	sk, err := st.AddSkill(ctx.Ctx, models.SkillMastery{Name: c.Name, Category: c.Category, DepthRating: c.Depth})
	if err != nil {
		return err
	}
	ctx.Printf("Added skill: %s (ID: %s), next revision %s\n", sk.Name, cli.ShortID(sk.ID), sk.NextRevision)
	return nil
}

type SkillListCmd struct {
	Due bool `help:"Only show skills due for revision."`
}

func (c *SkillListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	skills := st.State().SkillMastery
	if c.Due {
		skills = st.SkillsDue()
	}
	if len(skills) == 0 {
		if c.Due {
			ctx.Println("No skills due for revision")
		} else {
			ctx.Println("No skills found")
		}
		return nil
	}
	for _, sk := range skills {
		ctx.Printf("  %s  %-24s depth %d  %-11s next %s\n",
			cli.ShortID(sk.ID), sk.Name, sk.DepthRating, sk.Readiness, sk.NextRevision)
		for _, p := range sk.ErrorPatterns {
			ctx.Printf("      ! %s (x%d) [%s]\n", p.Description, p.Frequency, cli.ShortID(p.ID))
		}
	}
	return nil
}

type SkillReviseCmd struct {
	ID string `arg:"" help:"Skill ID or unique prefix."`
}

func (c *SkillReviseCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveSkill(st, c.ID)
	if err != nil {
		return err
	}
	sk, err := st.ReviseSkill(ctx.Ctx, id)
	if err != nil {
		return err
	}
	ctx.Printf("Revised %s, next revision %s\n", sk.Name, sk.NextRevision)
	return nil
}

type SkillRateCmd struct {
	ID        string `arg:"" help:"Skill ID or unique prefix."`
	Depth     int    `short:"D" help:"Depth rating, 1-5."`
	Readiness string `short:"r" enum:",not-ready,can-explain,can-defend" default:"" help:"Readiness (${enum})."`
}

func (c *SkillRateCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveSkill(st, c.ID)
	if err != nil {
		return err
	}
	var patch models.SkillPatch
	if c.Depth != 0 {
		patch.DepthRating = &c.Depth
	}
	if c.Readiness != "" {
		r := constants.Readiness(c.Readiness)
		patch.Readiness = &r
	}
	if err := st.UpdateSkill(ctx.Ctx, id, patch); err != nil {
		return err
	}
	ctx.Printf("Updated skill %s\n", cli.ShortID(id))
	return nil
}

// SkillErrorCmd records a mistake against a skill. With --pattern it counts another
// occurrence of a known pattern; otherwise the description starts a new one.
type SkillErrorCmd struct {
	ID          string `arg:"" help:"Skill ID or unique prefix."`
	Description string `arg:"" optional:"" help:"Description of a new error pattern."`
	Pattern     string `short:"p" help:"Existing pattern ID or prefix to bump."`
}

func (c *SkillErrorCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveSkill(st, c.ID)
	if err != nil {
		return err
	}
	if c.Pattern == "" {
		p, err := st.AddErrorPattern(ctx.Ctx, id, c.Description)
		if err != nil {
			return err
		}
		ctx.Printf("Recorded error pattern (ID: %s)\n", cli.ShortID(p.ID))
		return nil
	}

	var patterns []models.SkillErrorPattern
	for _, sk := range st.State().SkillMastery {
		if sk.ID == id {
			patterns = sk.ErrorPatterns
		}
	}
	pid, err := cli.Resolve(c.Pattern, cli.IDs(patterns, func(p models.SkillErrorPattern) string { return p.ID }))
	if err != nil {
		return err
	}
	if err := st.RecordErrorOccurrence(ctx.Ctx, id, pid); err != nil {
		return err
	}
	ctx.Printf("Recorded another occurrence of %s\n", cli.ShortID(pid))
	return nil
}

type SkillDeleteCmd struct {
	ID string `arg:"" help:"Skill ID or unique prefix."`
}

func (c *SkillDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveSkill(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteSkill(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted skill %s\n", cli.ShortID(id))
	return nil
}
