package networking

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/models"
)

type StarterAddCmd struct {
	Text string `arg:"" help:"Conversation starter."`
}

func (c *StarterAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := st.AddStarter(ctx.Ctx, c.Text); err != nil {
		return err
	}
	ctx.Printf("Added starter #%d\n", len(st.State().Networking.ReusableAssets.Starters))
	return nil
}

type StarterListCmd struct{}

func (c *StarterListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	starters := st.State().Networking.ReusableAssets.Starters
	if len(starters) == 0 {
		ctx.Println("No starters found")
		return nil
	}
	for i, s := range starters {
		ctx.Printf("  %2d. %s\n", i+1, s)
	}
	return nil
}

type StarterDeleteCmd struct {
	Number int `arg:"" help:"Starter number as shown by 'starter list'."`
}

func (c *StarterDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := st.DeleteStarter(ctx.Ctx, c.Number-1); err != nil {
		return err
	}
	ctx.Printf("Deleted starter #%d\n", c.Number)
	return nil
}

type TemplateAddCmd struct {
	Title   string `arg:"" help:"Template title."`
	Content string `arg:"" help:"Message text."`
}

func (c *TemplateAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	tpl, err := st.AddTemplate(ctx.Ctx, c.Title, c.Content)
	if err != nil {
		return err
	}
	ctx.Printf("Added template: %s (ID: %s)\n", tpl.Title, cli.ShortID(tpl.ID))
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	templates := st.State().Networking.ReusableAssets.Templates
	if len(templates) == 0 {
		ctx.Println("No templates found")
		return nil
	}
	for _, t := range templates {
		ctx.Printf("  %s  %s\n      %s\n", cli.ShortID(t.ID), t.Title, t.Content)
	}
	return nil
}

type TemplateDeleteCmd struct {
	ID string `arg:"" help:"Template ID or unique prefix."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().Networking.ReusableAssets.Templates, func(t models.MessageTemplate) string { return t.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteTemplate(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted template %s\n", cli.ShortID(id))
	return nil
}
