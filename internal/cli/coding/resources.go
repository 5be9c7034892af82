package coding

import (
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

type CSNoteAddCmd struct {
	Title    string   `arg:"" help:"Note title."`
	Content  string   `arg:"" optional:"" help:"Note body."`
	Category string   `short:"c" enum:"CS Core,System Design" default:"CS Core" help:"Category (${enum})."`
	Tags     []string `short:"t" help:"Tags."`
}

func (c *CSNoteAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	n, err := st.AddCSNote(ctx.Ctx, models.CSNote{
		Title:    c.Title,
		Content:  c.Content,
		Category: constants.CSNoteCategory(c.Category),
		Tags:     c.Tags,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added note: %s (ID: %s)\n", n.Title, cli.ShortID(n.ID))
	return nil
}

type CSNoteListCmd struct{}

func (c *CSNoteListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	notes := st.State().CSNotes
	if len(notes) == 0 {
		ctx.Println("No notes found")
		return nil
	}
	for _, n := range notes {
		ctx.Printf("  %s  %-13s %s", cli.ShortID(n.ID), n.Category, n.Title)
		if len(n.Tags) > 0 {
			ctx.Printf("  #%s", strings.Join(n.Tags, " #"))
		}
		ctx.Println()
	}
	return nil
}

type CSNoteDeleteCmd struct {
	ID string `arg:"" help:"Note ID or unique prefix."`
}

func (c *CSNoteDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().CSNotes, func(n models.CSNote) string { return n.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteCSNote(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted note %s\n", cli.ShortID(id))
	return nil
}

type VideoAddCmd struct {
	Title       string   `arg:"" help:"Video title."`
	URL         string   `arg:"" help:"Video URL."`
	Description string   `help:"Short description."`
	Tags        []string `short:"t" help:"Tags."`
}

func (c *VideoAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	v, err := st.AddVideoResource(ctx.Ctx, models.VideoResource{
		Title:       c.Title,
		URL:         c.URL,
		Description: c.Description,
		Tags:        c.Tags,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added video: %s [%s] (ID: %s)\n", v.Title, v.Domain, cli.ShortID(v.ID))
	return nil
}

type VideoListCmd struct{}

func (c *VideoListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	videos := st.State().VideoResources
	if len(videos) == 0 {
		ctx.Println("No videos found")
		return nil
	}
	for _, v := range videos {
		ctx.Printf("  %s  %-20s %s\n", cli.ShortID(v.ID), v.Domain, v.Title)
	}
	return nil
}

type VideoDeleteCmd struct {
	ID string `arg:"" help:"Video ID or unique prefix."`
}

func (c *VideoDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().VideoResources, func(v models.VideoResource) string { return v.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteVideoResource(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted video %s\n", cli.ShortID(id))
	return nil
}

type DebugAddCmd struct {
	Issue    string   `arg:"" help:"What went wrong."`
	Solution string   `arg:"" optional:"" help:"How it was fixed."`
	Tags     []string `short:"t" help:"Tags."`
}

func (c *DebugAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	d, err := st.AddDebugLog(ctx.Ctx, models.DebugLog{Issue: c.Issue, Solution: c.Solution, Tags: c.Tags})
	if err != nil {
		return err
	}
	ctx.Printf("Logged debug session (ID: %s)\n", cli.ShortID(d.ID))
	return nil
}

type DebugListCmd struct{}

func (c *DebugListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	logs := st.State().DebugLogs
	if len(logs) == 0 {
		ctx.Println("No debug logs found")
		return nil
	}
	for i := len(logs) - 1; i >= 0; i-- {
		d := logs[i]
		ctx.Printf("  %s  %s  %s\n", cli.ShortID(d.ID), d.Date, d.Issue)
		if d.Solution != "" {
			ctx.Printf("              -> %s\n", d.Solution)
		}
	}
	return nil
}

type DebugDeleteCmd struct {
	ID string `arg:"" help:"Debug log ID or unique prefix."`
}

func (c *DebugDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().DebugLogs, func(d models.DebugLog) string { return d.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteDebugLog(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted debug log %s\n", cli.ShortID(id))
	return nil
}
