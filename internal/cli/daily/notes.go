package daily

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

type NoteAddCmd struct {
	Content string   `arg:"" help:"Note text."`
	System  string   `short:"s" enum:"workout,meditation,reading,general," default:"" help:"Linked life system."`
	Session string   `help:"ID of the session the note belongs to."`
	Mood    int      `short:"m" help:"Mood from 1 to 5."`
	Tags    []string `short:"t" help:"Tags, comma separated."`
}

func (c *NoteAddCmd) Validate() error {
	if c.Mood != 0 && (c.Mood < 1 || c.Mood > 5) {
		return fmt.Errorf("mood must be between 1 and 5")
	}
	return nil
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	note, err := st.AddNote(ctx.Ctx, models.LifeNote{
		Content:         c.Content,
		LinkedSystem:    constants.LinkedSystem(c.System),
		LinkedSessionID: c.Session,
		Mood:            c.Mood,
		Tags:            c.Tags,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added note (ID: %s)\n", cli.ShortID(note.ID))
	return nil
}

type NoteListCmd struct {
	Limit  int    `short:"n" default:"10" help:"Number of notes to show; 0 for all."`
	System string `short:"s" help:"Only notes linked to this system."`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	notes := st.Notes(c.Limit)
	if c.System != "" {
		notes = st.NotesForSystem(constants.LinkedSystem(c.System))
		if c.Limit > 0 && len(notes) > c.Limit {
			notes = notes[:c.Limit]
		}
	}
	if len(notes) == 0 {
		ctx.Println("No notes found")
		return nil
	}
	for _, n := range notes {
		meta := []string{n.Date}
		if n.LinkedSystem != "" {
			meta = append(meta, string(n.LinkedSystem))
		}
		if n.Mood > 0 {
			meta = append(meta, fmt.Sprintf("mood %d", n.Mood))
		}
		ctx.Printf("%s  [%s]\n  %s\n", cli.ShortID(n.ID), strings.Join(meta, ", "), n.Content)
		if len(n.Tags) > 0 {
			ctx.Printf("  #%s\n", strings.Join(n.Tags, " #"))
		}
	}
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note ID or unique prefix."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().Notes, func(n models.LifeNote) string { return n.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteNote(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted note %s\n", cli.ShortID(id))
	return nil
}

// FocusCmd shows today's focus, or sets it when text is given.
type FocusCmd struct {
	Text string `arg:"" optional:"" help:"New focus for today."`
}

func (c *FocusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if c.Text != "" {
		if err := st.SetDailyFocus(ctx.Ctx, c.Text); err != nil {
			return err
		}
		ctx.Printf("Today's focus: %s\n", c.Text)
		return nil
	}
	focus, today := st.DailyFocus()
	switch {
	case focus == "":
		ctx.Println("No focus set. Use 'lifetrack focus \"...\"' to set one.")
	case !today:
		ctx.Printf("No focus set for today (last: %s)\n", focus)
	default:
		ctx.Printf("Today's focus: %s\n", focus)
	}
	return nil
}

type ProfileCmd struct {
	Name   string `help:"First name shown on the dashboard."`
	Avatar string `help:"Avatar image path or URL."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if c.Name != "" || c.Avatar != "" {
		if err := st.UpdateProfile(ctx.Ctx, c.Name, c.Avatar); err != nil {
			return err
		}
	}
	p := st.State().UserProfile
	ctx.Printf("Name:   %s\n", p.FirstName)
	if p.Avatar != "" {
		ctx.Printf("Avatar: %s\n", p.Avatar)
	}
	return nil
}
