// Package wellness holds the meditation, workout and looks commands.
package wellness

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

type MeditateLogCmd struct {
	Minutes  int    `arg:"" help:"Session length in minutes."`
	Type     string `short:"t" enum:"guided,unguided,breathing,body-scan" default:"unguided" help:"Kind of session (${enum})."`
	Before   int    `required:"" help:"Mood before, 1-5."`
	After    int    `required:"" help:"Mood after, 1-5."`
	Clarity  int    `help:"Mental clarity, 1-5."`
	Quality  int    `help:"Session quality, 1-5."`
	Drops    int    `help:"Times focus drifted."`
	Triggers string `help:"Stress triggers noticed."`
	Date     string `short:"d" help:"Day of the session. Defaults to today."`
	Note     string `short:"n" help:"Session note."`
	Category string `help:"Free-form category, e.g. morning."`
}

func (c *MeditateLogCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, st)
	if err != nil {
		return err
	}
	session, err := st.AddMeditationSession(ctx.Ctx, models.MeditationSession{
		Date:           date,
		Duration:       c.Minutes,
		Type:           constants.MeditationType(c.Type),
		Category:       c.Category,
		MoodBefore:     c.Before,
		MoodAfter:      c.After,
		MentalClarity:  c.Clarity,
		QualityRating:  c.Quality,
		FocusDrops:     c.Drops,
		StressTriggers: c.Triggers,
		Note:           c.Note,
	})
	if err != nil {
		return err
	}
	ms := st.MeditationStats()
	ctx.Printf("Logged %d min %s session (ID: %s)\n", session.Duration, session.Type, cli.ShortID(session.ID))
	ctx.Printf("Streak: %d day(s), %d min this week\n", ms.Streak, ms.WeekMinutes)
	return nil
}

type MeditateListCmd struct {
	Limit int `short:"n" default:"10" help:"Number of sessions to show; 0 for all."`
}

func (c *MeditateListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	sessions := st.State().MeditationSessions
	if len(sessions) == 0 {
		ctx.Println("No meditation sessions found")
		return nil
	}
	shown := 0
	for i := len(sessions) - 1; i >= 0; i-- {
		if c.Limit > 0 && shown == c.Limit {
			break
		}
		m := sessions[i]
		ctx.Printf("  %s  %s  %3d min  %-10s mood %d -> %d\n",
			cli.ShortID(m.ID), m.Date, m.Duration, m.Type, m.MoodBefore, m.MoodAfter)
		shown++
	}
	ms := st.MeditationStats()
	ctx.Printf("\n%d session(s), average mood change %+.1f, longest streak %d\n",
		ms.TotalSessions, ms.AvgMoodImprovement, ms.LongestStreak)
	return nil
}

type MeditateDeleteCmd struct {
	ID string `arg:"" help:"Session ID or unique prefix."`
}

func (c *MeditateDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().MeditationSessions, func(m models.MeditationSession) string { return m.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteMeditationSession(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted meditation session %s\n", cli.ShortID(id))
	return nil
}
