package branding

import (
	"sort"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

type ThemeAddCmd struct {
	Text string `arg:"" help:"Expertise pillar, e.g. 'Go performance'."`
}

func (c *ThemeAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	theme, err := st.AddCoreTheme(ctx.Ctx, c.Text)
	if err != nil {
		return err
	}
	ctx.Printf("Added core theme: %s (ID: %s)\n", theme.Text, cli.ShortID(theme.ID))
	return nil
}

type ThemeDeleteCmd struct {
	ID string `arg:"" help:"Theme ID or unique prefix."`
}

func (c *ThemeDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().Branding.Positioning.CoreThemes, func(t models.ExpertisePillar) string { return t.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteCoreTheme(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted core theme %s\n", cli.ShortID(id))
	return nil
}

type PlatformAddCmd struct {
	Name      string `arg:"" help:"Platform name."`
	Goal      string `help:"What the platform is for."`
	Format    string `help:"Content format, e.g. threads."`
	Frequency string `help:"Posting cadence."`
	Effort    int    `help:"Relative effort, 0 or more."`
}

func (c *PlatformAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	p, err := st.AddPlatform(ctx.Ctx, models.Platform{
		Name:      c.Name,
		Goal:      c.Goal,
		Format:    c.Format,
		Frequency: c.Frequency,
		Effort:    c.Effort,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added platform: %s (ID: %s)\n", p.Name, cli.ShortID(p.ID))
	return nil
}

type PlatformDeleteCmd struct {
	ID string `arg:"" help:"Platform ID or unique prefix."`
}

func (c *PlatformDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().Branding.Platforms, func(p models.Platform) string { return p.ID }))
	if err != nil {
		return err
	}
	if err := st.DeletePlatform(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted platform %s\n", cli.ShortID(id))
	return nil
}

type ScoreCmd struct {
	Voice      int    `required:"" help:"Voice adherence, 1-10."`
	Rhythm     int    `required:"" help:"Posting rhythm, 1-10."`
	Repetition int    `required:"" help:"Repetition strength, 1-10."`
	Notes      string `short:"n" help:"Notes."`
}

func (c *ScoreCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	s, err := st.AddConsistencyScore(ctx.Ctx, models.BrandConsistencyScore{
		VoiceAdherence:     c.Voice,
		PostingRhythm:      c.Rhythm,
		RepetitionStrength: c.Repetition,
		Notes:              c.Notes,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Recorded consistency score for %s\n", s.Date)
	return nil
}

// PositioningCmd updates positioning and audience fields. Omitted flags leave fields unchanged.
type PositioningCmd struct {
	KnownFor  *string  `help:"What you want to be known for."`
	Intent    *string  `help:"Long-term intent of the brand."`
	Anti      []string `help:"Themes to stay away from (replaces existing)."`
	Segments  []string `help:"Top audience segments (replaces existing)."`
	Pains     []string `help:"Recurring audience pain points (replaces existing)."`
	Questions []string `help:"Repeated audience questions (replaces existing)."`
}

func (c *PositioningCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if c.KnownFor != nil || c.Intent != nil || c.Anti != nil {
		if err := st.UpdatePositioning(ctx.Ctx, models.PositioningPatch{
			KnownFor:   c.KnownFor,
			Intent:     c.Intent,
			AntiThemes: c.Anti,
		}); err != nil {
			return err
		}
	}
	if c.Segments != nil || c.Pains != nil || c.Questions != nil {
		if err := st.UpdateAudience(ctx.Ctx, models.AudiencePatch{
			TopSegments:         c.Segments,
			RecurringPainPoints: c.Pains,
			RepeatedQuestions:   c.Questions,
		}); err != nil {
			return err
		}
	}

	b := st.State().Branding
	ctx.Printf("Known for: %s\n", orNone(b.Positioning.KnownFor))
	ctx.Printf("Intent:    %s\n", orNone(b.Positioning.Intent))
	themes := make([]string, 0, len(b.Positioning.CoreThemes))
	for _, t := range b.Positioning.CoreThemes {
		themes = append(themes, t.Text)
	}
	ctx.Printf("Themes:    %s\n", orNone(strings.Join(themes, ", ")))
	ctx.Printf("Avoid:     %s\n", orNone(strings.Join(b.Positioning.AntiThemes, ", ")))
	ctx.Printf("Audience:  %s\n", orNone(strings.Join(b.AudienceIntelligence.TopSegments, ", ")))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

type OverviewCmd struct{}

func (c *OverviewCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	bs := st.BrandingStats()
	b := st.State().Branding
	ctx.Printf("Content: %d idea, %d draft, %d published (%d analyzed)\n",
		bs.ByStatus[constants.ContentIdea], bs.ByStatus[constants.ContentDraft], bs.ByStatus[constants.ContentPublished], bs.Analyzed)
	if len(b.Platforms) > 0 {
		ctx.Println("Platforms:")
		for _, p := range b.Platforms {
			ctx.Printf("  %s  %-12s %s\n", cli.ShortID(p.ID), p.Name, p.Frequency)
		}
	}
	if len(bs.PerPillar) > 0 {
		names := map[string]string{}
		for _, t := range b.Positioning.CoreThemes {
			names[t.ID] = t.Text
		}
		ids := make([]string, 0, len(bs.PerPillar))
		for id := range bs.PerPillar {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		ctx.Println("Per theme:")
		for _, id := range ids {
			name := names[id]
			if name == "" {
				name = id
			}
			ctx.Printf("  %-24s %d\n", name, bs.PerPillar[id])
		}
	}
	if bs.LatestScore != nil {
		ctx.Printf("Consistency: %.1f average, latest %d/%d/%d on %s\n", bs.AvgConsistency,
			bs.LatestScore.VoiceAdherence, bs.LatestScore.PostingRhythm, bs.LatestScore.RepetitionStrength, bs.LatestScore.Date)
	}
	return nil
}
