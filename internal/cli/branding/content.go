// Package branding holds the personal-branding commands, including LLM content analysis.
package branding

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lifetrack/internal/analysis"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

const renderWidth = 100

func resolveContent(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().Branding.ContentItems, func(c models.BrandingContentItem) string { return c.ID }))
}

type ContentAddCmd struct {
	Title     string   `arg:"" help:"Content title."`
	Body      string   `short:"b" help:"Draft body."`
	Intent    string   `short:"i" required:"" enum:"Authority,Trust,Relatability,Teaching,Lead Generation" help:"Strategic intent (${enum})."`
	Path      string   `short:"p" enum:"Newsletter,Lead,Teaching Asset,None" default:"None" help:"Conversion path (${enum})."`
	Platforms []string `help:"Platform IDs or prefixes."`
	Pillar    string   `help:"Core theme ID or prefix."`
}

func (c *ContentAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	b := st.State().Branding
	item := models.BrandingContentItem{
		Title:          c.Title,
		Body:           c.Body,
		Intent:         constants.ContentIntent(c.Intent),
		ConversionPath: constants.ConversionPath(c.Path),
	}
	for _, p := range c.Platforms {
		id, err := cli.Resolve(p, cli.IDs(b.Platforms, func(p models.Platform) string { return p.ID }))
		if err != nil {
			return err
		}
		item.PlatformIDs = append(item.PlatformIDs, id)
	}
	if c.Pillar != "" {
		if item.PillarID, err = cli.Resolve(c.Pillar, cli.IDs(b.Positioning.CoreThemes, func(t models.ExpertisePillar) string { return t.ID })); err != nil {
			return err
		}
	}
	item, err = st.AddContentItem(ctx.Ctx, item)
	if err != nil {
		return err
	}
	ctx.Printf("Added content idea: %s (ID: %s)\n", item.Title, cli.ShortID(item.ID))
	return nil
}

type ContentListCmd struct {
	Status string `short:"s" enum:",idea,draft,published" default:"" help:"Filter by status."`
}

func (c *ContentListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	items := st.State().Branding.ContentItems
	if c.Status != "" {
		items = st.ContentByStatus(constants.ContentStatus(c.Status))
	}
	if len(items) == 0 {
		ctx.Println("No content found")
		return nil
	}
	for _, it := range items {
		mark := " "
		if it.Analysis != "" {
			mark = "*"
		}
		ctx.Printf("  %s %s %-9s %-15s %s\n", cli.ShortID(it.ID), mark, it.Status, it.Intent, it.Title)
	}
	return nil
}

type ContentStatusCmd struct {
	ID     string `arg:"" help:"Content ID or unique prefix."`
	Status string `arg:"" enum:"idea,draft,published" help:"New status (${enum})."`
}

func (c *ContentStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveContent(st, c.ID)
	if err != nil {
		return err
	}
	status := constants.ContentStatus(c.Status)
	if err := st.UpdateContentItem(ctx.Ctx, id, models.ContentPatch{Status: &status}); err != nil {
		return err
	}
	ctx.Printf("Content %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type ContentShowCmd struct {
	ID  string `arg:"" help:"Content ID or unique prefix."`
	Raw bool   `help:"Print the stored analysis without terminal formatting."`
}

func (c *ContentShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveContent(st, c.ID)
	if err != nil {
		return err
	}
	item, err := st.ContentItem(id)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n%s | %s -> %s\n", item.Title, item.Status, item.Intent, item.ConversionPath)
	if item.Body != "" {
		ctx.Printf("\n%s\n", item.Body)
	}
	if item.Analysis == "" {
		ctx.Println("\nNot analyzed yet. Run 'lifetrack brand content analyze " + cli.ShortID(id) + "'.")
		return nil
	}
	return printReport(ctx, item.Analysis, c.Raw)
}

func printReport(ctx *cli.Context, text string, raw bool) error {
	if raw {
		ctx.Printf("\n%s\n", text)
		return nil
	}
	out, err := analysis.Render(text, renderWidth)
	if err != nil {
		return err
	}
	ctx.Printf("%s", out)
	return nil
}

type ContentAnalyzeCmd struct {
	ID  string `arg:"" help:"Content ID or unique prefix."`
	Raw bool   `help:"Print the reply without terminal formatting."`
}

func (c *ContentAnalyzeCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	id, err := resolveContent(a.Store, c.ID)
	if err != nil {
		return err
	}
	analyzer, err := a.Analyzer(ctx.Ctx)
	if err != nil {
		return err
	}
	report, err := analyzer.AnalyzeContent(ctx.Ctx, id)
	if err != nil {
		return err
	}
	return printReport(ctx, report, c.Raw)
}

// readText returns s, or the contents of the file it names when prefixed with '@'.
func readText(s string) (string, error) {
	path, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

type ContentCompareCmd struct {
	Mine   string `arg:"" help:"Your content, or @file."`
	Theirs string `arg:"" help:"The other creator's content, or @file."`
	Raw    bool   `help:"Print the reply without terminal formatting."`
}

func (c *ContentCompareCmd) Run(ctx *cli.Context) error {
	mine, err := readText(c.Mine)
	if err != nil {
		return err
	}
	theirs, err := readText(c.Theirs)
	if err != nil {
		return err
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	analyzer, err := a.Analyzer(ctx.Ctx)
	if err != nil {
		return err
	}
	report, err := analyzer.Compare(ctx.Ctx, mine, theirs)
	if err != nil {
		return err
	}
	return printReport(ctx, report, c.Raw)
}

type ContentDeleteCmd struct {
	ID string `arg:"" help:"Content ID or unique prefix."`
}

func (c *ContentDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveContent(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteContentItem(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted content %s\n", cli.ShortID(id))
	return nil
}
