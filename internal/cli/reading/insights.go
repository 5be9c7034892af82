package reading

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/models"
)

type InsightShowCmd struct {
	Book string `arg:"" help:"Book ID or unique prefix."`
}

func (c *InsightShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}
	in, ok := st.BookInsight(book)
	if !ok {
		ctx.Println("No insights recorded for this book yet")
		return nil
	}

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		ctx.Printf("%s:\n", title)
		for _, l := range lines {
			ctx.Printf("  - %s\n", l)
		}
	}
	var ideas, actions, beliefs, quotes, reminders []string
	for _, i := range in.CoreIdeas {
		ideas = append(ideas, fmt.Sprintf("%s %s", cli.ShortID(i.ID), i.Content))
	}
	for _, a := range in.ActionTakeaways {
		mark := " "
		if a.Completed {
			mark = "x"
		}
		actions = append(actions, fmt.Sprintf("%s [%s] %s", cli.ShortID(a.ID), mark, a.Action))
	}
	for _, b := range in.BeliefChanges {
		beliefs = append(beliefs, fmt.Sprintf("%s %s -> %s", cli.ShortID(b.ID), b.BeliefBefore, b.BeliefAfter))
	}
	for _, q := range in.Quotes {
		line := fmt.Sprintf("%s %q", cli.ShortID(q.ID), q.Content)
		if q.Page > 0 {
			line += fmt.Sprintf(" (p. %d)", q.Page)
		}
		quotes = append(quotes, line)
	}
	for _, r := range in.RevisitReminders {
		reminders = append(reminders, fmt.Sprintf("%s %s %s", cli.ShortID(r.ID), r.ReminderDate, r.Prompt))
	}
	section("Core ideas", ideas)
	section("Action takeaways", actions)
	section("Belief changes", beliefs)
	section("Quotes", quotes)
	section("Revisit reminders", reminders)
	if in.FinalSummary != "" {
		ctx.Printf("Summary:\n  %s\n", in.FinalSummary)
	}
	return nil
}

// InsightAddCmd adds one item to a book's insight.
type InsightAddCmd struct {
	Book string   `arg:"" help:"Book ID or unique prefix."`
	Kind string   `arg:"" enum:"idea,action,belief,quote,reminder,summary" help:"What to add (${enum})."`
	Text []string `arg:"" help:"Item text. A belief takes before and after; a reminder takes a date and a prompt."`
	Page int      `help:"Page of a quote."`
}

func (c *InsightAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}

	var id string
	switch c.Kind {
	case "idea":
		item, err := st.AddCoreIdea(ctx.Ctx, book, strings.Join(c.Text, " "))
		if err != nil {
			return err
		}
		id = item.ID
	case "action":
		item, err := st.AddActionTakeaway(ctx.Ctx, book, strings.Join(c.Text, " "))
		if err != nil {
			return err
		}
		id = item.ID
	case "belief":
		if len(c.Text) != 2 {
			return fmt.Errorf("a belief change takes two arguments: before and after")
		}
		item, err := st.AddBeliefChange(ctx.Ctx, book, c.Text[0], c.Text[1])
		if err != nil {
			return err
		}
		id = item.ID
	case "quote":
		item, err := st.AddQuote(ctx.Ctx, book, models.BookQuote{Content: strings.Join(c.Text, " "), Page: c.Page})
		if err != nil {
			return err
		}
		id = item.ID
	case "reminder":
		if len(c.Text) < 2 {
			return fmt.Errorf("a reminder takes a date and a prompt")
		}
		date, err := cli.ParseDate(c.Text[0], st)
		if err != nil {
			return err
		}
		item, err := st.AddRevisitReminder(ctx.Ctx, book, date, strings.Join(c.Text[1:], " "))
		if err != nil {
			return err
		}
		id = item.ID
	case "summary":
		if err := st.SetInsightSummary(ctx.Ctx, book, strings.Join(c.Text, " ")); err != nil {
			return err
		}
		ctx.Println("Summary saved")
		return nil
	}
	ctx.Printf("Added %s (ID: %s)\n", c.Kind, cli.ShortID(id))
	return nil
}

// insightItemIDs lists the ids of one sub-collection for prefix resolution.
func insightItemIDs(in models.BookInsight, kind models.InsightItemKind) []string {
	switch kind {
	case models.InsightCoreIdea:
		return cli.IDs(in.CoreIdeas, func(i models.CoreIdea) string { return i.ID })
	case models.InsightAction:
		return cli.IDs(in.ActionTakeaways, func(a models.ActionTakeaway) string { return a.ID })
	case models.InsightBelief:
		return cli.IDs(in.BeliefChanges, func(b models.BeliefChange) string { return b.ID })
	case models.InsightQuote:
		return cli.IDs(in.Quotes, func(q models.BookQuote) string { return q.ID })
	case models.InsightReminder:
		return cli.IDs(in.RevisitReminders, func(r models.RevisitReminder) string { return r.ID })
	}
	return nil
}

type InsightRemoveCmd struct {
	Book string `arg:"" help:"Book ID or unique prefix."`
	Kind string `arg:"" enum:"idea,action,belief,quote,reminder" help:"Item kind (${enum})."`
	ID   string `arg:"" help:"Item ID or unique prefix."`
}

func (c *InsightRemoveCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}
	kind := models.InsightItemKind(c.Kind)
	in, _ := st.BookInsight(book)
	id, err := cli.Resolve(c.ID, insightItemIDs(in, kind))
	if err != nil {
		return err
	}
	if err := st.RemoveInsightItem(ctx.Ctx, book, kind, id); err != nil {
		return err
	}
	ctx.Printf("Removed %s %s\n", c.Kind, cli.ShortID(id))
	return nil
}

// InsightLinkCmd toggles the link between a quote and an idea, action or belief.
type InsightLinkCmd struct {
	Book  string `arg:"" help:"Book ID or unique prefix."`
	Kind  string `arg:"" enum:"idea,action,belief" help:"Item kind (${enum})."`
	ID    string `arg:"" help:"Item ID or unique prefix."`
	Quote string `arg:"" help:"Quote ID or unique prefix."`
}

func (c *InsightLinkCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}
	kind := models.InsightItemKind(c.Kind)
	in, _ := st.BookInsight(book)
	id, err := cli.Resolve(c.ID, insightItemIDs(in, kind))
	if err != nil {
		return err
	}
	quote, err := cli.Resolve(c.Quote, insightItemIDs(in, models.InsightQuote))
	if err != nil {
		return err
	}
	linked, err := st.LinkQuote(ctx.Ctx, book, kind, id, quote)
	if err != nil {
		return err
	}
	if linked {
		ctx.Println("Quote linked")
	} else {
		ctx.Println("Quote unlinked")
	}
	return nil
}

// InsightDoneCmd toggles completion of an action takeaway or a revisit reminder.
type InsightDoneCmd struct {
	Book string `arg:"" help:"Book ID or unique prefix."`
	Kind string `arg:"" enum:"action,reminder" help:"Item kind (${enum})."`
	ID   string `arg:"" help:"Item ID or unique prefix."`
}

func (c *InsightDoneCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}
	kind := models.InsightItemKind(c.Kind)
	in, _ := st.BookInsight(book)
	id, err := cli.Resolve(c.ID, insightItemIDs(in, kind))
	if err != nil {
		return err
	}
	if kind == models.InsightAction {
		err = st.ToggleActionTakeaway(ctx.Ctx, book, id)
	} else {
		err = st.ToggleRevisitReminder(ctx.Ctx, book, id)
	}
	if err != nil {
		return err
	}
	ctx.Printf("Toggled %s %s\n", c.Kind, cli.ShortID(id))
	return nil
}
