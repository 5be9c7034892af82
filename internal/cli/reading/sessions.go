package reading

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/models"
)

// SessionLogCmd records pages read. With only --pages the session continues from the
// book's current page.
type SessionLogCmd struct {
	Book  string `arg:"" help:"Book ID or unique prefix."`
	Pages int    `arg:"" help:"Pages read."`
	From  int    `help:"First page of the session."`
	Date  string `short:"d" help:"Day of the session. Defaults to today."`
	Note  string `short:"n" help:"Session note."`
}

func (c *SessionLogCmd) Validate() error {
	if c.Pages <= 0 {
		return fmt.Errorf("pages must be greater than zero")
	}
	return nil
}

func (c *SessionLogCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book, err := resolveBook(st, c.Book)
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, st)
	if err != nil {
		return err
	}
	session := models.ReadingSession{BookID: book, Date: date, PagesRead: c.Pages, Note: c.Note}
	if c.From > 0 {
		session.StartPage = c.From
		session.EndPage = c.From + c.Pages
	}
	session, err = st.AddReadingSession(ctx.Ctx, session)
	if err != nil {
		return err
	}

	ctx.Printf("Logged %d page(s), now on page %d\n", session.PagesRead, session.EndPage)
	rs := st.ReadingStats()
	ctx.Printf("Reading streak: %d day(s), %d page(s) this week\n", rs.Streak, rs.PagesThisWeek)
	return nil
}

type SessionDeleteCmd struct {
	ID string `arg:"" help:"Session ID or unique prefix."`
}

func (c *SessionDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().ReadingSessions, func(r models.ReadingSession) string { return r.ID }))
	if err != nil {
		return err
	}
	if err := st.DeleteReadingSession(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted reading session %s\n", cli.ShortID(id))
	return nil
}
