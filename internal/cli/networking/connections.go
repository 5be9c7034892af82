// Package networking holds the connection, outcome and reusable-asset commands.
package networking

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveConnection(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().Networking.Connections, func(c models.NetworkingConnection) string { return c.ID }))
}

type ConnectionAddCmd struct {
	Name           string `arg:"" help:"Person's name."`
	Platform       string `short:"p" help:"Where you know them from."`
	Link           string `short:"l" help:"Profile URL."`
	Trust          int    `default:"5" help:"Trust score, 1-10."`
	Responsiveness int    `default:"5" help:"Responsiveness score, 1-10."`
	Value          int    `default:"5" help:"Mutual value score, 1-10."`
	Notes          string `short:"n" help:"Context notes."`
	Status         string `short:"s" enum:"active,nurturing,dormant,lead" default:"active" help:"Relationship status (${enum})."`
}

func (c *ConnectionAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	conn, err := st.AddConnection(ctx.Ctx, models.NetworkingConnection{
		Name:                c.Name,
		Platform:            c.Platform,
		Link:                c.Link,
		TrustScore:          c.Trust,
		ResponsivenessScore: c.Responsiveness,
		MutualValueScore:    c.Value,
		ContextNotes:        c.Notes,
		Status:              constants.ConnectionStatus(c.Status),
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added connection: %s (ID: %s)\n", conn.Name, cli.ShortID(conn.ID))
	return nil
}

type ConnectionListCmd struct {
	Status   string `short:"s" enum:",active,nurturing,dormant,lead" default:"" help:"Filter by status."`
	FollowUp bool   `help:"Only show connections that need a follow-up."`
}

func (c *ConnectionListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	ns := st.NetworkingStats()
	stale := make(map[string]bool, len(ns.NeedsFollowUp))
	for _, id := range ns.NeedsFollowUp {
		stale[id] = true
	}

	now := st.Now()
	shown := 0
	for _, conn := range st.State().Networking.Connections {
		if c.Status != "" && string(conn.Status) != c.Status {
			continue
		}
		if c.FollowUp && !stale[conn.ID] {
			continue
		}
		flag := " "
		if stale[conn.ID] {
			flag = "!"
		}
		days := int(now.Sub(conn.LastInteraction) / (24 * time.Hour))
		ctx.Printf("  %s %s %-20s %-10s score %.1f  last %dd ago\n",
			cli.ShortID(conn.ID), flag, conn.Name, conn.Status, conn.RelationshipScore(), days)
		shown++
	}
	if shown == 0 {
		ctx.Println("No connections found")
		return nil
	}
	ctx.Printf("\n%d connection(s), %d outcome(s), average score %.1f, %d need follow-up\n",
		ns.Total, ns.Outcomes, ns.AvgRelationshipScore, len(ns.NeedsFollowUp))
	return nil
}

type ConnectionShowCmd struct {
	ID string `arg:"" help:"Connection ID or unique prefix."`
}

func (c *ConnectionShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	for _, conn := range st.State().Networking.Connections {
		if conn.ID != id {
			continue
		}
		ctx.Printf("%s (%s)\n", conn.Name, conn.Status)
		if conn.Platform != "" || conn.Link != "" {
			ctx.Printf("  %s %s\n", conn.Platform, conn.Link)
		}
		ctx.Printf("  trust %d, responsiveness %d, mutual value %d\n",
			conn.TrustScore, conn.ResponsivenessScore, conn.MutualValueScore)
		if conn.ContextNotes != "" {
			ctx.Printf("  %s\n", conn.ContextNotes)
		}
		for _, o := range conn.Outcomes {
			ctx.Printf("  + %s %s: %s %s\n", o.Date, o.Type, o.Description, o.Value)
		}
		for _, r := range conn.Retrospectives {
			ctx.Printf("  ~ %s worked: %s | forced: %s | next: %s\n", r.Date, r.Worked, r.Forced, r.NextTime)
		}
		return nil
	}
	return fmt.Errorf("connection %q: %w", c.ID, store.ErrNotFound)
}

// ConnectionEditCmd changes scores, notes or status. Omitted flags leave fields unchanged.
type ConnectionEditCmd struct {
	ID             string  `arg:"" help:"Connection ID or unique prefix."`
	Trust          *int    `help:"Trust score, 1-10."`
	Responsiveness *int    `help:"Responsiveness score, 1-10."`
	Value          *int    `help:"Mutual value score, 1-10."`
	Notes          *string `short:"n" help:"Context notes."`
	Status         string  `short:"s" enum:",active,nurturing,dormant,lead" default:"" help:"Relationship status."`
}

func (c *ConnectionEditCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	patch := models.ConnectionPatch{
		TrustScore:          c.Trust,
		ResponsivenessScore: c.Responsiveness,
		MutualValueScore:    c.Value,
		ContextNotes:        c.Notes,
	}
	if c.Status != "" {
		s := constants.ConnectionStatus(c.Status)
		patch.Status = &s
	}
	if err := st.UpdateConnection(ctx.Ctx, id, patch); err != nil {
		return err
	}
	ctx.Printf("Updated connection %s\n", cli.ShortID(id))
	return nil
}

type ConnectionTouchCmd struct {
	ID string `arg:"" help:"Connection ID or unique prefix."`
}

func (c *ConnectionTouchCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.TouchConnection(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Logged interaction with %s\n", cli.ShortID(id))
	return nil
}

type ConnectionDeleteCmd struct {
	ID  string `arg:"" help:"Connection ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *ConnectionDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("Delete this connection with its outcomes and retrospectives?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled")
			return nil
		}
	}
	if err := st.DeleteConnection(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted connection %s\n", cli.ShortID(id))
	return nil
}

type OutcomeAddCmd struct {
	ID          string `arg:"" help:"Connection ID or unique prefix."`
	Type        string `arg:"" enum:"Freelancing Lead,Job Referral,Collaboration,Audience Growth,Other" help:"Outcome type (${enum})."`
	Description string `arg:"" help:"What happened."`
	Value       string `help:"Value, e.g. an amount."`
	Date        string `short:"d" help:"Day of the outcome. Defaults to today."`
}

func (c *OutcomeAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, st)
	if err != nil {
		return err
	}
	o, err := st.AddOutcome(ctx.Ctx, id, models.ConnectionOutcome{
		Type:        constants.OutcomeType(c.Type),
		Description: c.Description,
		Value:       c.Value,
		Date:        date,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Recorded %s outcome (ID: %s)\n", o.Type, cli.ShortID(o.ID))
	return nil
}

type RetroAddCmd struct {
	ID       string `arg:"" help:"Connection ID or unique prefix."`
	Worked   string `help:"What worked."`
	Forced   string `help:"What felt forced."`
	NextTime string `name:"next" help:"What to do next time."`
}

func (c *RetroAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveConnection(st, c.ID)
	if err != nil {
		return err
	}
	r, err := st.AddRetrospective(ctx.Ctx, id, models.RelationshipRetrospective{
		Worked:   c.Worked,
		Forced:   c.Forced,
		NextTime: c.NextTime,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Recorded retrospective for %s\n", r.Date)
	return nil
}
