// Package protect holds the content-protection commands. Weakening the filter asks
// for the PIN unless --pin is given.
package protect

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

const historyShown = 10

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	p := st.Protection()
	state := "disabled"
	if p.Enabled {
		state = "enabled"
	}
	ctx.Printf("Protection: %s (level %s)\n", state, p.EffectiveLevel())
	ctx.Printf("Vital blocking: %s\n", onOff(p.VitalBlockingEnabled))
	if st.HasPIN() {
		ctx.Println("PIN: set")
	} else {
		ctx.Println("PIN: not set")
	}
	if len(p.CustomBlockedDomains) > 0 {
		ctx.Printf("Blocked domains: %s\n", strings.Join(p.CustomBlockedDomains, ", "))
	}
	if len(p.CustomBlockedKeywords) > 0 {
		ctx.Printf("Blocked keywords: %s\n", strings.Join(p.CustomBlockedKeywords, ", "))
	}
	if ap := p.AccountabilityPartner; ap != nil {
		ctx.Printf("Accountability partner: %s (on block %s, daily %s, weekly %s)\n",
			ap.Email, onOff(ap.NotifyOnBlock), onOff(ap.DailyReport), onOff(ap.WeeklyReport))
	}
	ctx.Printf("Blocked attempts: %d\n", len(p.BlockHistory))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

type LevelCmd struct {
	Level string `arg:"" enum:"off,light,strong,strict" help:"Protection level (${enum})."`
	PIN   string `help:"Protection PIN, required to lower the level."`
}

func (c *LevelCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	pin, err := ctx.PIN(st, c.PIN)
	if err != nil {
		return err
	}
	if err := st.SetProtectionLevel(ctx.Ctx, constants.ProtectionLevel(c.Level), pin); err != nil {
		return err
	}
	ctx.Printf("Protection level set to %s\n", c.Level)
	return nil
}

type EnableCmd struct{}

func (c *EnableCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if err := st.SetProtectionEnabled(ctx.Ctx, true, ""); err != nil {
		return err
	}
	ctx.Printf("Protection enabled at level %s\n", st.Protection().ProtectionLevel)
	return nil
}

type DisableCmd struct {
	PIN string `help:"Protection PIN."`
}

func (c *DisableCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	pin, err := ctx.PIN(st, c.PIN)
	if err != nil {
		return err
	}
	if err := st.SetProtectionEnabled(ctx.Ctx, false, pin); err != nil {
		return err
	}
	ctx.Println("Protection disabled")
	return nil
}

type VitalCmd struct {
	State string `arg:"" enum:"on,off" help:"Turn vital blocking on or off."`
	PIN   string `help:"Protection PIN, required to turn it off."`
}

func (c *VitalCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	on := c.State == "on"
	var pin string
	if !on {
		if pin, err = ctx.PIN(st, c.PIN); err != nil {
			return err
		}
	}
	if err := st.SetVitalBlocking(ctx.Ctx, on, pin); err != nil {
		return err
	}
	ctx.Printf("Vital blocking %s\n", c.State)
	return nil
}

type PINCmd struct {
	New string `arg:"" help:"New PIN."`
	Old string `help:"Current PIN, when one is set."`
}

func (c *PINCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	old, err := ctx.PIN(st, c.Old)
	if err != nil {
		return err
	}
	if err := st.SetPIN(ctx.Ctx, c.New, old); err != nil {
		return err
	}
	ctx.Println("✓ PIN updated")
	return nil
}

type BlockCmd struct {
	Kind  string `arg:"" enum:"domain,keyword" help:"What to block (${enum})."`
	Value string `arg:"" help:"Domain or keyword."`
}

func (c *BlockCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Value) == "" {
		return fmt.Errorf("%s cannot be empty", c.Kind)
	}
	if c.Kind == "domain" {
		err = st.AddBlockedDomain(ctx.Ctx, c.Value)
	} else {
		err = st.AddBlockedKeyword(ctx.Ctx, c.Value)
	}
	if err != nil {
		return err
	}
	ctx.Printf("Blocked %s %q\n", c.Kind, c.Value)
	return nil
}

type UnblockCmd struct {
	Kind  string `arg:"" enum:"domain,keyword" help:"What to unblock (${enum})."`
	Value string `arg:"" help:"Domain or keyword."`
	PIN   string `help:"Protection PIN."`
}

func (c *UnblockCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	pin, err := ctx.PIN(st, c.PIN)
	if err != nil {
		return err
	}
	if c.Kind == "domain" {
		err = st.RemoveBlockedDomain(ctx.Ctx, c.Value, pin)
	} else {
		err = st.RemoveBlockedKeyword(ctx.Ctx, c.Value, pin)
	}
	if err != nil {
		return err
	}
	ctx.Printf("Unblocked %s %q\n", c.Kind, c.Value)
	return nil
}

type PartnerCmd struct {
	Email   string `arg:"" optional:"" help:"Partner email."`
	OnBlock bool   `default:"true" negatable:"" help:"Notify on every blocked attempt."`
	Daily   bool   `help:"Send a daily report."`
	Weekly  bool   `help:"Send a weekly report."`
	Clear   bool   `help:"Remove the partner."`
	PIN     string `help:"Protection PIN, required to clear."`
}

func (c *PartnerCmd) Validate() error {
	if c.Clear == (c.Email != "") {
		return fmt.Errorf("give either an email or --clear")
	}
	return nil
}

func (c *PartnerCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if c.Clear {
		pin, err := ctx.PIN(st, c.PIN)
		if err != nil {
			return err
		}
		if err := st.SetAccountabilityPartner(ctx.Ctx, nil, pin); err != nil {
			return err
		}
		ctx.Println("Accountability partner removed")
		return nil
	}
	partner := &models.AccountabilityPartner{
		Email:         c.Email,
		NotifyOnBlock: c.OnBlock,
		DailyReport:   c.Daily,
		WeeklyReport:  c.Weekly,
	}
	if err := st.SetAccountabilityPartner(ctx.Ctx, partner, ""); err != nil {
		return err
	}
	ctx.Printf("Accountability partner set to %s\n", c.Email)
	return nil
}

// CheckCmd runs input through the filter. A blocked input is recorded in the history.
type CheckCmd struct {
	Input string `arg:"" help:"URL or text to check."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	res, err := st.CheckContent(ctx.Ctx, c.Input)
	if err != nil {
		return err
	}
	if !res.Blocked {
		ctx.Println("✓ Allowed")
		return nil
	}
	ctx.Printf("❌ Blocked: %s\n", res.Reason)
	switch {
	case res.MatchedDomain != "":
		ctx.Printf("   matched domain %s\n", res.MatchedDomain)
	case res.MatchedKeyword != "":
		ctx.Printf("   matched keyword %q\n", res.MatchedKeyword)
	}
	return nil
}

type HistoryCmd struct {
	Clear bool   `help:"Clear the history."`
	PIN   string `help:"Protection PIN, required to clear."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	if c.Clear {
		pin, err := ctx.PIN(st, c.PIN)
		if err != nil {
			return err
		}
		if err := st.ClearBlockHistory(ctx.Ctx, pin); err != nil {
			return err
		}
		ctx.Println("Block history cleared")
		return nil
	}
	history := st.Protection().BlockHistory
	if len(history) == 0 {
		ctx.Println("No blocked attempts")
		return nil
	}
	for i, a := range history {
		if i == historyShown {
			ctx.Printf("  ... %d more\n", len(history)-historyShown)
			break
		}
		what := a.URL
		if what == "" {
			what = a.Keyword
		}
		ctx.Printf("  %s  %-7s %-30s %s\n", a.Timestamp.Format("2006-01-02 15:04"), a.ProtectionLevel, what, a.Reason)
	}
	return nil
}
