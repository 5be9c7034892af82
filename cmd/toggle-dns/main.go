package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/dnsfilter"
	"github.com/julianstephens/lifetrack/internal/errors"
)

type Globals struct {
	Toggler *dnsfilter.Toggler
	Ctx     context.Context
}

type EnableCmd struct{}

func (c *EnableCmd) Run(g *Globals) error {
	return g.Toggler.Enable(g.Ctx)
}

type DisableCmd struct{}

func (c *DisableCmd) Run(g *Globals) error {
	return g.Toggler.Disable(g.Ctx)
}

var CLI struct {
	Version kong.VersionFlag

	Enable  EnableCmd  `cmd:"" help:"Set system DNS to OpenDNS FamilyShield IPs."`
	Disable DisableCmd `cmd:"" help:"Reset system DNS to automatic (DHCP)."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("toggle-dns"),
		kong.Description("Toggle the OpenDNS FamilyShield filter on the active network interface"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := kctx.Run(&Globals{Toggler: dnsfilter.New(os.Stdout), Ctx: ctx})
	if err != nil {
		stop()
		errors.Fatal(err)
	}
}
