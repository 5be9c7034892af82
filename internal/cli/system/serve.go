package system

import (
	"github.com/julianstephens/lifetrack/internal/analysis"
	"github.com/julianstephens/lifetrack/internal/api"
	"github.com/julianstephens/lifetrack/internal/app"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/mcpserver"
)

type ServeCmd struct {
	Listen  string   `help:"Address to listen on. Defaults to the listen setting."`
	Origins []string `name:"origin" help:"Allowed CORS origin. Repeatable; defaults to any."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	a, err := startApp(ctx)
	if err != nil {
		return err
	}

	cfg := api.Config{
		Store:        a.Store,
		UserID:       ctx.Config.UserID,
		JWTSecret:    []byte(ctx.Config.JWTSecret),
		PasswordHash: []byte(ctx.Config.APIPasswordHash),
		AllowOrigins: c.Origins,
	}
	if analyzer := optionalAnalyzer(ctx, a); analyzer != nil {
		cfg.Analyzer = analyzer
	}
	if ctx.Config.JWTSecret == "" || ctx.Config.APIPasswordHash == "" {
		logger.Warn("Login disabled: set a jwt secret with 'lifetrack config keyring set jwt' and a password with 'lifetrack config api-password'")
	}

	addr := c.Listen
	if addr == "" {
		addr = ctx.Config.Listen
	}
	ctx.Printf("Serving the %s API on %s\n", ctx.Config.UserID, addr)
	return api.New(cfg).ListenAndServe(ctx.Ctx, addr)
}

type MCPCmd struct{}

func (c *MCPCmd) Run(ctx *cli.Context) error {
	a, err := startApp(ctx)
	if err != nil {
		return err
	}
	var analyzer mcpserver.Analyzer
	if an := optionalAnalyzer(ctx, a); an != nil {
		analyzer = an
	}
	return mcpserver.New(a.Store, analyzer).Serve(ctx.Ctx, ctx.In, ctx.Out)
}

// startApp opens storage, backs it up and starts the sync worker for long-running commands.
func startApp(ctx *cli.Context) (*app.App, error) {
	a, err := ctx.App()
	if err != nil {
		return nil, err
	}
	a.PerformAutomaticBackup()
	if err := a.Start(ctx.Ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// optionalAnalyzer returns nil when no LLM key is configured. The concrete pointer is
// returned so callers avoid storing a typed nil in an interface.
func optionalAnalyzer(ctx *cli.Context, a *app.App) *analysis.Analyzer {
	an, err := a.Analyzer(ctx.Ctx)
	if err != nil {
		logger.Info("Content analysis disabled", "reason", err)
		return nil
	}
	return an
}
