// Package settings holds the commands that read and change config.yaml and the keyring.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/api"
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/keyring"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Settings (%s):\n", ctx.Config.Path())
	for _, kv := range ctx.Config.Values() {
		ctx.Printf("  %-18s %s\n", kv[0]+":", kv[1])
	}

	ctx.Println("\nSecrets:")
	secrets := []struct {
		name string
		set  bool
	}{
		{"openai key", ctx.Config.OpenAIKey != ""},
		{"gemini key", ctx.Config.GeminiKey != ""},
		{"jwt secret", ctx.Config.JWTSecret != ""},
		{"api password", ctx.Config.APIPasswordHash != ""},
	}
	for _, s := range secrets {
		state := "not set"
		if s.set {
			state = "set"
		}
		ctx.Printf("  %-18s %s\n", s.name+":", state)
	}
	return nil
}

type GetCmd struct {
	Key string `arg:"" help:"Setting name, as written in config.yaml."`
}

func (c *GetCmd) Run(ctx *cli.Context) error {
	for _, kv := range ctx.Config.Values() {
		if kv[0] == c.Key {
			ctx.Println(kv[1])
			return nil
		}
	}
	return fmt.Errorf("unknown setting %q", c.Key)
}

type SetCmd struct {
	Key   string `arg:"" help:"Setting name, as written in config.yaml."`
	Value string `arg:"" help:"New value."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Config.Set(c.Key, c.Value); err != nil {
		return err
	}
	if err := ctx.Config.Save(); err != nil {
		return err
	}
	ctx.Printf("✓ %s updated in %s\n", c.Key, ctx.Config.Path())
	if c.Key == constants.SettingDatabase || c.Key == constants.SettingBackend {
		ctx.Println("  Run 'lifetrack init' if the new location has no data yet.")
	}
	return nil
}

// APIPasswordCmd stores the bcrypt hash of the API login password in the keyring.
type APIPasswordCmd struct {
	Password string `arg:"" optional:"" help:"New password. Prompted for when omitted."`
}

func (c *APIPasswordCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var confirm string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("API password").EchoMode(huh.EchoModePassword).Value(&password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}
	}
	if len(strings.TrimSpace(password)) < constants.MinAPIPasswordLen {
		return fmt.Errorf("password must be at least %d characters", constants.MinAPIPasswordLen)
	}

	hash, err := api.HashPassword(password)
	if err != nil {
		return err
	}
	if err := keyring.Set(constants.KeyringAPIPassword, hash); err != nil {
		return err
	}
	ctx.Config.APIPasswordHash = hash
	ctx.Println("✓ API password stored in OS keyring")
	if ctx.Config.JWTSecret == "" {
		ctx.Println("  Set a token signing secret too: lifetrack config keyring set jwt")
	}
	return nil
}
