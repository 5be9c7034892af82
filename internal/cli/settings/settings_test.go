package settings

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/keyring"
)

func setupTestSettings(t *testing.T) (*cli.Context, *strings.Builder) {
	t.Helper()
	gokeyring.MockInit()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	ctx := cli.New(context.Background(), cfg)
	ctx.Out = &out
	return ctx, &out
}

func TestSetCmd_SavesConfig(t *testing.T) {
	ctx, out := setupTestSettings(t)

	if err := (&SetCmd{Key: constants.SettingTimezone, Value: "Europe/Berlin"}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ timezone updated") {
		t.Errorf("output = %q", out.String())
	}

	reloaded, err := config.Load(ctx.Config.Path())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Timezone != "Europe/Berlin" {
		t.Errorf("reloaded timezone = %q", reloaded.Timezone)
	}
}

func TestSetCmd_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "blue"},
		{"bad backend", constants.SettingBackend, "csv"},
		{"bad duration", constants.SettingSyncInterval, "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestSettings(t)
			if err := (&SetCmd{Key: tt.key, Value: tt.value}).Run(ctx); err == nil {
				t.Error("expected error")
			}
			if _, err := os.Stat(ctx.Config.Path()); !os.IsNotExist(err) {
				t.Error("config should not be written after a rejected change")
			}
		})
	}
}

func TestGetCmd(t *testing.T) {
	ctx, out := setupTestSettings(t)
	if err := (&GetCmd{Key: constants.SettingBackend}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != constants.BackendSQLite {
		t.Errorf("output = %q", out.String())
	}
	if err := (&GetCmd{Key: "nope"}).Run(ctx); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestListCmd(t *testing.T) {
	ctx, out := setupTestSettings(t)
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sync_interval:", "user_id:", "jwt secret:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q: %q", want, out.String())
		}
	}
}

func TestAPIPasswordCmd(t *testing.T) {
	ctx, _ := setupTestSettings(t)
	defer func() { _ = keyring.Delete(constants.KeyringAPIPassword) }()

	if err := (&APIPasswordCmd{Password: "short"}).Run(ctx); err == nil {
		t.Error("expected error for a short password")
	}
	if err := (&APIPasswordCmd{Password: "correct horse"}).Run(ctx); err != nil {
		t.Fatalf("api-password failed: %v", err)
	}

	hash, err := keyring.Get(constants.KeyringAPIPassword)
	if err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}
	if ctx.Config.APIPasswordHash != hash {
		t.Error("config should carry the new hash")
	}
}
