package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/remote/postgres"
)

func stubKeyring(t *testing.T, secrets map[string]string) {
	t.Helper()
	prev := keyringLookup
	keyringLookup = func(user string) string { return secrets[user] }
	t.Cleanup(func() { keyringLookup = prev })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	stubKeyring(t, nil)
	path := filepath.Join(t.TempDir(), "missing.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Backend != constants.BackendSQLite || c.UserID != constants.DefaultUserID {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.SyncInterval != constants.SyncDefaultTick || c.Temperature != constants.DefaultTemperature {
		t.Errorf("sync/llm defaults not applied: %+v", c)
	}
	if c.Dir() != filepath.Dir(path) {
		t.Errorf("Dir() = %q", c.Dir())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	stubKeyring(t, map[string]string{constants.KeyringOpenAIKey: "from-keyring"})
	path := writeConfig(t, "backend: json\nuser_id: alice\ntimezone: UTC\nsync_interval: 45s\nllm_provider: gemini\n")
	t.Setenv(constants.EnvUserID, "bob")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Backend != constants.BackendJSON || c.Timezone != "UTC" || c.LLMProvider != constants.ProviderGemini {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.UserID != "bob" {
		t.Errorf("UserID = %q, want env override", c.UserID)
	}
	if c.SyncInterval != 45*time.Second {
		t.Errorf("SyncInterval = %v", c.SyncInterval)
	}
	if c.OpenAIKey != "from-keyring" {
		t.Errorf("OpenAIKey = %q, want keyring value", c.OpenAIKey)
	}
}

func TestLoad_EnvSecretWinsOverKeyring(t *testing.T) {
	stubKeyring(t, map[string]string{constants.KeyringJWTSecret: "keyring"})
	t.Setenv(constants.EnvJWTSecret, "env")

	c, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.JWTSecret != "env" {
		t.Errorf("JWTSecret = %q, want env", c.JWTSecret)
	}
}

func TestLoad_Invalid(t *testing.T) {
	stubKeyring(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"backend", "backend: mongo\n"},
		{"timezone", "timezone: Mars/Olympus\n"},
		{"provider", "llm_provider: claude\n"},
		{"temperature", "temperature: 3\n"},
		{"driver", "remote_driver: oracle\nremote_dsn: x\n"},
		{"missing dsn", "remote_driver: postgres\n"},
		{"yaml", "backend: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load() error = nil")
			}
		})
	}
}

func TestLoad_RemoteDSNPassword(t *testing.T) {
	path := writeConfig(t, "remote_driver: postgres\nremote_dsn: postgres://u:secret@db/lifetrack\n")

	stubKeyring(t, nil)
	if _, err := Load(path); !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		t.Errorf("Load() error = %v, want ErrEmbeddedCredentials", err)
	}

	// A password is fine when the DSN comes from the keyring.
	path = writeConfig(t, "remote_driver: postgres\n")
	stubKeyring(t, map[string]string{constants.DefaultKeyringUser: "postgres://u:secret@db/lifetrack"})
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.RemoteDSN == "" {
		t.Errorf("RemoteDSN not read from keyring")
	}
}

func TestSetAndSave(t *testing.T) {
	stubKeyring(t, nil)
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.OpenAIKey = "sk-secret"

	if err := c.Set(constants.SettingTimezone, "Europe/Berlin"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(constants.SettingBackend, "mongo"); err == nil {
		t.Errorf("Set(invalid backend) error = nil")
	}
	if c.Backend != constants.BackendSQLite {
		t.Errorf("invalid Set was not rolled back: %q", c.Backend)
	}
	if err := c.Set("colour", "blue"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Set(unknown) error = %v", err)
	}
	if err := c.Set(constants.SettingSyncInterval, "1m"); err != nil {
		t.Fatalf("Set(sync_interval) error = %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); strings.Contains(got, "sk-secret") {
		t.Errorf("secret written to config file:\n%s", got)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Timezone != "Europe/Berlin" || reloaded.SyncInterval != time.Minute {
		t.Errorf("reloaded = %+v", reloaded)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x/y.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/y.db"); got != "/abs/y.db" {
		t.Errorf("ExpandPath() = %q", got)
	}
}
