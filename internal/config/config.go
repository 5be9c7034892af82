// Package config loads lifetrack's settings from config.yaml, the environment and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/keyring"
	"github.com/julianstephens/lifetrack/internal/remote/mysql"
	"github.com/julianstephens/lifetrack/internal/remote/postgres"
	"github.com/julianstephens/lifetrack/internal/utils"
)

var ErrUnknownSetting = errors.New("unknown setting")

// keyringLookup is replaced in tests.
var keyringLookup = keyring.Lookup

type Config struct {
	Database     string        `yaml:"database"`
	Backend      string        `yaml:"backend"`
	Timezone     string        `yaml:"timezone"`
	UserID       string        `yaml:"user_id"`
	RemoteDriver string        `yaml:"remote_driver,omitempty"`
	RemoteDSN    string        `yaml:"remote_dsn,omitempty"`
	LLMProvider  string        `yaml:"llm_provider"`
	LLMModel     string        `yaml:"llm_model,omitempty"`
	LLMBaseURL   string        `yaml:"llm_base_url,omitempty"`
	Temperature  float64       `yaml:"temperature"`
	Listen       string        `yaml:"listen"`
	SyncInterval time.Duration `yaml:"sync_interval"`
	SyncAttempts int           `yaml:"sync_max_attempts"`
	Debug        bool          `yaml:"debug,omitempty"`
	// PartnerHook receives a JSON alert for every blocked attempt the partner asked to hear about.
	PartnerHook string `yaml:"partner_webhook,omitempty"`

	// Secrets come from the environment or the keyring and are never written back.
	OpenAIKey       string `yaml:"-"`
	GeminiKey       string `yaml:"-"`
	JWTSecret       string `yaml:"-"`
	APIPasswordHash string `yaml:"-"`
	WebhookSecret   string `yaml:"-"`

	path string
	// fileDSN is set when RemoteDSN came from config.yaml, which must not hold a password.
	fileDSN bool
}

func Default() *Config {
	return &Config{
		Database:     ExpandPath(constants.DefaultConfigPath),
		Backend:      constants.BackendSQLite,
		Timezone:     constants.DefaultTimezone,
		UserID:       constants.DefaultUserID,
		LLMProvider:  constants.ProviderOpenAI,
		Temperature:  constants.DefaultTemperature,
		Listen:       constants.DefaultListenAddr,
		SyncInterval: constants.SyncDefaultTick,
		SyncAttempts: constants.SyncMaxAttempts,
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// DefaultFile returns ~/.config/lifetrack/config.yaml.
func DefaultFile() string {
	return filepath.Join(ExpandPath(constants.DefaultConfigDir), constants.DefaultConfigFile)
}

// Load applies defaults, then path (a missing file is not an error), then the environment,
// then keyring secrets, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile()
	}
	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		c.fileDSN = c.RemoteDSN != ""
	}

	c.applyEnv()
	c.applyKeyring()
	c.Database = ExpandPath(c.Database)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func envOverride(dst *string, key string) bool {
	if v := os.Getenv(key); v != "" {
		*dst = v
		return true
	}
	return false
}

func (c *Config) applyEnv() {
	envOverride(&c.Database, constants.EnvDatabase)
	envOverride(&c.RemoteDriver, constants.EnvRemoteDriver)
	if envOverride(&c.RemoteDSN, constants.EnvRemoteDSN) {
		c.fileDSN = false
	}
	envOverride(&c.UserID, constants.EnvUserID)
	envOverride(&c.Timezone, constants.EnvTimezone)
	envOverride(&c.Listen, constants.EnvListen)
	envOverride(&c.JWTSecret, constants.EnvJWTSecret)
	envOverride(&c.OpenAIKey, constants.EnvOpenAIKey)
	envOverride(&c.GeminiKey, constants.EnvGeminiKey)
	envOverride(&c.PartnerHook, constants.EnvPartnerHook)
	envOverride(&c.WebhookSecret, constants.EnvHookSecret)
}

func (c *Config) applyKeyring() {
	fill := func(dst *string, user string) bool {
		if *dst != "" {
			return false
		}
		*dst = keyringLookup(user)
		return *dst != ""
	}
	if c.RemoteDriver != "" && fill(&c.RemoteDSN, constants.DefaultKeyringUser) {
		c.fileDSN = false
	}
	fill(&c.OpenAIKey, constants.KeyringOpenAIKey)
	fill(&c.GeminiKey, constants.KeyringGeminiKey)
	fill(&c.JWTSecret, constants.KeyringJWTSecret)
	fill(&c.APIPasswordHash, constants.KeyringAPIPassword)
	if c.PartnerHook != "" {
		fill(&c.WebhookSecret, constants.KeyringWebhook)
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case constants.BackendSQLite, constants.BackendJSON:
	default:
		return fmt.Errorf("invalid %s %q: must be %s or %s", constants.SettingBackend, c.Backend, constants.BackendSQLite, constants.BackendJSON)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid %s %q", constants.SettingTimezone, c.Timezone)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%s cannot be empty", constants.SettingUserID)
	}
	switch c.LLMProvider {
	case constants.ProviderOpenAI, constants.ProviderGemini:
	default:
		return fmt.Errorf("invalid %s %q", constants.SettingLLMProvider, c.LLMProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("%s must be positive", constants.SettingSyncInterval)
	}
	if c.SyncAttempts < 1 {
		return fmt.Errorf("%s must be at least 1", constants.SettingSyncAttempts)
	}
	if c.PartnerHook != "" {
		u, err := url.Parse(c.PartnerHook)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s %q: must be an http(s) URL", constants.SettingPartnerHook, c.PartnerHook)
		}
	}
	return c.validateRemote()
}

func (c *Config) validateRemote() error {
	switch c.RemoteDriver {
	case "":
		return nil
	case constants.RemotePostgres:
		if c.RemoteDSN == "" {
			return fmt.Errorf("%s is required for %s", constants.SettingRemoteDSN, c.RemoteDriver)
		}
		if c.fileDSN {
			_, err := postgres.ValidateConnString(c.RemoteDSN)
			return err
		}
		return nil
	case constants.RemoteMySQL:
		if c.RemoteDSN == "" {
			return fmt.Errorf("%s is required for %s", constants.SettingRemoteDSN, c.RemoteDriver)
		}
		if c.fileDSN {
			return mysql.ValidateDSN(c.RemoteDSN)
		}
		return nil
	default:
		return fmt.Errorf("invalid %s %q: must be %s or %s", constants.SettingRemoteDriver, c.RemoteDriver, constants.RemotePostgres, constants.RemoteMySQL)
	}
}

func (c *Config) Path() string {
	if c.path == "" {
		return DefaultFile()
	}
	return c.path
}

// Dir is the directory holding the config file, logs and backups of the JSON backend.
func (c *Config) Dir() string {
	return filepath.Dir(c.Path())
}

func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// Save writes the non-secret settings to the config file.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		constants.SettingDatabase:     &c.Database,
		constants.SettingBackend:      &c.Backend,
		constants.SettingTimezone:     &c.Timezone,
		constants.SettingUserID:       &c.UserID,
		constants.SettingRemoteDriver: &c.RemoteDriver,
		constants.SettingRemoteDSN:    &c.RemoteDSN,
		constants.SettingLLMProvider:  &c.LLMProvider,
		constants.SettingLLMModel:     &c.LLMModel,
		constants.SettingListen:       &c.Listen,
		constants.SettingPartnerHook:  &c.PartnerHook,
	}
}

// Set changes one setting by its config.yaml key and revalidates.
func (c *Config) Set(key, value string) error {
	prev := *c
	switch key {
	case constants.SettingSyncInterval:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		c.SyncInterval = d
	case constants.SettingSyncAttempts:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		c.SyncAttempts = n
	default:
		dst, ok := c.fields()[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		*dst = value
		if key == constants.SettingRemoteDSN {
			c.fileDSN = value != ""
		}
	}
	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}
	return nil
}

// Values lists the settings that can be shown, sorted by key. The remote DSN is masked.
func (c *Config) Values() [][2]string {
	var out [][2]string
	for k, v := range c.fields() {
		val := *v
		if k == constants.SettingRemoteDSN && val != "" && !c.fileDSN {
			val = "(from keyring or environment)"
		}
		out = append(out, [2]string{k, val})
	}
	out = append(out,
		[2]string{constants.SettingSyncInterval, c.SyncInterval.String()},
		[2]string{constants.SettingSyncAttempts, strconv.Itoa(c.SyncAttempts)},
	)
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
