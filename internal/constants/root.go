package constants

import "time"

const (
	AppName            = "lifetrack"
	DefaultKeyringUser = "remote-connection"
	DefaultConfigDir   = "~/.config/lifetrack"
	DefaultConfigPath  = "~/.config/lifetrack/lifetrack.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// StorageKey names the snapshot row in SQLite and the snapshot file stem for the JSON backend.
	StorageKey = "lifetracker_data"

	// Keyring users
	KeyringOpenAIKey   = "openai-api-key"
	KeyringGeminiKey   = "gemini-api-key"
	KeyringJWTSecret   = "jwt-secret"
	KeyringAPIPassword = "api-password-hash"
	KeyringWebhook     = "partner-webhook-secret"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifetrack-"
	BackupFileSuffix = ".db"

	// SkillRevisionDays spaces skill revisions
	SkillRevisionDays = 7

	// Sync constants
	SyncBatchSize      = 50
	SyncBaseBackoff    = 2 * time.Second
	SyncMaxBackoff     = 5 * time.Minute
	SyncDefaultTick    = 30 * time.Second
	SyncMaxAttempts    = 8
	WatchDebounce      = 300 * time.Millisecond
	DefaultHTTPTimeout = 60 * time.Second

	// Remote drivers
	RemotePostgres = "postgres"
	RemoteMySQL    = "mysql"

	// Local backends
	BackendSQLite = "sqlite"
	BackendJSON   = "json"

	// LLM providers
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultOpenAIModel   = "gpt-4o"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultTemperature   = 0.7

	DefaultListenAddr = "127.0.0.1:8080"
	MinAPIPasswordLen = 8
	DefaultUserID     = "local"
	DefaultFirstName  = "Developer"
)

const (
	// Partner alerts posted to the configured webhook
	WebhookSecretHeader = "X-Lifetrack-Secret"
	WebhookTimeout      = 5 * time.Second
)
