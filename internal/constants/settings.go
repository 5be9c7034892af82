package constants

const (
	// Config keys, as they appear in config.yaml
	SettingDatabase     = "database"
	SettingBackend      = "backend"
	SettingTimezone     = "timezone"
	SettingUserID       = "user_id"
	SettingRemoteDriver = "remote_driver"
	SettingRemoteDSN    = "remote_dsn"
	SettingLLMProvider  = "llm_provider"
	SettingLLMModel     = "llm_model"
	SettingListen       = "listen"
	SettingSyncInterval = "sync_interval"
	SettingSyncAttempts = "sync_max_attempts"
	SettingPartnerHook  = "partner_webhook"

	// Environment overrides
	EnvDatabase     = "LIFETRACK_DB"
	EnvRemoteDSN    = "LIFETRACK_REMOTE_DSN"
	EnvRemoteDriver = "LIFETRACK_REMOTE_DRIVER"
	EnvUserID       = "LIFETRACK_USER_ID"
	EnvTimezone     = "LIFETRACK_TIMEZONE"
	EnvListen       = "LIFETRACK_LISTEN"
	EnvJWTSecret    = "LIFETRACK_JWT_SECRET"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvPartnerHook  = "LIFETRACK_PARTNER_WEBHOOK"
	EnvHookSecret   = "LIFETRACK_WEBHOOK_SECRET"

	DefaultTimezone = "Local" // Use system local timezone by default
)
