package config

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "TEETRIBE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv      = "TEETRIBE_APP_ENV"
	EnvPort        = "TEETRIBE_APP_PORT"
	EnvLogLevel    = "TEETRIBE_LOG_LEVEL"
	EnvLogFormat   = "TEETRIBE_LOG_FORMAT"
	EnvServiceKind = "TEETRIBE_SERVICE_KIND"

	EnvDBDSN      = "TEETRIBE_DB_DSN"
	EnvDBDriver   = "TEETRIBE_DB_DRIVER"
	EnvDBHost     = "TEETRIBE_DB_HOST"
	EnvDBPort     = "TEETRIBE_DB_PORT"
	EnvDBUser     = "TEETRIBE_DB_USER"
	EnvDBPassword = "TEETRIBE_DB_PASSWORD"
	EnvDBName     = "TEETRIBE_DB_NAME"

	EnvRedisURL  = "TEETRIBE_REDIS_URL"
	EnvRedisAddr = "TEETRIBE_REDIS_ADDR"

	EnvUseSQLite   = "TEETRIBE_USE_SQLITE"
	EnvAutoMigrate = "TEETRIBE_AUTO_MIGRATE"

	EnvCartRemoteBaseURL = "TEETRIBE_CART_REMOTE_BASE_URL"
	EnvCartUserID        = "TEETRIBE_CART_USER_ID"
	EnvCartRemoteTimeout = "TEETRIBE_CART_REMOTE_TIMEOUT"
	EnvCartLocalPath     = "TEETRIBE_CART_LOCAL_PATH"
	EnvCartLocalKey      = "TEETRIBE_CART_LOCAL_KEY"
	EnvCartTTL           = "TEETRIBE_CART_TTL"

	EnvStorefrontPort = "TEETRIBE_STOREFRONT_PORT"

	EnvCORSOrigins     = "TEETRIBE_CORS_ORIGINS"
	EnvRateLimitWindow = "TEETRIBE_RATE_LIMIT_WINDOW"
	EnvRateLimitWrites = "TEETRIBE_RATE_LIMIT_WRITES"
)

var legacyDBEnvVars = []string{
	EnvDBHost,
	EnvDBUser,
	EnvDBName,
}
