package config

// EnvPrefix is empty because every field carries its fully-qualified
// variable name in the envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv             = "MARCHEPLUS_APP_ENV"
	EnvPort               = "MARCHEPLUS_APP_PORT"
	EnvDBDSN              = "MARCHEPLUS_DB_DSN"
	EnvDBHost             = "MARCHEPLUS_DB_HOST"
	EnvDBUser             = "MARCHEPLUS_DB_USER"
	EnvDBName             = "MARCHEPLUS_DB_NAME"
	EnvDBPassword         = "MARCHEPLUS_DB_PASSWORD"
	EnvRedisURL           = "MARCHEPLUS_REDIS_URL"
	EnvJWTSecret          = "MARCHEPLUS_JWT_SECRET"
	EnvJWTExpMins         = "MARCHEPLUS_JWT_EXPIRATION_MINUTES"
	EnvNotifyOnTransition = "MARCHEPLUS_NOTIFY_ON_TRANSITION"
	EnvCORSOrigins        = "MARCHEPLUS_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
