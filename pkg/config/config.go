package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	CORS          CORSConfig
	Market        MarketConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env           string `envconfig:"MARCHEPLUS_APP_ENV" required:"true"`
	Port          string `envconfig:"MARCHEPLUS_APP_PORT" required:"true"`
	LogLevel      string `envconfig:"MARCHEPLUS_LOG_LEVEL" default:"info"`
	LogWarnStack  bool   `envconfig:"MARCHEPLUS_LOG_WARN_STACK" default:"false"`
	LogFormat     string `envconfig:"MARCHEPLUS_LOG_FORMAT" default:"json"`
	DefaultLocale string `envconfig:"MARCHEPLUS_DEFAULT_LOCALE" default:"fr"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN                string        `envconfig:"MARCHEPLUS_DB_DSN"`
	SlowQueryThreshold time.Duration `envconfig:"MARCHEPLUS_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`

	LegacyHost     string `envconfig:"MARCHEPLUS_DB_HOST"`
	LegacyPort     int    `envconfig:"MARCHEPLUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MARCHEPLUS_DB_USER"`
	LegacyPassword string `envconfig:"MARCHEPLUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"MARCHEPLUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"MARCHEPLUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARCHEPLUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARCHEPLUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARCHEPLUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARCHEPLUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MARCHEPLUS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MARCHEPLUS_REDIS_ADDR"`
	Password     string        `envconfig:"MARCHEPLUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARCHEPLUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARCHEPLUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARCHEPLUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARCHEPLUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARCHEPLUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARCHEPLUS_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"MARCHEPLUS_REDIS_KEY_PREFIX" default:"mp"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MARCHEPLUS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MARCHEPLUS_JWT_ISSUER" default:"marcheplus"`
	ExpirationMinutes int    `envconfig:"MARCHEPLUS_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MARCHEPLUS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MARCHEPLUS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MARCHEPLUS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MARCHEPLUS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MARCHEPLUS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginPhoneLimit    int           `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_LOGIN_PHONE_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterPhoneLimit int           `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_REGISTER_PHONE_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MARCHEPLUS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"MARCHEPLUS_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MARCHEPLUS_CORS_ALLOWED_ORIGINS" default:"*"`
}

// MarketConfig tunes the market statistics read path. Caching is opt-in: the
// default zero TTL keeps every stats read live.
type MarketConfig struct {
	StatsCacheTTL time.Duration `envconfig:"MARCHEPLUS_MARKET_STATS_CACHE_TTL" default:"0s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate        bool `envconfig:"MARCHEPLUS_AUTO_MIGRATE" default:"false"`
	NotifyOnTransition bool `envconfig:"MARCHEPLUS_NOTIFY_ON_TRANSITION" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
