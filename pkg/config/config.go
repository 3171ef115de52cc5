package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Cart         CartConfig
	Storefront   StorefrontConfig
	HTTP         HTTPConfig
}

// Load reads the API configuration, including a resolvable database DSN.
func Load() (*Config, error) {
	cfg, err := process()
	if err != nil {
		return nil, err
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStorefront reads the configuration for the storefront session, which
// never opens the API database.
func LoadStorefront() (*Config, error) {
	return process()
}

func process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TEETRIBE_APP_ENV" required:"true"`
	Port         string `envconfig:"TEETRIBE_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"TEETRIBE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"TEETRIBE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"TEETRIBE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TEETRIBE_SERVICE_KIND" default:"api"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	DSN    string `envconfig:"TEETRIBE_DB_DSN"`
	Driver string `envconfig:"TEETRIBE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TEETRIBE_DB_HOST"`
	LegacyPort     int    `envconfig:"TEETRIBE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TEETRIBE_DB_USER"`
	LegacyPassword string `envconfig:"TEETRIBE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TEETRIBE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TEETRIBE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TEETRIBE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TEETRIBE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TEETRIBE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TEETRIBE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"TEETRIBE_REDIS_URL"`
	Address      string        `envconfig:"TEETRIBE_REDIS_ADDR"`
	Password     string        `envconfig:"TEETRIBE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEETRIBE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEETRIBE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEETRIBE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEETRIBE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEETRIBE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEETRIBE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TEETRIBE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TEETRIBE_AUTO_MIGRATE" default:"false"`
}

// CartConfig covers both sides of cart synchronization: the storefront
// session (remote base URL, user id, local store) and the API (TTL).
type CartConfig struct {
	RemoteBaseURL string        `envconfig:"TEETRIBE_CART_REMOTE_BASE_URL" default:"http://localhost:8000"`
	UserID        string        `envconfig:"TEETRIBE_CART_USER_ID" default:"guest_user"`
	RemoteTimeout time.Duration `envconfig:"TEETRIBE_CART_REMOTE_TIMEOUT" default:"5s"`
	LocalPath     string        `envconfig:"TEETRIBE_CART_LOCAL_PATH" default:"tee-tribe-cart.db"`
	LocalKey      string        `envconfig:"TEETRIBE_CART_LOCAL_KEY" default:"tee-tribe-cart"`
	TTL           time.Duration `envconfig:"TEETRIBE_CART_TTL" default:"720h"`
}

// HTTPConfig holds the edge policies applied by the API router.
type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"TEETRIBE_CORS_ORIGINS"`
	RateLimitWindow time.Duration `envconfig:"TEETRIBE_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitWrites int           `envconfig:"TEETRIBE_RATE_LIMIT_WRITES" default:"120"`
}

type StorefrontConfig struct {
	Port string `envconfig:"TEETRIBE_STOREFRONT_PORT" default:"5173"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:teetribe.db?cache=shared"
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
