package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StateBackendDB    = "db"
	StateBackendRedis = "redis"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	State StateConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.State.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// DSN is a sqlite file path for the sqlite driver and a postgres URL
	// for the postgres driver.
	DSN    string `envconfig:"STOREFRONT_DB_DSN" default:"storefront.db"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a redis connection target is present.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type StateConfig struct {
	// Backend selects where collection documents live: "db" or "redis".
	Backend string `envconfig:"STOREFRONT_STATE_BACKEND" default:"db"`
}

// UsesRedis reports whether collections are stored in redis.
func (s StateConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(s.Backend), StateBackendRedis)
}

func (s StateConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	switch backend {
	case StateBackendDB, StateBackendRedis:
		return nil
	}
	return fmt.Errorf("unsupported state backend %q", s.Backend)
}
