// Package config loads service settings from defaults, an optional config
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/coreybb/tasker/datastore"
)

const (
	defaultPort            = "8080"
	defaultDriver          = "mysql"
	defaultDatabaseURL     = "root:password@tcp(localhost:3306)/tasker?parseTime=true&loc=UTC&clientFoundRows=true"
	defaultRequestTimeout  = 60 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultPingTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute

	// ConfigFileEnv names an optional YAML/JSON/TOML file read before the environment.
	ConfigFileEnv = "TASKER_CONFIG"
)

type Config struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	BcryptCost      int
	Database        DatabaseConfig
	Log             LogConfig
}

type DatabaseConfig struct {
	Dialect         datastore.Dialect
	URL             string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// Pool returns the pool settings for datastore.Open.
func (d DatabaseConfig) Pool() datastore.PoolConfig {
	return datastore.PoolConfig{
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		PingTimeout:     d.PingTimeout,
	}
}

type LogConfig struct {
	Level  string
	Format string
}

// env binds each key to the variable that overrides it.
var env = map[string]string{
	"port":                 "PORT",
	"request_timeout":      "REQUEST_TIMEOUT",
	"shutdown_timeout":     "SHUTDOWN_TIMEOUT",
	"bcrypt_cost":          "BCRYPT_COST",
	"db.driver":            "DB_DRIVER",
	"db.connection_string": "DB_CONNECTION_STRING",
	"db.auto_migrate":      "AUTO_MIGRATE",
	"db.max_open_conns":    "DB_MAX_OPEN_CONNS",
	"db.max_idle_conns":    "DB_MAX_IDLE_CONNS",
	"db.conn_max_lifetime": "DB_CONN_MAX_LIFETIME",
	"db.ping_timeout":      "DB_PING_TIMEOUT",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

// Load reads configuration. path overrides TASKER_CONFIG; both may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("db.driver", defaultDriver)
	v.SetDefault("db.auto_migrate", false)
	v.SetDefault("db.max_open_conns", defaultMaxOpenConns)
	v.SetDefault("db.max_idle_conns", defaultMaxIdleConns)
	v.SetDefault("db.conn_max_lifetime", defaultConnMaxLifetime)
	v.SetDefault("db.ping_timeout", defaultPingTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}
	if err := v.BindEnv("config_file", ConfigFileEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", ConfigFileEnv, err)
	}

	if path == "" {
		path = v.GetString("config_file")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	dialect, ok := datastore.ParseDialect(v.GetString("db.driver"))
	if !ok {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want mysql, postgres or sqlite3)", v.GetString("db.driver"))
	}

	dbURL := v.GetString("db.connection_string")
	if dbURL == "" {
		if dialect != datastore.DialectMySQL {
			return nil, errors.New("DB_CONNECTION_STRING is required for driver " + string(dialect))
		}
		dbURL = defaultDatabaseURL
		slog.Warn("DB_CONNECTION_STRING not set, using default local connection string.")
	}

	cfg := &Config{
		Port:            strings.TrimPrefix(v.GetString("port"), ":"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		BcryptCost:      v.GetInt("bcrypt_cost"),
		Database: DatabaseConfig{
			Dialect:         dialect,
			URL:             dbURL,
			AutoMigrate:     v.GetBool("db.auto_migrate"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			PingTimeout:     v.GetDuration("db.ping_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
