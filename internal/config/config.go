// Package config loads the server configuration from YAML and the environment.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/united-manufacturing-hub/umh-utils/env"
	"gopkg.in/yaml.v3"
)

// ErrConfigurationMissing indicates the database connection string is not configured.
var ErrConfigurationMissing = errors.New("database connection string is not configured")

// EnvProduction is the deployment mode that enables TLS on the database connection.
const EnvProduction = "production"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Environment     string `yaml:"environment"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	IdleTimeout     string `yaml:"idle_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DatabaseConfig describes the Postgres connection pool.
// Strict makes store failures fatal instead of switching to the built-in sample data.
type DatabaseConfig struct {
	URL             string `yaml:"url"`
	Strict          bool   `yaml:"strict"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxIdleTime string `yaml:"conn_max_idle_time"`
	ConnectTimeout  string `yaml:"connect_timeout"`
	QueryTimeout    string `yaml:"query_timeout"`
}

type APIConfig struct {
	StatsCacheTTL  string  `yaml:"stats_cache_ttl"`
	RateLimit      float64 `yaml:"rate_limit"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// WebConfig points at an on-disk SPA build. Empty means the embedded build is served.
type WebConfig struct {
	StaticDir string `yaml:"static_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// IsProduction reports whether the server runs in production deployment mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *ServerConfig) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, 15*time.Second)
}

func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return parseDuration(c.WriteTimeout, 30*time.Second)
}

func (c *ServerConfig) GetIdleTimeout() time.Duration {
	return parseDuration(c.IdleTimeout, 120*time.Second)
}

func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

func (c *DatabaseConfig) GetConnMaxIdleTime() time.Duration {
	return parseDuration(c.ConnMaxIdleTime, 30*time.Second)
}

func (c *DatabaseConfig) GetConnectTimeout() time.Duration {
	return parseDuration(c.ConnectTimeout, 2*time.Second)
}

func (c *DatabaseConfig) GetQueryTimeout() time.Duration {
	return parseDuration(c.QueryTimeout, 5*time.Second)
}

func (c *APIConfig) GetStatsCacheTTL() time.Duration {
	return parseDuration(c.StatsCacheTTL, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Load reads the YAML file at path, applies environment overrides and defaults.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	return &cfg, nil
}

// Validate checks the settings required before the server may start.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrConfigurationMissing
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error

	if cfg.Database.URL, err = env.GetAsString("DATABASE_URL", false, cfg.Database.URL); err != nil {
		return err
	}
	if cfg.Database.Strict, err = env.GetAsBool("DATABASE_STRICT", false, cfg.Database.Strict); err != nil {
		return err
	}
	if cfg.Server.Environment, err = env.GetAsString("APP_ENV", false, cfg.Server.Environment); err != nil {
		return err
	}
	if cfg.Server.Host, err = env.GetAsString("HOST", false, cfg.Server.Host); err != nil {
		return err
	}
	if cfg.Server.Port, err = env.GetAsInt("PORT", false, cfg.Server.Port); err != nil {
		return err
	}
	if cfg.Logging.Level, err = env.GetAsString("LOGGING_LEVEL", false, cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.Web.StaticDir, err = env.GetAsString("STATIC_DIR", false, cfg.Web.StaticDir); err != nil {
		return err
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.API.RateLimitBurst == 0 {
		cfg.API.RateLimitBurst = 20
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
