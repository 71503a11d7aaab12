// Package config loads service settings from .env, config.toml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings. URL, when set, wins
// over the individual fields.
type DatabaseConfig struct {
	URL      string
	Server   string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// RedisConfig holds session store settings. When disabled sessions stay in
// process memory.
type RedisConfig struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	CORSOrigin      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SeedPending     bool
}

// env names the variables read for each key, first match wins.
var env = map[string][]string{
	"app.env":               {"APP_ENV"},
	"app.port":              {"PORT"},
	"database.url":          {"DATABASE_URL"},
	"database.server":       {"DB_SERVER"},
	"database.port":         {"DB_PORT"},
	"database.user":         {"DB_USER"},
	"database.password":     {"DB_PASSWORD"},
	"database.name":         {"DB_DATABASE"},
	"database.sslmode":      {"DB_SSLMODE"},
	"database.max_conns":    {"DB_MAX_CONNS"},
	"redis.enabled":         {"REDIS_ENABLED"},
	"redis.addr":            {"REDIS_ADDR", "REDIS_URI"},
	"redis.password":        {"REDIS_PASSWORD"},
	"redis.db":              {"REDIS_DB"},
	"redis.session_ttl":     {"REDIS_SESSION_TTL"},
	"log.level":             {"LOG_LEVEL"},
	"log.format":            {"LOG_FORMAT"},
	"log.output":            {"LOG_OUTPUT"},
	"http.cors_origin":      {"CORS_ORIGIN"},
	"http.read_timeout":     {"HTTP_READ_TIMEOUT"},
	"http.write_timeout":    {"HTTP_WRITE_TIMEOUT"},
	"http.shutdown_timeout": {"HTTP_SHUTDOWN_TIMEOUT"},
	"http.seed_pending":     {"SEED_PENDING"},
}

// Load reads configuration. Priority, highest first:
// 1. environment variables (a .env file in the working directory is loaded first)
// 2. config.toml
// 3. built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetDefault("redis.enabled", false)
	v.SetDefault("http.seed_pending", true)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			Server:   v.GetString("database.server"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
			MaxConns: v.GetInt32("database.max_conns"),
		},
		Redis: RedisConfig{
			Enabled:    v.GetBool("redis.enabled"),
			Addr:       v.GetString("redis.addr"),
			Password:   v.GetString("redis.password"),
			DB:         v.GetInt("redis.db"),
			SessionTTL: v.GetDuration("redis.session_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			CORSOrigin:      v.GetString("http.cors_origin"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			SeedPending:     v.GetBool("http.seed_pending"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.Database.Server == "" {
		cfg.Database.Server = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.SessionTTL == 0 {
		cfg.Redis.SessionTTL = 24 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.CORSOrigin == "" {
		cfg.HTTP.CORSOrigin = "http://localhost:5173"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.App.Port)
	}
	if c.Database.URL == "" && c.Database.Name == "" {
		return fmt.Errorf("DB_DATABASE or DATABASE_URL is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database max conns must be positive")
	}
	if c.HTTP.CORSOrigin == "*" {
		return fmt.Errorf("cors origin cannot be '*' when credentials are allowed")
	}
	if c.App.Env == "production" && c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	return nil
}

// ConnString returns the postgres connection string with escaped credentials
func (d *DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Server, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the listen address of the HTTP server
func (a *AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(a.Port, ":")
}
