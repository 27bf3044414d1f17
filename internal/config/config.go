// Package config provides configuration management for the boatrace predictor.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Scraper  ScraperConfig  `mapstructure:"scraper" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	Version     string `mapstructure:"version"`
}

// ServerConfig represents the inbound HTTP API configuration
type ServerConfig struct {
	Host                string   `mapstructure:"host"`
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
}

// ScraperConfig represents the race page fetcher configuration
type ScraperConfig struct {
	BaseURL         string  `mapstructure:"base_url" validate:"required,url"`
	UserAgent       string  `mapstructure:"user_agent" validate:"required"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,min=10,max=30"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// ScoringConfig selects the scoring policy
type ScoringConfig struct {
	Policy string `mapstructure:"policy" validate:"required,scoringpolicy"`
}

// DatabaseConfig represents the venue store configuration
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver" validate:"required,dbdriver"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Database drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN returns the PostgreSQL connection URL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

// ListenAddress returns host:port for the API server
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// FetchTimeout returns the outbound page fetch timeout
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

// CacheTTL returns the page cache lifetime; zero disables the cache
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Scraper.CacheTTLSeconds) * time.Second
}
