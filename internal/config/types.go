// internal/config/types.go

// Package config provides configuration types and loading for
// StageScrapexter. A configuration names the listing sources to aggregate,
// the HTTP request behavior, the concurrency cap for detail fetches, and
// where the resulting snapshot goes.
package config

import (
	"time"
)

// Config is the root configuration for an aggregation run.
type Config struct {
	// Name identifies this configuration
	Name string `yaml:"name" json:"name"`

	// Version of the configuration format
	Version string `yaml:"version" json:"version"`

	// Description provides human-readable information about this config
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// BaseURL is the site root used to resolve relative hrefs
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Sources lists the listing pages to aggregate, in order. Order is
	// significant: the first source an id appears in wins its scalar fields.
	Sources []SourceConfig `yaml:"sources" json:"sources"`

	// Request configures HTTP behavior for all fetches
	Request RequestConfig `yaml:"request" json:"request"`

	// MaxConcurrentDetails caps simultaneous detail-page fetches
	MaxConcurrentDetails int `yaml:"max_concurrent_details" json:"max_concurrent_details"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	// Output configures the snapshot file and optional publish targets
	Output OutputConfig `yaml:"output" json:"output"`

	// Server configures the serve subcommand
	Server ServerConfig `yaml:"server,omitempty" json:"server,omitempty"`
}

// SourceConfig is one listing page plus the classification tags every
// production found on it accumulates.
type SourceConfig struct {
	// URL of the listing page
	URL string `yaml:"url" json:"url"`

	// Category label, e.g. "Abendtheater" or "KJT"
	Category string `yaml:"category" json:"category"`

	// Season label, e.g. "2025/2026"
	Season string `yaml:"season" json:"season"`

	// Youth marks productions from this source as featured for young
	// audiences
	Youth bool `yaml:"youth,omitempty" json:"youth,omitempty"`
}

// RequestConfig defines HTTP client behavior.
type RequestConfig struct {
	// Timeout for a single request, e.g. "30s"
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// RetryAttempts on retryable failures
	RetryAttempts int `yaml:"retry_attempts,omitempty" json:"retry_attempts,omitempty"`

	// RetryDelay is the base backoff delay, e.g. "1s"
	RetryDelay string `yaml:"retry_delay,omitempty" json:"retry_delay,omitempty"`

	// RateLimit in requests per second across all fetches
	RateLimit float64 `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`

	// RateBurst allowance for the limiter
	RateBurst int `yaml:"rate_burst,omitempty" json:"rate_burst,omitempty"`

	// UserAgents to rotate through; defaults applied when empty
	UserAgents []string `yaml:"user_agents,omitempty" json:"user_agents,omitempty"`

	// Headers sent with every request
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// ParsedTimeout returns the request timeout as a duration.
func (r RequestConfig) ParsedTimeout() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// ParsedRetryDelay returns the base retry delay as a duration.
func (r RequestConfig) ParsedRetryDelay() time.Duration {
	d, err := time.ParseDuration(r.RetryDelay)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// OutputConfig defines where the snapshot is written. File is always
// written; the publish targets are optional and additive.
type OutputConfig struct {
	// File is the snapshot JSON path
	File string `yaml:"file" json:"file"`

	// SQLite archive target
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty" json:"sqlite,omitempty"`

	// PostgreSQL publish target
	PostgreSQL *DatabaseConfig `yaml:"postgresql,omitempty" json:"postgresql,omitempty"`

	// MySQL publish target
	MySQL *DatabaseConfig `yaml:"mysql,omitempty" json:"mysql,omitempty"`

	// MongoDB publish target
	MongoDB *MongoConfig `yaml:"mongodb,omitempty" json:"mongodb,omitempty"`

	// Excel export path
	Excel *ExcelConfig `yaml:"excel,omitempty" json:"excel,omitempty"`
}

// SQLiteConfig configures the local snapshot archive.
type SQLiteConfig struct {
	Path  string `yaml:"path" json:"path"`
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
}

// DatabaseConfig configures a SQL publish target (PostgreSQL or MySQL).
type DatabaseConfig struct {
	DSN   string `yaml:"dsn" json:"dsn"`
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
}

// MongoConfig configures the MongoDB publish target.
type MongoConfig struct {
	URI        string `yaml:"uri" json:"uri"`
	Database   string `yaml:"database" json:"database"`
	Collection string `yaml:"collection,omitempty" json:"collection,omitempty"`
}

// ExcelConfig configures the spreadsheet export.
type ExcelConfig struct {
	Path string `yaml:"path" json:"path"`
}

// ServerConfig configures the snapshot/metrics HTTP server.
type ServerConfig struct {
	// ListenAddress, e.g. ":8089"
	ListenAddress string `yaml:"listen_address,omitempty" json:"listen_address,omitempty"`

	// SnapshotFile served by the API; defaults to Output.File
	SnapshotFile string `yaml:"snapshot_file,omitempty" json:"snapshot_file,omitempty"`
}
