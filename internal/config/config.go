// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	// Substitute environment variables
	expandedData := expandEnvironmentVariables(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %v", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return &config, nil
}

// LoadFromReader loads configuration from an io.Reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %v", err)
	}

	return LoadFromBytes(data)
}

// SaveToFile saves configuration to a YAML file
func SaveToFile(config *Config, filename string) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %v", err)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %v", err)
	}

	return nil
}

// GenerateTemplate generates a starter configuration, ready for the four
// season listings the aggregator follows.
func GenerateTemplate() Config {
	return Config{
		Name:    "spielplan",
		Version: "1.0",
		BaseURL: "https://westfaelisches-landestheater.de",
		Sources: []SourceConfig{
			{
				URL:      "https://westfaelisches-landestheater.de/abendtheater/spielzeit-2025-2026/",
				Category: "Abendtheater",
				Season:   "2025/2026",
			},
			{
				URL:      "https://westfaelisches-landestheater.de/abendtheater/spielzeit-2026-2027/",
				Category: "Abendtheater",
				Season:   "2026/2027",
			},
			{
				URL:      "https://westfaelisches-landestheater.de/kinder-jugendtheater/spielzeit-2025-2026/",
				Category: "KJT",
				Season:   "2025/2026",
				Youth:    true,
			},
			{
				URL:      "https://westfaelisches-landestheater.de/kinder-jugendtheater/spielzeit-2026-2027/",
				Category: "KJT",
				Season:   "2026/2027",
				Youth:    true,
			},
		},
		Request: RequestConfig{
			Timeout:       "30s",
			RetryAttempts: 3,
			RetryDelay:    "1s",
			RateLimit:     4.0,
			RateBurst:     8,
		},
		MaxConcurrentDetails: 10,
		LogLevel:             "info",
		Output: OutputConfig{
			File: "spielplan.json",
		},
		Server: ServerConfig{
			ListenAddress: ":8089",
		},
	}
}

// expandEnvironmentVariables substitutes environment variables in the configuration
func expandEnvironmentVariables(content string) string {
	return os.ExpandEnv(content)
}

// applyDefaults applies default values to the configuration
func applyDefaults(config *Config) {
	if config.Request.Timeout == "" {
		config.Request.Timeout = "30s"
	}

	if config.Request.RetryAttempts == 0 {
		config.Request.RetryAttempts = 3
	}

	if config.Request.RetryDelay == "" {
		config.Request.RetryDelay = "1s"
	}

	if config.Request.RateLimit == 0 {
		config.Request.RateLimit = 4.0
	}

	if config.Request.RateBurst == 0 {
		config.Request.RateBurst = 8
	}

	if config.MaxConcurrentDetails == 0 {
		config.MaxConcurrentDetails = 10
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Output.File == "" {
		config.Output.File = "spielplan.json"
	}

	if config.Output.SQLite != nil && config.Output.SQLite.Table == "" {
		config.Output.SQLite.Table = "productions"
	}

	if config.Output.PostgreSQL != nil && config.Output.PostgreSQL.Table == "" {
		config.Output.PostgreSQL.Table = "productions"
	}

	if config.Output.MySQL != nil && config.Output.MySQL.Table == "" {
		config.Output.MySQL.Table = "productions"
	}

	if config.Output.MongoDB != nil && config.Output.MongoDB.Collection == "" {
		config.Output.MongoDB.Collection = "productions"
	}

	if config.Server.ListenAddress == "" {
		config.Server.ListenAddress = ":8089"
	}

	if config.Server.SnapshotFile == "" {
		config.Server.SnapshotFile = config.Output.File
	}
}
