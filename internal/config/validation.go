// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidationError represents a detailed validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds validation results
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Validate checks the configuration for structural errors. It returns a
// single error summarizing every problem found.
func (c *Config) Validate() error {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]ValidationError, 0),
	}

	c.validateBasicFields(result)
	c.validateSources(result)
	c.validateRequest(result)
	c.validateOutput(result)

	if len(result.Errors) > 0 {
		return c.formatValidationError(result)
	}

	return nil
}

// validateBasicFields checks required top-level fields
func (c *Config) validateBasicFields(result *ValidationResult) {
	if c.Name == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "name",
			Message: "configuration name is required",
		})
	}

	if c.BaseURL == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "base_url",
			Message: "base URL is required",
		})
	} else if !isValidURL(c.BaseURL) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "base_url",
			Value:   c.BaseURL,
			Message: "base URL must be an absolute http(s) URL",
		})
	}

	if c.LogLevel != "" {
		switch strings.ToLower(c.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			result.Errors = append(result.Errors, ValidationError{
				Field:   "log_level",
				Value:   c.LogLevel,
				Message: "log level must be one of debug, info, warn, error",
			})
		}
	}
}

// validateSources checks the listing source tuples
func (c *Config) validateSources(result *ValidationResult) {
	if len(c.Sources) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "sources",
			Value:   "[]",
			Message: "at least one listing source must be configured",
		})
		return
	}

	for i, source := range c.Sources {
		prefix := fmt.Sprintf("sources[%d]", i)

		if source.URL == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + ".url",
				Message: "listing URL is required",
			})
		} else if !isValidURL(source.URL) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + ".url",
				Value:   source.URL,
				Message: "listing URL must be an absolute http(s) URL",
			})
		}

		if source.Category == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + ".category",
				Message: "category label is required",
			})
		}

		if source.Season == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   prefix + ".season",
				Message: "season label is required",
			})
		}
	}
}

// validateRequest checks HTTP client settings
func (c *Config) validateRequest(result *ValidationResult) {
	if c.Request.Timeout != "" {
		if d, err := time.ParseDuration(c.Request.Timeout); err != nil || d <= 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "request.timeout",
				Value:   c.Request.Timeout,
				Message: "timeout must be a positive duration",
			})
		}
	}

	if c.Request.RetryDelay != "" {
		if d, err := time.ParseDuration(c.Request.RetryDelay); err != nil || d <= 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "request.retry_delay",
				Value:   c.Request.RetryDelay,
				Message: "retry delay must be a positive duration",
			})
		}
	}

	if c.Request.RetryAttempts < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "request.retry_attempts",
			Value:   fmt.Sprintf("%d", c.Request.RetryAttempts),
			Message: "retry attempts cannot be negative",
		})
	}

	if c.Request.RateLimit < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "request.rate_limit",
			Value:   fmt.Sprintf("%v", c.Request.RateLimit),
			Message: "rate limit cannot be negative",
		})
	}

	if c.MaxConcurrentDetails < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_concurrent_details",
			Value:   fmt.Sprintf("%d", c.MaxConcurrentDetails),
			Message: "concurrency cap cannot be negative",
		})
	}
}

// validateOutput checks the snapshot file and publish targets
func (c *Config) validateOutput(result *ValidationResult) {
	if c.Output.File == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.file",
			Message: "snapshot file path is required",
		})
	}

	if c.Output.SQLite != nil && c.Output.SQLite.Path == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.sqlite.path",
			Message: "SQLite database path is required",
		})
	}

	if c.Output.PostgreSQL != nil && c.Output.PostgreSQL.DSN == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.postgresql.dsn",
			Message: "PostgreSQL DSN is required",
		})
	}

	if c.Output.MySQL != nil && c.Output.MySQL.DSN == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.mysql.dsn",
			Message: "MySQL DSN is required",
		})
	}

	if c.Output.MongoDB != nil {
		if c.Output.MongoDB.URI == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "output.mongodb.uri",
				Message: "MongoDB URI is required",
			})
		}
		if c.Output.MongoDB.Database == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "output.mongodb.database",
				Message: "MongoDB database name is required",
			})
		}
	}

	if c.Output.Excel != nil && c.Output.Excel.Path == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.excel.path",
			Message: "Excel export path is required",
		})
	}
}

// formatValidationError builds one error out of all collected problems
func (c *Config) formatValidationError(result *ValidationResult) error {
	messages := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
}

// isValidURL reports whether s parses as an absolute http(s) URL
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
