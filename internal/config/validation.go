package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Database.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "database.host",
			Message: "host is required",
		})
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "database.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Database.Port),
		})
	}
	if c.Database.User == "" {
		errors = append(errors, ValidationError{
			Field:   "database.user",
			Message: "user is required",
		})
	}
	if c.Database.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "database.database",
			Message: "database name is required",
		})
	}
	switch c.Database.TLS {
	case "", "disable", "preferred", "required":
	default:
		errors = append(errors, ValidationError{
			Field:   "database.tls",
			Message: fmt.Sprintf("tls must be one of disable, preferred, required, got %q", c.Database.TLS),
		})
	}

	if c.Source.XMLDir == "" {
		errors = append(errors, ValidationError{
			Field:   "source.xml_dir",
			Message: "xml_dir is required",
		})
	}

	if c.Import.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "import.batch_size",
			Message: fmt.Sprintf("batch_size must be positive, got %d", c.Import.BatchSize),
		})
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("level must be one of debug, info, warn, error, got %q", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("format must be json or text, got %q", c.Logging.Format),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
