package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "retry.initial_delay"
	Message string // e.g., "must be positive"
	Hint    string // e.g., "use a duration like 500ms"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateRetry()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error
	sc := c.Storage

	if sc.DataDir == "" {
		errs = append(errs, ValidationError{
			Path:    "storage.data_dir",
			Message: "must not be empty",
		})
	}

	if sc.DBName == "" {
		errs = append(errs, ValidationError{
			Path:    "storage.db_name",
			Message: "must not be empty",
		})
	} else if strings.ContainsAny(sc.DBName, "/\\") {
		errs = append(errs, ValidationError{
			Path:    "storage.db_name",
			Message: "must be a file name, not a path",
			Hint:    "put the directory in storage.data_dir",
		})
	}

	if sc.StoreName == "" {
		errs = append(errs, ValidationError{
			Path:    "storage.store_name",
			Message: "must not be empty",
		})
	} else if !isIdentifier(sc.StoreName) {
		errs = append(errs, ValidationError{
			Path:    "storage.store_name",
			Message: fmt.Sprintf("invalid store name %q", sc.StoreName),
			Hint:    "use letters, digits and underscores, starting with a letter or underscore",
		})
	}

	return errs
}

func (c *Config) validateRetry() []error {
	var errs []error
	rc := c.Retry

	if rc.MaxRetries < 0 {
		errs = append(errs, ValidationError{
			Path:    "retry.max_retries",
			Message: "must not be negative",
			Hint:    "0 means a single attempt with no retries",
		})
	}

	if rc.InitialDelay <= 0 {
		errs = append(errs, ValidationError{
			Path:    "retry.initial_delay",
			Message: "must be positive",
			Hint:    "use a duration like 500ms",
		})
	}

	if rc.BackoffMultiplier < 1 {
		errs = append(errs, ValidationError{
			Path:    "retry.backoff_multiplier",
			Message: fmt.Sprintf("must be at least 1, got %v", rc.BackoffMultiplier),
		})
	}

	if rc.MaxDelay < 0 {
		errs = append(errs, ValidationError{
			Path:    "retry.max_delay",
			Message: "must not be negative",
			Hint:    "0 disables the cap",
		})
	} else if rc.MaxDelay > 0 && rc.MaxDelay < rc.InitialDelay {
		errs = append(errs, ValidationError{
			Path:    "retry.max_delay",
			Message: "must not be smaller than retry.initial_delay",
		})
	}

	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error
	lc := c.Logging

	switch lc.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid level %q", lc.Level),
			Hint:    "expected one of: debug, info, warn, error",
		})
	}

	switch lc.Format {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid format %q", lc.Format),
			Hint:    "expected one of: json, console",
		})
	}

	return errs
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}
