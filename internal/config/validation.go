package config

import (
	"fmt"
	"slices"
	"strings"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Git.Binary) == "" {
		errs = append(errs, "git.binary must not be empty")
	}
	for _, kv := range c.Git.Env {
		if !strings.Contains(kv, "=") {
			errs = append(errs, fmt.Sprintf("git.env entry %q must be KEY=VALUE", kv))
		}
	}

	if c.Tools.DefaultContextLines < 0 {
		errs = append(errs, "tools.default_context_lines must be >= 0")
	}
	if c.Tools.MaxContextLines < 0 {
		errs = append(errs, "tools.max_context_lines must be >= 0")
	}
	if c.Tools.DefaultLogCount < 1 {
		errs = append(errs, "tools.default_log_count must be >= 1")
	}
	if c.Tools.MaxLogCount < 1 {
		errs = append(errs, "tools.max_log_count must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}

	// Semantic validation: Default <= Max constraints
	if c.Tools.DefaultContextLines > c.Tools.MaxContextLines {
		errs = append(errs, "tools.default_context_lines must be <= tools.max_context_lines")
	}
	if c.Tools.DefaultLogCount > c.Tools.MaxLogCount {
		errs = append(errs, "tools.default_log_count must be <= tools.max_log_count")
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Sprintf("log.level must be one of %s", strings.Join(logLevels, ", ")))
	}
	if c.Log.MaxSizeMB < 1 {
		errs = append(errs, "log.max_size_mb must be >= 1")
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, "log.max_backups must be >= 0")
	}
	if c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log.max_age_days must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

