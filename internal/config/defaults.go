package config

// Config holds all server configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile,
// then by command-line flags and MCP_GIT_* environment variables.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	// Repository is the allowed repository root. Empty means unrestricted.
	Repository string `json:"repository"`

	Git   GitConfig   `json:"git"`
	Tools ToolsConfig `json:"tools"`
	Log   LogConfig   `json:"log"`
}

type GitConfig struct {
	Binary string   `json:"binary"` // Default: "git"
	Env    []string `json:"env"`    // Extra KEY=VALUE pairs passed to every git invocation
}

type ToolsConfig struct {
	// Diff
	DefaultContextLines int `json:"default_context_lines"` // Default: 3
	MaxContextLines     int `json:"max_context_lines"`     // Default: 10000

	// Log
	DefaultLogCount int `json:"default_log_count"` // Default: 10
	MaxLogCount     int `json:"max_log_count"`     // Default: 10000

	// Command Execution
	MaxCommandOutputSize int64 `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
}

type LogConfig struct {
	Level      string `json:"level"`        // Default: "info"
	File       string `json:"file"`         // Empty logs to stderr
	MaxSizeMB  int    `json:"max_size_mb"`  // Default: 20
	MaxBackups int    `json:"max_backups"`  // Default: 3
	MaxAgeDays int    `json:"max_age_days"` // Default: 14
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary: "git",
		},
		Tools: ToolsConfig{
			DefaultContextLines:  3,
			MaxContextLines:      10000,
			DefaultLogCount:      10,
			MaxLogCount:          10000,
			MaxCommandOutputSize: 10 * 1024 * 1024,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}
