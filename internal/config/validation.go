package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if !IsKnownModel(c.Model) {
		errs = append(errs, fmt.Sprintf("model %q is not in the catalog", c.Model))
	}

	// Agent validation
	if c.Agent.MaxRetries < 0 {
		errs = append(errs, "agent.max_retries must be >= 0")
	}
	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}

	// Provider validation
	if c.Provider.MaxHistory < 1 {
		errs = append(errs, "provider.max_history must be >= 1")
	}
	if c.Provider.MaxToolResultLength < 1 {
		errs = append(errs, "provider.max_tool_result_length must be >= 1")
	}
	if c.Provider.MaxTokens < 1 {
		errs = append(errs, "provider.max_tokens must be >= 1")
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}
	if c.Provider.RequestTimeout < 1 {
		errs = append(errs, "provider.request_timeout must be >= 1")
	}

	// Tools validation
	if c.Tools.CommandTimeout < 1 {
		errs = append(errs, "tools.command_timeout must be >= 1")
	}
	if c.Tools.PrivilegedTimeout < 1 {
		errs = append(errs, "tools.privileged_timeout must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.SearchTimeout < 1 {
		errs = append(errs, "tools.search_timeout must be >= 1")
	}
	if c.Tools.FindMaxDepth < 1 {
		errs = append(errs, "tools.find_max_depth must be >= 1")
	}
	if c.Tools.DefaultFindLimit < 1 {
		errs = append(errs, "tools.default_find_limit must be >= 1")
	}
	if c.Tools.MaxReadFileSize < 1 {
		errs = append(errs, "tools.max_read_file_size must be >= 1")
	}
	if c.Tools.DefaultReadLines < 1 {
		errs = append(errs, "tools.default_read_lines must be >= 1")
	}
	if c.Tools.DefaultProcessLimit < 1 {
		errs = append(errs, "tools.default_process_limit must be >= 1")
	}

	// Logging validation
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, "logging.level: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

// ParseLogLevel converts a case-insensitive level name to an slog.Level.
// The empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
}
