package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Model    string         `json:"model" yaml:"model"`
	Agent    AgentConfig    `json:"agent" yaml:"agent"`
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Tools    ToolsConfig    `json:"tools" yaml:"tools"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

type AgentConfig struct {
	MaxRetries    int `json:"max_retries" yaml:"max_retries"`       // Default: 2
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"` // Default: 10

	// Clear the conversation after an unrecoverable error.
	ClearHistoryOnFatal bool `json:"clear_history_on_fatal" yaml:"clear_history_on_fatal"` // Default: false
}

type ProviderConfig struct {
	MaxHistory          int     `json:"max_history" yaml:"max_history"`                       // Default: 10
	MaxToolResultLength int     `json:"max_tool_result_length" yaml:"max_tool_result_length"` // Default: 500
	MaxTokens           int     `json:"max_tokens" yaml:"max_tokens"`                         // Default: 4096
	Temperature         float64 `json:"temperature" yaml:"temperature"`                       // Default: 0.7
	RequestTimeout      int     `json:"request_timeout" yaml:"request_timeout"`               // Default: 120 (seconds)
}

type ToolsConfig struct {
	// Command Execution
	CommandTimeout       int   `json:"command_timeout" yaml:"command_timeout"`               // Default: 120 (seconds)
	PrivilegedTimeout    int   `json:"privileged_timeout" yaml:"privileged_timeout"`         // Default: 300 (seconds)
	MaxCommandOutputSize int64 `json:"max_command_output_size" yaml:"max_command_output_size"` // Default: 1MB
	GracefulShutdownMs   int   `json:"graceful_shutdown_ms" yaml:"graceful_shutdown_ms"`     // Default: 2000

	// Search
	SearchTimeout    int `json:"search_timeout" yaml:"search_timeout"`         // Default: 30 (seconds)
	FindMaxDepth     int `json:"find_max_depth" yaml:"find_max_depth"`         // Default: 5
	DefaultFindLimit int `json:"default_find_limit" yaml:"default_find_limit"` // Default: 20

	// File Operations
	MaxReadFileSize  int64 `json:"max_read_file_size" yaml:"max_read_file_size"` // Default: 1MB
	DefaultReadLines int   `json:"default_read_lines" yaml:"default_read_lines"` // Default: 100

	// Processes
	DefaultProcessLimit int `json:"default_process_limit" yaml:"default_process_limit"` // Default: 10
}

type LoggingConfig struct {
	Level   string `json:"level" yaml:"level"`     // Default: "debug"
	Dir     string `json:"dir" yaml:"dir"`         // Default: "" (~/.llmx/logs)
	Journal bool   `json:"journal" yaml:"journal"` // Default: false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
		Agent: AgentConfig{
			MaxRetries:          2,
			MaxIterations:       10,
			ClearHistoryOnFatal: false,
		},
		Provider: ProviderConfig{
			MaxHistory:          10,
			MaxToolResultLength: 500,
			MaxTokens:           4096,
			Temperature:         0.7,
			RequestTimeout:      120,
		},
		Tools: ToolsConfig{
			CommandTimeout:       120,
			PrivilegedTimeout:    300,
			MaxCommandOutputSize: 1024 * 1024,
			GracefulShutdownMs:   2000,
			SearchTimeout:        30,
			FindMaxDepth:         5,
			DefaultFindLimit:     20,
			MaxReadFileSize:      1024 * 1024,
			DefaultReadLines:     100,
			DefaultProcessLimit:  10,
		},
		Logging: LoggingConfig{
			Level: "debug",
		},
	}
}
