// Package config loads CLI configuration from defaults, an enforce.yaml
// file, ENFORCE_ environment variables and command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Output   string      `koanf:"output"`
	Verbose  bool        `koanf:"verbose"`
	LogLevel string      `koanf:"log_level"`
	REPL     REPLConfig  `koanf:"repl"`
	Watch    WatchConfig `koanf:"watch"`
}

// REPLConfig configures the interactive session.
type REPLConfig struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
}

// WatchConfig configures `run --watch`.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // TTY and pipes both get text; styling only on a TTY
	DefaultLogLevel = "warn"
	DefaultPrompt   = "enforce> "
	DefaultDebounce = 100 * time.Millisecond
)

// ConfigFileNames are searched, in order, in each directory.
var ConfigFileNames = []string{"enforce.yaml", "enforce.yml"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
		REPL:     REPLConfig{Prompt: DefaultPrompt},
		Watch:    WatchConfig{Debounce: DefaultDebounce},
	}
}
