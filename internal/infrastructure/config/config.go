package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Runner    RunnerConfig
	Report    ReportConfig
	Assistant AssistantConfig
	Settings  SettingsConfig
	Logging   LogConfig
	Metrics   MetricsConfig
}

// RunnerConfig controls how the command shell is spawned.
type RunnerConfig struct {
	Shell        string        `envconfig:"LIKU_SHELL"`
	Term         string        `envconfig:"LIKU_TERM" default:"xterm-256color"`
	ExitDelay    time.Duration `envconfig:"LIKU_EXIT_DELAY" default:"250ms"`
	DrainTimeout time.Duration `envconfig:"LIKU_DRAIN_TIMEOUT" default:"2s"`
}

// ReportConfig bounds the output embedded in a failure report.
type ReportConfig struct {
	MaxOutput    int `envconfig:"LIKU_MAX_OUTPUT" default:"2000"`
	ContextLines int `envconfig:"LIKU_CONTEXT_LINES" default:"10"`
}

// AssistantConfig describes the chat surface a report is delivered to.
type AssistantConfig struct {
	Command   string `envconfig:"LIKU_ASSISTANT_COMMAND"`
	Enabled   bool   `envconfig:"LIKU_ASSISTANT_ENABLED" default:"true"`
	Clipboard string `envconfig:"LIKU_CLIPBOARD" default:"auto"`
}

// SettingsConfig locates the ignore policy file.
type SettingsConfig struct {
	Path string `envconfig:"LIKU_SETTINGS"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Output      string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// MetricsConfig holds the optional textfile export target.
type MetricsConfig struct {
	File string `envconfig:"LIKU_METRICS_FILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Runner: RunnerConfig{
			Term:         "xterm-256color",
			ExitDelay:    250 * time.Millisecond,
			DrainTimeout: 2 * time.Second,
		},
		Report: ReportConfig{
			MaxOutput:    2000,
			ContextLines: 10,
		},
		Assistant: AssistantConfig{
			Enabled:   true,
			Clipboard: "auto",
		},
		Logging: LogConfig{
			Level:  "warn",
			Output: "stderr",
		},
	}
}

// Validate rejects values that would make a session misbehave.
func (c *Config) Validate() error {
	if c.Runner.ExitDelay < 0 {
		return fmt.Errorf("LIKU_EXIT_DELAY must not be negative: %s", c.Runner.ExitDelay)
	}
	if c.Runner.DrainTimeout < 0 {
		return fmt.Errorf("LIKU_DRAIN_TIMEOUT must not be negative: %s", c.Runner.DrainTimeout)
	}
	if c.Report.MaxOutput < 64 {
		return fmt.Errorf("LIKU_MAX_OUTPUT must be at least 64: %d", c.Report.MaxOutput)
	}
	if c.Report.ContextLines < 1 {
		return fmt.Errorf("LIKU_CONTEXT_LINES must be positive: %d", c.Report.ContextLines)
	}
	switch c.Assistant.Clipboard {
	case "auto", "system", "osc52":
	default:
		return fmt.Errorf("LIKU_CLIPBOARD must be auto, system or osc52: %q", c.Assistant.Clipboard)
	}
	return nil
}
