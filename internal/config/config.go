package config

import (
	"strconv"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string
}

// Default values.
const (
	DefaultEndpoint            = "https://jsonplaceholder.typicode.com/todos"
	DefaultFetchTimeoutSeconds = 10
	DefaultNotifyDurationMS    = 1000
	DefaultNotifyCapacity      = 5
	DefaultPageSize            = 20
	DefaultLogDir              = "~/.taskgrid"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

// Config holds the full configuration for taskgrid.
type Config struct {
	// Remote todo list
	Endpoint            string `toml:"endpoint" json:"endpoint"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`

	// Notifications
	NotifyDurationMS int `toml:"notify_duration_ms" json:"notify_duration_ms"`
	NotifyCapacity   int `toml:"notify_capacity" json:"notify_capacity"`

	// Grid
	PageSize int `toml:"page_size" json:"page_size"`

	// Logging configuration
	LogDir        string `toml:"log_dir" json:"log_dir"`
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-" json:"-"`
}

// FetchTimeout returns the bound on the initial fetch. Zero means none.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// NotifyDuration returns how long a notification stays on screen.
func (c *Config) NotifyDuration() time.Duration {
	if c.NotifyDurationMS <= 0 {
		return DefaultNotifyDurationMS * time.Millisecond
	}
	return time.Duration(c.NotifyDurationMS) * time.Millisecond
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.Endpoint = DefaultEndpoint
	cfg.FetchTimeoutSeconds = DefaultFetchTimeoutSeconds
	cfg.NotifyDurationMS = DefaultNotifyDurationMS
	cfg.NotifyCapacity = DefaultNotifyCapacity
	cfg.PageSize = DefaultPageSize
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"endpoint",
		"fetch_timeout_seconds",
		"notify_duration_ms",
		"notify_capacity",
		"page_size",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display value of a field by its file key.
func (c *Config) Value(field string) string {
	switch field {
	case "endpoint":
		return c.Endpoint
	case "fetch_timeout_seconds":
		return strconv.Itoa(c.FetchTimeoutSeconds)
	case "notify_duration_ms":
		return strconv.Itoa(c.NotifyDurationMS)
	case "notify_capacity":
		return strconv.Itoa(c.NotifyCapacity)
	case "page_size":
		return strconv.Itoa(c.PageSize)
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}
