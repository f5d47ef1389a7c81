package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/taskgrid/internal/utils"
)

// loadFromEnv overrides config from TASKGRID_* environment variables.
// If sources is non-nil, it tracks the source of each value.
// Numeric variables that do not parse are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	envInt := func(name, field string, target *int) {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return
		}
		*target = i
		mark(field)
	}
	envString := func(name, field string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
			mark(field)
		}
	}
	envBool := func(name, field string, target *bool) {
		if v := os.Getenv(name); v != "" {
			*target = utils.BoolFromString(v)
			mark(field)
		}
	}

	envString("TASKGRID_ENDPOINT", "endpoint", &cfg.Endpoint)
	envInt("TASKGRID_FETCH_TIMEOUT", "fetch_timeout_seconds", &cfg.FetchTimeoutSeconds)
	envInt("TASKGRID_NOTIFY_MS", "notify_duration_ms", &cfg.NotifyDurationMS)
	envInt("TASKGRID_NOTIFY_CAPACITY", "notify_capacity", &cfg.NotifyCapacity)
	envInt("TASKGRID_PAGE_SIZE", "page_size", &cfg.PageSize)

	// Logging configuration
	envString("TASKGRID_LOG_DIR", "log_dir", &cfg.LogDir)
	envString("TASKGRID_LOG_LEVEL", "log_level", &cfg.LogLevel)
	envString("TASKGRID_LOG_FORMAT", "log_format", &cfg.LogFormat)
	envBool("TASKGRID_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	envBool("TASKGRID_LOG_CALLER", "log_caller", &cfg.LogCaller)
}
