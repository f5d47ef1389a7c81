package config

import (
	"flag"
)

// flagFields maps flag names to config field names.
var flagFields = map[string]string{
	"endpoint":       "endpoint",
	"fetch-timeout":  "fetch_timeout_seconds",
	"notify-ms":      "notify_duration_ms",
	"notify-max":     "notify_capacity",
	"page-size":      "page_size",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args, and marks every
// flag that was explicitly set. If sources is nil no tracking is done.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskgrid", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Todo list URL")
	fs.IntVar(&cfg.FetchTimeoutSeconds, "fetch-timeout", cfg.FetchTimeoutSeconds, "Fetch timeout in seconds (0 disables)")
	fs.IntVar(&cfg.NotifyDurationMS, "notify-ms", cfg.NotifyDurationMS, "How long notifications stay visible (milliseconds)")
	fs.IntVar(&cfg.NotifyCapacity, "notify-max", cfg.NotifyCapacity, "Maximum notifications shown at once")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Rows per grid page")

	// Logging flags
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log lines")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
