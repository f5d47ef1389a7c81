package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskgrid configuration file
# Values can be overridden by TASKGRID_* environment variables or CLI flags

# Todo list the grid is seeded from (fetched once at startup)
endpoint = "https://jsonplaceholder.typicode.com/todos"

# Give up on the fetch after this many seconds (0 disables the timeout)
fetch_timeout_seconds = 10

# Notifications
notify_duration_ms = 1000
notify_capacity = 5

# Rows per grid page
page_size = 20

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.taskgrid"

# debug, info, warn, error
log_level = "info"

# text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
