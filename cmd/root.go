// Package cmd implements the CLI command structure for taskgrid.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/taskgrid/internal/config"
	"github.com/nibzard/taskgrid/internal/logging"
	"github.com/nibzard/taskgrid/internal/remote"
	"github.com/nibzard/taskgrid/internal/state"
	"github.com/nibzard/taskgrid/internal/todo"
	"github.com/nibzard/taskgrid/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

const defaultListTitleWidth = 40

// Run executes the taskgrid CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskgrid", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs", "tail":
		return logsCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func logOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
	}
}

// tuiCommand launches the interactive grid.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskgrid tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := logOptions(cfg)
	opts.ReportTimestamp = true
	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot, opts)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer runLog.Close()

	logger := runLog.Logger()
	logger.Info("starting", "endpoint", cfg.Endpoint, "page_size", cfg.PageSize)
	err = ui.RunTUI(ctx, cfg, ui.WithLogger(logger))
	if err != nil {
		logger.Error("tui exited", "err", err)
		return err
	}
	logger.Info("bye")
	return nil
}

// lsCommand fetches the list once and prints the filtered grid.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskgrid ls", flag.ContinueOnError)
	titleFilter := fs.String("title", "", "Only show tasks whose title contains this text")
	statusFilter := fs.String("status", "", "Filter by status (todo|in-progress|done)")
	width := fs.Int("width", defaultListTitleWidth, "Title column width")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 && *titleFilter == "" {
		*titleFilter = remaining[0]
	}

	var status todo.Status
	if *statusFilter != "" {
		parsed, err := todo.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
		status = parsed
	}

	logger := logging.New(os.Stderr, logOptions(cfg))
	store := state.NewStore(state.WithLogger(logger))
	store.Dispatch(state.LoadStarted{})

	tasks, err := remote.LoadTasks(ctx, remote.NewClient(cfg.Endpoint), cfg.FetchTimeout())
	if err != nil {
		store.Dispatch(state.LoadFailed{Err: err})
		return fmt.Errorf("loading tasks: %w", err)
	}
	store.Dispatch(state.LoadSucceeded{Tasks: tasks})
	store.Dispatch(state.SetTitleFilter{Text: *titleFilter})
	store.Dispatch(state.SetStatusFilter{Status: status})

	st := store.State()
	return ui.WriteTasks(os.Stdout, state.Visible(st), state.Summary(st), *width)
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskgrid config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if len(cws.Files) == 0 {
		fmt.Println("Config files: (none)")
	} else {
		fmt.Println("Config files:")
		for _, f := range cws.Files {
			fmt.Printf("  %s\n", f)
		}
	}
	fmt.Println()

	for _, field := range config.Fields() {
		fmt.Printf("%-22s = %-45s (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

// logsCommand tails the latest run log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskgrid logs", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskgrid version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskgrid - browse and edit a todo list in the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskgrid [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Launch the interactive grid (default command)")
	fmt.Fprintln(w, "  ls [title]    Fetch once and print the task table")
	fmt.Fprintln(w, "  config        Show the effective configuration")
	fmt.Fprintln(w, "  logs          Tail the latest run log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Only show tasks whose title contains this text")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|in-progress|done)")
	fmt.Fprintln(w, "  -width int")
	fmt.Fprintln(w, "        Title column width (default 40)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file instead")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
