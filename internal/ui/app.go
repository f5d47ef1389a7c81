// Package ui provides the full-screen task grid.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskgrid/internal/config"
	"github.com/nibzard/taskgrid/internal/notify"
	"github.com/nibzard/taskgrid/internal/remote"
	"github.com/nibzard/taskgrid/internal/state"
)

// TUIOption configures RunTUI.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	source remote.Source
	logger *log.Logger
}

// WithSource replaces the HTTP client built from the config.
func WithSource(src remote.Source) TUIOption {
	return func(c *tuiConfig) {
		c.source = src
	}
}

// WithLogger routes dispatch logging to logger.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI starts the task grid with the given config.
func RunTUI(ctx context.Context, cfg *config.Config, opts ...TUIOption) error {
	c := &tuiConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.source == nil {
		c.source = remote.NewClient(cfg.Endpoint)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	host := notify.NewHost(cfg.NotifyDuration(), cfg.NotifyCapacity)
	storeOpts := []state.StoreOption{state.WithSink(host)}
	if c.logger != nil {
		storeOpts = append(storeOpts, state.WithLogger(c.logger))
	}
	store := state.NewStore(storeOpts...)

	manager := NewTaskManager(store, ManagerOptions{
		Context:      ctx,
		Source:       c.source,
		FetchTimeout: cfg.FetchTimeout(),
		PageSize:     cfg.PageSize,
	})
	return runProgram(ctx, NewApp(manager, host))
}

func runProgram(ctx context.Context, app *App) error {
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type expireMsg struct {
	id uint64
}

// App is the root shell: it hosts the notification area and one
// TaskManager.
type App struct {
	host    *notify.Host
	manager *TaskManager
	now     func() time.Time
}

// NewApp wires manager and host together.
func NewApp(manager *TaskManager, host *notify.Host) *App {
	return &App{
		host:    host,
		manager: manager,
		now:     manager.now,
	}
}

// Manager returns the hosted task manager.
func (a *App) Manager() *TaskManager {
	return a.manager
}

func (a *App) Init() tea.Cmd {
	return a.manager.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case expireMsg:
		a.host.Dismiss(msg.id)
		a.host.Expire(a.now())
		return a, nil
	}
	_, cmd := a.manager.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.manager.View())
	writeNotifications(&b, a.host.Active())
	return b.String()
}

func writeNotifications(b *strings.Builder, active []notify.Notification) {
	if len(active) == 0 {
		return
	}
	b.WriteString("\n")
	for _, n := range active {
		line := severityIcon(n.Severity) + " " + n.Message
		b.WriteString(severityStyle(n.Severity).Render(line) + "\n")
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
