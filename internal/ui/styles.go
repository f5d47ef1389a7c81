package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskgrid/internal/notify"
	"github.com/nibzard/taskgrid/internal/todo"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func severityStyle(sev notify.Severity) lipgloss.Style {
	switch sev {
	case notify.Success:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	case notify.Error:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case notify.Info:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	}
}

func severityIcon(sev notify.Severity) string {
	switch sev {
	case notify.Success:
		return "✓"
	case notify.Error:
		return "✗"
	case notify.Info:
		return "i"
	default:
		return "•"
	}
}

func statusStyle(s todo.Status) lipgloss.Style {
	switch s {
	case todo.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case todo.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	default:
		return lipgloss.NewStyle()
	}
}

func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
