package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/taskgrid/internal/todo"
)

// EmptyMessage is shown in place of the grid when no task is visible.
const EmptyMessage = "No tasks available"

// FormatSummary renders the per-status counters on one line.
func FormatSummary(counts todo.Counts) string {
	parts := make([]string, 0, len(todo.Statuses()))
	for _, s := range todo.Statuses() {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	return strings.Join(parts, "  ")
}

// RenderTasks renders tasks as a static bordered table without the
// interactive actions column.
func RenderTasks(tasks []todo.Task, titleWidth int) string {
	if len(tasks) == 0 {
		return EmptyMessage
	}
	cols := staticColumns(titleWidth)
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, c.Title)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headingStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, task := range tasks {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, c.Render(task))
		}
		t.Row(row...)
	}
	return t.Render()
}

// WriteTasks writes the rendered table followed by the summary line.
func WriteTasks(w io.Writer, tasks []todo.Task, counts todo.Counts, titleWidth int) error {
	if _, err := fmt.Fprintln(w, RenderTasks(tasks, titleWidth)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, FormatSummary(counts))
	return err
}

func staticColumns(titleWidth int) []Column {
	var cols []Column
	for _, c := range Columns(titleWidth) {
		if c.Title == "Actions" {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
