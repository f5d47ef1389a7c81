package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/nibzard/taskgrid/internal/state"
	"github.com/nibzard/taskgrid/internal/todo"
	"github.com/nibzard/taskgrid/internal/utils"
)

// Column describes one grid column. Render produces the cell for a task.
type Column struct {
	Title    string
	Width    int
	Editable bool
	Render   func(todo.Task) string
}

// ActionKind identifies a per-row action.
type ActionKind int

const (
	ActionEdit ActionKind = iota
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// RowAction is one affordance of the actions column.
type RowAction struct {
	Kind  ActionKind
	Label string
	Keys  []string
}

// Action returns the state transition this row action requests for task id.
func (a RowAction) Action(id int) state.Action {
	switch a.Kind {
	case ActionEdit:
		return state.OpenEdit{ID: id}
	case ActionDelete:
		return state.Delete{ID: id}
	}
	return nil
}

// Matches reports whether key triggers the action.
func (a RowAction) Matches(key string) bool {
	for _, k := range a.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Hint renders the action as "[key] Label".
func (a RowAction) Hint() string {
	if len(a.Keys) == 0 {
		return a.Label
	}
	return "[" + a.Keys[0] + "] " + a.Label
}

// RowActions returns the actions offered on every row.
func RowActions() []RowAction {
	return []RowAction{
		{Kind: ActionEdit, Label: "Edit", Keys: []string{"e", "enter"}},
		{Kind: ActionDelete, Label: "Delete", Keys: []string{"d", "delete"}},
	}
}

// findRowAction returns the row action bound to key.
func findRowAction(key string) (RowAction, bool) {
	for _, a := range RowActions() {
		if a.Matches(key) {
			return a, true
		}
	}
	return RowAction{}, false
}

// Columns returns the grid columns for a given title width.
func Columns(titleWidth int) []Column {
	if titleWidth < 10 {
		titleWidth = 10
	}
	return []Column{
		{
			Title: "ID",
			Width: 6,
			Render: func(t todo.Task) string {
				return strconv.Itoa(t.ID)
			},
		},
		{
			Title:    "Title",
			Width:    titleWidth,
			Editable: true,
			Render: func(t todo.Task) string {
				return utils.Truncate(t.Title, titleWidth)
			},
		},
		{
			Title:    "Status",
			Width:    12,
			Editable: true,
			Render: func(t todo.Task) string {
				return string(t.Status)
			},
		},
		{
			Title: "Actions",
			Width: 22,
			Render: func(todo.Task) string {
				hints := make([]string, 0, 2)
				for _, a := range RowActions() {
					hints = append(hints, a.Hint())
				}
				return strings.Join(hints, " ")
			},
		},
	}
}

// fixedWidth is the width taken by every column but the title, including
// the cell padding bubbles/table adds.
func fixedWidth() int {
	total := 0
	for _, c := range Columns(10) {
		if c.Title != "Title" {
			total += c.Width + 2
		}
	}
	return total + 2
}

// titleWidthFor returns the title column width that fits a terminal width.
func titleWidthFor(termWidth int) int {
	if termWidth <= 0 {
		return 40
	}
	return termWidth - fixedWidth()
}

func tableColumns(cols []Column) []table.Column {
	out := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		out = append(out, table.Column{Title: c.Title, Width: c.Width})
	}
	return out
}

func tableRows(cols []Column, tasks []todo.Task) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, task := range tasks {
		row := make(table.Row, 0, len(cols))
		for _, c := range cols {
			row = append(row, c.Render(task))
		}
		rows = append(rows, row)
	}
	return rows
}
