package ui

import (
	"strings"
	"testing"

	"github.com/nibzard/taskgrid/internal/state"
	"github.com/nibzard/taskgrid/internal/todo"
)

func TestRowActionDispatch(t *testing.T) {
	tests := []struct {
		key  string
		want state.Action
	}{
		{"e", state.OpenEdit{ID: 7}},
		{"enter", state.OpenEdit{ID: 7}},
		{"d", state.Delete{ID: 7}},
		{"delete", state.Delete{ID: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, ok := findRowAction(tt.key)
			if !ok {
				t.Fatalf("no row action for %q", tt.key)
			}
			if got := action.Action(7); got != tt.want {
				t.Errorf("Action(7) = %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, ok := findRowAction("x"); ok {
		t.Error("x should not be bound to a row action")
	}
}

func TestActionKindString(t *testing.T) {
	if ActionEdit.String() != "edit" || ActionDelete.String() != "delete" {
		t.Errorf("unexpected names %q %q", ActionEdit, ActionDelete)
	}
}

func TestColumnsRender(t *testing.T) {
	task := todo.Task{ID: 12, Title: "A rather long task title that overflows", Status: todo.StatusInProgress}
	cols := Columns(10)

	want := []string{"ID", "Title", "Status", "Actions"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %d, want %d", len(cols), len(want))
	}
	for i, c := range cols {
		if c.Title != want[i] {
			t.Errorf("column %d = %q, want %q", i, c.Title, want[i])
		}
	}

	if got := cols[0].Render(task); got != "12" {
		t.Errorf("id cell = %q", got)
	}
	if cols[0].Editable {
		t.Error("id column must be read-only")
	}
	if got := cols[1].Render(task); len([]rune(got)) > 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("title cell = %q, want truncated to 10", got)
	}
	if got := cols[2].Render(task); got != "In Progress" {
		t.Errorf("status cell = %q", got)
	}
	if got := cols[3].Render(task); got != "[e] Edit [d] Delete" {
		t.Errorf("actions cell = %q", got)
	}
}

func TestTitleWidthFor(t *testing.T) {
	if got := titleWidthFor(0); got != 40 {
		t.Errorf("titleWidthFor(0) = %d, want 40", got)
	}
	if got := titleWidthFor(120); got != 120-fixedWidth() {
		t.Errorf("titleWidthFor(120) = %d", got)
	}
	if got := Columns(titleWidthFor(20))[1].Width; got != 10 {
		t.Errorf("narrow title width = %d, want 10", got)
	}
}

func TestFormatSummary(t *testing.T) {
	counts := todo.CountByStatus([]todo.Task{
		{ID: 1, Title: "a", Status: todo.StatusDone},
		{ID: 2, Title: "b", Status: todo.StatusTodo},
		{ID: 3, Title: "c", Status: todo.StatusDone},
	})
	want := "To Do: 1  In Progress: 0  Done: 2"
	if got := FormatSummary(counts); got != want {
		t.Errorf("FormatSummary() = %q, want %q", got, want)
	}
}

func TestWriteTasks(t *testing.T) {
	tasks := []todo.Task{
		{ID: 1, Title: "Buy milk", Status: todo.StatusTodo},
		{ID: 2, Title: "Walk the dog", Status: todo.StatusDone},
	}
	var b strings.Builder
	if err := WriteTasks(&b, tasks, todo.CountByStatus(tasks), 30); err != nil {
		t.Fatalf("WriteTasks() error = %v", err)
	}
	out := b.String()
	for _, want := range []string{"ID", "Title", "Status", "Buy milk", "Walk the dog", "To Do: 1  In Progress: 0  Done: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Actions") {
		t.Error("static output should not include the actions column")
	}
}

func TestRenderTasksEmpty(t *testing.T) {
	if got := RenderTasks(nil, 30); got != EmptyMessage {
		t.Errorf("RenderTasks(nil) = %q", got)
	}
}
