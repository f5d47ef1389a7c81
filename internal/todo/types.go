// Package todo defines tasks, statuses, and the remote item mapping.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the status that follows s in the edit cycle.
// Unknown statuses restart the cycle at StatusTodo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Prev returns the status that precedes s in the edit cycle.
func (s Status) Prev() Status {
	switch s {
	case StatusDone:
		return StatusInProgress
	case StatusInProgress:
		return StatusTodo
	default:
		return StatusDone
	}
}

// ParseStatus parses a display value or a short alias into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(input string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "to do", "todo", "to-do":
		return StatusTodo, nil
	case "in progress", "in-progress", "doing", "progress":
		return StatusInProgress, nil
	case "done", "completed":
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of: to do, in progress, done", input)
}

// Task represents a single row of the grid.
type Task struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// RemoteTodo is the item shape served by the todo endpoint.
type RemoteTodo struct {
	UserID    int    `json:"userId,omitempty"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// FromRemote maps a remote item to a Task.
func FromRemote(r RemoteTodo) Task {
	status := StatusTodo
	if r.Completed {
		status = StatusDone
	}
	return Task{ID: r.ID, Title: r.Title, Status: status}
}

// FromRemoteList maps every remote item, preserving order.
func FromRemoteList(items []RemoteTodo) []Task {
	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, FromRemote(item))
	}
	return tasks
}

// ErrEmptyTitle is returned when a title is blank after trimming.
var ErrEmptyTitle = errors.New("task title is required")

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateTitle returns the trimmed title, or a *ValidationError wrapping
// ErrEmptyTitle when nothing is left.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	return trimmed, nil
}

// MatchTitle reports whether title contains filter, ignoring case.
// An empty filter matches everything.
func MatchTitle(title, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(filter))
}

// Counts holds the number of tasks per status.
type Counts map[Status]int

// CountByStatus counts tasks per status. Every known status is present.
func CountByStatus(tasks []Task) Counts {
	counts := Counts{
		StatusTodo:       0,
		StatusInProgress: 0,
		StatusDone:       0,
	}
	for _, task := range tasks {
		counts[task.Status]++
	}
	return counts
}

// Total returns the sum over all statuses.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// FindTask returns the index of the task with id, or -1.
func FindTask(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest id in tasks, or 0 for an empty list.
func MaxID(tasks []Task) int {
	highest := 0
	for _, task := range tasks {
		if task.ID > highest {
			highest = task.ID
		}
	}
	return highest
}
