package state

import "github.com/nibzard/taskgrid/internal/todo"

// Matches reports whether task passes the current filters.
func (s State) Matches(task todo.Task) bool {
	if !todo.MatchTitle(task.Title, s.TitleFilter) {
		return false
	}
	return s.StatusFilter == "" || task.Status == s.StatusFilter
}

// Visible returns the filtered tasks in list order.
func Visible(s State) []todo.Task {
	out := make([]todo.Task, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		if s.Matches(task) {
			out = append(out, task)
		}
	}
	return out
}

// VisibleIndexes returns the indexes into s.Tasks of the filtered tasks.
func VisibleIndexes(s State) []int {
	out := make([]int, 0, len(s.Tasks))
	for i, task := range s.Tasks {
		if s.Matches(task) {
			out = append(out, i)
		}
	}
	return out
}

// Summary counts the unfiltered tasks per status.
func Summary(s State) todo.Counts {
	return todo.CountByStatus(s.Tasks)
}

// PageCount returns how many pages of size hold n items (at least 1).
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Page returns the items on page (0-based). Out of range pages are
// clamped to the nearest valid page.
func Page(items []todo.Task, page, size int) []todo.Task {
	if size <= 0 {
		return items
	}
	last := PageCount(len(items), size) - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
