// Package state holds the task manager state and its reducer.
//
// Every change to the task list goes through Reduce, which takes the old
// state and an action and returns the new state plus the notifications the
// change should surface. Reduce never mutates its input.
package state

import (
	"fmt"

	"github.com/nibzard/taskgrid/internal/notify"
	"github.com/nibzard/taskgrid/internal/todo"
)

// Modal is the state of the create/edit form.
type Modal int

const (
	ModalClosed Modal = iota
	ModalCreate
	ModalEdit
)

func (m Modal) String() string {
	switch m {
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Draft is the title/status pair being edited in the form.
type Draft struct {
	Title  string
	Status todo.Status
}

func emptyDraft() Draft {
	return Draft{Status: todo.StatusTodo}
}

// State is everything the task manager owns.
type State struct {
	Tasks        []todo.Task
	TitleFilter  string
	StatusFilter todo.Status // empty means no status filter
	Modal        Modal
	Draft        Draft
	EditingID    int // 0 when not editing
	NextID       int
	Loading      bool
	LoadErr      error
}

// New returns an empty state.
func New() State {
	return State{
		Draft:  emptyDraft(),
		NextID: 1,
	}
}

// Effect is a notification produced by a transition.
type Effect struct {
	Severity notify.Severity
	Message  string
}

// Action is a state transition request.
type Action interface {
	actionName() string
}

type (
	// LoadStarted marks the remote fetch as in flight.
	LoadStarted struct{}
	// LoadSucceeded replaces the task list with freshly fetched tasks.
	LoadSucceeded struct{ Tasks []todo.Task }
	// LoadFailed records a failed fetch.
	LoadFailed struct{ Err error }
	// OpenCreate opens an empty form.
	OpenCreate struct{}
	// OpenEdit opens the form pre-filled from task ID.
	OpenEdit struct{ ID int }
	// DraftChanged replaces the form contents.
	DraftChanged struct{ Draft Draft }
	// Cancel closes the form without changes.
	Cancel struct{}
	// Save validates the form and creates or updates a task.
	Save struct{}
	// Delete removes task ID.
	Delete struct{ ID int }
	// SetStatus is the inline status edit of task ID.
	SetStatus struct {
		ID     int
		Status todo.Status
	}
	// SetTitle is the inline title edit of task ID.
	SetTitle struct {
		ID    int
		Title string
	}
	// SetTitleFilter sets the case-insensitive title filter.
	SetTitleFilter struct{ Text string }
	// SetStatusFilter sets the status filter; empty clears it.
	SetStatusFilter struct{ Status todo.Status }
	// ClearFilters removes both filters.
	ClearFilters struct{}
	// Move swaps task ID with its visible neighbour Delta rows away.
	Move struct {
		ID    int
		Delta int
	}
)

func (LoadStarted) actionName() string     { return "load_started" }
func (LoadSucceeded) actionName() string   { return "load_succeeded" }
func (LoadFailed) actionName() string      { return "load_failed" }
func (OpenCreate) actionName() string      { return "open_create" }
func (OpenEdit) actionName() string        { return "open_edit" }
func (DraftChanged) actionName() string    { return "draft_changed" }
func (Cancel) actionName() string          { return "cancel" }
func (Save) actionName() string            { return "save" }
func (Delete) actionName() string          { return "delete" }
func (SetStatus) actionName() string       { return "set_status" }
func (SetTitle) actionName() string        { return "set_title" }
func (SetTitleFilter) actionName() string  { return "set_title_filter" }
func (SetStatusFilter) actionName() string { return "set_status_filter" }
func (ClearFilters) actionName() string    { return "clear_filters" }
func (Move) actionName() string            { return "move" }

// Name returns a stable name for an action, used in logs.
func Name(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.actionName()
}

// Messages shown for each transition.
const (
	MsgAdded        = "Task added successfully!"
	MsgUpdated      = "Task updated successfully!"
	MsgDeleted      = "Task deleted."
	MsgRenamed      = "Task renamed."
	MsgTitleMissing = "Task title is required."
)

// Reduce applies a to s and returns the new state and its effects.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
		s.LoadErr = nil
		return s, nil

	case LoadSucceeded:
		s.Tasks = cloneTasks(a.Tasks)
		s.Loading = false
		s.LoadErr = nil
		if s.Modal == ModalEdit {
			s = closeModal(s)
		}
		if next := todo.MaxID(s.Tasks) + 1; next > s.NextID {
			s.NextID = next
		}
		return s, []Effect{{notify.Info, fmt.Sprintf("Loaded %d tasks.", len(s.Tasks))}}

	case LoadFailed:
		s.Loading = false
		s.LoadErr = a.Err
		msg := "Failed to load tasks (press r to retry)."
		if a.Err != nil {
			msg = fmt.Sprintf("Failed to load tasks: %v (press r to retry).", a.Err)
		}
		return s, []Effect{{notify.Error, msg}}

	case OpenCreate:
		s.Modal = ModalCreate
		s.Draft = emptyDraft()
		s.EditingID = 0
		return s, nil

	case OpenEdit:
		i := todo.FindTask(s.Tasks, a.ID)
		if i < 0 {
			return s, nil
		}
		s.Modal = ModalEdit
		s.Draft = Draft{Title: s.Tasks[i].Title, Status: s.Tasks[i].Status}
		s.EditingID = a.ID
		return s, nil

	case DraftChanged:
		if s.Modal == ModalClosed {
			return s, nil
		}
		s.Draft = a.Draft
		if !s.Draft.Status.Valid() {
			s.Draft.Status = todo.StatusTodo
		}
		return s, nil

	case Cancel:
		return closeModal(s), nil

	case Save:
		return reduceSave(s)

	case Delete:
		i := todo.FindTask(s.Tasks, a.ID)
		if i < 0 {
			return s, nil
		}
		tasks := make([]todo.Task, 0, len(s.Tasks)-1)
		tasks = append(tasks, s.Tasks[:i]...)
		tasks = append(tasks, s.Tasks[i+1:]...)
		s.Tasks = tasks
		if s.EditingID == a.ID {
			s = closeModal(s)
		}
		return s, []Effect{{notify.Error, MsgDeleted}}

	case SetStatus:
		i := todo.FindTask(s.Tasks, a.ID)
		if i < 0 || !a.Status.Valid() {
			return s, nil
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[i].Status = a.Status
		return s, []Effect{{notify.Info, fmt.Sprintf("Task updated to %q.", string(a.Status))}}

	case SetTitle:
		i := todo.FindTask(s.Tasks, a.ID)
		if i < 0 {
			return s, nil
		}
		title, err := todo.ValidateTitle(a.Title)
		if err != nil {
			return s, []Effect{{notify.Error, MsgTitleMissing}}
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[i].Title = title
		return s, []Effect{{notify.Success, MsgRenamed}}

	case SetTitleFilter:
		s.TitleFilter = a.Text
		return s, nil

	case SetStatusFilter:
		if a.Status != "" && !a.Status.Valid() {
			return s, nil
		}
		s.StatusFilter = a.Status
		return s, nil

	case ClearFilters:
		s.TitleFilter = ""
		s.StatusFilter = ""
		return s, nil

	case Move:
		return reduceMove(s, a), nil
	}

	return s, nil
}

func reduceSave(s State) (State, []Effect) {
	if s.Modal == ModalClosed {
		return s, nil
	}
	title, err := todo.ValidateTitle(s.Draft.Title)
	if err != nil {
		return s, []Effect{{notify.Error, MsgTitleMissing}}
	}
	status := s.Draft.Status
	if !status.Valid() {
		status = todo.StatusTodo
	}

	if s.Modal == ModalEdit {
		i := todo.FindTask(s.Tasks, s.EditingID)
		if i < 0 {
			// The task was deleted while the form was open.
			return closeModal(s), nil
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[i].Title = title
		s.Tasks[i].Status = status
		return closeModal(s), []Effect{{notify.Success, MsgUpdated}}
	}

	task := todo.Task{ID: s.NextID, Title: title, Status: status}
	tasks := make([]todo.Task, 0, len(s.Tasks)+1)
	tasks = append(tasks, task)
	tasks = append(tasks, s.Tasks...)
	s.Tasks = tasks
	s.NextID++
	return closeModal(s), []Effect{{notify.Success, MsgAdded}}
}

func reduceMove(s State, a Move) State {
	if a.Delta == 0 {
		return s
	}
	visible := VisibleIndexes(s)
	pos := -1
	for p, idx := range visible {
		if s.Tasks[idx].ID == a.ID {
			pos = p
			break
		}
	}
	if pos < 0 {
		return s
	}
	target := pos + a.Delta
	if target < 0 || target >= len(visible) {
		return s
	}
	s.Tasks = cloneTasks(s.Tasks)
	i, j := visible[pos], visible[target]
	s.Tasks[i], s.Tasks[j] = s.Tasks[j], s.Tasks[i]
	return s
}

func closeModal(s State) State {
	s.Modal = ModalClosed
	s.Draft = emptyDraft()
	s.EditingID = 0
	return s
}

func cloneTasks(tasks []todo.Task) []todo.Task {
	if tasks == nil {
		return nil
	}
	out := make([]todo.Task, len(tasks))
	copy(out, tasks)
	return out
}
