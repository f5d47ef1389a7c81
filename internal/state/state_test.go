package state

import (
	"errors"
	"strings"
	"testing"

	"github.com/nibzard/taskgrid/internal/notify"
	"github.com/nibzard/taskgrid/internal/todo"
)

func seeded(tasks ...todo.Task) State {
	s, _ := Reduce(New(), LoadSucceeded{Tasks: tasks})
	return s
}

func sampleTasks() []todo.Task {
	return []todo.Task{
		{ID: 1, Title: "Buy milk", Status: todo.StatusDone},
		{ID: 2, Title: "Walk dog", Status: todo.StatusTodo},
		{ID: 3, Title: "Oat MILK for coffee", Status: todo.StatusTodo},
		{ID: 4, Title: "milkshake", Status: todo.StatusDone},
	}
}

func TestLoadSucceededReplacesTasks(t *testing.T) {
	remote := []todo.RemoteTodo{
		{ID: 1, Title: "a", Completed: true},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c", Completed: true},
	}
	s, effects := Reduce(New(), LoadStarted{})
	if !s.Loading {
		t.Fatal("LoadStarted should set Loading")
	}
	if len(effects) != 0 {
		t.Errorf("LoadStarted effects = %v", effects)
	}

	s, effects = Reduce(s, LoadSucceeded{Tasks: todo.FromRemoteList(remote)})
	if s.Loading {
		t.Error("Loading should be false after success")
	}
	if len(s.Tasks) != len(remote) {
		t.Fatalf("len(Tasks) = %d, want %d", len(s.Tasks), len(remote))
	}
	for i, task := range s.Tasks {
		if (task.Status == todo.StatusDone) != remote[i].Completed {
			t.Errorf("task %d status %q, completed %v", task.ID, task.Status, remote[i].Completed)
		}
	}
	if s.NextID != 4 {
		t.Errorf("NextID = %d, want 4", s.NextID)
	}
	if len(effects) != 1 || effects[0].Severity != notify.Info {
		t.Errorf("effects = %+v", effects)
	}

	s, _ = Reduce(s, LoadSucceeded{Tasks: []todo.Task{{ID: 9, Title: "only"}}})
	if len(s.Tasks) != 1 || s.Tasks[0].ID != 9 {
		t.Errorf("second load should replace wholesale, got %+v", s.Tasks)
	}
}

func TestLoadFailedSurfacesError(t *testing.T) {
	s, _ := Reduce(New(), LoadStarted{})
	boom := errors.New("connection refused")
	s, effects := Reduce(s, LoadFailed{Err: boom})
	if s.Loading {
		t.Error("Loading should be false after failure")
	}
	if !errors.Is(s.LoadErr, boom) {
		t.Errorf("LoadErr = %v", s.LoadErr)
	}
	if len(s.Tasks) != 0 {
		t.Errorf("Tasks = %v, want empty", s.Tasks)
	}
	if len(effects) != 1 || effects[0].Severity != notify.Error {
		t.Fatalf("effects = %+v, want one error", effects)
	}
	if !strings.Contains(effects[0].Message, "connection refused") || !strings.Contains(effects[0].Message, "retry") {
		t.Errorf("message = %q", effects[0].Message)
	}

	s, _ = Reduce(s, LoadStarted{})
	if s.LoadErr != nil {
		t.Error("retry should clear LoadErr")
	}
}

func TestSaveWhitespaceTitleIsRejected(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, OpenCreate{})
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "   ", Status: todo.StatusTodo}})

	next, effects := Reduce(s, Save{})
	if len(next.Tasks) != len(s.Tasks) {
		t.Errorf("len(Tasks) = %d, want %d", len(next.Tasks), len(s.Tasks))
	}
	if next.Modal != ModalCreate {
		t.Errorf("Modal = %v, want create (still open)", next.Modal)
	}
	if next.NextID != s.NextID {
		t.Errorf("NextID changed from %d to %d", s.NextID, next.NextID)
	}
	if len(effects) != 1 || effects[0].Severity != notify.Error || effects[0].Message != MsgTitleMissing {
		t.Errorf("effects = %+v", effects)
	}
}

func TestSaveCreatePrependsTask(t *testing.T) {
	s := seeded(sampleTasks()...)
	before := len(s.Tasks)
	s, _ = Reduce(s, OpenCreate{})
	if s.Draft.Title != "" || s.Draft.Status != todo.StatusTodo {
		t.Errorf("draft = %+v, want empty To Do", s.Draft)
	}
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "Buy milk", Status: todo.StatusTodo}})
	s, effects := Reduce(s, Save{})

	if len(s.Tasks) != before+1 {
		t.Fatalf("len(Tasks) = %d, want %d", len(s.Tasks), before+1)
	}
	got := s.Tasks[0]
	if got.Title != "Buy milk" || got.Status != todo.StatusTodo {
		t.Errorf("Tasks[0] = %+v", got)
	}
	for _, other := range s.Tasks[1:] {
		if other.ID == got.ID {
			t.Errorf("new id %d collides with existing task", got.ID)
		}
	}
	if s.Modal != ModalClosed || s.Draft.Title != "" || s.EditingID != 0 {
		t.Errorf("form not reset: modal=%v draft=%+v editing=%d", s.Modal, s.Draft, s.EditingID)
	}
	if len(effects) != 1 || effects[0].Severity != notify.Success || effects[0].Message != MsgAdded {
		t.Errorf("effects = %+v", effects)
	}
}

func TestSaveTrimsTitle(t *testing.T) {
	s, _ := Reduce(New(), OpenCreate{})
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "  padded  ", Status: todo.StatusDone}})
	s, _ = Reduce(s, Save{})
	if s.Tasks[0].Title != "padded" || s.Tasks[0].Status != todo.StatusDone {
		t.Errorf("Tasks[0] = %+v", s.Tasks[0])
	}
}

func TestNewIDsDoNotCollideAfterDelete(t *testing.T) {
	s := seeded(
		todo.Task{ID: 1, Title: "one", Status: todo.StatusTodo},
		todo.Task{ID: 2, Title: "two", Status: todo.StatusTodo},
		todo.Task{ID: 3, Title: "three", Status: todo.StatusTodo},
	)
	s, _ = Reduce(s, Delete{ID: 2})

	for i := 0; i < 3; i++ {
		s, _ = Reduce(s, OpenCreate{})
		s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "new", Status: todo.StatusTodo}})
		s, _ = Reduce(s, Save{})
	}

	seen := make(map[int]bool)
	for _, task := range s.Tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate id %d in %+v", task.ID, s.Tasks)
		}
		seen[task.ID] = true
	}
	if seen[2] {
		t.Error("deleted id 2 was reused")
	}
}

func TestEditSaveReplacesInPlace(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, OpenEdit{ID: 2})
	if s.Modal != ModalEdit || s.EditingID != 2 {
		t.Fatalf("modal=%v editing=%d", s.Modal, s.EditingID)
	}
	if s.Draft.Title != "Walk dog" || s.Draft.Status != todo.StatusTodo {
		t.Errorf("draft = %+v, want prefilled", s.Draft)
	}

	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "Walk the dog", Status: todo.StatusInProgress}})
	s, effects := Reduce(s, Save{})

	if len(s.Tasks) != len(sampleTasks()) {
		t.Fatalf("len(Tasks) = %d", len(s.Tasks))
	}
	if s.Tasks[1] != (todo.Task{ID: 2, Title: "Walk the dog", Status: todo.StatusInProgress}) {
		t.Errorf("Tasks[1] = %+v", s.Tasks[1])
	}
	if len(effects) != 1 || effects[0].Message != MsgUpdated {
		t.Errorf("effects = %+v", effects)
	}
}

func TestLoadClosesEditForm(t *testing.T) {
	s := seeded(todo.Task{ID: 1, Title: "local only", Status: todo.StatusTodo})
	s, _ = Reduce(s, OpenEdit{ID: 1})
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "local edit", Status: todo.StatusDone}})

	remote := todo.Task{ID: 1, Title: "remote task", Status: todo.StatusInProgress}
	s, _ = Reduce(s, LoadSucceeded{Tasks: []todo.Task{remote}})
	if s.Modal != ModalClosed || s.EditingID != 0 {
		t.Fatalf("modal=%v editing=%d, want closed", s.Modal, s.EditingID)
	}
	if s.Draft.Title != "" {
		t.Errorf("Draft = %+v, want reset", s.Draft)
	}

	s, effects := Reduce(s, Save{})
	if s.Tasks[0] != remote {
		t.Errorf("Tasks[0] = %+v, want %+v", s.Tasks[0], remote)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %+v", effects)
	}
}

func TestLoadKeepsCreateForm(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, OpenCreate{})
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "half typed", Status: todo.StatusTodo}})
	s, _ = Reduce(s, LoadSucceeded{Tasks: sampleTasks()[:1]})
	if s.Modal != ModalCreate || s.Draft.Title != "half typed" {
		t.Errorf("modal=%v draft=%+v, want create form kept", s.Modal, s.Draft)
	}
}

func TestOpenEditUnknownID(t *testing.T) {
	s := seeded(sampleTasks()...)
	next, _ := Reduce(s, OpenEdit{ID: 99})
	if next.Modal != ModalClosed || next.EditingID != 0 {
		t.Errorf("unknown id should not open the form: %+v", next)
	}
}

func TestCancelLeavesTasksAlone(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, OpenEdit{ID: 1})
	s, _ = Reduce(s, DraftChanged{Draft: Draft{Title: "changed", Status: todo.StatusTodo}})
	s, effects := Reduce(s, Cancel{})
	if s.Modal != ModalClosed || s.EditingID != 0 {
		t.Errorf("modal=%v editing=%d", s.Modal, s.EditingID)
	}
	if s.Tasks[0].Title != "Buy milk" {
		t.Errorf("Tasks[0].Title = %q", s.Tasks[0].Title)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %+v", effects)
	}
}

func TestDelete(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, effects := Reduce(s, Delete{ID: 3})
	if len(s.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3", len(s.Tasks))
	}
	for _, task := range s.Tasks {
		if task.ID == 3 {
			t.Error("task 3 still present")
		}
	}
	if len(effects) != 1 || effects[0].Severity != notify.Error || effects[0].Message != MsgDeleted {
		t.Errorf("effects = %+v", effects)
	}

	again, effects := Reduce(s, Delete{ID: 3})
	if len(again.Tasks) != len(s.Tasks) {
		t.Errorf("re-delete changed the list")
	}
	if len(effects) != 0 {
		t.Errorf("re-delete effects = %+v", effects)
	}
}

func TestDeleteClosesFormForSameTask(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, OpenEdit{ID: 4})
	s, _ = Reduce(s, Delete{ID: 4})
	if s.Modal != ModalClosed {
		t.Errorf("Modal = %v, want closed", s.Modal)
	}
}

func TestInlineStatusEditUpdatesCounters(t *testing.T) {
	s := seeded(sampleTasks()...)
	before := Summary(s)

	s, effects := Reduce(s, SetStatus{ID: 2, Status: todo.StatusInProgress})
	after := Summary(s)

	if s.Tasks[1] != (todo.Task{ID: 2, Title: "Walk dog", Status: todo.StatusInProgress}) {
		t.Errorf("Tasks[1] = %+v", s.Tasks[1])
	}
	for i, task := range s.Tasks {
		if i != 1 && task != sampleTasks()[i] {
			t.Errorf("Tasks[%d] changed: %+v", i, task)
		}
	}
	if after[todo.StatusTodo] != before[todo.StatusTodo]-1 {
		t.Errorf("To Do count %d -> %d", before[todo.StatusTodo], after[todo.StatusTodo])
	}
	if after[todo.StatusInProgress] != before[todo.StatusInProgress]+1 {
		t.Errorf("In Progress count %d -> %d", before[todo.StatusInProgress], after[todo.StatusInProgress])
	}
	if after[todo.StatusDone] != before[todo.StatusDone] {
		t.Errorf("Done count changed")
	}
	if len(effects) != 1 || effects[0].Severity != notify.Info || effects[0].Message != `Task updated to "In Progress".` {
		t.Errorf("effects = %+v", effects)
	}
	if s.Modal != ModalClosed {
		t.Error("inline edit must not open the form")
	}
}

func TestInlineStatusEditIgnoresInvalid(t *testing.T) {
	s := seeded(sampleTasks()...)
	for _, a := range []Action{
		SetStatus{ID: 99, Status: todo.StatusDone},
		SetStatus{ID: 1, Status: "Blocked"},
	} {
		next, effects := Reduce(s, a)
		if len(effects) != 0 || next.Tasks[0] != s.Tasks[0] {
			t.Errorf("%+v should be a no-op", a)
		}
	}
}

func TestInlineTitleEdit(t *testing.T) {
	s := seeded(sampleTasks()...)
	next, effects := Reduce(s, SetTitle{ID: 2, Title: "   "})
	if next.Tasks[1].Title != "Walk dog" {
		t.Errorf("blank title applied: %+v", next.Tasks[1])
	}
	if len(effects) != 1 || effects[0].Severity != notify.Error {
		t.Errorf("effects = %+v", effects)
	}

	next, effects = Reduce(s, SetTitle{ID: 2, Title: " Walk cat "})
	if next.Tasks[1].Title != "Walk cat" || next.Tasks[1].Status != todo.StatusTodo {
		t.Errorf("Tasks[1] = %+v", next.Tasks[1])
	}
	if len(effects) != 1 || effects[0].Severity != notify.Success {
		t.Errorf("effects = %+v", effects)
	}
}

func TestFilters(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, SetTitleFilter{Text: "milk"})
	s, _ = Reduce(s, SetStatusFilter{Status: todo.StatusDone})

	visible := Visible(s)
	if len(visible) != 2 {
		t.Fatalf("len(Visible) = %d, want 2: %+v", len(visible), visible)
	}
	for _, task := range visible {
		if task.Status != todo.StatusDone || !strings.Contains(strings.ToLower(task.Title), "milk") {
			t.Errorf("unexpected visible task %+v", task)
		}
	}
	if len(s.Tasks) != 4 {
		t.Errorf("filtering mutated Tasks: %+v", s.Tasks)
	}

	s, _ = Reduce(s, SetStatusFilter{Status: ""})
	if got := len(Visible(s)); got != 3 {
		t.Errorf("title-only filter len = %d, want 3", got)
	}

	s, _ = Reduce(s, ClearFilters{})
	if got := len(Visible(s)); got != len(s.Tasks) {
		t.Errorf("cleared filters len = %d, want %d", got, len(s.Tasks))
	}

	next, _ := Reduce(s, SetStatusFilter{Status: "Blocked"})
	if next.StatusFilter != "" {
		t.Errorf("invalid status filter applied: %q", next.StatusFilter)
	}
}

func TestSummaryIgnoresFilters(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, SetTitleFilter{Text: "dog"})
	counts := Summary(s)
	if counts[todo.StatusTodo] != 2 || counts[todo.StatusDone] != 2 || counts[todo.StatusInProgress] != 0 {
		t.Errorf("Summary = %v", counts)
	}
}

func TestMoveSwapsVisibleNeighbours(t *testing.T) {
	s := seeded(sampleTasks()...)
	s, _ = Reduce(s, SetStatusFilter{Status: todo.StatusDone})

	s, _ = Reduce(s, Move{ID: 4, Delta: -1})
	ids := []int{}
	for _, task := range s.Tasks {
		ids = append(ids, task.ID)
	}
	want := []int{4, 2, 3, 1}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}

	edge, _ := Reduce(s, Move{ID: 4, Delta: -1})
	if edge.Tasks[0].ID != 4 {
		t.Errorf("move past the top should be a no-op, got %+v", edge.Tasks)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := seeded(sampleTasks()...)
	snapshot := append([]todo.Task(nil), s.Tasks...)

	actions := []Action{
		SetStatus{ID: 1, Status: todo.StatusTodo},
		SetTitle{ID: 2, Title: "renamed"},
		Delete{ID: 3},
		Move{ID: 2, Delta: 1},
	}
	for _, a := range actions {
		Reduce(s, a)
		for i := range snapshot {
			if s.Tasks[i] != snapshot[i] {
				t.Fatalf("%s mutated input: %+v", Name(a), s.Tasks)
			}
		}
	}
}

func TestPage(t *testing.T) {
	var items []todo.Task
	for i := 1; i <= 45; i++ {
		items = append(items, todo.Task{ID: i})
	}
	if got := PageCount(len(items), 20); got != 3 {
		t.Errorf("PageCount = %d, want 3", got)
	}
	if got := PageCount(0, 20); got != 1 {
		t.Errorf("PageCount(0) = %d, want 1", got)
	}
	page := Page(items, 2, 20)
	if len(page) != 5 || page[0].ID != 41 {
		t.Errorf("last page = %+v", page)
	}
	if got := Page(items, 10, 20); len(got) != 5 {
		t.Errorf("clamped page len = %d, want 5", len(got))
	}
	if got := Page(nil, 0, 20); len(got) != 0 {
		t.Errorf("empty page = %+v", got)
	}
}
