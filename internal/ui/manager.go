package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskgrid/internal/notify"
	"github.com/nibzard/taskgrid/internal/remote"
	"github.com/nibzard/taskgrid/internal/state"
	"github.com/nibzard/taskgrid/internal/todo"
)

// DefaultPageSize is used when ManagerOptions leaves PageSize unset.
const DefaultPageSize = 20

type inputMode int

const (
	modeList inputMode = iota
	modeFilter
	modeRename
)

type formFocus int

const (
	focusTitle formFocus = iota
	focusStatus
)

type loadedMsg struct {
	tasks []todo.Task
	err   error
}

// ManagerOptions configures a TaskManager.
type ManagerOptions struct {
	Context      context.Context
	Source       remote.Source
	FetchTimeout time.Duration
	PageSize     int
	Width        int
	Clock        func() time.Time
}

// TaskManager is the grid view over a state.Store.
type TaskManager struct {
	ctx      context.Context
	store    *state.Store
	source   remote.Source
	timeout  time.Duration
	pageSize int
	now      func() time.Time

	columns []Column
	grid    table.Model
	pages   paginator.Model
	cursor  int

	mode        inputMode
	showHelp    bool
	focus       formFocus
	titleInput  textinput.Model
	filterInput textinput.Model
	renameInput textinput.Model
	filterPrev  string
	renameID    int
}

// NewTaskManager builds the grid view. The store must already have its
// notification sink attached.
func NewTaskManager(store *state.Store, opts ManagerOptions) *TaskManager {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	m := &TaskManager{
		ctx:      opts.Context,
		store:    store,
		source:   opts.Source,
		timeout:  opts.FetchTimeout,
		pageSize: opts.PageSize,
		now:      opts.Clock,
	}

	m.columns = Columns(titleWidthFor(opts.Width))
	m.grid = table.New(
		table.WithColumns(tableColumns(m.columns)),
		table.WithFocused(true),
		table.WithHeight(m.pageSize+1),
		table.WithStyles(gridStyles()),
	)

	m.pages = paginator.New()
	m.pages.Type = paginator.Arabic
	m.pages.PerPage = m.pageSize

	m.titleInput = newInput("What needs doing?", 0)
	m.filterInput = newInput("title contains...", filterCharLimit)
	m.renameInput = newInput("new title", 0)

	m.sync()
	return m
}

// filterCharLimit bounds the title filter only. Title inputs are
// unlimited so editing a long remote title never truncates it.
const filterCharLimit = 256

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = limit
	in.Width = 48
	return in
}

// Init starts the one-shot remote load.
func (m *TaskManager) Init() tea.Cmd {
	return m.load()
}

func (m *TaskManager) load() tea.Cmd {
	if m.source == nil || m.store.State().Loading {
		return nil
	}
	m.dispatch(state.LoadStarted{})
	ctx, src, timeout := m.ctx, m.source, m.timeout
	return func() tea.Msg {
		tasks, err := remote.LoadTasks(ctx, src, timeout)
		return loadedMsg{tasks: tasks, err: err}
	}
}

func (m *TaskManager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			return m, m.dispatch(state.LoadFailed{Err: msg.err})
		}
		m.pages.Page = 0
		m.cursor = 0
		// Ids from the new load may name different tasks, so pending
		// edits against the old list are dropped.
		if m.mode == modeRename {
			m.mode = modeList
			m.renameID = 0
			m.renameInput.Blur()
		}
		cmd := m.dispatch(state.LoadSucceeded{Tasks: msg.tasks})
		if m.store.State().Modal == state.ModalClosed {
			m.titleInput.Blur()
		}
		return m, cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateFocusedInput(msg)
}

// dispatch applies an action and schedules expiry for every notification
// it produced.
func (m *TaskManager) dispatch(a state.Action) tea.Cmd {
	pushed := m.store.Dispatch(a)
	m.sync()
	if len(pushed) == 0 {
		return nil
	}
	now := m.now()
	cmds := make([]tea.Cmd, 0, len(pushed))
	for _, n := range pushed {
		cmds = append(cmds, expireAfter(n, now))
	}
	return tea.Batch(cmds...)
}

func expireAfter(n notify.Notification, now time.Time) tea.Cmd {
	d := n.Expires.Sub(now)
	if d <= 0 {
		d = time.Millisecond
	}
	id := n.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

func (m *TaskManager) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.store.State().Modal != state.ModalClosed {
		return m.handleFormKey(msg)
	}
	switch m.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeRename:
		return m.handleRenameKey(msg)
	}
	if m.showHelp {
		switch msg.String() {
		case "q":
			return tea.Quit
		case "?", "esc":
			m.showHelp = false
		}
		return nil
	}
	return m.handleListKey(msg)
}

func (m *TaskManager) handleListKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if action, ok := findRowAction(key); ok {
		task, ok := m.selected()
		if !ok {
			return nil
		}
		cmd := m.dispatch(action.Action(task.ID))
		if action.Kind == ActionEdit {
			return tea.Batch(cmd, m.openForm())
		}
		return cmd
	}

	switch key {
	case "q":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "left", "h", "pgup":
		m.pages.PrevPage()
		m.cursor = 0
		m.sync()
	case "right", "l", "pgdown":
		m.pages.NextPage()
		m.cursor = 0
		m.sync()
	case "a":
		cmd := m.dispatch(state.OpenCreate{})
		return tea.Batch(cmd, m.openForm())
	case "s", " ":
		if !m.editable("Status") {
			return nil
		}
		if task, ok := m.selected(); ok {
			return m.dispatch(state.SetStatus{ID: task.ID, Status: task.Status.Next()})
		}
	case "S":
		if !m.editable("Status") {
			return nil
		}
		if task, ok := m.selected(); ok {
			return m.dispatch(state.SetStatus{ID: task.ID, Status: task.Status.Prev()})
		}
	case "1", "2", "3":
		status := todo.Statuses()[int(key[0]-'1')]
		return m.filterBy(state.SetStatusFilter{Status: status})
	case "0":
		return m.filterBy(state.SetStatusFilter{})
	case "c":
		m.filterInput.SetValue("")
		return m.filterBy(state.ClearFilters{})
	case "/":
		m.mode = modeFilter
		m.filterPrev = m.store.State().TitleFilter
		m.filterInput.SetValue(m.filterPrev)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()
	case "i":
		if !m.editable("Title") {
			return nil
		}
		task, ok := m.selected()
		if !ok {
			return nil
		}
		m.mode = modeRename
		m.renameID = task.ID
		m.renameInput.SetValue(task.Title)
		m.renameInput.CursorEnd()
		return m.renameInput.Focus()
	case "K":
		return m.moveRow(-1)
	case "J":
		return m.moveRow(1)
	case "r":
		return m.load()
	case "?":
		m.showHelp = true
	}
	return nil
}

func (m *TaskManager) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	st := m.store.State()
	switch msg.String() {
	case "esc":
		m.titleInput.Blur()
		return m.dispatch(state.Cancel{})
	case "tab", "shift+tab":
		if m.focus == focusTitle {
			m.focus = focusStatus
			m.titleInput.Blur()
			return nil
		}
		m.focus = focusTitle
		return m.titleInput.Focus()
	case "enter":
		m.setDraft(m.titleInput.Value(), st.Draft.Status)
		creating := st.Modal == state.ModalCreate
		cmd := m.dispatch(state.Save{})
		if m.store.State().Modal == state.ModalClosed {
			m.titleInput.Blur()
			if creating {
				m.focusTask(st.NextID)
			}
		}
		return cmd
	}

	if m.focus == focusStatus {
		switch msg.String() {
		case "left", "h", "up", "k":
			m.setDraft(m.titleInput.Value(), st.Draft.Status.Prev())
		case "right", "l", "down", "j", " ":
			m.setDraft(m.titleInput.Value(), st.Draft.Status.Next())
		}
		return nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	if m.titleInput.Value() != st.Draft.Title {
		m.setDraft(m.titleInput.Value(), st.Draft.Status)
	}
	return cmd
}

func (m *TaskManager) setDraft(title string, status todo.Status) {
	m.store.Dispatch(state.DraftChanged{Draft: state.Draft{Title: title, Status: status}})
}

// openForm focuses the title field after the store opened the form.
func (m *TaskManager) openForm() tea.Cmd {
	st := m.store.State()
	if st.Modal == state.ModalClosed {
		return nil
	}
	m.focus = focusTitle
	m.titleInput.SetValue(st.Draft.Title)
	m.titleInput.CursorEnd()
	return m.titleInput.Focus()
}

func (m *TaskManager) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.filterInput.Blur()
		return nil
	case "esc":
		m.mode = modeList
		m.filterInput.Blur()
		m.filterInput.SetValue(m.filterPrev)
		return m.filterBy(state.SetTitleFilter{Text: m.filterPrev})
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != m.store.State().TitleFilter {
		return tea.Batch(cmd, m.filterBy(state.SetTitleFilter{Text: m.filterInput.Value()}))
	}
	return cmd
}

func (m *TaskManager) handleRenameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		title := m.renameInput.Value()
		cmd := m.dispatch(state.SetTitle{ID: m.renameID, Title: title})
		if _, err := todo.ValidateTitle(title); err == nil {
			m.mode = modeList
			m.renameInput.Blur()
		}
		return cmd
	case "esc":
		m.mode = modeList
		m.renameInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return cmd
}

// editable reports whether the named grid column accepts inline edits.
func (m *TaskManager) editable(title string) bool {
	for _, c := range m.columns {
		if c.Title == title {
			return c.Editable
		}
	}
	return false
}

func (m *TaskManager) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.store.State().Modal != state.ModalClosed && m.focus == focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.mode == modeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case m.mode == modeRename:
		m.renameInput, cmd = m.renameInput.Update(msg)
	}
	return cmd
}

func (m *TaskManager) filterBy(a state.Action) tea.Cmd {
	m.pages.Page = 0
	m.cursor = 0
	return m.dispatch(a)
}

func (m *TaskManager) moveRow(delta int) tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	cmd := m.dispatch(state.Move{ID: task.ID, Delta: delta})
	m.focusTask(task.ID)
	return cmd
}

func (m *TaskManager) moveCursor(delta int) {
	total := len(state.Visible(m.store.State()))
	pos := m.pages.Page*m.pageSize + m.cursor + delta
	if pos < 0 || pos >= total {
		return
	}
	m.pages.Page = pos / m.pageSize
	m.cursor = pos % m.pageSize
	m.sync()
}

// focusTask moves the page and cursor onto task id if it is visible.
func (m *TaskManager) focusTask(id int) {
	for i, t := range state.Visible(m.store.State()) {
		if t.ID == id {
			m.pages.Page = i / m.pageSize
			m.cursor = i % m.pageSize
			m.sync()
			return
		}
	}
}

func (m *TaskManager) currentPage() []todo.Task {
	visible := state.Visible(m.store.State())
	return state.Page(visible, m.pages.Page, m.pageSize)
}

// selected returns the task under the cursor.
func (m *TaskManager) selected() (todo.Task, bool) {
	rows := m.currentPage()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return todo.Task{}, false
	}
	return rows[m.cursor], true
}

// sync rebuilds the table rows and clamps page and cursor after any change.
func (m *TaskManager) sync() {
	visible := state.Visible(m.store.State())
	m.pages.TotalPages = state.PageCount(len(visible), m.pageSize)
	if m.pages.Page >= m.pages.TotalPages {
		m.pages.Page = m.pages.TotalPages - 1
	}
	if m.pages.Page < 0 {
		m.pages.Page = 0
	}

	rows := state.Page(visible, m.pages.Page, m.pageSize)
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.grid.SetRows(tableRows(m.columns, rows))
	if len(rows) > 0 {
		m.grid.SetCursor(m.cursor)
	}
}

func (m *TaskManager) resize(width, height int) {
	m.columns = Columns(titleWidthFor(width))
	m.grid.SetColumns(tableColumns(m.columns))
	m.grid.SetWidth(width)

	rows := m.pageSize
	if height > 0 {
		// Title, counters, pager, notifications and footer.
		if avail := height - 14; avail < rows {
			rows = max(avail, 3)
		}
	}
	m.grid.SetHeight(rows + 1)
	m.sync()
}

func (m *TaskManager) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	st := m.store.State()
	writeFilters(&b, st)
	b.WriteString(FormatSummary(state.Summary(st)) + "\n\n")

	visible := state.Visible(st)
	switch {
	case st.Loading && len(st.Tasks) == 0:
		b.WriteString("Loading tasks...\n\n")
	case len(visible) == 0:
		b.WriteString(EmptyMessage + "\n\n")
	default:
		b.WriteString(m.grid.View() + "\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Page %s  %d of %d tasks",
			m.pages.View(), len(visible), len(st.Tasks))) + "\n\n")
	}

	if st.LoadErr != nil && !st.Loading {
		b.WriteString(severityStyle(notify.Error).Render("Load failed: "+st.LoadErr.Error()) + "\n")
		b.WriteString("Press r to retry.\n\n")
	}

	if st.Modal != state.ModalClosed {
		b.WriteString(m.formView(st) + "\n\n")
	}

	switch m.mode {
	case modeFilter:
		b.WriteString("Filter: " + m.filterInput.View() + "\n\n")
	case modeRename:
		b.WriteString(fmt.Sprintf("Rename #%d: %s\n\n", m.renameID, m.renameInput.View()))
	}

	writeFooter(&b)
	return b.String()
}

func (m *TaskManager) formView(st state.State) string {
	var b strings.Builder
	heading := "Add Task"
	if st.Modal == state.ModalEdit {
		heading = fmt.Sprintf("Edit Task #%d", st.EditingID)
	}
	b.WriteString(headingStyle.Render(heading) + "\n\n")

	label := func(name string, f formFocus) string {
		if m.focus == f {
			return focusStyle.Render("> " + name)
		}
		return "  " + name
	}
	b.WriteString(label("Title:  ", focusTitle) + m.titleInput.View() + "\n")

	choices := make([]string, 0, len(todo.Statuses()))
	for _, s := range todo.Statuses() {
		if s == st.Draft.Status {
			choices = append(choices, statusStyle(s).Render("["+string(s)+"]"))
			continue
		}
		choices = append(choices, dimStyle.Render(" "+string(s)+" "))
	}
	b.WriteString(label("Status: ", focusStatus) + strings.Join(choices, " ") + "\n\n")
	b.WriteString(dimStyle.Render("tab switch field | ←/→ status | enter save | esc cancel"))
	return modalStyle.Render(b.String())
}

func writeTitle(b *strings.Builder) {
	title := "Task Manager"
	b.WriteString(headingStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeFilters(b *strings.Builder, st state.State) {
	if st.TitleFilter == "" && st.StatusFilter == "" {
		return
	}
	var parts []string
	if st.TitleFilter != "" {
		parts = append(parts, fmt.Sprintf("title contains %q", st.TitleFilter))
	}
	if st.StatusFilter != "" {
		parts = append(parts, "status "+string(st.StatusFilter))
	}
	b.WriteString(fmt.Sprintf("Filter: %s (c to clear)\n", strings.Join(parts, ", ")))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/down, k/j      Move selection\n")
	b.WriteString("  left/right, h/l   Previous/next page\n")
	b.WriteString("  a                 Add task\n")
	b.WriteString("  e, enter          Edit task\n")
	b.WriteString("  d, delete         Delete task\n")
	b.WriteString("  s, space          Cycle status (S backwards)\n")
	b.WriteString("  i                 Rename inline\n")
	b.WriteString("  K/J               Move row up/down\n")
	b.WriteString("  /                 Filter by title\n")
	b.WriteString("  1/2/3             Filter To Do/In Progress/Done\n")
	b.WriteString("  0                 Clear status filter\n")
	b.WriteString("  c                 Clear all filters\n")
	b.WriteString("  r                 Retry load\n")
	b.WriteString("  ?                 Toggle this help screen\n")
	b.WriteString("  q, ctrl+c         Quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(dimStyle.Render("Press ? for help | a to add | q to quit") + "\n")
}
