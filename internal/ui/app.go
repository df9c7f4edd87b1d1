package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/td0m/stuff/pkg/persist"
	"github.com/td0m/stuff/pkg/task"
	"github.com/td0m/stuff/pkg/view"
)

// SettleDelay is the undo window between checking a task off and the
// completion committing. A second press inside the window cancels.
const SettleDelay = 600 * time.Millisecond

const (
	headerHeight = 3
	footerHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeSearch
	modePlanning
)

// settleMsg commits a staged completion once the undo window has passed.
type settleMsg struct {
	id task.ID
}

var views = []view.View{view.Inbox, view.Today, view.Upcoming, view.Anytime, view.Focus, view.Dashboard}

type App struct {
	mode mode

	viewport viewport.Model
	input    textinput.Model
	tabs     Tabs

	sel     view.Selection
	cursor  int
	visible []task.Task
	projIdx int

	// planning ritual state
	plannable  []task.Task
	selected   map[task.ID]bool
	planCursor int

	status string

	store *task.Store
	kv    persist.KV
	prefs Prefs
	log   *zap.Logger
}

func NewApp(store *task.Store, kv persist.KV, prefs Prefs, log *zap.Logger) *App {
	i := textinput.NewModel()
	i.Prompt = "> "
	i.Width = 40

	a := &App{
		input: i,
		tabs:  NewTabs([]string{"Inbox", "Today", "Upcoming", "Anytime", "Focus", "Dashboard"}),
		sel:   view.Selection{View: view.View(prefs.DefaultView)},
		store: store,
		kv:    kv,
		prefs: prefs,
		log:   log,
	}
	for i, v := range views {
		if v == a.sel.View {
			a.tabs.Set(i)
		}
	}
	if store.NeedsPlanning(time.Now()) {
		a.startPlanning()
	}
	a.refresh()
	return a
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.tabs.Width = msg.Width
		m.setCursor(m.cursor)
	case settleMsg:
		// Settle is a no-op when the toggle was undone in the meantime
		if _, err := m.store.Settle(msg.id); err == nil {
			m.save()
			m.refresh()
		}
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.save()
			return m, tea.Quit
		case tea.KeyEsc:
			m.mode = modeNormal
			m.input.SetValue("")
			m.refresh()
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

func (m *App) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch m.mode {
	case modePlanning:
		return m.planningKey(msg)
	case modeInput, modeSearch:
		return m.inputKey(msg)
	}

	switch msg.String() {
	case "q":
		m.save()
		return tea.Quit
	case "1", "2", "3", "4", "5", "6":
		i, _ := strconv.Atoi(msg.String())
		m.setTab(i - 1)
	case "p":
		if len(m.store.Projects) > 0 {
			m.projIdx = (m.projIdx + 1) % len(m.store.Projects)
			m.sel = view.Selection{View: view.Project, ProjectID: m.store.Projects[m.projIdx].ID}
			m.refresh()
			m.setCursor(0)
		}
	case "j":
		m.setCursor(m.cursor + 1)
	case "k":
		m.setCursor(m.cursor - 1)
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible))
	case "o":
		m.mode = modeInput
		m.input.SetValue("")
		m.input.Focus()
	case "/":
		m.mode = modeSearch
		m.input.SetValue("")
		m.input.Focus()
		m.refresh()
	case " ":
		if t, ok := m.atCursor(); ok {
			if _, err := m.store.ToggleComplete(t.ID, time.Now()); err == nil {
				if m.store.PendingCompletion(t.ID) {
					id := t.ID
					m.refresh()
					return tea.Tick(SettleDelay, func(time.Time) tea.Msg { return settleMsg{id} })
				}
				// either an undo or a completed task toggled back
				m.save()
				m.refresh()
			}
		}
	case "x":
		if t, ok := m.atCursor(); ok {
			if err := m.store.DeleteTask(t.ID); err == nil {
				m.save()
				m.refresh()
			}
		}
	case "f":
		if t, ok := m.atCursor(); ok {
			if err := m.store.AddFocus(t.ID); err == task.ErrFocusFull {
				m.status = fmt.Sprintf("focus is full (max %d)", task.MaxFocus)
			} else if err == nil {
				m.save()
			}
		}
	case "F":
		if t, ok := m.atCursor(); ok {
			m.store.RemoveFocus(t.ID)
			m.save()
			m.refresh()
		}
	}
	return nil
}

func (m *App) inputKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		if m.mode == modeInput {
			m.createTask()
		} else {
			m.mode = modeNormal
			m.input.SetValue("")
			m.refresh()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.refresh()
	}
	return cmd
}

func (m *App) createTask() {
	fields := task.Fields{Title: m.input.Value()}
	// new tasks land in the bucket (or project) on screen
	switch m.sel.View {
	case view.Today:
		fields.When = task.WhenToday
	case view.Upcoming:
		fields.When = task.WhenUpcoming
	case view.Anytime:
		fields.When = task.WhenAnytime
	case view.Project:
		id := m.sel.ProjectID
		fields.ProjectID = &id
	}
	if _, err := m.store.CreateTask(fields, time.Now()); err != nil {
		m.status = "a task needs a title"
		return
	}
	m.save()
	m.input.SetValue("")
	m.mode = modeNormal
	m.refresh()
}

func (m *App) planningKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j":
		if m.planCursor < len(m.plannable)-1 {
			m.planCursor++
		}
	case "k":
		if m.planCursor > 0 {
			m.planCursor--
		}
	case " ":
		t := m.plannable[m.planCursor]
		m.selected[t.ID] = !m.selected[t.ID]
	case "enter":
		ids := []task.ID{}
		for _, t := range m.plannable {
			if m.selected[t.ID] {
				ids = append(ids, t.ID)
			}
		}
		if err := m.store.CompletePlanning(ids, time.Now()); err != nil {
			m.status = "pick at least one task for today"
			return nil
		}
		m.save()
		m.mode = modeNormal
		m.setTab(1) // planning always lands on Today
	}
	return nil
}

func (m *App) startPlanning() {
	m.mode = modePlanning
	m.selected = map[task.ID]bool{}
	m.plannable = nil
	for _, t := range m.store.Tasks {
		if !t.Completed {
			m.plannable = append(m.plannable, t)
		}
	}
	m.planCursor = 0
}

func (m *App) setTab(i int) {
	if i < 0 || i >= len(views) {
		return
	}
	m.tabs.Set(i)
	m.sel = view.Selection{View: views[i]}
	m.kv.Save(persist.KeyView, string(m.sel.View))
	m.refresh()
	m.setCursor(0)
}

// refresh rederives the visible task list from the store.
func (m *App) refresh() {
	if m.mode == modeSearch {
		m.visible = view.Search(m.store.Tasks, m.input.Value())
	} else {
		m.visible = view.Filter(m.store.Tasks, m.sel, m.store.Focus, time.Now())
	}
	m.setCursor(m.cursor)
}

func (m *App) save() {
	if err := persist.SaveStore(m.kv, m.store); err != nil {
		m.log.Error("save failed", zap.Error(err))
		m.status = "saving failed, check the log"
	}
}

func (m *App) setCursor(v int) {
	m.cursor = clamp(v, 0, max(len(m.visible)-1, 0))
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m App) atCursor() (task.Task, bool) {
	if m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *App) render() {
	switch {
	case m.mode == modePlanning:
		m.viewport.SetContent(m.viewPlanning())
	case m.sel.View == view.Dashboard && m.mode != modeSearch:
		m.viewport.SetContent(m.viewDashboard())
	default:
		m.viewport.SetContent(m.viewTasks())
	}
}

func (m App) viewTasks() string {
	var b strings.Builder
	for i, t := range m.visible {
		cursor := "  "
		if i == m.cursor && m.mode != modeInput {
			cursor = "> "
		}
		b.WriteString(cursor + m.taskLine(t) + "\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(TaskMeta.Render("  nothing here") + "\n")
	}
	return b.String()
}

func (m App) taskLine(t task.Task) string {
	box, title := "[ ]", TaskTitle
	if t.Completed || m.store.PendingCompletion(t.ID) {
		box, title = "[x]", DoneTitle
	}
	s := box + " " + title.Render(t.Title)
	for _, id := range m.store.Focus {
		if id == t.ID {
			s += WarningStyle.Render(" ★")
		}
	}
	if t.Deadline != nil {
		s += TaskMeta.Render("  " + formatDate(*t.Deadline, time.Now()))
	}
	if t.Recurring != "" {
		s += TaskMeta.Render(" ⭮")
	}
	for _, tag := range t.Tags {
		s += TaskMeta.Render(" #" + tag)
	}
	return s
}

func (m App) viewPlanning() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render("Plan your day") + "\n")
	b.WriteString(TaskMeta.Render("space to pick, enter to start") + "\n\n")
	for i, t := range m.plannable {
		cursor := "  "
		if i == m.planCursor {
			cursor = "> "
		}
		box := "[ ]"
		if m.selected[t.ID] {
			box = "[x]"
		}
		b.WriteString(cursor + box + " " + TaskTitle.Render(t.Title) + "\n")
	}
	return b.String()
}

func (m App) viewDashboard() string {
	now := time.Now()
	st := view.Collect(m.store.Tasks, m.store.Projects, now)
	var b strings.Builder
	b.WriteString(HeadingStyle.Render("This week") + "\n")
	b.WriteString(fmt.Sprintf("  %d completed · %d%% of all tasks · %d active\n\n",
		st.CompletedThisWeek, st.CompletionRate, st.Active))
	if len(st.TopProjects) > 0 {
		b.WriteString(HeadingStyle.Render("Top projects") + "\n")
		for i, pc := range st.TopProjects {
			b.WriteString(fmt.Sprintf("  %d. %s (%d tasks)\n", i+1, pc.Project.Name, pc.Tasks))
		}
		b.WriteString("\n")
	}
	if abandoned := view.Abandoned(m.store.Tasks, now); len(abandoned) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Abandoned (%d)", len(abandoned))) + "\n")
		b.WriteString(TaskMeta.Render("  sitting in Anytime for over a week") + "\n")
		for _, t := range abandoned {
			days := int(now.Sub(t.CreatedAt).Hours()) / 24
			b.WriteString(fmt.Sprintf("  %s  %s\n", t.Title, TaskMeta.Render(fmt.Sprintf("%d days ago", days))))
		}
	}
	return b.String()
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m App) View() string {
	now := time.Now()
	m.tabs.Info = "today: " + formatMinutes(view.TodayMinutes(m.store.Tasks, now))
	footer := ""
	switch m.mode {
	case modeInput:
		footer = "new: " + m.input.View()
	case modeSearch:
		footer = "find: " + m.input.View()
	default:
		stale := len(view.Stale(m.store.Tasks, now))
		if stale > 0 {
			footer = WarningStyle.Render(fmt.Sprintf("%d stale", stale))
		}
	}
	if m.status != "" {
		footer = ErrorStyle.Render(m.status)
	}
	return m.tabs.View() + m.viewport.View() + "\n" + FooterStyle.Render(footer)
}

func formatDate(t time.Time, now time.Time) string {
	days := int(t.Sub(now.Truncate(24 * time.Hour)).Hours()) / 24
	switch {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 14:
		return strconv.Itoa(days) + " days"
	default:
		return t.Format("2 Jan")
	}
}

func formatMinutes(total int) string {
	h, m := total/60, total%60
	switch {
	case total == 0:
		return "0m"
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
