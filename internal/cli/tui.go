package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questlog/internal/calendar"
	"questlog/internal/completion"
	"questlog/internal/config"
	"questlog/internal/logging"
	"questlog/internal/paths"
	"questlog/internal/state"
	"questlog/internal/task"
	"questlog/internal/timeparse"
)

type paneFocus int

const (
	focusSidebar paneFocus = iota
	focusCalendar
)

const sidebarWidth = 34

var (
	colorAccent  = lipgloss.Color("69")
	colorMuted   = lipgloss.Color("241")
	colorDone    = lipgloss.Color("42")
	colorNowLine = lipgloss.Color("196")
)

type tickMsg time.Time

type stepMsg struct{ step completion.Step }

type okMsg struct{ msg string }

type errMsg struct{ err error }

type tuiModel struct {
	app *App
	st  state.State

	focus   paneFocus
	sidebar list.Model
	grid    viewport.Model
	form    questForm

	// dayIndex is the selected week column, 0 for Sunday.
	dayIndex   int
	gridOffset bool
	status     string
	now        time.Time

	winW int
	winH int
}

func logFilePath(cfg *config.Config) (string, error) {
	if cfg.LogFile != "" {
		return expandHome(cfg.LogFile), nil
	}
	return paths.LogPath()
}

func startTUI(app *App, mode calendar.Mode, ref time.Time) error {
	path, err := logFilePath(app.Config)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(path, app.Config.LogLevel)
	if err != nil {
		app.Logger.Warn("logging disabled while the TUI runs", "err", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	app.Logger = logger
	app.Logger.Info("session started", "view", mode, "date", ref.Format("2006-01-02"), "schedule_items", len(app.Schedule))

	tracker := completion.NewTracker(app.Config.CompleteDelay(), app.Config.RemoveDelay())
	model := newTUIModel(app, state.New(initialTasks(app), mode, ref, tracker))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	app.Logger.Info("session ended")
	return err
}

func newTUIModel(app *App, st state.State) tuiModel {
	now := app.Now()
	m := tuiModel{
		app:      app,
		st:       st,
		focus:    focusSidebar,
		sidebar:  newSidebarList(),
		grid:     viewport.New(0, 0),
		now:      now,
		dayIndex: int(st.Current.Weekday()),
	}
	m.refreshSidebar()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func scheduleSteps(steps []completion.Step) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(steps))
	for _, step := range steps {
		step := step
		cmds = append(cmds, tea.Tick(step.Delay, func(time.Time) tea.Msg { return stepMsg{step: step} }))
	}
	return tea.Batch(cmds...)
}

func (m tuiModel) Init() tea.Cmd {
	return tick()
}

func (m *tuiModel) setSizes() {
	if m.winW == 0 || m.winH == 0 {
		return
	}
	m.sidebar.SetSize(sidebarWidth-2, m.bodyHeight()-2)
	m.grid.Width = m.mainWidth()
	m.grid.Height = m.bodyHeight() - 1
	if m.grid.Height < 1 {
		m.grid.Height = 1
	}
	m.refreshGrid()
}

// bodyHeight is what is left below the header and above the footer.
func (m tuiModel) bodyHeight() int {
	h := m.winH - 6
	if h < 6 {
		h = 6
	}
	return h
}

func (m tuiModel) mainWidth() int {
	w := m.winW - 2
	if m.st.SidebarOpen {
		w -= sidebarWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		m.setSizes()
		return m, nil
	case tickMsg:
		m.now = time.Time(msg).In(m.app.Location)
		m.refreshGrid()
		return m, tick()
	case stepMsg:
		return m.applyStep(msg.step)
	case okMsg:
		m.status = msg.msg
		return m, nil
	case errMsg:
		m.app.Logger.Error("command failed", "err", msg.err)
		m.status = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.st.Modal.Open {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}
	if m.st.Modal.Open {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusCalendar
		} else if m.st.SidebarOpen {
			m.focus = focusSidebar
		}
		return m, nil
	case "w":
		m.st = m.st.WithView(calendar.Weekly)
		m.gridOffset = false
		m.refreshGrid()
		return m, nil
	case "m":
		m.st = m.st.WithView(calendar.Monthly)
		m.refreshGrid()
		return m, nil
	case "b":
		m.st = m.st.ToggleSidebar()
		if !m.st.SidebarOpen {
			m.focus = focusCalendar
		}
		m.setSizes()
		return m, nil
	case "h", "[", "pgup":
		m.st = m.st.Prev()
		m.refreshGrid()
		return m, nil
	case "l", "]", "pgdown":
		m.st = m.st.Next()
		m.refreshGrid()
		return m, nil
	case "t":
		m.st = m.st.Today(m.app.Now())
		m.dayIndex = int(m.st.Current.Weekday())
		m.gridOffset = false
		m.refreshGrid()
		return m, nil
	case "n":
		m.st = m.st.OpenNew()
		m.form = newQuestForm(m.st.Modal, m.selectedDay())
		return m, nil
	case "i":
		m.status = "Exporting week..."
		return m, exportWeekCmd(m.app, m.st.Current)
	}

	if m.focus == focusSidebar && m.st.SidebarOpen {
		switch msg.String() {
		case " ", "x":
			return m.completeSelected()
		case "enter", "e":
			m.editSelected()
			return m, nil
		case "d", "delete":
			m.deleteSelected()
			return m, nil
		}
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "left":
		m.dayIndex = (m.dayIndex + calendar.DaysPerWeek - 1) % calendar.DaysPerWeek
		m.refreshGrid()
		return m, nil
	case "right":
		m.dayIndex = (m.dayIndex + 1) % calendar.DaysPerWeek
		m.refreshGrid()
		return m, nil
	}
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.st = m.st.CloseModal()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if !m.form.onDescription() {
			m.form.focus(m.form.step + 1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m tuiModel) submitForm() (tea.Model, tea.Cmd) {
	input, err := m.form.values(m.app.Now(), m.app.Location)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	editing := m.st.Modal.Editing
	st, saved, ok := m.st.Save(input, task.NewID)
	m.st = st
	if !ok {
		m.app.Logger.Debug("save ignored, quest no longer exists", "id", input.ID)
		m.status = "Quest no longer exists"
		m.refreshSidebar()
		return m, nil
	}
	if editing {
		m.app.Logger.Info("quest updated", "id", saved.ID, "title", saved.Title)
		m.status = "✅ Quest updated"
	} else {
		m.app.Logger.Info("quest created", "id", saved.ID, "title", saved.Title)
		m.status = "✅ Quest created"
	}
	m.refreshSidebar()
	m.selectQuest(saved.ID)
	return m, nil
}

func (m tuiModel) completeSelected() (tea.Model, tea.Cmd) {
	quest, ok := m.selectedQuest()
	if !ok {
		return m, nil
	}
	st, steps, ok := m.st.Complete(quest.ID)
	if !ok {
		return m, nil
	}
	m.st = st
	m.app.Logger.Debug("completion started", "id", quest.ID)
	m.refreshSidebar()
	return m, scheduleSteps(steps)
}

func (m tuiModel) applyStep(step completion.Step) (tea.Model, tea.Cmd) {
	quest, _ := m.st.Tasks.Find(step.TaskID)
	st, ok := m.st.ApplyStep(step)
	m.st = st
	if !ok {
		m.app.Logger.Debug("stale completion step dropped", "id", step.TaskID, "phase", step.Phase)
		return m, nil
	}
	if step.Phase == completion.Removed {
		m.app.Logger.Info("quest completed", "id", quest.ID, "title", quest.Title)
		m.status = fmt.Sprintf("✅ %s completed", quest.Title)
	}
	m.refreshSidebar()
	return m, nil
}

func (m *tuiModel) editSelected() {
	quest, ok := m.selectedQuest()
	if !ok {
		return
	}
	st, ok := m.st.OpenEdit(quest.ID)
	if !ok {
		if m.st.Completion.Running(quest.ID) {
			m.status = "Quest is being completed"
		} else {
			m.status = "Quest no longer exists"
			m.refreshSidebar()
		}
		return
	}
	m.st = st
	m.form = newQuestForm(m.st.Modal, m.selectedDay())
}

// deleteSelected drops the selected quest without completing it. A running
// completion for it is forgotten, so its pending steps become no-ops.
func (m *tuiModel) deleteSelected() {
	quest, ok := m.selectedQuest()
	if !ok {
		return
	}
	st, ok := m.st.Remove(quest.ID)
	if !ok {
		m.status = "Quest no longer exists"
		m.refreshSidebar()
		return
	}
	m.st = st
	m.app.Logger.Info("quest deleted", "id", quest.ID, "title", quest.Title)
	m.status = fmt.Sprintf("🗑 %s deleted", quest.Title)
	m.refreshSidebar()
}

// exportWeekCmd writes the schedule of ref's week as ICS into the state
// directory and reports back with okMsg or errMsg.
func exportWeekCmd(app *App, ref time.Time) tea.Cmd {
	return func() tea.Msg {
		dir, err := paths.StateDir()
		if err != nil {
			return errMsg{err: err}
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errMsg{err: err}
		}
		weekStart := calendar.WeekStart(ref)
		path := filepath.Join(dir, "week-"+weekStart.Format(timeparse.DateLayout)+".ics")
		if err := exportICS(app, path, weekStart); err != nil {
			return errMsg{err: err}
		}
		return okMsg{msg: "📅 Exported " + path}
	}
}

// selectedDay is the day a new quest defaults to: the selected week column
// in the weekly view, the current date otherwise.
func (m tuiModel) selectedDay() time.Time {
	if m.st.View == calendar.Weekly {
		days := calendar.Week(m.st.Current)
		if m.dayIndex >= 0 && m.dayIndex < len(days) {
			return days[m.dayIndex].Date
		}
	}
	return m.st.Current
}

func (m *tuiModel) refreshGrid() {
	if m.grid.Width == 0 {
		return
	}
	if m.st.View == calendar.Monthly {
		m.grid.SetContent(m.renderMonthGrid(m.grid.Width, m.grid.Height))
		m.grid.SetYOffset(0)
		return
	}
	content, focusRow := m.renderWeekRows(m.grid.Width)
	m.grid.SetContent(content)
	if !m.gridOffset {
		m.grid.SetYOffset(focusRow - m.grid.Height/3)
		m.gridOffset = true
	}
}

func (m tuiModel) View() string {
	if m.winW == 0 {
		return "Loading..."
	}
	header := m.renderHeader()
	var body string
	if m.st.Modal.Open {
		body = lipgloss.Place(m.winW-2, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.form.view(m.st.Modal.Title()))
	} else {
		main := m.renderMain()
		if m.st.SidebarOpen {
			body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
		} else {
			body = main
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(header + "\n" + body + "\n" + m.renderFooter())
}

func (m tuiModel) renderMain() string {
	if m.st.View == calendar.Monthly {
		return m.grid.View()
	}
	header := m.renderWeekHeader(m.grid.Width)
	details := m.renderDayDetails(m.grid.Width)
	return strings.Join([]string{header, m.grid.View(), details}, "\n")
}

func (m tuiModel) renderHeader() string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("QUESTLOG")
	menu := "≡"
	if !m.st.SidebarOpen {
		menu = "☰"
	}
	var rangeText string
	if m.st.View == calendar.Monthly {
		rangeText = calendar.MonthText(m.st.Current)
	} else {
		rangeText = fmt.Sprintf("%s · Week %s", calendar.WeekRangeText(m.st.Current), calendar.WeekNumber(m.st.Current))
	}
	toggle := func(label string, active bool) string {
		if active {
			return lipgloss.NewStyle().Reverse(true).Bold(true).Render(" " + label + " ")
		}
		return lipgloss.NewStyle().Foreground(colorMuted).Render(" " + label + " ")
	}
	views := toggle("Weekly", m.st.View == calendar.Weekly) + toggle("Monthly", m.st.View == calendar.Monthly)
	clock := lipgloss.NewStyle().Bold(true).Render(m.now.Format("15:04:05"))

	left := menu + " " + logo + "  ‹ " + lipgloss.NewStyle().Bold(true).Render(rangeText) + " ›"
	right := views + "  " + clock
	gap := m.winW - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return line + "\n" + lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("─", max(m.winW-2, 0)))
}

func (m tuiModel) renderFooter() string {
	keys := "tab: focus • h/l: prev/next • t: today • w/m: view • b: sidebar • n: new • i: export • q: quit"
	if m.focus == focusSidebar && m.st.SidebarOpen {
		keys = "space: complete • enter: edit • d: delete • " + keys
	} else if m.st.View == calendar.Weekly {
		keys = "←/→: day • ↑/↓: scroll • " + keys
	}
	if m.st.Modal.Open {
		keys = "tab/shift+tab: field • ctrl+s: save • esc: cancel"
	}
	status := ""
	if m.status != "" {
		status = m.status + "  "
	}
	return truncateText(status, m.winW-2) + lipgloss.NewStyle().Foreground(colorMuted).Render(truncateText(keys, max(m.winW-2-lipgloss.Width(status), 0)))
}
