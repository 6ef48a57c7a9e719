package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questlog/internal/completion"
	"questlog/internal/task"
	"questlog/internal/timeparse"
)

type questItem struct {
	Task  task.Task
	Phase completion.Phase
}

func (q questItem) Title() string       { return q.Task.Title }
func (q questItem) Description() string { return dueText(q.Task) }
func (q questItem) FilterValue() string { return q.Task.Title }

// dueText renders "Jan 12 · 14:30", falling back to the raw values.
func dueText(t task.Task) string {
	date := t.DueDate
	if d, err := time.Parse(timeparse.DateLayout, t.DueDate); err == nil {
		date = d.Format("Jan 2")
	}
	if t.DueTime == "" {
		return date
	}
	return date + " · " + t.DueTime
}

// questDelegate draws a card: a check circle and title, then the due line.
type questDelegate struct{}

func (d questDelegate) Height() int                             { return 2 }
func (d questDelegate) Spacing() int                            { return 1 }
func (d questDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d questDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	quest, ok := item.(questItem)
	if !ok {
		return
	}
	width := m.Width()
	if width <= 0 {
		width = sidebarWidth - 2
	}
	mark := "○"
	titleStyle := lipgloss.NewStyle()
	descStyle := lipgloss.NewStyle().Foreground(colorMuted)
	switch quest.Phase {
	case completion.Checked:
		mark = "✓"
	case completion.Completed:
		mark = "✓"
		titleStyle = titleStyle.Background(colorDone).Foreground(lipgloss.Color("16")).Strikethrough(true)
		descStyle = descStyle.Background(colorDone).Foreground(lipgloss.Color("16"))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "▌ "
		if quest.Phase == completion.Idle {
			titleStyle = titleStyle.Foreground(colorAccent).Bold(true)
		}
	}
	title := truncateText(fmt.Sprintf("%s %s", mark, quest.Task.Title), width-2)
	desc := truncateText("  "+quest.Description(), width-2)
	fmt.Fprint(w, prefix+titleStyle.Render(padText(title, width-2))+"\n"+"  "+descStyle.Render(padText(desc, width-2)))
}

func newSidebarList() list.Model {
	model := list.New([]list.Item{}, questDelegate{}, 0, 0)
	model.SetShowTitle(false)
	model.SetShowStatusBar(false)
	model.SetFilteringEnabled(false)
	model.SetShowHelp(false)
	model.KeyMap.Quit.SetEnabled(false)
	styles := model.Styles
	styles.PaginationStyle = styles.PaginationStyle.Foreground(colorMuted)
	model.Styles = styles
	return model
}

// refreshSidebar rebuilds the cards from state, keeping the cursor in place.
func (m *tuiModel) refreshSidebar() {
	tasks := m.st.Tasks.Items()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, questItem{Task: t, Phase: m.st.Phase(t.ID)})
	}
	index := m.sidebar.Index()
	m.sidebar.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.sidebar.Select(index)
	}
}

func (m *tuiModel) selectQuest(id string) {
	for i, item := range m.sidebar.Items() {
		if quest, ok := item.(questItem); ok && quest.Task.ID == id {
			m.sidebar.Select(i)
			return
		}
	}
}

func (m tuiModel) selectedQuest() (task.Task, bool) {
	item := m.sidebar.SelectedItem()
	if item == nil {
		return task.Task{}, false
	}
	quest, ok := item.(questItem)
	if !ok {
		return task.Task{}, false
	}
	return quest.Task, true
}

func (m tuiModel) renderSidebar() string {
	height := m.bodyHeight()
	titleStyle := lipgloss.NewStyle().Bold(true)
	if m.focus == focusSidebar {
		titleStyle = titleStyle.Foreground(colorAccent)
	}
	lines := []string{titleStyle.Render("ACTIVE QUESTS") + "  " + muted(fmt.Sprintf("%d PENDING", m.st.Pending())), ""}
	if m.st.Pending() == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorMuted).Italic(true).Render("All quests completed."))
	} else {
		lines = append(lines, m.sidebar.View())
	}
	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(sidebarWidth - 1).
		Height(height).
		MaxHeight(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(colorMuted).
		Render(body)
}
