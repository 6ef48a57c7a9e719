package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"questlog/internal/state"
	"questlog/internal/task"
	"questlog/internal/timeparse"
)

const formWidth = 48

var formLabels = []string{"Title", "Date", "Time", "Description"}

// questForm is the add/edit modal: three single-line inputs followed by the
// description textarea.
type questForm struct {
	inputs []textinput.Model
	desc   textarea.Model
	step   int
	id     string
}

func newQuestForm(modal state.Modal, defaultDay time.Time) questForm {
	titleInput := textinput.New()
	titleInput.Placeholder = "What needs doing?"
	titleInput.CharLimit = 120

	dateInput := textinput.New()
	dateInput.Placeholder = "Date (e.g. 2025-01-15 or tomorrow)"
	dateInput.CharLimit = 40

	timeInput := textinput.New()
	timeInput.Placeholder = "Time (HH:MM)"
	timeInput.CharLimit = 5

	desc := textarea.New()
	desc.Placeholder = "Notes"
	desc.ShowLineNumbers = false
	desc.SetWidth(formWidth - 4)
	desc.SetHeight(4)

	if modal.Editing {
		titleInput.SetValue(modal.Task.Title)
		dateInput.SetValue(modal.Task.DueDate)
		timeInput.SetValue(modal.Task.DueTime)
		desc.SetValue(modal.Task.Description)
	} else if !defaultDay.IsZero() {
		dateInput.SetValue(defaultDay.Format(timeparse.DateLayout))
	}

	f := questForm{
		inputs: []textinput.Model{titleInput, dateInput, timeInput},
		desc:   desc,
		id:     modal.Task.ID,
	}
	f.focus(0)
	return f
}

func (f questForm) fields() int { return len(f.inputs) + 1 }

func (f questForm) onDescription() bool { return f.step == len(f.inputs) }

func (f *questForm) focus(step int) {
	step = (step%f.fields() + f.fields()) % f.fields()
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.desc.Blur()
	f.step = step
	if f.onDescription() {
		f.desc.Focus()
		return
	}
	f.inputs[step].Focus()
}

func (f questForm) update(msg tea.Msg) (questForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			if !f.onDescription() || key.String() == "tab" {
				f.focus(f.step + 1)
				return f, nil
			}
		case "shift+tab", "up":
			if !f.onDescription() || key.String() == "shift+tab" {
				f.focus(f.step - 1)
				return f, nil
			}
		case "ctrl+u":
			if f.onDescription() {
				f.desc.Reset()
			} else {
				f.inputs[f.step].SetValue("")
				f.inputs[f.step].SetCursor(0)
			}
			return f, nil
		}
	}
	var cmd tea.Cmd
	if f.onDescription() {
		f.desc, cmd = f.desc.Update(msg)
		return f, cmd
	}
	f.inputs[f.step], cmd = f.inputs[f.step].Update(msg)
	return f, cmd
}

// values validates the required fields and normalizes date and time.
func (f questForm) values(now time.Time, loc *time.Location) (task.Task, error) {
	title := strings.TrimSpace(f.inputs[0].Value())
	if title == "" {
		return task.Task{}, fmt.Errorf("title is required")
	}
	date, err := timeparse.NormalizeDate(f.inputs[1].Value(), now, loc)
	if err != nil {
		return task.Task{}, err
	}
	clock, err := timeparse.NormalizeClock(f.inputs[2].Value())
	if err != nil {
		return task.Task{}, err
	}
	return task.Task{
		ID:          f.id,
		Title:       title,
		DueDate:     date,
		DueTime:     clock,
		Description: strings.TrimSpace(f.desc.Value()),
	}, nil
}

func (f questForm) view(title string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title) + "\n\n")
	for i, input := range f.inputs {
		cursor := " "
		if i == f.step {
			cursor = "▶"
		}
		b.WriteString(fmt.Sprintf("%s %-5s %s\n", cursor, formLabels[i], input.View()))
	}
	cursor := " "
	if f.onDescription() {
		cursor = "▶"
	}
	b.WriteString(fmt.Sprintf("\n%s %s\n%s\n", cursor, formLabels[len(formLabels)-1], f.desc.View()))
	b.WriteString("\n" + muted("tab: next field • ctrl+s: save • esc: cancel"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(formWidth).
		Render(b.String())
}
