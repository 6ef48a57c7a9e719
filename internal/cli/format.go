package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"questlog/internal/schedule"
)

var (
	mutedText  = lipgloss.NewStyle().Foreground(colorMuted)
	strongText = lipgloss.NewStyle().Bold(true)
)

// styledOutput is false for NO_COLOR, dumb terminals and redirected stdout,
// so piped command output stays plain.
func styledOutput() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func muted(text string) string {
	if !styledOutput() {
		return text
	}
	return mutedText.Render(text)
}

func strong(text string) string {
	if !styledOutput() {
		return text
	}
	return strongText.Render(text)
}

// categoryTag renders "[STAT414]" in the category colors.
func categoryTag(cat schedule.Category) string {
	tag := "[" + string(cat) + "]"
	if !styledOutput() {
		return tag
	}
	bg, fg := cat.Colors()
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg)).Render(tag)
}
