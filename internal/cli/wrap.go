package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	lines := []string{}
	line := ""
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if line == "" {
			line = word
			lineWidth = wordWidth
			continue
		}
		if lineWidth+1+wordWidth > width {
			lines = append(lines, line)
			line = word
			lineWidth = wordWidth
			continue
		}
		line += " " + word
		lineWidth += 1 + wordWidth
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// truncateText cuts text to max display columns, ending in "..." when cut.
func truncateText(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= max {
		return text
	}
	if max <= 3 {
		return runewidth.Truncate(text, max, "")
	}
	return runewidth.Truncate(text, max, "...")
}

// padText fits text into exactly width display columns.
func padText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.FillRight(text, width)
}
