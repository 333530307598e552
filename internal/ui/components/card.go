package components

import (
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given outer width.
func Card(content string, width int) string {
	return theme.Card.
		Width(width).
		Render(content)
}

// TitledCard renders a card whose first line is a bold title.
func TitledCard(title, content string, width int) string {
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)
	return Card(head+"\n"+content, width)
}

// HighlightCard renders a card with the accent border used for the item
// under the cursor.
func HighlightCard(content string, width int) string {
	return theme.Card.
		BorderForeground(theme.Primary).
		Width(width).
		Render(content)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
