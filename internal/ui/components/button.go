package components

import (
	"strings"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

// Button is a styled button label.
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}

// ButtonRow renders buttons side by side with the one at index focused.
func ButtonRow(labels []string, focused int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = Button{Label: l, Active: i == focused}.View()
	}
	return strings.Join(parts, "  ")
}
