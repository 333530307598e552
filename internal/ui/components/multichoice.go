package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

// MultiChoice is a scrolling list with a cursor. Checked state lives with
// the caller and is passed to View, so the same list serves single and
// multiple selection.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	// Height is the number of visible rows; 0 shows everything.
	Height int
}

// NewMultiChoice creates a new list over options.
func NewMultiChoice(question string, options []string, height int) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Height:   height,
	}
}

// Current returns the option under the cursor, or "" for an empty list.
func (m MultiChoice) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Update moves the cursor.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = max(len(m.Options)-1, 0)
	}
	return m
}

// window returns the visible option range around the cursor.
func (m MultiChoice) window() (int, int) {
	if m.Height <= 0 || len(m.Options) <= m.Height {
		return 0, len(m.Options)
	}
	start := m.Selected - m.Height/2
	start = max(0, min(start, len(m.Options)-m.Height))
	return start, start + m.Height
}

// View renders the list. checked may be nil.
func (m MultiChoice) View(checked func(option string) bool) string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
		b.WriteString("\n\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		opt := m.Options[i]
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		box := ""
		if checked != nil {
			box = "[ ] "
			if checked(opt) {
				box = "[x] "
			}
		}

		line := prefix + box + opt
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		case checked != nil && checked(opt):
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	if end-start < len(m.Options) {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", m.Selected+1, len(m.Options))))
		b.WriteString("\n")
	}
	return b.String()
}
