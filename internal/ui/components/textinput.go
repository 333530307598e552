package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and theme styling.
type TextInput struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
	MaxWidth    int
}

// NewTextInput creates a new styled text input. It starts blurred; call
// Focus on the one that should receive keys.
func NewTextInput(label, placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Label:       label,
		Model:       ti,
		NumericOnly: numericOnly,
		MaxWidth:    maxWidth,
	}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. Non-digit keys are dropped for numeric inputs.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the input.
func (t TextInput) View() string {
	label := theme.Muted
	if t.Model.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	if t.Label == "" {
		return t.Model.View()
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the current input value with surrounding spaces removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// NumericValue returns the input value as an integer. An empty input is 0.
func (t TextInput) NumericValue() (int, error) {
	v := t.Value()
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
