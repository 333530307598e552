package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type pressed string

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One", Action: func() tea.Cmd { return func() tea.Msg { return pressed("one") } }},
		{Label: "Also off", Disabled: true},
		{Label: "Two", Action: func() tea.Cmd { return func() tea.Msg { return pressed("two") } }},
	})
	assert.Equal(t, 1, m.Selected, "starts on the first enabled item")

	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, 3, m.Selected, "stays at the last enabled item")

	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, pressed("two"), cmd())

	m, _ = m.Update(key(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "▸ One")
	assert.NotContains(t, view, "▸ Two")
}

func TestMultiChoiceWindow(t *testing.T) {
	opts := []string{"a", "b", "c", "d", "e", "f"}
	m := NewMultiChoice("", opts, 3)

	start, end := m.window()
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	m = m.Update(key(tea.KeyEnd))
	assert.Equal(t, "f", m.Current())
	start, end = m.window()
	assert.Equal(t, [2]int{3, 6}, [2]int{start, end})

	m.Selected = 2
	start, end = m.window()
	assert.Equal(t, [2]int{1, 4}, [2]int{start, end})

	view := ansi.Strip(m.View(func(o string) bool { return o == "c" }))
	assert.Contains(t, view, "▸ [x] c")
	assert.Contains(t, view, "[ ] b")
	assert.NotContains(t, view, "[ ] a")
	assert.Contains(t, view, "3/6")
}

func TestMultiChoiceEmpty(t *testing.T) {
	m := NewMultiChoice("Pick", nil, 0)
	m = m.Update(key(tea.KeyDown))
	assert.Equal(t, "", m.Current())
	assert.Equal(t, 0, m.Selected)
}

func TestProgressBarClamps(t *testing.T) {
	over := ansi.Strip(NewProgressBar("", 1.7, true, 30).View())
	assert.True(t, strings.HasSuffix(over, "100%"), over)

	under := ansi.Strip(NewProgressBar("", -0.5, true, 30).View())
	assert.True(t, strings.HasSuffix(under, "0%"), under)
}

func TestProgressBarLabelWidth(t *testing.T) {
	bar := NewProgressBar("SQL", 0.5, false, 40)
	bar.LabelWidth = 8
	assert.True(t, strings.HasPrefix(ansi.Strip(bar.View()), "SQL       "))
}

func TestSkillBars(t *testing.T) {
	out := ansi.Strip(SkillBars(map[string]float64{"Python": 4, "C": 2.5}, theme.Primary, "none", 60))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "C "), "sorted by name")
	assert.True(t, strings.HasSuffix(lines[0], "2.5/5"))
	assert.True(t, strings.HasSuffix(lines[1], "4/5"))

	assert.Equal(t, "none", ansi.Strip(SkillBars(nil, theme.Primary, "none", 60)))
}

func TestButtonRow(t *testing.T) {
	row := ansi.Strip(ButtonRow([]string{"Save", "Cancel"}, 1))
	assert.Contains(t, row, "▸ Cancel")
	assert.NotContains(t, row, "▸ Save")
	assert.Less(t, strings.Index(row, "Save"), strings.Index(row, "Cancel"))
}
