package components

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// MaxSkill is the top of the self-rating scale.
const MaxSkill = 5

// SkillBars renders one bar per skill, sorted by name, filled to
// score/MaxSkill. empty is shown when there are no skills.
func SkillBars(skills map[string]float64, fill color.Color, empty string, width int) string {
	if len(skills) == 0 {
		return lipgloss.NewStyle().Italic(true).Render(empty)
	}
	names := make([]string, 0, len(skills))
	labelWidth := 0
	for name := range skills {
		names = append(names, name)
		labelWidth = max(labelWidth, lipgloss.Width(name))
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		score := skills[name]
		bar := NewProgressBar(name, score/MaxSkill, false, width-6)
		bar.LabelWidth = labelWidth
		bar.Color = fill
		lines[i] = bar.View() + fmt.Sprintf("  %g/%d", score, MaxSkill)
	}
	return strings.Join(lines, "\n")
}
