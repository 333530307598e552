package register

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	reg "github.com/optilearn/schedulease/internal/register"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

func (s *RegisterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := s.wizard.Step()

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Step %d: %s", step, stepHeading(step))))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("%d/%d", step, reg.Steps), float64(step)/float64(reg.Steps), false, cw-4).View())
	b.WriteString("\n\n")

	switch step {
	case reg.StepBasics:
		b.WriteString(s.nuid.View())
		b.WriteString("\n\n")
		b.WriteString(s.name.View())
	case reg.StepProgramming:
		b.WriteString(ratingList(s.languages, s.wizard.LanguageRating))
	case reg.StepMath:
		b.WriteString(ratingList(s.math, s.wizard.MathRating))
	case reg.StepCourses:
		b.WriteString(s.viewCourses())
	case reg.StepCore:
		b.WriteString(s.viewCore())
	case reg.StepInterests:
		b.WriteString(s.viewInterests(cw))
	}

	if s.loading {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(loadingText(step)))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func stepHeading(step reg.Step) string {
	switch step {
	case reg.StepProgramming:
		return "Rate your programming proficiency (1-5)"
	case reg.StepMath:
		return "Rate your mathematics proficiency (1-5)"
	case reg.StepCourses:
		return "Add your completed courses (optional)"
	case reg.StepCore:
		return "Enter required subjects for your program"
	case reg.StepInterests:
		return "Select your interests"
	}
	return step.Title()
}

func loadingText(step reg.Step) string {
	if step == reg.StepBasics {
		return "Checking..."
	}
	return "Registering..."
}

func stars(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", reg.MaxRating-n)
}

// ratingList renders list with each item's stars next to it.
func ratingList(list components.MultiChoice, rating func(string) int) string {
	width := 0
	for _, o := range list.Options {
		width = max(width, lipgloss.Width(o))
	}
	labelled := list
	labelled.Options = make([]string, len(list.Options))
	for i, o := range list.Options {
		labelled.Options[i] = o + strings.Repeat(" ", width-lipgloss.Width(o)+2) + stars(rating(o))
	}
	return labelled.View(nil)
}

func (s *RegisterScreen) viewCourses() string {
	var b strings.Builder
	for _, f := range s.courseFields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	courses := s.wizard.Courses()
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Added courses (%d)", len(courses))))
	b.WriteString("\n")
	for _, c := range courses {
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %s  %s  %dh/week  grade %d  %s",
			c.Code, c.Name, c.WeeklyWorkload, c.FinalGrade, stars(c.Experience))))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *RegisterScreen) viewCore() string {
	var b strings.Builder
	b.WriteString(s.core.View())
	b.WriteString("\n\n")

	core := s.wizard.Core()
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Required subjects (%d)", len(core))))
	b.WriteString("\n")
	for _, c := range core {
		b.WriteString(theme.Body.Render("  • " + c))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *RegisterScreen) viewInterests(cw int) string {
	var left string
	if s.picking {
		cat, selected := s.wizard.Draft()
		left = theme.Subtitle.Render(reg.Title(cat)+fmt.Sprintf("  %d topics selected", len(selected))) +
			"\n\n" + s.topics.View(s.wizard.TopicSelected)
	} else {
		titled := s.categories
		titled.Options = make([]string, len(s.categories.Options))
		for i, c := range s.categories.Options {
			titled.Options[i] = reg.Title(c)
		}
		left = titled.View(nil)
	}

	var right strings.Builder
	interests := s.wizard.Interests()
	right.WriteString(theme.Subtitle.Render(fmt.Sprintf("Selected interests (%d)", len(interests))))
	right.WriteString("\n")
	for _, in := range interests {
		right.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(reg.Title(in.Category)))
		right.WriteString("\n")
		right.WriteString(theme.Body.Render("  " + strings.Join(in.Topics, ", ")))
		right.WriteString("\n")
	}

	col := (cw - 8) / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(col).Render(left),
		"    ",
		lipgloss.NewStyle().Width(col).Render(right.String()))
}
