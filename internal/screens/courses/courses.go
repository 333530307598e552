package courses

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/catalog"
	"github.com/optilearn/schedulease/internal/level"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const msgLoadFailed = "Failed to load course catalog"

type catalogLoadedMsg struct {
	Courses []api.Course
	Err     error
}

// CoursesScreen lists the course catalog with name and id filters.
type CoursesScreen struct {
	deps *screen.Deps

	courses  []api.Course
	filtered []api.Course
	selected int
	detail   *api.Course

	nameQuery components.TextInput
	idQuery   components.TextInput
	focusID   bool

	loaded bool
	errMsg string
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)
var _ screen.Protected = (*CoursesScreen)(nil)

// New creates a CoursesScreen.
func New(deps *screen.Deps) *CoursesScreen {
	s := &CoursesScreen{
		deps:      deps,
		nameQuery: components.NewTextInput("", "Search by course name...", false, 40),
		idQuery:   components.NewTextInput("", "Search by course ID...", false, 12),
	}
	s.nameQuery.Focus()
	return s
}

func (s *CoursesScreen) RequiresSession() bool { return true }

func (s *CoursesScreen) Init() tea.Cmd {
	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		courses, err := client.CourseCatalog(context.Background(), nuid)
		if err != nil {
			logger.Warn("load course catalog", zap.Error(err))
		}
		return catalogLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *CoursesScreen) Title() string {
	return "Course Catalog"
}

func (s *CoursesScreen) KeyHints() []layout.KeyHint {
	if s.detail != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	}
	return []layout.KeyHint{
		{Key: "Type", Description: "Filter"},
		{Key: "Tab", Description: "Name/ID"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = api.DisplayMessage(msg.Err, msgLoadFailed)
			return s, nil
		}
		s.courses = msg.Courses
		s.applyFilter()
		return s, nil

	case tea.KeyPressMsg:
		if s.detail != nil {
			if msg.String() == "esc" || msg.String() == "enter" {
				s.detail = nil
			}
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "tab", "shift+tab":
			s.focusID = !s.focusID
			if s.focusID {
				s.nameQuery.Blur()
				return s, s.idQuery.Focus()
			}
			s.idQuery.Blur()
			return s, s.nameQuery.Focus()
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.filtered)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected < len(s.filtered) {
				c := s.filtered[s.selected]
				s.detail = &c
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.focusID {
		s.idQuery, cmd = s.idQuery.Update(msg)
	} else {
		s.nameQuery, cmd = s.nameQuery.Update(msg)
	}
	s.applyFilter()
	return s, cmd
}

func (s *CoursesScreen) applyFilter() {
	s.filtered = catalog.Filter(s.courses, s.nameQuery.Value(), s.idQuery.Value())
	if s.selected >= len(s.filtered) {
		s.selected = max(len(s.filtered)-1, 0)
	}
}

// Filtered returns the courses matching the current queries.
func (s *CoursesScreen) Filtered() []api.Course {
	return s.filtered
}

func (s *CoursesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.RenderError(s.errMsg, width)
	}
	if !s.loaded {
		return layout.RenderLoading("Loading course catalog...", width)
	}
	if len(s.courses) == 0 {
		return layout.RenderEmpty("No course data available", width)
	}

	cw := components.ContentWidth(width)
	if s.detail != nil {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(*s.detail, cw))
	}

	search := s.nameQuery.View() + "    " + s.idQuery.View()
	header := components.Card(search, cw)

	// Each card takes four rows.
	rows := max((height-lipgloss.Height(header)-1)/4, 1)
	start := max(0, min(s.selected-rows/2, len(s.filtered)-rows))
	end := min(start+rows, len(s.filtered))

	var cards []string
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(s.filtered[i], i == s.selected, cw))
	}
	if len(s.filtered) == 0 {
		cards = append(cards, theme.Hint.Render("  No courses match your search"))
	}

	counter := theme.Muted.Render(fmt.Sprintf("  %d of %d courses", len(s.filtered), len(s.courses)))
	body := header + "\n" + counter + "\n" + strings.Join(cards, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func demandBadge(demand string) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if l, err := level.Parse(demand); err == nil {
		style = style.Foreground(l.Display().Color)
	}
	return style.Render(demand + " Demand")
}

func coreBadge() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Core")
}

func renderCard(c api.Course, selected bool, cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(c.SubjectID) +
		"  " + theme.Body.Render(c.SubjectName)

	badges := []string{demandBadge(c.EnrollmentDemand)}
	if c.IsCore {
		badges = append([]string{coreBadge()}, badges...)
	}

	langs, more := catalog.RequirementPreview(c.ProgrammingKnowledgeNeeded)
	info := fmt.Sprintf("%d Assignments · %d Exams", c.AssignmentCount, c.ExamCount)
	if len(langs) > 0 {
		info += " · " + strings.Join(langs, ", ")
	}
	if more != "" {
		info += " " + more
	}

	content := title + "  " + strings.Join(badges, "  ") + "\n" + theme.Muted.Render(info)
	if selected {
		return components.HighlightCard(content, cw)
	}
	return components.Card(content, cw)
}

func bullets(items []string) string {
	if len(items) == 0 {
		return theme.Muted.Render("-")
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = lipgloss.NewStyle().Foreground(theme.Primary).Render("• ") + theme.Body.Render(it)
	}
	return strings.Join(lines, "\n")
}

func renderDetail(c api.Course, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(c.SubjectID))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.SubjectName))
	b.WriteString("\n\n")
	if c.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(c.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(demandBadge(c.EnrollmentDemand))
	if c.IsCore {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Core Course"))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Assignments: %d    Exams: %d", c.AssignmentCount, c.ExamCount))
	b.WriteString("\n\n")

	section := func(title, content string) {
		b.WriteString(theme.Subtitle.Bold(true).Render(title))
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	section("Course Outcomes", bullets(c.CourseOutcomes))
	section("Prerequisites", bullets(c.Prerequisite))
	section("Programming Languages", bullets(c.ProgrammingKnowledgeNeeded))
	section("Mathematics", bullets(c.MathRequirements))

	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}
