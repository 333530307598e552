package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const msgLoadFailed = "Failed to load progress data"

type progressLoadedMsg struct {
	Progress *api.Progress
	Err      error
}

// ProgressScreen shows credits, completed courses, skills and outcomes.
type ProgressScreen struct {
	deps     *screen.Deps
	progress *api.Progress
	loaded   bool
	errMsg   string
	scroll   int
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.Protected = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(deps *screen.Deps) *ProgressScreen {
	return &ProgressScreen{deps: deps}
}

func (s *ProgressScreen) RequiresSession() bool { return true }

func (s *ProgressScreen) Init() tea.Cmd {
	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		p, err := client.Progress(context.Background(), nuid)
		if err != nil {
			logger.Warn("load progress", zap.Error(err))
		}
		return progressLoadedMsg{Progress: p, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "Academic Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = api.DisplayMessage(msg.Err, msgLoadFailed)
			return s, nil
		}
		s.progress = msg.Progress
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "up", "k":
			s.scroll = max(s.scroll-1, 0)
		case "down", "j":
			s.scroll++
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.RenderError(s.errMsg, width)
	}
	if !s.loaded {
		return layout.RenderLoading("Loading your progress...", width)
	}
	if s.progress == nil {
		return layout.RenderEmpty("No progress data available", width)
	}
	p := s.progress
	cw := components.ContentWidth(width)

	var sections []string

	credits := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprint(p.TotalCredits)) +
		theme.Muted.Render(fmt.Sprintf(" / %d credits", api.DegreeCredits))
	bar := components.NewProgressBar("", float64(p.TotalCredits)/api.DegreeCredits, false, cw-6)
	bar.Color = theme.Primary
	stats := fmt.Sprintf("%d%% Complete   %d credits remaining", p.PercentComplete(), p.CreditsRemaining())
	sections = append(sections, components.TitledCard("Credits", credits+"\n"+bar.View()+"\n"+theme.Muted.Render(stats), cw))

	half := cw/2 - 1
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		components.TitledCard("Courses Completed", theme.Body.Bold(true).Render(fmt.Sprint(p.TotalCourses)), half),
		" ",
		components.TitledCard("Current Grade", theme.Body.Bold(true).Render(p.CurrentGrade), half)))

	var done strings.Builder
	completed := p.CompletedList()
	if len(completed) == 0 {
		done.WriteString(theme.Muted.Render("No completed courses yet"))
	}
	for i, c := range completed {
		if i > 0 {
			done.WriteString("\n")
		}
		done.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%-8s", c.ID)))
		done.WriteString(" " + theme.Body.Render(c.Name))
	}
	sections = append(sections, components.TitledCard("Completed Courses", done.String(), cw))

	sections = append(sections,
		components.TitledCard("Programming Experience",
			components.SkillBars(p.ProgrammingExperience, theme.Primary, "No programming experience recorded", cw-4), cw),
		components.TitledCard("Mathematics Experience",
			components.SkillBars(p.MathExperience, theme.Secondary, "No math experience recorded", cw-4), cw))

	var outcomes strings.Builder
	if len(p.CourseOutcomes) == 0 {
		outcomes.WriteString(theme.Muted.Render("No outcomes recorded yet"))
	}
	for i, o := range p.CourseOutcomes {
		if i > 0 {
			outcomes.WriteString("\n")
		}
		outcomes.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("✓ ") + theme.Body.Render(o))
	}
	sections = append(sections, components.TitledCard("Learning Outcomes Achieved", outcomes.String(), cw))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	lines := strings.Split(body, "\n")
	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	lines = lines[s.scroll:]
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
