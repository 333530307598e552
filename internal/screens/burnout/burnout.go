package burnout

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const msgLoadFailed = "Failed to load burnout data"

type analysisLoadedMsg struct {
	Analysis *api.BurnoutAnalysis
	Err      error
}

// BurnoutScreen shows the burnout analysis for the signed-in student.
type BurnoutScreen struct {
	deps     *screen.Deps
	analysis *api.BurnoutAnalysis
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BurnoutScreen)(nil)
var _ screen.Protected = (*BurnoutScreen)(nil)

// New creates a BurnoutScreen.
func New(deps *screen.Deps) *BurnoutScreen {
	return &BurnoutScreen{deps: deps}
}

func (s *BurnoutScreen) RequiresSession() bool { return true }

func (s *BurnoutScreen) Init() tea.Cmd {
	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		a, err := client.BurnoutAnalysis(context.Background(), nuid)
		if err != nil {
			logger.Warn("load burnout analysis", zap.Error(err))
		}
		return analysisLoadedMsg{Analysis: a, Err: err}
	}
}

func (s *BurnoutScreen) Title() string {
	return "Burnout Analysis"
}

func (s *BurnoutScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BurnoutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = api.DisplayMessage(msg.Err, msgLoadFailed)
			return s, nil
		}
		s.errMsg = ""
		s.analysis = msg.Analysis
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

// levelStyle colours a rating. Unknown values render dim.
func levelStyle(value string) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true).Foreground(theme.TextDim)
	if strings.EqualFold(value, "Moderate") {
		return st.Foreground(theme.Secondary)
	}
	if l, err := level.Parse(value); err == nil {
		return st.Foreground(l.Display().Color)
	}
	return st
}

func metricCard(title, value string, trend level.Trend, description string, width int) string {
	head := theme.Muted.Render(title)
	val := levelStyle(value).Render(value) + "  " + theme.Muted.Render(trend.Symbol())
	body := head + "\n" + val + "\n" + lipgloss.NewStyle().Width(width-4).Foreground(theme.TextDim).Render(description)
	return components.Card(body, width)
}

// stressBar renders one stress factor. Values outside the closed level set
// get an empty bar.
func stressBar(name, value string, width int) string {
	d := level.Display{Label: value, Color: theme.TextDim}
	if l, err := level.Parse(value); err == nil {
		d = l.Display()
	}
	bar := components.NewProgressBar(name, float64(d.Bar)/100, false, width-10)
	bar.LabelWidth = 22
	bar.Color = d.Color
	return bar.View() + "  " + levelStyle(value).Render(d.Label)
}

func (s *BurnoutScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.RenderError(s.errMsg, width)
	}
	if !s.loaded {
		return layout.RenderLoading("Analyzing your workload...", width)
	}
	if s.analysis == nil {
		return layout.RenderEmpty("No burnout analysis data available", width)
	}
	a := s.analysis
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Monitor your academic stress levels and workload distribution"))
	b.WriteString("\n\n")

	cardWidth := cw/2 - 1
	cards := []string{
		metricCard("Overall Burnout Risk", a.OverallBurnoutRisk.Level, level.TrendStable, a.OverallBurnoutRisk.Description, cardWidth),
		metricCard("Weekly Study Hours", fmt.Sprint(a.WeeklyStudyHours.Total), level.Trend(a.WeeklyStudyHours.Trend), "Average across courses", cardWidth),
		metricCard("Course Difficulty", a.CourseDifficulty.Level, level.TrendStable, a.CourseDifficulty.Description, cardWidth),
		metricCard("Assignment Load", a.StressFactors.AssignmentDeadlines, level.TrendStable, "Based on current workload", cardWidth),
	}
	if layout.IsCompactWidth(width) {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], " ", cards[3])))
	}
	b.WriteString("\n\n")

	var factors strings.Builder
	for i, f := range []struct{ name, value string }{
		{"Assignment Deadlines", a.StressFactors.AssignmentDeadlines},
		{"Course Complexity", a.StressFactors.CourseComplexity},
		{"Weekly Workload", a.StressFactors.WeeklyWorkload},
		{"Prerequisite Match", a.StressFactors.PrerequisiteMatch},
	} {
		if i > 0 {
			factors.WriteString("\n")
		}
		factors.WriteString(stressBar(f.name, f.value, cw-4))
	}
	b.WriteString(components.TitledCard("Stress Factors", factors.String(), cw))

	if len(a.WorkloadDistribution) > 0 {
		var dist strings.Builder
		for i, w := range a.WorkloadDistribution {
			if i > 0 {
				dist.WriteString("\n")
			}
			status := theme.Muted.Render(w.Status)
			if w.Status == "heavy" {
				status = lipgloss.NewStyle().Foreground(theme.Warning).Render(w.Status)
			}
			dist.WriteString(fmt.Sprintf("%-8s %3d h/week  %s", w.CourseID, w.HoursPerWeek, status))
		}
		b.WriteString("\n")
		b.WriteString(components.TitledCard("Workload Distribution", dist.String(), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
