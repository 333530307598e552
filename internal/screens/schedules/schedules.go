package schedules

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
	"github.com/optilearn/schedulease/internal/planner"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const (
	msgLoadFailed   = "Failed to fetch your schedules"
	msgDeleteFailed = "Failed to delete schedule"
)

type schedulesLoadedMsg struct {
	Schedules []api.Schedule
	Err       error
}

type deletedMsg struct {
	Name string
	Err  error
}

// SchedulesScreen lists saved schedules. One schedule can be expanded at
// a time; deleting asks for confirmation.
type SchedulesScreen struct {
	deps *screen.Deps

	schedules []api.Schedule
	cursor    int
	expanded  string // id of the expanded schedule
	confirm   *api.Schedule
	deleting  bool

	loaded  bool
	loadErr string
	errMsg  string
}

var _ screen.Screen = (*SchedulesScreen)(nil)
var _ screen.KeyHintProvider = (*SchedulesScreen)(nil)
var _ screen.Protected = (*SchedulesScreen)(nil)

// New creates a SchedulesScreen.
func New(deps *screen.Deps) *SchedulesScreen {
	return &SchedulesScreen{deps: deps}
}

func (s *SchedulesScreen) RequiresSession() bool { return true }

func (s *SchedulesScreen) Init() tea.Cmd {
	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		list, err := client.Schedules(context.Background(), nuid)
		if err != nil {
			logger.Warn("load schedules", zap.Error(err))
		}
		return schedulesLoadedMsg{Schedules: list, Err: err}
	}
}

func (s *SchedulesScreen) Title() string {
	return "My Schedules"
}

func (s *SchedulesScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete Schedule"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Expand"},
		{Key: "d", Description: "Delete"},
		{Key: "p", Description: "Plan"},
		{Key: "Esc", Description: "Back"},
	}
}

// Schedules returns the schedules currently listed.
func (s *SchedulesScreen) Schedules() []api.Schedule {
	return s.schedules
}

func (s *SchedulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case schedulesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.loadErr = msgLoadFailed
			return s, nil
		}
		s.loadErr = ""
		s.schedules = msg.Schedules
		s.cursor = min(s.cursor, max(len(s.schedules)-1, 0))
		return s, nil

	case deletedMsg:
		s.deleting = false
		s.confirm = nil
		if msg.Err != nil {
			s.errMsg = msgDeleteFailed
			return s, nil
		}
		kept := s.schedules[:0]
		for _, sch := range s.schedules {
			if sch.Name != msg.Name {
				kept = append(kept, sch)
			}
		}
		s.schedules = kept
		s.cursor = min(s.cursor, max(len(s.schedules)-1, 0))
		return s, nil

	case tea.KeyPressMsg:
		if s.confirm != nil {
			return s, s.updateConfirm(msg)
		}
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.schedules)-1 {
				s.cursor++
			}
		case "enter", "space":
			if sch, ok := s.current(); ok {
				if s.expanded == sch.ID {
					s.expanded = ""
				} else {
					s.expanded = sch.ID
				}
			}
		case "d", "delete":
			if sch, ok := s.current(); ok {
				s.errMsg = ""
				s.confirm = &sch
			}
		case "p":
			return s, router.Navigate(router.RouteRecommendations)
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *SchedulesScreen) current() (api.Schedule, bool) {
	if s.cursor < 0 || s.cursor >= len(s.schedules) {
		return api.Schedule{}, false
	}
	return s.schedules[s.cursor], true
}

func (s *SchedulesScreen) updateConfirm(msg tea.KeyPressMsg) tea.Cmd {
	if s.deleting {
		return nil
	}
	switch msg.String() {
	case "esc", "n":
		s.confirm = nil
		return nil
	case "y", "enter":
		s.deleting = true
		client, nuid, name, logger := s.deps.Client, s.deps.Session.NUID, s.confirm.Name, s.deps.Log()
		return func() tea.Msg {
			err := client.DeleteSchedule(context.Background(), nuid, name)
			if err != nil {
				logger.Warn("delete schedule", zap.String("name", name), zap.Error(err))
			}
			return deletedMsg{Name: name, Err: err}
		}
	}
	return nil
}

func (s *SchedulesScreen) View(width, height int) string {
	if s.loadErr != "" {
		return layout.RenderError(s.loadErr, width)
	}
	if !s.loaded {
		return layout.RenderLoading("Loading your schedules...", width)
	}
	cw := components.ContentWidth(width)

	if s.confirm != nil {
		return components.Center(s.viewConfirm(min(cw, 60)), width, height)
	}

	if len(s.schedules) == 0 {
		body := theme.Title.Render("No schedules yet") + "\n" +
			theme.Subtitle.Render("Start by creating a new schedule from the recommendations page") + "\n\n" +
			theme.Hint.Render("Press p to plan a schedule")
		return components.Center(components.Card(body, min(cw, 70)), width, height)
	}

	var parts []string
	if s.errMsg != "" {
		parts = append(parts, theme.ErrorText.Render(s.errMsg))
	}
	for i, sch := range s.schedules {
		parts = append(parts, s.viewSchedule(sch, i == s.cursor, cw))
	}

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, parts...), "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func createdLabel(sch api.Schedule) string {
	if t, ok := sch.Created(); ok {
		return t.Format("Jan 2, 2006")
	}
	return sch.CreatedAt
}

func (s *SchedulesScreen) viewSchedule(sch api.Schedule, selected bool, cw int) string {
	arrow := "▸"
	if s.expanded == sch.ID {
		arrow = "▾"
	}
	head := lipgloss.NewStyle().Foreground(theme.Primary).Render(arrow) + " " +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sch.Name) + "  " +
		theme.Muted.Render(createdLabel(sch))
	if n := len(sch.History); n > 0 {
		head += theme.Hint.Render(fmt.Sprintf("  (updated %d×)", n))
	}

	content := head
	if s.expanded == sch.ID {
		content += "\n\n" + viewDetail(sch, cw-4)
	}
	if selected {
		return components.HighlightCard(content, cw)
	}
	return components.Card(content, cw)
}

func viewDetail(sch api.Schedule, width int) string {
	m := sch.Metrics
	burnout := level.RiskBand(m.AverageBurnout)
	workload := theme.Body
	if l, err := level.Parse(m.WorkloadAssessment); err == nil {
		workload = lipgloss.NewStyle().Foreground(l.Display().Color)
	}

	metric := func(label, value string, style lipgloss.Style) string {
		return theme.Muted.Render(label) + " " + style.Bold(true).Render(value)
	}
	metrics := strings.Join([]string{
		metric("Courses", fmt.Sprint(m.TotalCourses), theme.Body),
		metric("Avg. Burnout", fmt.Sprintf("%d%%", level.Percent(m.AverageBurnout)),
			lipgloss.NewStyle().Foreground(burnout.Display().Color)),
		metric("Avg. Utility", fmt.Sprintf("%d%%", int(math.Round(m.AverageUtility))), theme.Body),
		metric("Workload", m.WorkloadAssessment, workload),
	}, "   ")

	var b strings.Builder
	b.WriteString(metrics)
	for i, sem := range planner.Semesters(sch.Courses) {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("Semester %d", i+1)))
		for _, c := range sem {
			wl := theme.Muted
			if l, err := level.Parse(c.WorkloadLevel); err == nil {
				wl = lipgloss.NewStyle().Foreground(l.Display().Color)
			}
			b.WriteString(fmt.Sprintf("\n  %-8s %s", c.SubjectID, c.SubjectName))
			b.WriteString("\n           ")
			b.WriteString(wl.Render(c.WorkloadLevel + " Workload"))
			b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d Assignments  %d Exams", c.AssignmentCount, c.ExamCount)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press d to delete this schedule"))
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *SchedulesScreen) viewConfirm(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Delete Schedule"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", s.confirm.Name)))
	b.WriteString("\n\n")
	label := "Delete Schedule"
	if s.deleting {
		label = "Deleting..."
	}
	b.WriteString(components.ButtonRow([]string{"[n] Cancel", "[y] " + label}, 1))
	return components.HighlightCard(lipgloss.NewStyle().Width(width-6).Render(b.String()), width)
}
