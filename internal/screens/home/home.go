package home

import (
	"context"
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

type loggedOutMsg struct {
	Err error
}

// Card is one navigation entry of the dashboard.
type Card struct {
	Title       string
	Description string
	Route       router.Route
}

// Cards lists the dashboard destinations in display order.
var Cards = []Card{
	{"Course Recommendations", "Get personalized course suggestions", router.RouteRecommendations},
	{"My Schedule", "View and manage your course schedule", router.RouteSchedules},
	{"Academic Progress", "Track your degree completion", router.RouteProgress},
	{"Burnout Analysis", "Monitor your academic stress", router.RouteBurnout},
	{"Course Catalog", "Browse available courses", router.RouteCourses},
	{"Profile Settings", "Manage your account", router.RouteSettings},
	{"Profile", "Your academic information", router.RouteProfile},
	{"Request Log", "Recent calls to the SchedulEase service", router.RouteActivity},
}

// HomeScreen is the dashboard shown after sign-in.
type HomeScreen struct {
	deps   *screen.Deps
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Protected = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	items := make([]components.MenuItem, 0, len(Cards)+1)
	for _, c := range Cards {
		route := c.Route
		items = append(items, components.MenuItem{
			Label:       c.Title,
			Description: c.Description,
			Action:      func() tea.Cmd { return router.Navigate(route) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Logout",
		Action: h.logout,
	})
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) RequiresSession() bool { return true }

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
}

// logout destroys the stored session.
func (h *HomeScreen) logout() tea.Cmd {
	sessions, logger := h.deps.Sessions, h.deps.Log()
	return func() tea.Msg {
		err := sessions.Logout(context.Background())
		if err != nil {
			logger.Error("logout", zap.Error(err))
		}
		return loggedOutMsg{Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedOutMsg:
		if msg.Err != nil {
			h.errMsg = "Logout failed: " + msg.Err.Error()
			return h, nil
		}
		h.deps.Session = nil
		return h, router.Reset(router.RouteLogin)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sess := h.deps.Session
	if sess == nil {
		return layout.RenderLoading("Signing out...", width)
	}
	cw := components.ContentWidth(width)

	welcome := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Welcome, %s!", sess.Name)) + "\n" +
		theme.Subtitle.Render("NUID: "+sess.NUID)

	sections := []string{
		components.Card(welcome, cw),
		components.Card(h.menu.View(), cw),
	}

	col := (cw - 2) / 2
	skills := lipgloss.JoinHorizontal(lipgloss.Top,
		components.TitledCard("Programming Experience",
			skillList(sess.ProgrammingExperience, "No programming experience data available", theme.Primary), col),
		"  ",
		components.TitledCard("Math Experience",
			skillList(sess.MathExperience, "No math experience data available", theme.Success), col),
	)
	// The skill cards only fit on taller terminals.
	if height >= 28 {
		sections = append(sections, skills)
	}
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(h.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

// skillList renders each skill with five dots, filled up to its level.
func skillList(skills map[string]float64, empty string, fill color.Color) string {
	if len(skills) == 0 {
		return theme.Hint.Render(empty)
	}
	names := slices.Sorted(maps.Keys(skills))
	width := 0
	for _, n := range names {
		width = max(width, lipgloss.Width(n))
	}

	var b strings.Builder
	on := lipgloss.NewStyle().Foreground(fill)
	for i, n := range names {
		level := min(max(int(skills[n]), 0), 5)
		b.WriteString(theme.Body.Render(n + strings.Repeat(" ", width-lipgloss.Width(n)+2)))
		b.WriteString(on.Render(strings.Repeat("●", level)))
		b.WriteString(theme.Muted.Render(strings.Repeat("○", 5-level)))
		if i < len(names)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
