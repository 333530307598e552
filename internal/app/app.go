package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/screens/activity"
	"github.com/optilearn/schedulease/internal/screens/burnout"
	"github.com/optilearn/schedulease/internal/screens/courses"
	"github.com/optilearn/schedulease/internal/screens/home"
	"github.com/optilearn/schedulease/internal/screens/login"
	"github.com/optilearn/schedulease/internal/screens/planner"
	"github.com/optilearn/schedulease/internal/screens/profile"
	"github.com/optilearn/schedulease/internal/screens/progress"
	"github.com/optilearn/schedulease/internal/screens/register"
	"github.com/optilearn/schedulease/internal/screens/schedules"
	"github.com/optilearn/schedulease/internal/screens/settings"
	"github.com/optilearn/schedulease/internal/screens/welcome"
	"github.com/optilearn/schedulease/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	router *router.Router
	width  int
	height int
}

// screenFor builds the screen behind route.
func screenFor(deps *screen.Deps, route router.Route) screen.Screen {
	switch route {
	case router.RouteLogin:
		return login.New(deps)
	case router.RouteRegister:
		return register.New(deps)
	case router.RouteHome:
		return home.New(deps)
	case router.RouteCourses:
		return courses.New(deps)
	case router.RouteRecommendations:
		return planner.New(deps)
	case router.RouteSchedules:
		return schedules.New(deps)
	case router.RouteBurnout:
		return burnout.New(deps)
	case router.RouteProgress:
		return progress.New(deps)
	case router.RouteProfile:
		return profile.New(deps)
	case router.RouteSettings:
		return settings.New(deps)
	case router.RouteActivity:
		return activity.New(deps.Events)
	}
	return nil
}

// newAppModel starts on the dashboard when a session exists, otherwise on
// the landing page.
func newAppModel(deps *screen.Deps) AppModel {
	var initial screen.Screen = welcome.New()
	if deps.SignedIn() {
		initial = home.New(deps)
	}
	return AppModel{
		deps: deps,
		router: router.New(initial,
			router.WithRoutes(func(r router.Route) screen.Screen { return screenFor(deps, r) }),
			router.WithGuard(deps.SignedIn, func() screen.Screen { return login.New(deps) }),
		),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) user() layout.User {
	if !m.deps.SignedIn() {
		return layout.User{}
	}
	return layout.User{Name: m.deps.Session.Name, NUID: m.deps.Session.NUID}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders the header, the active screen and the footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(deps *screen.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		deps.Log().Error("tui exited", zap.Error(err))
		return err
	}
	return nil
}
