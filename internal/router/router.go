package router

import (
	"github.com/optilearn/schedulease/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// Route names a top-level destination.
type Route string

const (
	RouteLogin           Route = "login"
	RouteRegister        Route = "register"
	RouteHome            Route = "home"
	RouteCourses         Route = "courses"
	RouteRecommendations Route = "recommendations"
	RouteSchedules       Route = "schedules"
	RouteBurnout         Route = "burnout"
	RouteProgress        Route = "progress"
	RouteProfile         Route = "profile"
	RouteSettings        Route = "settings"
	RouteActivity        Route = "activity"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg requests the router to drop the whole stack and start
// over from Screen.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg opens a route. With Reset the stack is cleared first.
type NavigateMsg struct {
	Route Route
	Reset bool
}

// Navigate returns a command that opens route on top of the stack.
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

// Reset returns a command that clears the stack and opens route.
func Reset(route Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route, Reset: true} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Option configures a Router.
type Option func(*Router)

// WithRoutes sets the factory used to build screens for NavigateMsg.
func WithRoutes(factory func(Route) screen.Screen) Option {
	return func(r *Router) { r.routes = factory }
}

// WithGuard redirects screens implementing screen.Protected to the screen
// returned by login while signedIn reports false. The redirect clears the
// stack and happens before the protected screen's Init runs.
func WithGuard(signedIn func() bool, login func() screen.Screen) Option {
	return func(r *Router) {
		r.signedIn = signedIn
		r.login = login
	}
}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen

	routes   func(Route) screen.Screen
	signedIn func() bool
	login    func() screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen, opts ...Option) *Router {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	if login, blocked := r.redirect(initial); blocked {
		initial = login
	}
	r.stack = []screen.Screen{initial}
	return r
}

// redirect returns the login screen when s may not be shown.
func (r *Router) redirect(s screen.Screen) (screen.Screen, bool) {
	p, ok := s.(screen.Protected)
	if !ok || !p.RequiresSession() || r.signedIn == nil || r.login == nil {
		return nil, false
	}
	if r.signedIn() {
		return nil, false
	}
	return r.login(), true
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	if login, blocked := r.redirect(s); blocked {
		return r.Reset(login)
	}
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if login, blocked := r.redirect(s); blocked {
		return r.Reset(login)
	}
	if len(r.stack) == 0 {
		r.stack = []screen.Screen{s}
	} else {
		r.stack[len(r.stack)-1] = s
	}
	return s.Init()
}

// Reset makes s the only screen on the stack and calls its Init().
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	if login, blocked := r.redirect(s); blocked {
		s = login
	}
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Open builds the screen for route and pushes it, or resets the stack to
// it. Unknown routes are ignored.
func (r *Router) Open(route Route, reset bool) tea.Cmd {
	if r.routes == nil {
		return nil
	}
	s := r.routes(route)
	if s == nil {
		return nil
	}
	if reset {
		return r.Reset(s)
	}
	return r.Push(s)
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	case NavigateMsg:
		return r.Open(msg.Route, msg.Reset)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
