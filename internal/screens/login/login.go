package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/session"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const (
	msgRequired      = "Please enter both your NUID and full name"
	msgInvalid       = "Invalid credentials. Please try again."
	msgLoginFailed   = "Login failed. Please check your credentials and try again."
	msgSessionFailed = "Signed in, but the session could not be saved"
)

// focus targets, in tab order
const (
	focusNUID = iota
	focusName
	focusSubmit
	focusRegister
	focusCount
)

type loggedInMsg struct {
	Session *session.Session
}

type loginFailedMsg struct {
	Err error
}

// LoginScreen authenticates an existing student.
type LoginScreen struct {
	deps    *screen.Deps
	nuid    components.TextInput
	name    components.TextInput
	focus   int
	loading bool
	errMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(deps *screen.Deps) *LoginScreen {
	return &LoginScreen{
		deps: deps,
		nuid: components.NewTextInput("NUID", "NUID", false, 20),
		name: components.NewTextInput("Full Name", "Full Name", false, 60),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.setFocus(focusNUID)
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.focus = (i + focusCount) % focusCount
	s.nuid.Blur()
	s.name.Blur()
	switch s.focus {
	case focusNUID:
		return s.nuid.Focus()
	case focusName:
		return s.name.Focus()
	}
	return nil
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		s.loading = false
		s.deps.Session = msg.Session
		return s, router.Reset(router.RouteHome)

	case loginFailedMsg:
		s.loading = false
		s.errMsg = errorText(msg.Err)
		return s, nil

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			switch s.focus {
			case focusNUID:
				return s, s.setFocus(focusName)
			case focusRegister:
				return s, router.Navigate(router.RouteRegister)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusNUID:
		s.nuid, cmd = s.nuid.Update(msg)
	case focusName:
		s.name, cmd = s.name.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	nuid, name := s.nuid.Value(), s.name.Value()
	if nuid == "" || name == "" {
		s.errMsg = msgRequired
		return nil
	}
	s.errMsg = ""
	s.loading = true

	client, sessions, logger := s.deps.Client, s.deps.Sessions, s.deps.Log()
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := client.Login(ctx, nuid, name)
		if err != nil {
			logger.Info("login failed", zap.String("nuid", nuid), zap.Error(err))
			return loginFailedMsg{Err: err}
		}
		sess := session.FromProfile(nuid, name, profile)
		if err := sessions.Save(ctx, sess); err != nil {
			logger.Error("save session", zap.Error(err))
			return loginFailedMsg{Err: errSessionSave}
		}
		logger.Info("signed in", zap.String("nuid", nuid))
		return loggedInMsg{Session: sess}
	}
}

var errSessionSave = errors.New("save session")

// errorText maps a login failure to the message shown under the form.
func errorText(err error) string {
	if errors.Is(err, errSessionSave) {
		return msgSessionFailed
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return api.DisplayMessage(err, msgInvalid)
	}
	return msgLoginFailed
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Welcome to SchedulEase"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Please sign in to continue"))
	b.WriteString("\n\n")

	b.WriteString(s.nuid.View())
	b.WriteString("\n\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")

	submit := "Sign in"
	if s.loading {
		submit = "Signing in..."
	}
	focused := -1
	switch s.focus {
	case focusSubmit:
		focused = 0
	case focusRegister:
		focused = 1
	}
	b.WriteString(components.ButtonRow([]string{submit, "Create an account"}, focused))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	card := components.Card(b.String(), min(components.ContentWidth(width), 60))
	return components.Center(card, width, height)
}
