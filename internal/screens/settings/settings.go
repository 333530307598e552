package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	prefs "github.com/optilearn/schedulease/internal/settings"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const msgSaveFailed = "Failed to save settings"

type loadedMsg struct {
	Prefs prefs.Preferences
	Err   error
}

type savedMsg struct {
	Err error
}

// descriptions shown under each toggle
var descriptions = map[prefs.Toggle]string{
	prefs.ToggleDarkMode:           "Use a dark color scheme",
	prefs.ToggleEmailNotifications: "Receive updates about course availability",
	prefs.TogglePublicProfile:      "Make my profile visible to other students",
	prefs.ToggleShareProgress:      "Share my academic progress with advisors",
}

// SettingsScreen edits the local preferences. Every change is saved
// immediately.
type SettingsScreen struct {
	deps    *screen.Deps
	prefs   prefs.Preferences
	cursor  int
	loaded  bool
	errMsg  string
	pending int
}

var _ screen.Screen = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(deps *screen.Deps) *SettingsScreen {
	return &SettingsScreen{deps: deps, prefs: prefs.Defaults()}
}

func (s *SettingsScreen) Init() tea.Cmd {
	repo, logger := s.deps.Settings, s.deps.Log()
	return func() tea.Msg {
		p, err := repo.Load(context.Background())
		if err != nil {
			logger.Warn("load settings", zap.Error(err))
		}
		return loadedMsg{Prefs: p, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

// items is the toggles followed by the profile link.
func (s *SettingsScreen) items() int {
	return len(prefs.Toggles()) + 1
}

// Preferences returns the values currently shown.
func (s *SettingsScreen) Preferences() prefs.Preferences {
	return s.prefs
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.prefs = msg.Prefs
		return s, nil

	case savedMsg:
		s.pending--
		if msg.Err != nil {
			s.errMsg = msgSaveFailed
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "up", "k":
			s.cursor = (s.cursor - 1 + s.items()) % s.items()
		case "down", "j", "tab":
			s.cursor = (s.cursor + 1) % s.items()
		case "space", "enter", "x":
			toggles := prefs.Toggles()
			if s.cursor == len(toggles) {
				return s, router.Navigate(router.RouteProfile)
			}
			s.prefs.Flip(toggles[s.cursor])
			return s, s.save()
		}
	}
	return s, nil
}

func (s *SettingsScreen) save() tea.Cmd {
	s.errMsg = ""
	s.pending++
	repo, p, logger := s.deps.Settings, s.prefs, s.deps.Log()
	return func() tea.Msg {
		err := repo.Save(context.Background(), p)
		if err != nil {
			logger.Error("save settings", zap.Error(err))
		}
		return savedMsg{Err: err}
	}
}

func switchView(on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Render(" ON ")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Background(theme.BgCard).Render(" OFF")
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return layout.RenderLoading("Loading settings...", width)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Manage your account settings and preferences"))
	b.WriteString("\n")

	section := ""
	for i, t := range prefs.Toggles() {
		if t.Section() != section {
			section = t.Section()
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(section))
			b.WriteString("\n")
		}
		b.WriteString(s.row(i, switchView(s.prefs.Get(t))+"  "+t.Label(), descriptions[t]))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Account"))
	b.WriteString("\n")
	b.WriteString(s.row(len(prefs.Toggles()), "Update Profile", "Change your profile information"))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (s *SettingsScreen) row(i int, title, description string) string {
	cursor := "  "
	style := theme.Unselected
	if i == s.cursor {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render("▸ ")
		style = theme.Selected
	}
	return cursor + style.Render(title) + "\n" + "  " + theme.Muted.Render(description) + "\n"
}
