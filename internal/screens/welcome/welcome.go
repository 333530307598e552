package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Your AI-powered course recommendation system"

// Features lists what the client offers, one per line.
var Features = []string{
	"Personalized course recommendations",
	"Smart schedule planning",
	"Burnout risk analysis",
	"Academic progress tracking",
}

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen is the landing page: an animated banner followed by the
// choice between signing in and registering.
type WelcomeScreen struct {
	menu      components.Menu
	elapsed   time.Duration
	tickCount int
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New() *WelcomeScreen {
	return &WelcomeScreen{
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Already a registered user?", Description: "Sign in", Action: func() tea.Cmd {
				return router.Navigate(router.RouteLogin)
			}},
			{Label: "Sign up as a new user", Description: "Register", Action: func() tea.Cmd {
				return router.Navigate(router.RouteRegister)
			}},
		}),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if !w.ready() {
		return []layout.KeyHint{{Key: "any key", Description: "Skip"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) ready() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// The first key only finishes the animation.
		if !w.ready() {
			w.elapsed = totalDur
			return w, nil
		}
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	banner := RenderBanner(width)
	if w.elapsed >= phase1End {
		s := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(sparkleFrames[w.tickCount%len(sparkleFrames)])
		lines := strings.Split(banner, "\n")
		lines[0] = s + " " + lines[0]
		lines[len(lines)-1] = lines[len(lines)-1] + " " + s
		banner = strings.Join(lines, "\n")
	}
	sections = append(sections, banner, "")

	if w.elapsed >= phase1End {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline), "")
	}

	if w.elapsed >= phase2End {
		for _, f := range Features {
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ ")+
				theme.Body.Render(f))
		}
		sections = append(sections, "")
	}

	if w.ready() {
		sections = append(sections, w.menu.View())
	} else {
		sections = append(sections, theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
