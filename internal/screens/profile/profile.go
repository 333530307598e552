package profile

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

// Program details are not part of the stored profile.
const (
	Program = "MS in Computer Science"
	Term    = "Spring 2025"
)

// ProfileScreen renders the stored session profile. It makes no requests.
type ProfileScreen struct {
	deps *screen.Deps
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.Protected = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(deps *screen.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) RequiresSession() bool { return true }

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s", Description: "Settings"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "s":
			return s, router.Navigate(router.RouteSettings)
		}
	}
	return s, nil
}

func field(label, value string) string {
	return theme.Muted.Render(label) + "\n" + theme.Body.Bold(true).Render(value)
}

func tags(items []string, empty string) string {
	if len(items) == 0 {
		return theme.Muted.Render(empty)
	}
	tag := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Secondary).Padding(0, 1)
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = tag.Render(it)
	}
	return strings.Join(out, " ")
}

func (s *ProfileScreen) View(width, height int) string {
	sess := s.deps.Session
	if sess == nil {
		return layout.RenderLoading("Loading...", width)
	}
	cw := components.ContentWidth(width)
	half := cw/2 - 1

	avatar := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Bold(true).
		Padding(0, 1).
		Render(sess.Initials())
	intro := avatar + "  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sess.Name) + "\n\n" +
		theme.Subtitle.Render("Manage your academic information and preferences")

	info := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half-4).Render(field("Full Name", sess.Name)+"\n\n"+field("Program", Program)),
		lipgloss.NewStyle().Width(half-4).Render(field("NUID", sess.NUID)+"\n\n"+field("Expected Graduation", Term)))

	sections := []string{
		components.Card(intro, cw),
		components.TitledCard("Personal Information", info, cw),
		components.TitledCard("Programming Skills",
			components.SkillBars(sess.ProgrammingExperience, theme.Primary, "No programming skills recorded", cw-4), cw),
		components.TitledCard("Mathematics Skills",
			components.SkillBars(sess.MathExperience, theme.Secondary, "No math skills recorded", cw-4), cw),
		components.TitledCard("Interests", tags(sess.Interests(), "No interests recorded"), cw),
	}
	if core := sess.CoreSubjects(); len(core) > 0 {
		sections = append(sections, components.TitledCard("Required Subjects", tags(core, ""), cw))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if lipgloss.Height(body) > height && height > 0 {
		body = strings.Join(strings.Split(body, "\n")[:height], "\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
