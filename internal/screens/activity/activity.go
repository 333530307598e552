package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/store"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

// Limit is the number of requests listed.
const Limit = 100

type requestsLoadedMsg struct {
	Requests []store.APIRequestRecord
	Err      error
}

// ActivityScreen lists the recent backend requests recorded in the local
// store, newest first.
type ActivityScreen struct {
	eventRepo    store.EventRepo
	requests     []store.APIRequestRecord
	selected     int
	expanded     map[int64]bool
	failuresOnly bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates a new ActivityScreen.
func New(eventRepo store.EventRepo) *ActivityScreen {
	return &ActivityScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int64]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		reqs, err := repo.QueryAPIRequests(context.Background(), store.QueryOpts{Limit: Limit})
		return requestsLoadedMsg{Requests: reqs, Err: err}
	}
}

func (s *ActivityScreen) Title() string {
	return "Request Log"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "f", Description: "Failures only"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// Visible returns the requests currently listed.
func (s *ActivityScreen) Visible() []store.APIRequestRecord {
	if !s.failuresOnly {
		return s.requests
	}
	var out []store.APIRequestRecord
	for _, r := range s.requests {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.requests = msg.Requests
		}
		s.loaded = true
		s.clamp()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.Visible())-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if v := s.Visible(); s.selected < len(v) {
				id := v[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
			return s, nil
		case "f":
			s.failuresOnly = !s.failuresOnly
			s.clamp()
			return s, nil
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *ActivityScreen) clamp() {
	s.selected = min(s.selected, max(len(s.Visible())-1, 0))
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.RenderError("Error: "+s.errMsg, width)
	}
	if !s.loaded {
		return layout.RenderLoading("Loading request log...", width)
	}
	reqs := s.Visible()
	if len(reqs) == 0 {
		if s.failuresOnly {
			return layout.RenderEmpty("No failed requests", width)
		}
		return layout.RenderEmpty("No requests recorded yet", width)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range reqs {
		status := fmt.Sprint(r.Status)
		if r.Status == 0 {
			status = "---"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-6s %-40s %s  %5dms",
			prefix, r.Timestamp.Format("Jan 02 15:04:05"), r.Method, r.Path, status, r.LatencyMs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !r.Success {
			style = style.Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true)
			if r.Success {
				style = style.Foreground(theme.Primary)
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[r.ID] {
			detail := "    request " + r.RequestID
			if r.ErrorMessage != "" {
				detail += "\n    " + r.ErrorMessage
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	lines := strings.Split(b.String(), "\n")
	if height > 0 && len(lines) > height {
		start := min(max(s.selected-height/2, 0), len(lines)-height)
		lines = lines[start : start+height]
	}
	return strings.Join(lines, "\n")
}
