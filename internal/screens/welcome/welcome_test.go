package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
)

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func TestPhaseTransitions(t *testing.T) {
	w := New()

	view := w.View(100, 30)
	if strings.Contains(view, Features[0]) {
		t.Error("features should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}
	if !strings.Contains(w.View(100, 30), Tagline) {
		t.Error("tagline should be visible after phase 1")
	}

	sendTicks(w, 10)
	view = w.View(100, 30)
	if !strings.Contains(view, Features[0]) {
		t.Error("features should be visible after phase 2")
	}
	if strings.Contains(view, "Sign up as a new user") {
		t.Error("menu should wait for the animation to finish")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w := New()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("skipping the animation should not navigate")
	}
	if !w.ready() {
		t.Error("expected animation to be complete")
	}
	if !strings.Contains(w.View(100, 30), "Sign up as a new user") {
		t.Error("menu should be visible after skipping")
	}
}

func TestMenuNavigates(t *testing.T) {
	tests := []struct {
		name  string
		keys  []tea.KeyPressMsg
		route router.Route
	}{
		{"login", []tea.KeyPressMsg{{Code: tea.KeyEnter}}, router.RouteLogin},
		{"register", []tea.KeyPressMsg{{Code: tea.KeyDown}, {Code: tea.KeyEnter}}, router.RouteRegister},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			sendTicks(w, 30)

			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = w.Update(k)
			}
			if cmd == nil {
				t.Fatal("expected a navigation command")
			}
			nav, ok := cmd().(router.NavigateMsg)
			if !ok {
				t.Fatalf("expected NavigateMsg, got %T", cmd())
			}
			if nav.Route != tt.route || nav.Reset {
				t.Errorf("expected push of %q, got %+v", tt.route, nav)
			}
		})
	}
}

func TestElapsedCapped(t *testing.T) {
	w := New()
	sendTicks(w, 60)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTitleEmpty(t *testing.T) {
	if New().Title() != "" {
		t.Error("expected empty title")
	}
}
