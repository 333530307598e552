// Package screentest wires screens to a fixture backend and a temporary
// store for tests.
package screentest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/fakebackend"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/session"
	"github.com/optilearn/schedulease/internal/settings"
	"github.com/optilearn/schedulease/internal/store"
)

// Env is a test environment.
type Env struct {
	Deps    *screen.Deps
	Backend *fakebackend.Server
	Store   *store.Store

	hits atomic.Int64
}

// New starts a fixture backend and opens a store in t.TempDir(). Nobody is
// signed in.
func New(t testing.TB) *Env {
	t.Helper()

	e := &Env{Backend: fakebackend.New()}
	backend := e.Backend.Router()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hits.Add(1)
		backend.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	e.Store = st

	e.Deps = &screen.Deps{
		Client:   api.NewClient(api.WithBaseURL(srv.URL), api.WithTimeout(5*time.Second)),
		Sessions: session.NewManager(st.KV()),
		Settings: settings.NewRepo(st.KV()),
		Events:   st.EventRepo(),
	}
	return e
}

// SignIn logs the seeded student in and stores the session.
func (e *Env) SignIn(t testing.TB) *session.Session {
	t.Helper()
	ctx := context.Background()
	profile, err := e.Deps.Client.Login(ctx, fakebackend.SeedNUID, fakebackend.SeedName)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	s := session.FromProfile(fakebackend.SeedNUID, fakebackend.SeedName, profile)
	if err := e.Deps.Sessions.Save(ctx, s); err != nil {
		t.Fatalf("save session: %v", err)
	}
	e.Deps.Session = s
	e.hits.Store(0)
	return s
}

// Hits returns the number of requests the backend has served since the
// last SignIn.
func (e *Env) Hits() int64 {
	return e.hits.Load()
}

// Exec runs cmd and returns its message. It fails the test when cmd is
// nil or does not finish within five seconds.
func Exec(t testing.TB, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("command did not finish")
		return nil
	}
}

// Feed runs cmd and passes its message to s.Update, returning the updated
// screen and the follow-up command.
func Feed(t testing.TB, s screen.Screen, cmd tea.Cmd) (screen.Screen, tea.Cmd) {
	t.Helper()
	return s.Update(Exec(t, cmd))
}

// Type sends each rune of text as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}

// Press sends a single special key.
func Press(s screen.Screen, code rune) (screen.Screen, tea.Cmd) {
	return s.Update(tea.KeyPressMsg{Code: code})
}

// Key sends one printable key.
func Key(s screen.Screen, r rune) (screen.Screen, tea.Cmd) {
	return s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
}

// Plain renders s at width x height with styling removed.
func Plain(s screen.Screen, width, height int) string {
	return ansi.Strip(s.View(width, height))
}
