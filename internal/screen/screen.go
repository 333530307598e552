package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/session"
	"github.com/optilearn/schedulease/internal/settings"
	"github.com/optilearn/schedulease/internal/store"
	"github.com/optilearn/schedulease/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Protected is implemented by screens that need a signed-in student. The
// router sends the user to login instead of initialising such a screen
// when there is no session.
type Protected interface {
	RequiresSession() bool
}

// Deps is shared by every screen. Session is nil while signed out and is
// only written from Update, on the UI goroutine.
type Deps struct {
	Client   *api.Client
	Sessions *session.Manager
	Settings *settings.Repo
	Events   store.EventRepo
	Logger   *zap.Logger

	Session *session.Session
}

// SignedIn reports whether a session is active.
func (d *Deps) SignedIn() bool {
	return d != nil && d.Session != nil
}

// Log returns the logger, or a no-op logger when none is set.
func (d *Deps) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
