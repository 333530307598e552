package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/app"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/session"
)

// runApp builds the screen dependencies and launches the TUI. A stored
// session resumes where the student left off.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	deps := &screen.Deps{
		Client:   rt.client,
		Sessions: rt.sessions,
		Settings: rt.settings,
		Events:   rt.store.EventRepo(),
		Logger:   rt.logger,
	}

	sess, err := rt.sessions.Current(cmd.Context())
	switch {
	case err == nil:
		deps.Session = sess
	case errors.Is(err, session.ErrNoSession):
	default:
		rt.logger.Warn("load session", zap.Error(err))
	}

	return app.Run(deps)
}
