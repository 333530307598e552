package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/config"
	"github.com/optilearn/schedulease/internal/logging"
	"github.com/optilearn/schedulease/internal/session"
	"github.com/optilearn/schedulease/internal/settings"
	"github.com/optilearn/schedulease/internal/store"
)

// runtime is everything a command needs to talk to the backend and the
// local store.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	client   *api.Client
	sessions *session.Manager
	settings *settings.Repo
}

// setup loads the configuration, opens the store and builds the client.
// The caller must Close the result.
func setup(cmd *cobra.Command) (*runtime, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := api.NewClient(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
		api.WithRecorder(st.EventRepo()),
	)

	logger.Debug("runtime ready",
		zap.String("command", cmd.CommandPath()),
		zap.String("api", cfg.API.BaseURL),
		zap.String("db", dbPath),
	)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		client:   client,
		sessions: session.NewManager(st.KV()),
		settings: settings.NewRepo(st.KV()),
	}, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.logger.Warn("close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}

var errNotSignedIn = errors.New("not signed in; run `schedulease auth login` first")

// requireSession returns the persisted session for commands that act on
// behalf of the student.
func (r *runtime) requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := r.sessions.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, errNotSignedIn
	}
	return sess, err
}

// resolveDBPath returns the configured database path (--db flag or
// SCHEDULEASE_DB_PATH), then SCHEDULEASE_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.DB.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
