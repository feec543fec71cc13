package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/spindle/internal/config"
	"github.com/jfmyers9/spindle/internal/logging"
	"github.com/jfmyers9/spindle/internal/music"
	"github.com/jfmyers9/spindle/internal/session"
	"github.com/jfmyers9/spindle/internal/store"
	"github.com/rs/zerolog"
)

// commandTimeout bounds every one-shot command
const commandTimeout = 10 * time.Second

// env bundles what a command needs to talk to Spotify
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *store.Store
	session *session.Session
}

// Close releases the token database
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to close token store")
	}
}

// player returns a music client targeting the given device
func (e *env) player(deviceID string) *music.SpotifyClient {
	return music.NewSpotifyClient(e.session.Client().Player(), deviceID, e.cfg.Spotify.Market)
}

// setupLogger creates a logger from the global flags
func setupLogger() zerolog.Logger {
	return logging.New(logFile, logLevel)
}

// openStore opens the token database in the data directory
func openStore() (*store.Store, error) {
	dir := dataDir
	if dir == "" {
		dir = config.GetDataDir()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.New(filepath.Join(dir, "tokens.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return st, nil
}

// openEnv loads config and the stored token and builds a session
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()

	st, err := openStore()
	if err != nil {
		return nil, err
	}

	s, err := session.New(ctx, cfg.Spotify, st, logger, session.Options{})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, store: st, session: s}, nil
}
