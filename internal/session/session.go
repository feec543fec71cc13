// Package session connects the spotify client to the CLI's config and
// token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jfmyers9/spindle/internal/config"
	"github.com/jfmyers9/spindle/internal/logging"
	"github.com/jfmyers9/spindle/internal/store"
	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/rs/zerolog"
)

// ErrNotAuthenticated is returned when no token has been stored yet.
var ErrNotAuthenticated = errors.New("not authenticated, run 'spindle auth' first")

// pendingAccessToken stands in for the access token before the first
// code exchange. The authorize URL and token endpoint never send it.
const pendingAccessToken = "pending"

// keepTokens is how many saved tokens are retained per client.
const keepTokens = 5

// Options overrides transport settings, used for testing.
type Options struct {
	HTTPClient  spotify.Doer
	BaseURL     string
	AccountsURL string
}

// Session wraps a spotify client whose tokens are persisted in a store
type Session struct {
	client   *spotify.Client
	store    *store.Store
	clientID string
	logger   zerolog.Logger
}

// New creates a session from the latest stored token for the configured
// client. Returns ErrNotAuthenticated if there is none.
func New(ctx context.Context, cfg config.SpotifyConfig, st *store.Store, logger zerolog.Logger, opts Options) (*Session, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify client ID not configured, run 'spindle auth' first")
	}

	saved, err := st.Latest(ctx, cfg.ClientID)
	if errors.Is(err, store.ErrNoToken) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	s, err := newSession(cfg, st, logger, opts, saved.AccessToken, saved.RefreshToken, saved.Scope)
	if err != nil {
		return nil, err
	}

	if saved.Expired(time.Now()) && saved.RefreshToken != "" && cfg.ClientSecret != "" {
		s.logger.Debug().Time("expires_at", saved.ExpiresAt).Msg("Stored token expired, refreshing")
		if _, err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewForAuth creates a session for the authorization flow, before any
// token exists.
func NewForAuth(cfg config.SpotifyConfig, st *store.Store, logger zerolog.Logger, opts Options) (*Session, error) {
	return newSession(cfg, st, logger, opts, pendingAccessToken, "", cfg.Scope)
}

func newSession(cfg config.SpotifyConfig, st *store.Store, logger zerolog.Logger, opts Options, accessToken, refreshToken, scope string) (*Session, error) {
	s := &Session{
		store:    st,
		clientID: cfg.ClientID,
		logger:   logger.With().Str("component", "session").Logger(),
	}

	if scope == "" {
		scope = cfg.Scope
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		RedirectURI:    cfg.RedirectURI,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		Scope:          scope,
		HTTPClient:     opts.HTTPClient,
		BaseURL:        opts.BaseURL,
		AccountsURL:    opts.AccountsURL,
		Logger:         logging.SpotifyLogger{Logger: logger},
		AutoRefresh:    cfg.AutoRefresh && cfg.ClientSecret != "" && refreshToken != "",
		OnTokenRefresh: s.persist,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}
	s.client = client

	return s, nil
}

// persist saves every token the client is handed. Failures are logged;
// the in-memory token stays usable for this run.
func (s *Session) persist(tok spotify.Token) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.store.Save(ctx, s.clientID, tok); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save token")
		return
	}
	if _, err := s.store.Prune(ctx, s.clientID, keepTokens); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to prune old tokens")
	}
	s.logger.Debug().Str("scope", tok.Scope).Msg("Token saved")
}

// Client returns the underlying spotify client
func (s *Session) Client() *spotify.Client {
	return s.client
}

// AuthURL returns the URL the user should visit to authorize the app
func (s *Session) AuthURL(state string, showDialog bool) string {
	return s.client.Auth().GetAuthURL(spotify.AuthURLOptions{
		State:      state,
		ShowDialog: showDialog,
	})
}

// Authorize exchanges an authorization code and stores the result
func (s *Session) Authorize(ctx context.Context, code string) (*spotify.Token, error) {
	tok, err := s.client.Auth().RequestAccessToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

// Refresh refreshes the access token and stores the result
func (s *Session) Refresh(ctx context.Context) (*spotify.Token, error) {
	tok, err := s.client.Auth().RefreshAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}
	return tok, nil
}

// IsAuthenticated reports whether the client holds a real access token
func (s *Session) IsAuthenticated() bool {
	token := s.client.GetAccessToken()
	return token != "" && token != pendingAccessToken
}

// ExtractCode accepts either a bare authorization code or the full URL
// the browser was redirected to. When state is non-empty the redirect's
// state must match it.
func ExtractCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("no authorization code provided")
	}

	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid redirect URL: %w", err)
	}

	q := u.Query()
	if errParam := q.Get("error"); errParam != "" {
		return "", fmt.Errorf("authorization denied: %s", errParam)
	}
	if state != "" && q.Get("state") != state {
		return "", fmt.Errorf("state mismatch in redirect URL")
	}

	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect URL has no code parameter")
	}
	return code, nil
}
