// Package spotify provides a client for the Spotify Web API.
//
// This package implements the authorization-code flow and typed
// endpoint methods for albums, artists, playlists, playback control,
// search and user profiles. It is designed to be used as a standalone
// SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/spindle/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:    "your-client-id",
//	    RedirectURI: "http://127.0.0.1:8888/callback",
//	    AccessToken: "saved-access-token",
//	})
//
//	album, err := client.Albums().Get(ctx, spotify.GetAlbumParams{AlbumID: "4aawyAB9vmqN3uQ7FjRGTy"})
package spotify

import (
	"fmt"
	"net/http"
	"sync"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds client configuration.
type Config struct {
	ClientID     string // Required: application client ID
	ClientSecret string // Optional: required only for token exchange and refresh
	RedirectURI  string // Required: redirect URI registered for the application
	AccessToken  string // Required: bearer token applied to every API request
	RefreshToken string // Optional: used by RefreshAccessToken
	Scope        string // Optional: default scope for GetAuthURL

	HTTPClient  Doer   // Optional: HTTP transport (defaults to http.DefaultClient)
	BaseURL     string // Optional: API root (defaults to DefaultBaseURL, used for testing)
	AccountsURL string // Optional: accounts host (defaults to DefaultAccountsURL, used for testing)
	Logger      Logger // Optional: Logger interface for debug logging

	// AutoRefresh makes the client refresh the access token once and
	// retry when an API call is rejected with 401 Unauthorized.
	// Without both ClientSecret and RefreshToken the 401 is returned
	// unchanged.
	AutoRefresh bool

	// OnTokenRefresh, if set, is called after every successful code
	// exchange or refresh. The library never persists tokens itself.
	OnTokenRefresh func(Token)
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
//
// A Client is safe for concurrent use. Token updates made through
// SetAccessToken or the auth flow apply to every request sent after
// them.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	scope        string

	// refreshMu serializes token refreshes.
	refreshMu sync.Mutex

	httpClient     Doer
	baseURL        string
	accountsURL    string
	logger         Logger
	autoRefresh    bool
	onTokenRefresh func(Token)

	auth      *AuthService
	albums    *AlbumService
	artists   *ArtistService
	player    *PlayerService
	playlists *PlaylistService
	users     *UserService
}

const (
	// DefaultBaseURL is the default Spotify Web API root.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultAccountsURL is the default Spotify accounts service host.
	DefaultAccountsURL = "https://accounts.spotify.com"
)

// NewClient creates a new Spotify API client.
//
// Returns an error wrapping ErrConfiguration if ClientID, RedirectURI or
// AccessToken is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: ClientID is required", ErrConfiguration)
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%w: RedirectURI is required", ErrConfiguration)
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: AccessToken is required", ErrConfiguration)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	c := &Client{
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		redirectURI:    cfg.RedirectURI,
		accessToken:    cfg.AccessToken,
		refreshToken:   cfg.RefreshToken,
		scope:          cfg.Scope,
		httpClient:     httpClient,
		baseURL:        baseURL,
		accountsURL:    accountsURL,
		logger:         cfg.Logger,
		autoRefresh:    cfg.AutoRefresh,
		onTokenRefresh: cfg.OnTokenRefresh,
	}

	c.auth = &AuthService{client: c}
	c.albums = &AlbumService{client: c}
	c.artists = &ArtistService{client: c}
	c.player = &PlayerService{client: c}
	c.playlists = &PlaylistService{client: c}
	c.users = &UserService{client: c}

	return c, nil
}

// Auth returns the authorization service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumService {
	return c.albums
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Player returns the playback control service.
func (c *Client) Player() *PlayerService {
	return c.player
}

// Playlists returns the playlist service.
func (c *Client) Playlists() *PlaylistService {
	return c.playlists
}

// Users returns the user profile service.
func (c *Client) Users() *UserService {
	return c.users
}

// SetAccessToken sets the bearer token used by subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// GetAccessToken returns the current access token.
func (c *Client) GetAccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetRefreshToken sets the refresh token used by RefreshAccessToken.
func (c *Client) SetRefreshToken(token string) {
	c.mu.Lock()
	c.refreshToken = token
	c.mu.Unlock()
}

// GetRefreshToken returns the current refresh token.
func (c *Client) GetRefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

// GetScope returns the scope granted by the last token exchange, or the
// configured scope if no exchange has happened.
func (c *Client) GetScope() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scope
}

// storeToken applies a token response to the client. The refresh token
// and scope are kept when the response omits them, and the returned
// token carries the values now in effect.
func (c *Client) storeToken(tok Token) Token {
	c.mu.Lock()
	c.accessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		c.refreshToken = tok.RefreshToken
	}
	if tok.Scope != "" {
		c.scope = tok.Scope
	}
	tok.RefreshToken = c.refreshToken
	tok.Scope = c.scope
	c.mu.Unlock()

	if c.onTokenRefresh != nil {
		c.onTokenRefresh(tok)
	}
	return tok
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
