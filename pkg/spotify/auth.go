package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// AuthService provides OAuth2 authorization-code operations.
type AuthService struct {
	client *Client
}

// GetAuthURL returns the URL where users authorize the application.
//
// Query parameters are emitted in sorted key order, so the same options
// always produce the same URL. The configured scope is used when
// opts.Scope is empty. No network call is made.
//
// Example:
//
//	authURL := client.Auth().GetAuthURL(spotify.AuthURLOptions{State: state})
//	fmt.Println("Please visit:", authURL)
func (a *AuthService) GetAuthURL(opts AuthURLOptions) string {
	v := url.Values{}
	v.Set("client_id", a.client.clientID)
	v.Set("redirect_uri", a.client.redirectURI)
	v.Set("response_type", "code")

	scope := opts.Scope
	if scope == "" {
		scope = a.client.GetScope()
	}
	if scope != "" {
		v.Set("scope", scope)
	}
	if opts.ShowDialog {
		v.Set("show_dialog", "true")
	}
	if opts.State != "" {
		v.Set("state", opts.State)
	}

	// url.Values.Encode sorts by key.
	return strings.TrimRight(a.client.accountsURL, "/") + "/authorize?" + v.Encode()
}

// RequestAccessToken exchanges an authorization code for a token pair.
//
// After the user approves the application at the URL from GetAuthURL,
// Spotify redirects to the redirect URI with a code parameter. On
// success the client's access and refresh tokens are replaced.
//
// Returns ErrClientSecretRequired before any network call when no client
// secret is configured.
//
// Example:
//
//	tok, err := client.Auth().RequestAccessToken(ctx, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Store tok.RefreshToken for future use
func (a *AuthService) RequestAccessToken(ctx context.Context, code string) (*Token, error) {
	if a.client.clientSecret == "" {
		return nil, ErrClientSecretRequired
	}

	a.client.logDebugf("spotify: exchanging authorization code")

	tok, err := a.oauthConfig().Exchange(a.oauthContext(ctx), code)
	if err != nil {
		return nil, tokenError(err)
	}

	stored := a.client.storeToken(fromOAuth2(tok))
	return &stored, nil
}

// RefreshAccessToken obtains a new access token with the stored refresh
// token.
//
// The refresh token is replaced only when Spotify rotates it. Returns
// ErrClientSecretRequired or ErrRefreshTokenRequired before any network
// call when either credential is missing.
func (a *AuthService) RefreshAccessToken(ctx context.Context) (*Token, error) {
	a.client.refreshMu.Lock()
	defer a.client.refreshMu.Unlock()
	return a.refresh(ctx)
}

// refresh performs the token request. Callers hold refreshMu.
func (a *AuthService) refresh(ctx context.Context) (*Token, error) {
	if a.client.clientSecret == "" {
		return nil, ErrClientSecretRequired
	}
	refreshToken := a.client.GetRefreshToken()
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	a.client.logDebugf("spotify: refreshing access token")

	src := a.oauthConfig().TokenSource(a.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, tokenError(err)
	}

	stored := a.client.storeToken(fromOAuth2(tok))
	return &stored, nil
}

// refreshIfStale refreshes the access token unless it no longer equals
// stale, which means another caller already replaced it.
func (a *AuthService) refreshIfStale(ctx context.Context, stale string) error {
	a.client.refreshMu.Lock()
	defer a.client.refreshMu.Unlock()

	if a.client.GetAccessToken() != stale {
		a.client.logDebugf("spotify: token already refreshed")
		return nil
	}

	_, err := a.refresh(ctx)
	return err
}

func (a *AuthService) oauthConfig() *oauth2.Config {
	accounts := strings.TrimRight(a.client.accountsURL, "/")
	return &oauth2.Config{
		ClientID:     a.client.clientID,
		ClientSecret: a.client.clientSecret,
		RedirectURL:  a.client.redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   accounts + "/authorize",
			TokenURL:  accounts + "/api/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// oauthContext routes token requests through the client's transport.
func (a *AuthService) oauthContext(ctx context.Context) context.Context {
	hc, ok := a.client.httpClient.(*http.Client)
	if !ok {
		hc = &http.Client{Transport: doerTransport{a.client.httpClient}}
	}
	return context.WithValue(ctx, oauth2.HTTPClient, hc)
}

// doerTransport adapts a Doer to http.RoundTripper.
type doerTransport struct {
	doer Doer
}

func (t doerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.doer.Do(req)
}

// fromOAuth2 converts an oauth2 token to a Token.
func fromOAuth2(tok *oauth2.Token) Token {
	t := Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}

	if scope, ok := tok.Extra("scope").(string); ok {
		t.Scope = scope
	}

	switch v := tok.Extra("expires_in").(type) {
	case float64:
		t.ExpiresIn = int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			t.ExpiresIn = n
		}
	}
	if t.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		t.ExpiresIn = int(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}

	return t
}

// tokenError converts token endpoint failures to *Error.
func tokenError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		apiErr := &Error{Status: rErr.Response.StatusCode, Message: rErr.ErrorDescription}
		if apiErr.Message == "" {
			apiErr.Message = rErr.ErrorCode
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(apiErr.Status)
		}
		return fmt.Errorf("spotify: token request failed: %w", apiErr)
	}
	return fmt.Errorf("%w: token request failed: %w", ErrTransport, err)
}
