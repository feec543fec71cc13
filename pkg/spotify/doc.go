// Package spotify provides a client library for the Spotify Web API.
//
// # Overview
//
// This package implements a Go client for the Spotify Web API, focusing
// on the OAuth2 authorization-code flow and on the catalog, playback,
// playlist, search and profile endpoints. Every endpoint method is a thin
// mapping from a typed parameter struct to one HTTP request; response
// models are the types from github.com/zmb3/spotify/v2.
//
// # Installation
//
//	go get github.com/jfmyers9/spindle/pkg/spotify
//
// # Quick Start
//
// Create a client with your application credentials and a saved token:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    RedirectURI:  "http://127.0.0.1:8888/callback",
//	    AccessToken:  "saved-access-token",
//	    RefreshToken: "saved-refresh-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authentication
//
// Spotify uses the OAuth2 authorization-code flow:
//
//  1. Direct the user to the authorize URL
//  2. Receive the code on the redirect URI
//  3. Exchange the code for an access and refresh token
//  4. Refresh the access token when it expires
//
// Example:
//
//	// Step 1: User authorizes
//	fmt.Println("Please visit:", client.Auth().GetAuthURL(spotify.AuthURLOptions{
//	    State: state,
//	    Scope: "user-read-playback-state user-modify-playback-state",
//	}))
//
//	// Step 3: Exchange the code from the redirect
//	tok, err := client.Auth().RequestAccessToken(ctx, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Step 4: Later, refresh
//	tok, err = client.Auth().RefreshAccessToken(ctx)
//
// The client never persists tokens. Read them back with GetAccessToken
// and GetRefreshToken, or set Config.OnTokenRefresh to be told about every
// new token. Setting Config.AutoRefresh makes the client refresh once and
// retry when a request is rejected with 401.
//
// # Endpoints
//
//	album, err := client.Albums().Get(ctx, spotify.GetAlbumParams{AlbumID: id})
//	state, err := client.Player().GetPlaybackState(ctx, spotify.PlaybackStateParams{})
//	err = client.Player().SkipToNext(ctx, "")
//	res, err := client.Search(ctx, spotify.SearchParams{Q: "the killers", Type: []string{"artist"}})
//	me, err := client.Users().GetCurrentUserProfile(ctx)
//
// Optional parameters left at their zero value are omitted from the
// request. Pagination parameters are passed through verbatim; the
// package does not paginate, cache or retry.
//
// # Error Handling
//
// Missing credentials are reported with errors wrapping ErrConfiguration
// before any network call. Network failures and non-2xx responses wrap
// ErrTransport; the latter are *Error values:
//
//	_, err := client.Player().GetPlaybackState(ctx, spotify.PlaybackStateParams{})
//	var apiErr *spotify.Error
//	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
//	    // Refresh and try again
//	}
//
// # Context Support
//
// All network methods accept a context.Context for cancellation and
// timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	me, err := client.Users().GetCurrentUserProfile(ctx)
//
// # Spotify Web API Documentation
//
// For more information about the Spotify Web API:
// https://developer.spotify.com/documentation/web-api
package spotify
