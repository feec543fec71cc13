//go:build integration

package spotify

import (
	"context"
	"os"
	"testing"
	"time"
)

// integrationClient builds a client from SPOTIFY_* environment variables.
// Run with: go test -tags=integration -v ./pkg/spotify/
// Requires: SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET, SPOTIFY_REFRESH_TOKEN
func integrationClient(t *testing.T) *Client {
	t.Helper()

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	refreshToken := os.Getenv("SPOTIFY_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		t.Skip("Skipping integration test: SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and SPOTIFY_REFRESH_TOKEN must be set")
	}

	redirectURI := os.Getenv("SPOTIFY_REDIRECT_URI")
	if redirectURI == "" {
		redirectURI = "http://127.0.0.1:8888/callback"
	}

	client, err := NewClient(Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		AccessToken:  "expired",
		RefreshToken: refreshToken,
		AutoRefresh:  true,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestIntegration_Refresh(t *testing.T) {
	client := integrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tok, err := client.Auth().RefreshAccessToken(ctx)
	if err != nil {
		t.Fatalf("Failed to refresh token: %v", err)
	}
	if tok.AccessToken == "" {
		t.Error("Expected non-empty access token")
	}
	t.Logf("Token expires in %ds, scope %q", tok.ExpiresIn, tok.Scope)
}

func TestIntegration_CatalogAndProfile(t *testing.T) {
	client := integrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// AutoRefresh replaces the placeholder token on the first 401.
	me, err := client.Users().GetCurrentUserProfile(ctx)
	if err != nil {
		t.Fatalf("Failed to get current user: %v", err)
	}
	t.Logf("Authenticated as %s", me.ID)

	res, err := client.Search(ctx, SearchParams{Q: "the killers", Type: []string{"artist"}, Limit: 1})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if res.Artists == nil || len(res.Artists.Artists) == 0 {
		t.Fatal("Expected at least one artist")
	}

	artistID := string(res.Artists.Artists[0].ID)
	if _, err := client.Artists().GetTopTracks(ctx, GetArtistTopTracksParams{ArtistID: artistID, Market: "US"}); err != nil {
		t.Errorf("Failed to get top tracks: %v", err)
	}
}
