package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jfmyers9/spindle/internal/config"
	"github.com/jfmyers9/spindle/internal/store"
	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSpotify serves the token endpoint and /v1/me. Each token request
// hands out a numbered access token.
type fakeSpotify struct {
	server   *httptest.Server
	issued   atomic.Int32
	rejected string
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	t.Helper()

	f := &fakeSpotify{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("code") == "bad" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid authorization code"}`))
			return
		}

		n := f.issued.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access-" + string(rune('0'+n)),
			"refresh_token": "refresh-token",
			"token_type":    "Bearer",
			"scope":         "user-read-private",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("/v1/me", func(w http.ResponseWriter, r *http.Request) {
		if f.rejected != "" && r.Header.Get("Authorization") == "Bearer "+f.rejected {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","display_name":"Test User"}`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSpotify) options() Options {
	return Options{
		HTTPClient:  f.server.Client(),
		BaseURL:     f.server.URL + "/v1",
		AccountsURL: f.server.URL,
	}
}

func testConfig() config.SpotifyConfig {
	return config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://127.0.0.1:8888/callback",
		Scope:        "user-read-private",
		AutoRefresh:  true,
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestNew_NotAuthenticated(t *testing.T) {
	st := newTestStore(t)

	_, err := New(context.Background(), testConfig(), st, zerolog.Nop(), Options{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestNew_MissingClientID(t *testing.T) {
	st := newTestStore(t)
	cfg := testConfig()
	cfg.ClientID = ""

	_, err := New(context.Background(), cfg, st, zerolog.Nop(), Options{})
	assert.Error(t, err)
}

func TestAuthorize_PersistsToken(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSpotify(t)
	st := newTestStore(t)

	s, err := NewForAuth(testConfig(), st, zerolog.Nop(), fake.options())
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	tok, err := s.Authorize(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "access-1", tok.AccessToken)
	assert.True(t, s.IsAuthenticated())

	saved, err := st.Latest(ctx, "client-id")
	require.NoError(t, err)
	assert.Equal(t, "access-1", saved.AccessToken)
	assert.Equal(t, "refresh-token", saved.RefreshToken)
	assert.False(t, saved.ExpiresAt.IsZero())

	// A fresh session picks up the stored token
	loaded, err := New(ctx, testConfig(), st, zerolog.Nop(), fake.options())
	require.NoError(t, err)
	assert.Equal(t, "access-1", loaded.Client().GetAccessToken())
	assert.Equal(t, "refresh-token", loaded.Client().GetRefreshToken())
}

func TestAuthorize_InvalidCode(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSpotify(t)
	st := newTestStore(t)

	s, err := NewForAuth(testConfig(), st, zerolog.Nop(), fake.options())
	require.NoError(t, err)

	_, err = s.Authorize(ctx, "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, spotify.ErrTransport)

	_, err = st.Latest(ctx, "client-id")
	assert.ErrorIs(t, err, store.ErrNoToken)
}

func TestNew_RefreshesExpiredToken(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSpotify(t)
	st := newTestStore(t)

	_, err := st.Save(ctx, "client-id", spotify.Token{
		AccessToken:  "old-access",
		RefreshToken: "refresh-token",
		Expiry:       time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	s, err := New(ctx, testConfig(), st, zerolog.Nop(), fake.options())
	require.NoError(t, err)
	assert.Equal(t, "access-1", s.Client().GetAccessToken())

	saved, err := st.Latest(ctx, "client-id")
	require.NoError(t, err)
	assert.Equal(t, "access-1", saved.AccessToken)
}

func TestAutoRefresh_PersistsToken(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSpotify(t)
	fake.rejected = "stale-access"
	st := newTestStore(t)

	_, err := st.Save(ctx, "client-id", spotify.Token{
		AccessToken:  "stale-access",
		RefreshToken: "refresh-token",
		Expiry:       time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	s, err := New(ctx, testConfig(), st, zerolog.Nop(), fake.options())
	require.NoError(t, err)

	user, err := s.Client().Users().GetCurrentUserProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.DisplayName)

	saved, err := st.Latest(ctx, "client-id")
	require.NoError(t, err)
	assert.Equal(t, "access-1", saved.AccessToken)
	assert.Equal(t, int32(1), fake.issued.Load())
}

func TestAuthURL(t *testing.T) {
	st := newTestStore(t)

	s, err := NewForAuth(testConfig(), st, zerolog.Nop(), Options{})
	require.NoError(t, err)

	got := s.AuthURL("abc", false)
	assert.Equal(t,
		"https://accounts.spotify.com/authorize?client_id=client-id&redirect_uri=http%3A%2F%2F127.0.0.1%3A8888%2Fcallback&response_type=code&scope=user-read-private&state=abc",
		got)
}

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		state   string
		want    string
		wantErr bool
	}{
		{name: "bare code", input: "  AQB123  ", want: "AQB123"},
		{name: "redirect URL", input: "http://127.0.0.1:8888/callback?code=AQB123&state=xyz", state: "xyz", want: "AQB123"},
		{name: "state ignored when empty", input: "http://127.0.0.1:8888/callback?code=AQB123", want: "AQB123"},
		{name: "state mismatch", input: "http://127.0.0.1:8888/callback?code=AQB123&state=other", state: "xyz", wantErr: true},
		{name: "access denied", input: "http://127.0.0.1:8888/callback?error=access_denied", wantErr: true},
		{name: "missing code", input: "http://127.0.0.1:8888/callback?state=xyz", state: "xyz", wantErr: true},
		{name: "empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCode(tt.input, tt.state)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
