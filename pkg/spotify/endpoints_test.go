package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestEndpoints checks the verb, path, query and body each endpoint
// method produces. Zero-valued optional parameters must not appear.
func TestEndpoints(t *testing.T) {
	pos := 5

	tests := []struct {
		name     string
		call     func(ctx context.Context, c *Client) error
		method   string
		path     string
		query    string
		body     string
		responds string
	}{
		{
			name: "get album",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Albums().Get(ctx, GetAlbumParams{AlbumID: "4aawyAB9vmqN3uQ7FjRGTy"})
				return err
			},
			method: "GET",
			path:   "/v1/albums/4aawyAB9vmqN3uQ7FjRGTy",
		},
		{
			name: "get album with market",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Albums().Get(ctx, GetAlbumParams{AlbumID: "abc", Market: "US"})
				return err
			},
			method: "GET",
			path:   "/v1/albums/abc",
			query:  "market=US",
		},
		{
			name: "get several albums",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Albums().GetSeveral(ctx, GetSeveralAlbumsParams{IDs: []string{"a", "b"}})
				return err
			},
			method: "GET",
			path:   "/v1/albums",
			query:  "ids=a%2Cb",
		},
		{
			name: "get album tracks",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Albums().GetTracks(ctx, GetAlbumTracksParams{AlbumID: "abc", Limit: 10, Offset: 20})
				return err
			},
			method: "GET",
			path:   "/v1/albums/abc/tracks",
			query:  "limit=10&offset=20",
		},
		{
			name: "get artist",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Artists().Get(ctx, GetArtistParams{ArtistID: "0TnOYISbd1XYRBk9myaseg"})
				return err
			},
			method: "GET",
			path:   "/v1/artists/0TnOYISbd1XYRBk9myaseg",
		},
		{
			name: "get several artists",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Artists().GetSeveral(ctx, GetSeveralArtistsParams{IDs: []string{"x", "y", "z"}})
				return err
			},
			method: "GET",
			path:   "/v1/artists",
			query:  "ids=x%2Cy%2Cz",
		},
		{
			name: "get artist albums",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Artists().GetAlbums(ctx, GetArtistAlbumsParams{
					ArtistID:      "abc",
					IncludeGroups: []string{"album", "single"},
					Limit:         5,
				})
				return err
			},
			method: "GET",
			path:   "/v1/artists/abc/albums",
			query:  "include_groups=album%2Csingle&limit=5",
		},
		{
			name: "get artist top tracks",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Artists().GetTopTracks(ctx, GetArtistTopTracksParams{ArtistID: "abc", Market: "GB"})
				return err
			},
			method: "GET",
			path:   "/v1/artists/abc/top-tracks",
			query:  "market=GB",
		},
		{
			name: "get playback state",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Player().GetPlaybackState(ctx, PlaybackStateParams{})
				return err
			},
			method: "GET",
			path:   "/v1/me/player",
		},
		{
			name: "get currently playing",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Player().GetCurrentlyPlaying(ctx, PlaybackStateParams{AdditionalTypes: []string{"episode"}})
				return err
			},
			method: "GET",
			path:   "/v1/me/player/currently-playing",
			query:  "additional_types=episode",
		},
		{
			name: "get available devices",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Player().GetAvailableDevices(ctx)
				return err
			},
			method:   "GET",
			path:     "/v1/me/player/devices",
			responds: `{"devices":[]}`,
		},
		{
			name: "start playback resumes without body",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().StartPlayback(ctx, StartPlaybackParams{})
			},
			method: "PUT",
			path:   "/v1/me/player/play",
		},
		{
			name: "start playback with context and offset",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().StartPlayback(ctx, StartPlaybackParams{
					DeviceID:   "dev1",
					ContextURI: "spotify:album:5ht7ItJgpBH7W6vJ5BqpPr",
					Offset:     &PlaybackOffset{Position: &pos},
				})
			},
			method: "PUT",
			path:   "/v1/me/player/play",
			query:  "device_id=dev1",
			body:   `{"context_uri":"spotify:album:5ht7ItJgpBH7W6vJ5BqpPr","offset":{"position":5}}`,
		},
		{
			name: "start playback with uris",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().StartPlayback(ctx, StartPlaybackParams{
					URIs:       []string{"spotify:track:1", "spotify:track:2"},
					PositionMS: 1000,
				})
			},
			method: "PUT",
			path:   "/v1/me/player/play",
			body:   `{"uris":["spotify:track:1","spotify:track:2"],"position_ms":1000}`,
		},
		{
			name: "pause playback",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().PausePlayback(ctx, "")
			},
			method: "PUT",
			path:   "/v1/me/player/pause",
		},
		{
			name: "skip to next on device",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SkipToNext(ctx, "dev1")
			},
			method: "POST",
			path:   "/v1/me/player/next",
			query:  "device_id=dev1",
		},
		{
			name: "skip to previous",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SkipToPrevious(ctx, "")
			},
			method: "POST",
			path:   "/v1/me/player/previous",
		},
		{
			name: "set volume to zero",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SetVolume(ctx, SetVolumeParams{VolumePercent: 0})
			},
			method: "PUT",
			path:   "/v1/me/player/volume",
			query:  "volume_percent=0",
		},
		{
			name: "set volume on device",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SetVolume(ctx, SetVolumeParams{VolumePercent: 55, DeviceID: "dev1"})
			},
			method: "PUT",
			path:   "/v1/me/player/volume",
			query:  "device_id=dev1&volume_percent=55",
		},
		{
			name: "seek",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().Seek(ctx, SeekParams{PositionMS: 25000})
			},
			method: "PUT",
			path:   "/v1/me/player/seek",
			query:  "position_ms=25000",
		},
		{
			name: "shuffle off",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SetShuffle(ctx, SetShuffleParams{State: false})
			},
			method: "PUT",
			path:   "/v1/me/player/shuffle",
			query:  "state=false",
		},
		{
			name: "repeat context",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().SetRepeat(ctx, SetRepeatParams{State: RepeatContext})
			},
			method: "PUT",
			path:   "/v1/me/player/repeat",
			query:  "state=context",
		},
		{
			name: "transfer playback",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().TransferPlayback(ctx, TransferPlaybackParams{DeviceID: "dev2", Play: true})
			},
			method: "PUT",
			path:   "/v1/me/player",
			body:   `{"device_ids":["dev2"],"play":true}`,
		},
		{
			name: "add to queue",
			call: func(ctx context.Context, c *Client) error {
				return c.Player().AddToQueue(ctx, AddToQueueParams{URI: "spotify:track:1"})
			},
			method: "POST",
			path:   "/v1/me/player/queue",
			query:  "uri=spotify%3Atrack%3A1",
		},
		{
			name: "get playlist",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Playlists().Get(ctx, GetPlaylistParams{PlaylistID: "pl1", Fields: "name,id"})
				return err
			},
			method: "GET",
			path:   "/v1/playlists/pl1",
			query:  "fields=name%2Cid",
		},
		{
			name: "get playlist items",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Playlists().GetItems(ctx, GetPlaylistItemsParams{PlaylistID: "pl1", Limit: 50, Offset: 100})
				return err
			},
			method: "GET",
			path:   "/v1/playlists/pl1/tracks",
			query:  "limit=50&offset=100",
		},
		{
			name: "get current users playlists",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Playlists().GetCurrentUsers(ctx, GetCurrentUsersPlaylistsParams{})
				return err
			},
			method: "GET",
			path:   "/v1/me/playlists",
		},
		{
			name: "search",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Search(ctx, SearchParams{Q: "the killers", Type: []string{"artist"}})
				return err
			},
			method: "GET",
			path:   "/v1/search",
			query:  "q=the+killers&type=artist",
		},
		{
			name: "search with every option",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Search(ctx, SearchParams{
					Q:               "remaster",
					Type:            []string{"album", "track"},
					Market:          "US",
					Limit:           3,
					Offset:          6,
					IncludeExternal: "audio",
				})
				return err
			},
			method: "GET",
			path:   "/v1/search",
			query:  "include_external=audio&limit=3&market=US&offset=6&q=remaster&type=album%2Ctrack",
		},
		{
			name: "get current user profile",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Users().GetCurrentUserProfile(ctx)
				return err
			},
			method: "GET",
			path:   "/v1/me",
		},
		{
			name: "get user profile",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Users().GetUserProfile(ctx, GetUserProfileParams{UserID: "smedjan"})
				return err
			},
			method: "GET",
			path:   "/v1/users/smedjan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &recordingDoer{
				respond: func(req *http.Request) (*http.Response, error) {
					body := tt.responds
					if body == "" {
						body = "{}"
					}
					return newResponse(req, http.StatusOK, body), nil
				},
			}
			client := newTestClient(t, spy)

			if err := tt.call(context.Background(), client); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if spy.calls() != 1 {
				t.Fatalf("expected 1 request, got %d", spy.calls())
			}
			req, body := spy.last()

			if req.Method != tt.method {
				t.Errorf("expected %s request, got %s", tt.method, req.Method)
			}
			if req.URL.Host != "api.example.test" {
				t.Errorf("expected API host, got %s", req.URL.Host)
			}
			if req.URL.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, req.URL.Path)
			}
			if req.URL.RawQuery != tt.query {
				t.Errorf("expected query %q, got %q", tt.query, req.URL.RawQuery)
			}
			if strings.Contains(req.URL.RawQuery, "undefined") {
				t.Errorf("query must not contain undefined values: %q", req.URL.RawQuery)
			}
			if body != tt.body {
				t.Errorf("expected body %s, got %s", tt.body, body)
			}
		})
	}
}

func TestPlayerService_InvalidParams(t *testing.T) {
	spy := &recordingDoer{}
	client := newTestClient(t, spy)
	ctx := context.Background()

	if err := client.Player().SetVolume(ctx, SetVolumeParams{VolumePercent: 101}); err == nil {
		t.Error("expected error for volume above 100")
	}
	if err := client.Player().SetVolume(ctx, SetVolumeParams{VolumePercent: -1}); err == nil {
		t.Error("expected error for negative volume")
	}
	if err := client.Player().SetRepeat(ctx, SetRepeatParams{State: "sometimes"}); err == nil {
		t.Error("expected error for unknown repeat state")
	}
	if spy.calls() != 0 {
		t.Errorf("expected no requests, got %d", spy.calls())
	}
}

func TestPlayerService_GetPlaybackState(t *testing.T) {
	t.Run("nothing playing", func(t *testing.T) {
		client := newTestClient(t, &recordingDoer{})

		state, err := client.Player().GetPlaybackState(context.Background(), PlaybackStateParams{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state for 204, got %+v", state)
		}
	})

	t.Run("playing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"device": {"id": "dev1", "is_active": true, "name": "Kitchen", "type": "Speaker", "volume_percent": 40},
				"shuffle_state": true,
				"repeat_state": "off",
				"is_playing": true,
				"item": {"id": "trk1", "name": "Mr. Brightside", "artists": [{"id": "a1", "name": "The Killers"}]}
			}`))
		}))
		defer server.Close()

		client := newTestClient(t, http.DefaultClient, func(cfg *Config) {
			cfg.BaseURL = server.URL
		})

		state, err := client.Player().GetPlaybackState(context.Background(), PlaybackStateParams{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state == nil {
			t.Fatal("expected playback state, got nil")
		}
		if !state.Playing {
			t.Error("expected is_playing to be true")
		}
		if state.Device.Name != "Kitchen" {
			t.Errorf("expected device Kitchen, got %q", state.Device.Name)
		}
		if !state.ShuffleState {
			t.Error("expected shuffle_state to be true")
		}
		if state.Item == nil || state.Item.Name != "Mr. Brightside" {
			t.Fatalf("expected item Mr. Brightside, got %+v", state.Item)
		}
		if len(state.Item.Artists) != 1 || state.Item.Artists[0].Name != "The Killers" {
			t.Errorf("unexpected artists: %+v", state.Item.Artists)
		}
	})
}

// TestClient_Search_RoundTrip checks that the decoded body is returned
// unchanged.
func TestClient_Search_RoundTrip(t *testing.T) {
	const payload = `{"artists":{"href":"https://api.spotify.com/v1/search?q=the+killers","limit":20,"offset":0,"total":1,"items":[{"id":"0C0XlULifJtAgn6ZNCW2eu","name":"The Killers","uri":"spotify:artist:0C0XlULifJtAgn6ZNCW2eu","genres":["rock"],"popularity":80}]}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "the killers" {
			t.Errorf("expected q 'the killers', got %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "artist" {
			t.Errorf("expected type artist, got %q", got)
		}
		for _, key := range []string{"market", "limit", "offset", "include_external"} {
			if r.URL.Query().Has(key) {
				t.Errorf("expected %s to be omitted", key)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := newTestClient(t, http.DefaultClient, func(cfg *Config) {
		cfg.BaseURL = server.URL
	})

	result, err := client.Search(context.Background(), SearchParams{Q: "the killers", Type: []string{"artist"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := json.Marshal(result.Artists.Artists)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}
	var want, have []map[string]interface{}
	var raw struct {
		Artists struct {
			Items []map[string]interface{} `json:"items"`
		} `json:"artists"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	want = raw.Artists.Items
	if err := json.Unmarshal(got, &have); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}

	if len(have) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(have))
	}
	for _, key := range []string{"id", "name", "uri"} {
		if have[0][key] != want[0][key] {
			t.Errorf("expected %s %v, got %v", key, want[0][key], have[0][key])
		}
	}
	if result.Artists.Total != 1 {
		t.Errorf("expected total 1, got %d", result.Artists.Total)
	}
}
