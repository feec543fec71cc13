package music

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/spindle/pkg/spotify"
	spotifyLib "github.com/zmb3/spotify/v2"
)

// Player is the subset of spotify.PlayerService used by SpotifyClient
type Player interface {
	GetPlaybackState(ctx context.Context, params spotify.PlaybackStateParams) (*spotifyLib.PlayerState, error)
	StartPlayback(ctx context.Context, params spotify.StartPlaybackParams) error
	PausePlayback(ctx context.Context, deviceID string) error
	SkipToNext(ctx context.Context, deviceID string) error
	SkipToPrevious(ctx context.Context, deviceID string) error
	SetShuffle(ctx context.Context, params spotify.SetShuffleParams) error
	SetVolume(ctx context.Context, params spotify.SetVolumeParams) error
}

var _ Player = (*spotify.PlayerService)(nil)

// SpotifyClient implements the Client interface on top of the Spotify
// player endpoints
type SpotifyClient struct {
	player   Player
	deviceID string
	market   string
}

// NewSpotifyClient creates a new Spotify-backed music client. An empty
// deviceID targets the user's active device.
func NewSpotifyClient(player Player, deviceID, market string) *SpotifyClient {
	return &SpotifyClient{
		player:   player,
		deviceID: deviceID,
		market:   market,
	}
}

// IsActive reports whether Spotify has an active playback device
func (c *SpotifyClient) IsActive(ctx context.Context) (bool, error) {
	state, err := c.state(ctx)
	if err != nil {
		return false, err
	}
	return state != nil && state.Device.Active, nil
}

// GetCurrentTrack returns the current track, or nil when nothing is loaded
func (c *SpotifyClient) GetCurrentTrack(ctx context.Context) (*Track, error) {
	state, err := c.state(ctx)
	if err != nil {
		return nil, err
	}
	return trackFromState(state), nil
}

func (c *SpotifyClient) state(ctx context.Context) (*spotifyLib.PlayerState, error) {
	state, err := c.player.GetPlaybackState(ctx, spotify.PlaybackStateParams{Market: c.market})
	if err != nil {
		return nil, fmt.Errorf("failed to get playback state: %w", err)
	}
	return state, nil
}

// Play resumes playback
func (c *SpotifyClient) Play(ctx context.Context) error {
	return c.player.StartPlayback(ctx, spotify.StartPlaybackParams{DeviceID: c.deviceID})
}

// Pause pauses playback
func (c *SpotifyClient) Pause(ctx context.Context) error {
	return c.player.PausePlayback(ctx, c.deviceID)
}

// PlayPause toggles between play and pause
func (c *SpotifyClient) PlayPause(ctx context.Context) error {
	state, err := c.state(ctx)
	if err != nil {
		return err
	}
	if state != nil && state.Playing {
		return c.Pause(ctx)
	}
	return c.Play(ctx)
}

// NextTrack skips to the next track
func (c *SpotifyClient) NextTrack(ctx context.Context) error {
	return c.player.SkipToNext(ctx, c.deviceID)
}

// PreviousTrack goes to the previous track
func (c *SpotifyClient) PreviousTrack(ctx context.Context) error {
	return c.player.SkipToPrevious(ctx, c.deviceID)
}

// SetShuffle enables or disables shuffle
func (c *SpotifyClient) SetShuffle(ctx context.Context, enabled bool) error {
	return c.player.SetShuffle(ctx, spotify.SetShuffleParams{State: enabled, DeviceID: c.deviceID})
}

// ToggleShuffle flips shuffle and returns the new setting
func (c *SpotifyClient) ToggleShuffle(ctx context.Context) (bool, error) {
	state, err := c.state(ctx)
	if err != nil {
		return false, err
	}
	if state == nil {
		return false, fmt.Errorf("no active playback")
	}

	enabled := !state.ShuffleState
	if err := c.SetShuffle(ctx, enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// SetVolume sets the volume (0-100)
func (c *SpotifyClient) SetVolume(ctx context.Context, level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("volume must be between 0 and 100 (got %d)", level)
	}
	return c.player.SetVolume(ctx, spotify.SetVolumeParams{VolumePercent: level, DeviceID: c.deviceID})
}

// GetVolume returns the active device's volume
func (c *SpotifyClient) GetVolume(ctx context.Context) (int, error) {
	state, err := c.state(ctx)
	if err != nil {
		return 0, err
	}
	if state == nil {
		return 0, fmt.Errorf("no active playback")
	}
	return int(state.Device.Volume), nil
}

// trackFromState converts a playback state into a Track.
// Returns nil when no track is loaded (episodes and ads have no Item).
func trackFromState(state *spotifyLib.PlayerState) *Track {
	if state == nil || state.Item == nil {
		return nil
	}

	item := state.Item
	artists := make([]string, 0, len(item.Artists))
	for _, a := range item.Artists {
		artists = append(artists, a.Name)
	}

	track := &Track{
		ID:       string(item.ID),
		URI:      string(item.URI),
		Name:     item.Name,
		Artist:   strings.Join(artists, ", "),
		Album:    item.Album.Name,
		Duration: time.Duration(item.Duration) * time.Millisecond,
		Position: time.Duration(state.Progress) * time.Millisecond,
		State:    StatePaused,
		Device:   state.Device.Name,
		Volume:   int(state.Device.Volume),
		Shuffle:  state.ShuffleState,
		Repeat:   state.RepeatState,
	}
	if state.Playing {
		track.State = StatePlaying
	}

	return track
}
