package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// PlayerService provides playback control operations.
//
// All methods require a token with the user-read-playback-state or
// user-modify-playback-state scope. Spotify answers 404 with reason
// NO_ACTIVE_DEVICE when nothing can receive the command.
type PlayerService struct {
	client *Client
}

// GetPlaybackState returns the current playback state. It returns nil
// and no error when nothing is playing (204 No Content).
func (s *PlayerService) GetPlaybackState(ctx context.Context, params PlaybackStateParams) (*spotifyLib.PlayerState, error) {
	req := newRequest(http.MethodGet, "/me/player").
		setString("market", params.Market).
		setList("additional_types", params.AdditionalTypes)

	var state *spotifyLib.PlayerState
	if err := s.client.send(ctx, req, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetCurrentlyPlaying returns the item currently playing, or nil when
// nothing is.
func (s *PlayerService) GetCurrentlyPlaying(ctx context.Context, params PlaybackStateParams) (*spotifyLib.CurrentlyPlaying, error) {
	req := newRequest(http.MethodGet, "/me/player/currently-playing").
		setString("market", params.Market).
		setList("additional_types", params.AdditionalTypes)

	var playing *spotifyLib.CurrentlyPlaying
	if err := s.client.send(ctx, req, &playing); err != nil {
		return nil, err
	}
	return playing, nil
}

// GetAvailableDevices returns the devices the user can play on.
func (s *PlayerService) GetAvailableDevices(ctx context.Context) ([]spotifyLib.PlayerDevice, error) {
	req := newRequest(http.MethodGet, "/me/player/devices")

	var resp struct {
		Devices []spotifyLib.PlayerDevice `json:"devices"`
	}
	if err := s.client.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// StartPlayback starts a new context or resumes playback.
//
// With no ContextURI, URIs, Offset or PositionMS the request carries no
// body and Spotify resumes the current context.
//
// Example:
//
//	pos := 5
//	err := client.Player().StartPlayback(ctx, spotify.StartPlaybackParams{
//	    ContextURI: "spotify:album:5ht7ItJgpBH7W6vJ5BqpPr",
//	    Offset:     &spotify.PlaybackOffset{Position: &pos},
//	})
func (s *PlayerService) StartPlayback(ctx context.Context, params StartPlaybackParams) error {
	req := newRequest(http.MethodPut, "/me/player/play").
		setString("device_id", params.DeviceID)

	if params.ContextURI != "" || len(params.URIs) > 0 || params.Offset != nil || params.PositionMS != 0 {
		req.body = startPlaybackBody{
			ContextURI: params.ContextURI,
			URIs:       params.URIs,
			Offset:     params.Offset,
			PositionMS: params.PositionMS,
		}
	}

	return s.client.send(ctx, req, nil)
}

// PausePlayback pauses playback.
func (s *PlayerService) PausePlayback(ctx context.Context, deviceID string) error {
	req := newRequest(http.MethodPut, "/me/player/pause").
		setString("device_id", deviceID)
	return s.client.send(ctx, req, nil)
}

// SkipToNext skips to the next item in the queue.
func (s *PlayerService) SkipToNext(ctx context.Context, deviceID string) error {
	req := newRequest(http.MethodPost, "/me/player/next").
		setString("device_id", deviceID)
	return s.client.send(ctx, req, nil)
}

// SkipToPrevious skips to the previous item.
func (s *PlayerService) SkipToPrevious(ctx context.Context, deviceID string) error {
	req := newRequest(http.MethodPost, "/me/player/previous").
		setString("device_id", deviceID)
	return s.client.send(ctx, req, nil)
}

// SetVolume sets the playback volume. VolumePercent must be between 0
// and 100; 0 is sent explicitly.
func (s *PlayerService) SetVolume(ctx context.Context, params SetVolumeParams) error {
	if params.VolumePercent < 0 || params.VolumePercent > 100 {
		return fmt.Errorf("spotify: volume must be between 0 and 100 (got %d)", params.VolumePercent)
	}

	req := newRequest(http.MethodPut, "/me/player/volume").
		setString("device_id", params.DeviceID)
	req.query.Set("volume_percent", strconv.Itoa(params.VolumePercent))

	return s.client.send(ctx, req, nil)
}

// Seek moves playback to the given position in the current item.
func (s *PlayerService) Seek(ctx context.Context, params SeekParams) error {
	req := newRequest(http.MethodPut, "/me/player/seek").
		setString("device_id", params.DeviceID)
	req.query.Set("position_ms", strconv.Itoa(params.PositionMS))

	return s.client.send(ctx, req, nil)
}

// SetShuffle turns shuffle on or off.
func (s *PlayerService) SetShuffle(ctx context.Context, params SetShuffleParams) error {
	req := newRequest(http.MethodPut, "/me/player/shuffle").
		setString("device_id", params.DeviceID)
	req.query.Set("state", strconv.FormatBool(params.State))

	return s.client.send(ctx, req, nil)
}

// SetRepeat sets the repeat mode.
func (s *PlayerService) SetRepeat(ctx context.Context, params SetRepeatParams) error {
	switch params.State {
	case RepeatTrack, RepeatContext, RepeatOff:
	default:
		return fmt.Errorf("spotify: invalid repeat state %q", params.State)
	}

	req := newRequest(http.MethodPut, "/me/player/repeat").
		setString("device_id", params.DeviceID)
	req.query.Set("state", string(params.State))

	return s.client.send(ctx, req, nil)
}

// TransferPlayback moves playback to another device.
func (s *PlayerService) TransferPlayback(ctx context.Context, params TransferPlaybackParams) error {
	req := newRequest(http.MethodPut, "/me/player")
	req.body = transferPlaybackBody{
		DeviceIDs: []string{params.DeviceID},
		Play:      params.Play,
	}
	return s.client.send(ctx, req, nil)
}

// AddToQueue appends a track or episode to the playback queue.
func (s *PlayerService) AddToQueue(ctx context.Context, params AddToQueueParams) error {
	req := newRequest(http.MethodPost, "/me/player/queue").
		setString("uri", params.URI).
		setString("device_id", params.DeviceID)
	return s.client.send(ctx, req, nil)
}
