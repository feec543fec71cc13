package music

import (
	"context"
	"time"
)

// Track represents a music track with its metadata and current state
type Track struct {
	ID       string        // Spotify track ID
	URI      string        // Spotify track URI
	Name     string        // Track name/title
	Artist   string        // Artist names, comma separated
	Album    string        // Album name
	Duration time.Duration // Total track duration
	Position time.Duration // Current playback position
	State    PlayState     // Current playback state
	Device   string        // Name of the device playing the track
	Volume   int           // Device volume percent
	Shuffle  bool          // Whether shuffle is on
	Repeat   string        // Repeat mode: off, track or context
}

// PlayState represents the current playback state of the player
type PlayState int

const (
	StateStopped PlayState = iota // No track playing
	StatePlaying                  // Track is currently playing
	StatePaused                   // Track is paused
)

// String returns a human-readable representation of the PlayState
func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Client defines the interface for interacting with a music player
type Client interface {
	// GetCurrentTrack returns the currently playing/paused track, or nil if stopped
	GetCurrentTrack(ctx context.Context) (*Track, error)

	// IsActive checks if a device is currently available for playback
	IsActive(ctx context.Context) (bool, error)

	// Play resumes playback
	Play(ctx context.Context) error

	// Pause pauses playback
	Pause(ctx context.Context) error

	// PlayPause toggles between play and pause
	PlayPause(ctx context.Context) error

	// NextTrack skips to the next track
	NextTrack(ctx context.Context) error

	// PreviousTrack goes to the previous track
	PreviousTrack(ctx context.Context) error

	// SetShuffle enables or disables shuffle
	SetShuffle(ctx context.Context, enabled bool) error

	// SetVolume sets the volume (0-100)
	SetVolume(ctx context.Context, level int) error
}
