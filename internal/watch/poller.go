// Package watch polls the player and reports playback changes.
package watch

import (
	"context"
	"time"

	"github.com/jfmyers9/spindle/internal/music"
	"github.com/rs/zerolog"
)

// TrackUpdate represents a change reported by the poller
type TrackUpdate struct {
	Track *music.Track // Current track (nil if stopped/no track)
	Err   error        // Error from music client
}

// Poller polls the music client at regular intervals
type Poller struct {
	client   music.Client
	interval time.Duration
	logger   zerolog.Logger

	last    *music.Track
	lastErr bool
}

// NewPoller creates a new Poller instance
func NewPoller(client music.Client, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Run starts the polling loop and sends an update to the provided
// channel whenever playback changes. Blocks until context is cancelled.
func (p *Poller) Run(ctx context.Context, updates chan<- TrackUpdate) error {
	p.logger.Info().
		Dur("interval", p.interval).
		Msg("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll immediately on start
	p.poll(ctx, updates, true)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx, updates, false)
		}
	}
}

// poll queries the music client and sends an update if anything changed
func (p *Poller) poll(ctx context.Context, updates chan<- TrackUpdate, first bool) {
	track, err := p.client.GetCurrentTrack(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Debug().Err(err).Msg("Error getting current track")
		p.lastErr = true
		select {
		case updates <- TrackUpdate{Err: err}:
		case <-ctx.Done():
		}
		return
	}

	if !first && !p.lastErr && !Changed(p.last, track) {
		p.last = track
		return
	}
	p.last = track
	p.lastErr = false

	select {
	case updates <- TrackUpdate{Track: track}:
		if track != nil {
			p.logger.Debug().
				Str("track", track.Name).
				Str("artist", track.Artist).
				Str("state", track.State.String()).
				Msg("Playback changed")
		}
	case <-ctx.Done():
	}
}

// Changed reports whether the transition from prev to next is worth
// reporting: a different track, play state, device or shuffle/repeat
// mode. Position moving forward alone is not a change.
func Changed(prev, next *music.Track) bool {
	if prev == nil || next == nil {
		return prev != next
	}
	return prev.ID != next.ID ||
		prev.State != next.State ||
		prev.Device != next.Device ||
		prev.Shuffle != next.Shuffle ||
		prev.Repeat != next.Repeat ||
		prev.Volume != next.Volume
}
