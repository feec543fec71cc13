// Package tui renders a full-screen now-playing view with playback
// controls.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/spindle/internal/music"
	"github.com/jfmyers9/spindle/internal/watch"
	"github.com/rivo/tview"
)

const maxRecentTracks = 5

// volumeStep is the change applied by the +/- keys
const volumeStep = 5

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refresh the display
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 500 * time.Millisecond,
	}
}

// Controller is the music client used for keyboard controls
type Controller interface {
	music.Client
	ToggleShuffle(ctx context.Context) (bool, error)
}

// RecentTrack stores info about a recently played track
type RecentTrack struct {
	Name     string
	Artist   string
	PlayedAt time.Time
}

// App is the TUI application for displaying Spotify playback
type App struct {
	app        *tview.Application
	nowPlaying *tview.TextView
	progress   *tview.TextView
	device     *tview.TextView
	recent     *tview.TextView
	status     *tview.TextView

	config     Config
	controller Controller

	// mu guards the fields below, shared by the update consumer, the
	// refresh ticker and key handlers
	mu sync.Mutex

	currentTrack *music.Track
	updatedAt    time.Time // when currentTrack was polled
	lastErr      error

	sessionStart time.Time
	tracksPlayed int

	// Ring buffer for recent tracks
	recentBuf   [maxRecentTracks]RecentTrack
	recentCount int // total tracks added (recentCount % maxRecentTracks = next write index)

	// Last-rendered content for change detection
	lastNowPlaying string
	lastProgress   string
	lastDevice     string
	lastRecent     string

	// Cached progress bar width, updated only when GetInnerRect
	// returns a positive value
	lastBarWidth int

	cancelFunc context.CancelFunc
}

// New creates a new TUI application
func New(cfg Config, controller Controller) *App {
	a := &App{
		app:          tview.NewApplication(),
		config:       cfg,
		controller:   controller,
		sessionStart: time.Now(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetTitleAlign(tview.AlignLeft)

	a.progress = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.progress.SetBorder(true)

	a.device = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.device.SetBorder(true).
		SetTitle(" Device ").
		SetTitleAlign(tview.AlignLeft)

	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recent ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  space:play/pause  n:next  p:prev  s:shuffle  +/-:volume[-]")

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.device, 0, 1, false).
		AddItem(a.recent, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 0, 3, false).
		AddItem(a.progress, 3, 1, false).
		AddItem(bottomRow, 7, 1, false).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	var action func(ctx context.Context) error

	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	case ' ':
		action = a.controller.PlayPause
	case 'n', 'N':
		action = a.controller.NextTrack
	case 'p', 'P':
		action = a.controller.PreviousTrack
	case 's', 'S':
		action = func(ctx context.Context) error {
			_, err := a.controller.ToggleShuffle(ctx)
			return err
		}
	case '+', '=':
		action = func(ctx context.Context) error {
			return a.controller.SetVolume(ctx, a.nextVolume(volumeStep))
		}
	case '-', '_':
		action = func(ctx context.Context) error {
			return a.controller.SetVolume(ctx, a.nextVolume(-volumeStep))
		}
	default:
		return event
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := action(ctx)
	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()

	return nil
}

// nextVolume returns the current volume moved by delta, clamped to 0-100
func (a *App) nextVolume(delta int) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	level := delta
	if a.currentTrack != nil {
		level += a.currentTrack.Volume
	}
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// Run starts the TUI, consuming playback changes from updates.
// Blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, updates <-chan watch.TrackUpdate) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	go a.handleUpdates(ctx, updates)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleUpdates consumes updates in one goroutine while a single ticker
// drives all redraws, so redraws never queue up behind slow polls.
func (a *App) handleUpdates(ctx context.Context, updates <-chan watch.TrackUpdate) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update := <-updates:
				a.apply(update, time.Now())
			}
		}
	}()

	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = 500 * time.Millisecond
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.refresh()
		}
	}
}

// apply records a playback update, moving the previous track into the
// recent list when the track changes
func (a *App) apply(update watch.TrackUpdate, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastErr = update.Err
	if update.Err != nil {
		return
	}

	prev := a.currentTrack
	if prev != nil && (update.Track == nil || update.Track.ID != prev.ID) {
		a.addToRecentTracks(prev, now)
		a.tracksPlayed++
	}

	a.currentTrack = update.Track
	a.updatedAt = now
}

// addToRecentTracks adds a track to the ring buffer of recent tracks.
// Must be called with a.mu held.
func (a *App) addToRecentTracks(track *music.Track, playedAt time.Time) {
	idx := a.recentCount % maxRecentTracks
	a.recentBuf[idx] = RecentTrack{
		Name:     track.Name,
		Artist:   track.Artist,
		PlayedAt: playedAt,
	}
	a.recentCount++
}

// getRecentTracks returns recent tracks in most-recent-first order.
// Must be called with a.mu held.
func (a *App) getRecentTracks() []RecentTrack {
	n := a.recentCount
	if n > maxRecentTracks {
		n = maxRecentTracks
	}
	result := make([]RecentTrack, n)
	for i := 0; i < n; i++ {
		idx := (a.recentCount - 1 - i) % maxRecentTracks
		result[i] = a.recentBuf[idx]
	}
	return result
}

// refresh updates all UI components
func (a *App) refresh() {
	now := time.Now()
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.updateNowPlaying()
		a.updateProgress(now)
		a.updateDevice(now)
		a.updateRecentTracks()
	})
}

// updateNowPlaying updates the now playing panel
func (a *App) updateNowPlaying() {
	var text string

	if a.currentTrack == nil || a.currentTrack.State == music.StateStopped {
		text = "\n\n[gray]Nothing playing[-]"
	} else {
		var sb strings.Builder
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(a.currentTrack.Name)))
		sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(a.currentTrack.Artist)))
		sb.WriteString(fmt.Sprintf("[gray]%s[-]", tview.Escape(a.currentTrack.Album)))

		stateIcon := "[green]▶[-]"
		if a.currentTrack.State == music.StatePaused {
			stateIcon = "[yellow]⏸[-]"
		}
		sb.WriteString(fmt.Sprintf("\n\n%s", stateIcon))
		text = sb.String()
	}

	if text != a.lastNowPlaying {
		a.lastNowPlaying = text
		a.nowPlaying.SetText(text)
	}
}

// updateProgress updates the progress bar
func (a *App) updateProgress(now time.Time) {
	var text string

	if a.currentTrack != nil && a.currentTrack.State != music.StateStopped {
		_, _, width, _ := a.progress.GetInnerRect()
		barWidth := width - 14 // Account for time display
		if barWidth > 0 {
			a.lastBarWidth = barWidth
		}
		if a.lastBarWidth < 10 {
			a.lastBarWidth = 10
		}

		position := interpolatePosition(a.currentTrack, a.updatedAt, now)
		progressBar := buildProgressBar(position, a.currentTrack.Duration, a.lastBarWidth)
		text = fmt.Sprintf("%s %s %s", formatDuration(position), progressBar, formatDuration(a.currentTrack.Duration))
	}

	if text != a.lastProgress {
		a.lastProgress = text
		a.progress.SetText(text)
	}
}

// updateDevice updates the device panel
func (a *App) updateDevice(now time.Time) {
	var sb strings.Builder

	if a.currentTrack == nil {
		sb.WriteString("[gray]No active device[-]\n")
	} else {
		sb.WriteString(fmt.Sprintf("[white]%s[-]  %d%%\n", tview.Escape(a.currentTrack.Device), a.currentTrack.Volume))
		sb.WriteString(fmt.Sprintf("Shuffle: %s  Repeat: %s\n", onOff(a.currentTrack.Shuffle), a.currentTrack.Repeat))
	}

	sb.WriteString(fmt.Sprintf("Played: %d  Session: %s", a.tracksPlayed, formatDuration(now.Sub(a.sessionStart))))

	if a.lastErr != nil {
		sb.WriteString(fmt.Sprintf("\n[red]%s[-]", tview.Escape(a.lastErr.Error())))
	}

	text := sb.String()
	if text != a.lastDevice {
		a.lastDevice = text
		a.device.SetText(text)
	}
}

// updateRecentTracks updates the recent tracks panel
func (a *App) updateRecentTracks() {
	var sb strings.Builder

	tracks := a.getRecentTracks()
	if len(tracks) == 0 {
		sb.WriteString("[gray]No recent tracks[-]")
	} else {
		for i, track := range tracks {
			if i > 0 {
				sb.WriteString("\n")
			}

			name := []rune(track.Name)
			if len(name) > 20 {
				name = append(name[:17], []rune("...")...)
			}
			sb.WriteString(fmt.Sprintf("[gray]%s[-] [white]%s[-]", track.PlayedAt.Format("15:04"), tview.Escape(string(name))))
		}
	}

	text := sb.String()
	if text != a.lastRecent {
		a.lastRecent = text
		a.recent.SetText(text)
	}
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// interpolatePosition estimates the playback position at now from the
// last polled position, so the bar advances between polls
func interpolatePosition(track *music.Track, updatedAt, now time.Time) time.Duration {
	position := track.Position
	if track.State == music.StatePlaying && !updatedAt.IsZero() {
		position += now.Sub(updatedAt)
	}
	if track.Duration > 0 && position > track.Duration {
		position = track.Duration
	}
	return position
}

// buildProgressBar creates a text-based progress bar
func buildProgressBar(position, duration time.Duration, width int) string {
	if duration == 0 || width <= 0 {
		return strings.Repeat("-", width)
	}

	progress := float64(position) / float64(duration)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(progress * float64(width))
	empty := width - filled

	return "[green]" + strings.Repeat("█", filled) + "[-]" +
		"[gray]" + strings.Repeat("░", empty) + "[-]"
}

// formatDuration formats a duration as MM:SS or H:MM:SS for longer durations
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
