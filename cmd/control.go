package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/spf13/cobra"
)

var deviceID string

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [uri...]",
	Short: "Resume playback or play the given URIs",
	Long: `Resume playback on the active device.

With an album, artist or playlist URI, starts playing that context.
With one or more track URIs, plays those tracks.`,
	RunE: runPlay,
}

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Long:  `Pause playback on the active device.`,
	RunE:  runPause,
}

// playpauseCmd represents the playpause command
var playpauseCmd = &cobra.Command{
	Use:   "playpause",
	Short: "Toggle play/pause",
	Long:  `Toggle between play and pause states. If playing, pauses. If paused, resumes.`,
	RunE:  runPlayPause,
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	Long:  `Skip to the next track in the current context or queue.`,
	RunE:  runNext,
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	Long:  `Go to the previous track in the current context or queue.`,
	RunE:  runPrev,
}

// shuffleCmd represents the shuffle command
var shuffleCmd = &cobra.Command{
	Use:   "shuffle [on|off]",
	Short: "Toggle or set shuffle mode",
	Long: `Control shuffle mode.

Without arguments, toggles shuffle on/off.
With 'on' or 'off' argument, explicitly sets shuffle state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShuffle,
}

// repeatCmd represents the repeat command
var repeatCmd = &cobra.Command{
	Use:       "repeat <off|track|context>",
	Short:     "Set repeat mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"off", "track", "context"},
	RunE:      runRepeat,
}

// volumeCmd represents the volume command
var volumeCmd = &cobra.Command{
	Use:   "volume [0-100]",
	Short: "Show or set playback volume",
	Long: `Set the playback volume of the active device.

Volume level must be between 0 (muted) and 100 (maximum).
Without arguments, displays the current volume.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

// seekCmd represents the seek command
var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track",
	Long: `Seek to a position in the current track.

Position is a duration such as 1m30s, or a number of seconds.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

// queueCmd represents the queue command
var queueCmd = &cobra.Command{
	Use:   "queue <uri>",
	Short: "Add a track or episode to the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueue,
}

// devicesCmd represents the devices command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available playback devices",
	RunE:  runDevices,
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer <device-id>",
	Short: "Transfer playback to another device",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransfer,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, pauseCmd, playpauseCmd, nextCmd, prevCmd, shuffleCmd, repeatCmd, volumeCmd, seekCmd, queueCmd} {
		c.Flags().StringVarP(&deviceID, "device", "d", "", "Target device ID (default: active device)")
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().Bool("play", false, "Start playing on the new device")
}

// withEnv runs fn with a session, bounded by commandTimeout
func withEnv(fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	return fn(ctx, e)
}

// playbackParams builds StartPlayback parameters from URI arguments.
// A single non-track URI is played as a context.
func playbackParams(uris []string) spotify.StartPlaybackParams {
	params := spotify.StartPlaybackParams{DeviceID: deviceID}
	if len(uris) == 1 && !strings.HasPrefix(uris[0], "spotify:track:") && !strings.HasPrefix(uris[0], "spotify:episode:") {
		params.ContextURI = uris[0]
		return params
	}
	params.URIs = uris
	return params
}

func runPlay(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		if len(args) == 0 {
			if err := e.player(deviceID).Play(ctx); err != nil {
				return fmt.Errorf("failed to play: %w", err)
			}
			return nil
		}

		if err := e.session.Client().Player().StartPlayback(ctx, playbackParams(args)); err != nil {
			return fmt.Errorf("failed to play: %w", err)
		}
		return nil
	})
}

func runPause(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		if err := e.player(deviceID).Pause(ctx); err != nil {
			return fmt.Errorf("failed to pause: %w", err)
		}
		return nil
	})
}

func runPlayPause(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		if err := e.player(deviceID).PlayPause(ctx); err != nil {
			return fmt.Errorf("failed to playpause: %w", err)
		}
		return nil
	})
}

func runNext(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		if err := e.player(deviceID).NextTrack(ctx); err != nil {
			return fmt.Errorf("failed to skip to next track: %w", err)
		}
		return nil
	})
}

func runPrev(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		if err := e.player(deviceID).PreviousTrack(ctx); err != nil {
			return fmt.Errorf("failed to go to previous track: %w", err)
		}
		return nil
	})
}

func runShuffle(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		player := e.player(deviceID)

		if len(args) == 0 {
			enabled, err := player.ToggleShuffle(ctx)
			if err != nil {
				return fmt.Errorf("failed to toggle shuffle: %w", err)
			}
			fmt.Printf("Shuffle %s\n", onOff(enabled))
			return nil
		}

		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("invalid shuffle argument: %s (must be 'on' or 'off')", args[0])
		}

		if err := player.SetShuffle(ctx, enabled); err != nil {
			return fmt.Errorf("failed to set shuffle: %w", err)
		}
		return nil
	})
}

func runRepeat(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		params := spotify.SetRepeatParams{State: spotify.RepeatState(args[0]), DeviceID: deviceID}
		if err := e.session.Client().Player().SetRepeat(ctx, params); err != nil {
			return fmt.Errorf("failed to set repeat: %w", err)
		}
		return nil
	})
}

func runVolume(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		player := e.player(deviceID)

		if len(args) == 0 {
			level, err := player.GetVolume(ctx)
			if err != nil {
				return fmt.Errorf("failed to get volume: %w", err)
			}
			fmt.Println(level)
			return nil
		}

		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume level: %s (must be a number 0-100)", args[0])
		}

		if err := player.SetVolume(ctx, level); err != nil {
			return fmt.Errorf("failed to set volume: %w", err)
		}
		return nil
	})
}

// parsePosition accepts a Go duration or a plain number of seconds
func parsePosition(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if secs, convErr := strconv.Atoi(s); convErr == nil {
		d, err = time.Duration(secs)*time.Second, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid position: %s (use e.g. 90 or 1m30s)", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid position: %s (must not be negative)", s)
	}
	return d, nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	return withEnv(func(ctx context.Context, e *env) error {
		params := spotify.SeekParams{PositionMS: int(position.Milliseconds()), DeviceID: deviceID}
		if err := e.session.Client().Player().Seek(ctx, params); err != nil {
			return fmt.Errorf("failed to seek: %w", err)
		}
		return nil
	})
}

func runQueue(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		params := spotify.AddToQueueParams{URI: args[0], DeviceID: deviceID}
		if err := e.session.Client().Player().AddToQueue(ctx, params); err != nil {
			return fmt.Errorf("failed to add to queue: %w", err)
		}
		return nil
	})
}

func runDevices(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		devices, err := e.session.Client().Player().GetAvailableDevices(ctx)
		if err != nil {
			return fmt.Errorf("failed to list devices: %w", err)
		}

		if len(devices) == 0 {
			fmt.Println("No devices available. Open Spotify on a device first.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tVOLUME\tACTIVE")
		for _, d := range devices {
			active := ""
			if d.Active {
				active = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Type, int(d.Volume), active)
		}
		return w.Flush()
	})
}

func runTransfer(cmd *cobra.Command, args []string) error {
	play, _ := cmd.Flags().GetBool("play")

	return withEnv(func(ctx context.Context, e *env) error {
		params := spotify.TransferPlaybackParams{DeviceID: args[0], Play: play}
		if err := e.session.Client().Player().TransferPlayback(ctx, params); err != nil {
			return fmt.Errorf("failed to transfer playback: %w", err)
		}
		return nil
	})
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
