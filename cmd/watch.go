package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfmyers9/spindle/internal/music"
	"github.com/jfmyers9/spindle/internal/watch"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print playback changes as they happen",
	Long: `Poll Spotify and print a line whenever playback changes: a new
track, play/pause, a different device, or a shuffle, repeat or volume
change.

Lines use the same template as 'spindle now'. Runs until interrupted
(SIGINT/SIGTERM).`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	watchCmd.Flags().DurationP("interval", "i", 0, "Poll interval (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	format := e.cfg.OutputFormat
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		format = f
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = time.Duration(e.cfg.PollInterval) * time.Second
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	poller := watch.NewPoller(e.player(""), interval, e.logger)
	updates := make(chan watch.TrackUpdate)

	errCh := make(chan error, 1)
	go func() {
		errCh <- poller.Run(ctx, updates)
	}()

	for {
		select {
		case <-ctx.Done():
			<-errCh
			e.logger.Info().Msg("Watch stopped")
			return nil
		case u := <-updates:
			if u.Err != nil {
				e.logger.Warn().Err(u.Err).Msg("Failed to get playback state")
				continue
			}
			if u.Track == nil {
				fmt.Println("■ stopped")
				continue
			}

			line, err := formatTrack(u.Track, format)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", stateSymbol(u.Track.State), line)
		}
	}
}

func stateSymbol(state music.PlayState) string {
	switch state {
	case music.StatePlaying:
		return "▶"
	case music.StatePaused:
		return "⏸"
	default:
		return "■"
	}
}
