package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfmyers9/spindle/internal/tui"
	"github.com/jfmyers9/spindle/internal/watch"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Display a terminal UI for now playing",
	Long: `Display a full-screen terminal UI showing the current Spotify track
with a live progress bar, the active device, and recently played tracks.

Keys:
  space  play/pause      n  next track      p  previous track
  s      toggle shuffle  +  volume up       -  volume down
  q      quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().DurationP("interval", "i", 0, "Poll interval (overrides config)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Logs would corrupt the screen unless sent to a file
	if logFile == "" {
		logFile = os.DevNull
	}

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = time.Duration(e.cfg.PollInterval) * time.Second
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	player := e.player("")
	updates := make(chan watch.TrackUpdate)
	poller := watch.NewPoller(player, interval, e.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = poller.Run(ctx, updates)
	}()

	app := tui.New(tui.DefaultConfig(), player)
	return app.Run(ctx, updates)
}
