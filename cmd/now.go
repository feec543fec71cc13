/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/jfmyers9/spindle/internal/music"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Display the currently playing track",
	Long: `Query Spotify and display the currently playing track.

The output format can be customized in ~/.config/spindle/config.yaml
using a Go template. Available fields: .Name, .Artist, .Album, .Duration,
.Position, .Device, .Volume, .Shuffle, .Repeat, .URI

Exit codes:
  0 - Track is currently playing
  1 - No track playing, paused, or not authorized`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	// Add format flag to override config
	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
	// Add marquee flag to enable scrolling
	nowCmd.Flags().Bool("marquee", false, "Enable marquee scrolling for long text (overrides config)")
}

func runNow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	cfg := e.cfg

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	// Get current track
	player := e.player("")
	track, err := player.GetCurrentTrack(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}

	// If not playing, exit with code 1
	if track == nil || track.State != music.StatePlaying {
		if track == nil {
			fmt.Fprintln(os.Stderr, idleReason(ctx, player))
		}
		e.Close()
		os.Exit(1)
		return nil
	}

	// Format and print output
	output, err := formatTrack(track, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Apply width padding/marquee if requested
	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = cfg.OutputWidth
	}

	marquee, _ := cmd.Flags().GetBool("marquee")
	if !marquee && !cmd.Flags().Changed("marquee") {
		// Flag not set, use config default
		marquee = cfg.MarqueeEnabled
	}

	if width > 0 {
		if marquee {
			output = marqueeText(output, width, cfg.MarqueeSpeed, cfg.MarqueeSeparator)
		} else {
			output = padToWidth(output, width)
		}
	}

	fmt.Println(output)
	return nil
}

// activityChecker reports whether a playback device is active.
type activityChecker interface {
	IsActive(ctx context.Context) (bool, error)
}

// idleReason explains why nothing is loaded.
func idleReason(ctx context.Context, c activityChecker) string {
	active, err := c.IsActive(ctx)
	switch {
	case err != nil:
		return fmt.Sprintf("unable to query devices: %v", err)
	case !active:
		return "no active Spotify device"
	default:
		return "nothing playing"
	}
}

// templateFuncs are available to output templates
var templateFuncs = template.FuncMap{
	"clock": clock,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// clock formats a duration as m:ss, or h:mm:ss past an hour
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	sec := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// formatTrack applies the template to the track data
func formatTrack(track *music.Track, templateStr string) (string, error) {
	tmpl, err := template.New("output").Funcs(templateFuncs).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// Text longer than width is truncated with a "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		if width <= runewidth.StringWidth(ellipsis) {
			return runewidth.Truncate(ellipsis, width, "")
		}
		// Truncate pads wide runes that straddle the cut with nothing,
		// so fill back to width afterwards
		return runewidth.FillRight(runewidth.Truncate(text, width, ellipsis), width)
	}

	return runewidth.FillRight(text, width)
}

// marqueeText scrolls text that exceeds width using the current time.
// See marqueeFrame.
func marqueeText(text string, width int, speed int, separator string) string {
	return marqueeFrame(text, width, speed, separator, time.Now())
}

// marqueeFrame returns the window of "text{separator}text" visible at
// time now, advancing speed characters per second. The position wraps,
// so successive status bar refreshes loop through the whole text. Text
// that fits within width is padded and does not scroll.
func marqueeFrame(text string, width int, speed int, separator string, now time.Time) string {
	if width <= 0 {
		return text
	}

	if runewidth.StringWidth(text) <= width {
		return padToWidth(text, width)
	}

	extended := []rune(text + separator + text)
	total := len(extended)
	if speed < 1 {
		speed = 1
	}
	position := int(now.Unix()*int64(speed)) % total
	if position < 0 {
		position += total
	}

	var result []rune
	resultWidth := 0

	for i := 0; i < total; i++ {
		r := extended[(position+i)%total]
		rw := runewidth.RuneWidth(r)
		if resultWidth+rw > width {
			break
		}
		result = append(result, r)
		resultWidth += rw
	}

	return runewidth.FillRight(string(result), width)
}
