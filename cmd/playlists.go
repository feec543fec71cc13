package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/spf13/cobra"
	spotifyLib "github.com/zmb3/spotify/v2"
)

// playlistsCmd represents the playlists command
var playlistsCmd = &cobra.Command{
	Use:   "playlists [playlist-id]",
	Short: "List your playlists or the tracks of one playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylists,
}

func init() {
	rootCmd.AddCommand(playlistsCmd)

	playlistsCmd.Flags().IntP("limit", "l", 20, "Maximum number of results")
	playlistsCmd.Flags().Int("offset", 0, "Index of the first result")
}

func runPlaylists(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	return withEnv(func(ctx context.Context, e *env) error {
		playlists := e.session.Client().Playlists()

		if len(args) == 0 {
			page, err := playlists.GetCurrentUsers(ctx, spotify.GetCurrentUsersPlaylistsParams{
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list playlists: %w", err)
			}
			return printPlaylists(os.Stdout, page.Playlists)
		}

		page, err := playlists.GetItems(ctx, spotify.GetPlaylistItemsParams{
			PlaylistID: args[0],
			Market:     e.cfg.Spotify.Market,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list playlist items: %w", err)
		}
		return printPlaylistItems(os.Stdout, page.Items)
	})
}

func printPlaylists(out io.Writer, playlists []spotifyLib.SimplePlaylist) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOWNER\tID")
	for _, p := range playlists {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Owner.DisplayName, p.ID)
	}
	return w.Flush()
}

// printPlaylistItems lists tracks, skipping episodes and removed items
func printPlaylistItems(out io.Writer, items []spotifyLib.PlaylistItem) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tARTIST\tLENGTH\tURI")
	for _, item := range items {
		t := item.Track.Track
		if t == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, joinArtists(t.Artists), clock(t.TimeDuration()), t.URI)
	}
	return w.Flush()
}
