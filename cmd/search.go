package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/spf13/cobra"
	spotifyLib "github.com/zmb3/spotify/v2"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Spotify catalog",
	Long: `Search for tracks, albums, artists or playlists.

Results are printed with their URIs, which can be passed to 'spindle play'
or 'spindle queue'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("type", "t", []string{"track"}, "Item types to search (track, album, artist, playlist)")
	searchCmd.Flags().IntP("limit", "l", 10, "Maximum results per type")
}

func runSearch(cmd *cobra.Command, args []string) error {
	types, _ := cmd.Flags().GetStringSlice("type")
	limit, _ := cmd.Flags().GetInt("limit")

	return withEnv(func(ctx context.Context, e *env) error {
		result, err := e.session.Client().Search(ctx, spotify.SearchParams{
			Q:      strings.Join(args, " "),
			Type:   types,
			Market: e.cfg.Spotify.Market,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("failed to search: %w", err)
		}

		return printSearchResult(os.Stdout, result)
	})
}

// printSearchResult writes one table per result type present
func printSearchResult(out io.Writer, result *spotifyLib.SearchResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if result.Tracks != nil && len(result.Tracks.Tracks) > 0 {
		fmt.Fprintln(w, "TRACK\tARTIST\tALBUM\tURI")
		for _, t := range result.Tracks.Tracks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, joinArtists(t.Artists), t.Album.Name, t.URI)
		}
		fmt.Fprintln(w)
	}

	if result.Albums != nil && len(result.Albums.Albums) > 0 {
		fmt.Fprintln(w, "ALBUM\tARTIST\tRELEASED\tURI")
		for _, a := range result.Albums.Albums {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, joinArtists(a.Artists), a.ReleaseDate, a.URI)
		}
		fmt.Fprintln(w)
	}

	if result.Artists != nil && len(result.Artists.Artists) > 0 {
		fmt.Fprintln(w, "ARTIST\tGENRES\tURI")
		for _, a := range result.Artists.Artists {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, strings.Join(a.Genres, ", "), a.URI)
		}
		fmt.Fprintln(w)
	}

	if result.Playlists != nil && len(result.Playlists.Playlists) > 0 {
		fmt.Fprintln(w, "PLAYLIST\tOWNER\tURI")
		for _, p := range result.Playlists.Playlists {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Owner.DisplayName, p.URI)
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

// joinArtists returns artist names separated by commas
func joinArtists(artists []spotifyLib.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
