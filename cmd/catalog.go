package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/spf13/cobra"
)

// albumCmd represents the album command
var albumCmd = &cobra.Command{
	Use:   "album <album-id>",
	Short: "Show an album and its tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbum,
}

// artistCmd represents the artist command
var artistCmd = &cobra.Command{
	Use:   "artist <artist-id>",
	Short: "Show an artist's top tracks and albums",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtist,
}

func init() {
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(artistCmd)
}

func runAlbum(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		albums := e.session.Client().Albums()
		market := e.cfg.Spotify.Market

		album, err := albums.Get(ctx, spotify.GetAlbumParams{AlbumID: args[0], Market: market})
		if err != nil {
			return fmt.Errorf("failed to get album: %w", err)
		}

		tracks, err := albums.GetTracks(ctx, spotify.GetAlbumTracksParams{AlbumID: args[0], Market: market, Limit: 50})
		if err != nil {
			return fmt.Errorf("failed to get album tracks: %w", err)
		}

		fmt.Printf("%s by %s (%s)\n\n", album.Name, joinArtists(album.Artists), album.ReleaseDate)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range tracks.Tracks {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", int(t.TrackNumber), t.Name, clock(t.TimeDuration()), t.URI)
		}
		return w.Flush()
	})
}

func runArtist(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		artists := e.session.Client().Artists()
		market := e.cfg.Spotify.Market

		artist, err := artists.Get(ctx, spotify.GetArtistParams{ArtistID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get artist: %w", err)
		}

		top, err := artists.GetTopTracks(ctx, spotify.GetArtistTopTracksParams{ArtistID: args[0], Market: market})
		if err != nil {
			return fmt.Errorf("failed to get top tracks: %w", err)
		}

		albums, err := artists.GetAlbums(ctx, spotify.GetArtistAlbumsParams{
			ArtistID:      args[0],
			IncludeGroups: []string{"album", "single"},
			Market:        market,
			Limit:         20,
		})
		if err != nil {
			return fmt.Errorf("failed to get albums: %w", err)
		}

		fmt.Printf("%s (%d followers)\n\nTop tracks:\n", artist.Name, int(artist.Followers.Count))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range top {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", t.Name, t.Album.Name, t.URI)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Println("\nAlbums:")
		for _, a := range albums.Albums {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", a.Name, a.ReleaseDate, a.URI)
		}
		return w.Flush()
	})
}
