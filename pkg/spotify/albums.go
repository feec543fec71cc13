package spotify

import (
	"context"
	"net/http"
	"net/url"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// AlbumService provides album catalog operations.
type AlbumService struct {
	client *Client
}

// Get returns catalog information for a single album.
//
// Example:
//
//	album, err := client.Albums().Get(ctx, spotify.GetAlbumParams{
//	    AlbumID: "4aawyAB9vmqN3uQ7FjRGTy",
//	    Market:  "US",
//	})
func (s *AlbumService) Get(ctx context.Context, params GetAlbumParams) (*spotifyLib.FullAlbum, error) {
	req := newRequest(http.MethodGet, "/albums/"+url.PathEscape(params.AlbumID)).
		setString("market", params.Market)

	var album spotifyLib.FullAlbum
	if err := s.client.send(ctx, req, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// GetSeveral returns catalog information for multiple albums.
func (s *AlbumService) GetSeveral(ctx context.Context, params GetSeveralAlbumsParams) ([]*spotifyLib.FullAlbum, error) {
	req := newRequest(http.MethodGet, "/albums").
		setList("ids", params.IDs).
		setString("market", params.Market)

	var resp struct {
		Albums []*spotifyLib.FullAlbum `json:"albums"`
	}
	if err := s.client.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Albums, nil
}

// GetTracks returns one page of an album's tracks. Limit and Offset are
// passed through as given.
func (s *AlbumService) GetTracks(ctx context.Context, params GetAlbumTracksParams) (*spotifyLib.SimpleTrackPage, error) {
	req := newRequest(http.MethodGet, "/albums/"+url.PathEscape(params.AlbumID)+"/tracks").
		setString("market", params.Market).
		setInt("limit", params.Limit).
		setInt("offset", params.Offset)

	var page spotifyLib.SimpleTrackPage
	if err := s.client.send(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
