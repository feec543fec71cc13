package spotify

import (
	"context"
	"net/http"
	"net/url"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// ArtistService provides artist catalog operations.
type ArtistService struct {
	client *Client
}

// Get returns catalog information for a single artist.
func (s *ArtistService) Get(ctx context.Context, params GetArtistParams) (*spotifyLib.FullArtist, error) {
	req := newRequest(http.MethodGet, "/artists/"+url.PathEscape(params.ArtistID))

	var artist spotifyLib.FullArtist
	if err := s.client.send(ctx, req, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetSeveral returns catalog information for multiple artists.
func (s *ArtistService) GetSeveral(ctx context.Context, params GetSeveralArtistsParams) ([]*spotifyLib.FullArtist, error) {
	req := newRequest(http.MethodGet, "/artists").
		setList("ids", params.IDs)

	var resp struct {
		Artists []*spotifyLib.FullArtist `json:"artists"`
	}
	if err := s.client.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Artists, nil
}

// GetAlbums returns one page of an artist's albums.
func (s *ArtistService) GetAlbums(ctx context.Context, params GetArtistAlbumsParams) (*spotifyLib.SimpleAlbumPage, error) {
	req := newRequest(http.MethodGet, "/artists/"+url.PathEscape(params.ArtistID)+"/albums").
		setList("include_groups", params.IncludeGroups).
		setString("market", params.Market).
		setInt("limit", params.Limit).
		setInt("offset", params.Offset)

	var page spotifyLib.SimpleAlbumPage
	if err := s.client.send(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTopTracks returns an artist's top tracks.
func (s *ArtistService) GetTopTracks(ctx context.Context, params GetArtistTopTracksParams) ([]spotifyLib.FullTrack, error) {
	req := newRequest(http.MethodGet, "/artists/"+url.PathEscape(params.ArtistID)+"/top-tracks").
		setString("market", params.Market)

	var resp struct {
		Tracks []spotifyLib.FullTrack `json:"tracks"`
	}
	if err := s.client.send(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}
