package spotify

import (
	"context"
	"net/http"
	"net/url"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// PlaylistService provides playlist read operations.
type PlaylistService struct {
	client *Client
}

// Get returns a playlist owned by any user.
func (s *PlaylistService) Get(ctx context.Context, params GetPlaylistParams) (*spotifyLib.FullPlaylist, error) {
	req := newRequest(http.MethodGet, "/playlists/"+url.PathEscape(params.PlaylistID)).
		setString("market", params.Market).
		setString("fields", params.Fields).
		setList("additional_types", params.AdditionalTypes)

	var playlist spotifyLib.FullPlaylist
	if err := s.client.send(ctx, req, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetItems returns one page of a playlist's items. Limit and Offset are
// passed through as given.
func (s *PlaylistService) GetItems(ctx context.Context, params GetPlaylistItemsParams) (*spotifyLib.PlaylistItemPage, error) {
	req := newRequest(http.MethodGet, "/playlists/"+url.PathEscape(params.PlaylistID)+"/tracks").
		setString("market", params.Market).
		setString("fields", params.Fields).
		setInt("limit", params.Limit).
		setInt("offset", params.Offset).
		setList("additional_types", params.AdditionalTypes)

	var page spotifyLib.PlaylistItemPage
	if err := s.client.send(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCurrentUsers returns one page of the playlists owned or followed by
// the current user.
func (s *PlaylistService) GetCurrentUsers(ctx context.Context, params GetCurrentUsersPlaylistsParams) (*spotifyLib.SimplePlaylistPage, error) {
	req := newRequest(http.MethodGet, "/me/playlists").
		setInt("limit", params.Limit).
		setInt("offset", params.Offset)

	var page spotifyLib.SimplePlaylistPage
	if err := s.client.send(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
