package spotify

import (
	"context"
	"net/http"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// Search searches the catalog.
//
// Example:
//
//	res, err := client.Search(ctx, spotify.SearchParams{
//	    Q:    "the killers",
//	    Type: []string{"artist"},
//	})
func (c *Client) Search(ctx context.Context, params SearchParams) (*spotifyLib.SearchResult, error) {
	req := newRequest(http.MethodGet, "/search").
		setString("q", params.Q).
		setList("type", params.Type).
		setString("market", params.Market).
		setInt("limit", params.Limit).
		setInt("offset", params.Offset).
		setString("include_external", params.IncludeExternal)

	var result spotifyLib.SearchResult
	if err := c.send(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
