package spotify

import (
	"context"
	"net/http"
	"net/url"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// UserService provides user profile operations.
type UserService struct {
	client *Client
}

// GetCurrentUserProfile returns the profile of the user who owns the
// access token.
func (s *UserService) GetCurrentUserProfile(ctx context.Context) (*spotifyLib.PrivateUser, error) {
	req := newRequest(http.MethodGet, "/me")

	var user spotifyLib.PrivateUser
	if err := s.client.send(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserProfile returns the public profile of any user.
func (s *UserService) GetUserProfile(ctx context.Context, params GetUserProfileParams) (*spotifyLib.User, error) {
	req := newRequest(http.MethodGet, "/users/"+url.PathEscape(params.UserID))

	var user spotifyLib.User
	if err := s.client.send(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
