package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-2xx response from the Spotify Web API or the
// accounts service.
//
// The Error type provides the HTTP status and the message from the
// platform's error envelope. It matches ErrTransport with errors.Is.
type Error struct {
	Status  int    // HTTP status code
	Message string // Error message from Spotify
	Reason  string // Optional player error reason, e.g. NO_ACTIVE_DEVICE
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("spotify: error %d: %s (%s)", e.Status, e.Message, e.Reason)
	}
	return fmt.Sprintf("spotify: error %d: %s", e.Status, e.Message)
}

// Is reports whether target is ErrTransport or an *Error with the same
// status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Temporary returns true if the error is temporary and the request
// could be retried by the caller.
//
// 429 Too Many Requests and 5xx responses are considered temporary.
// The client itself never retries them.
func (e *Error) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Unauthorized returns true for 401 responses, which usually mean the
// access token expired.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Predefined errors for common cases.
var (
	// ErrConfiguration is the base error for a missing or invalid
	// credential. It is always returned before any network attempt.
	ErrConfiguration = errors.New("spotify: invalid configuration")

	// ErrClientSecretRequired is returned by token operations when no
	// client secret was configured.
	ErrClientSecretRequired = fmt.Errorf("%w: client secret required", ErrConfiguration)

	// ErrRefreshTokenRequired is returned by RefreshAccessToken when no
	// refresh token is set.
	ErrRefreshTokenRequired = fmt.Errorf("%w: refresh token required", ErrConfiguration)

	// ErrTransport is the base error for network failures and non-2xx
	// responses.
	ErrTransport = errors.New("spotify: transport failure")
)

// errorEnvelope is the body Spotify returns alongside non-2xx statuses.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}
