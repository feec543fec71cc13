package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// request describes one outgoing API call. It is built per call and
// never retained.
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{} // JSON-encoded when non-nil
}

func newRequest(method, path string) *request {
	return &request{
		method: method,
		path:   path,
		query:  url.Values{},
	}
}

// setString adds a query parameter unless the value is empty.
func (r *request) setString(key, value string) *request {
	if value != "" {
		r.query.Set(key, value)
	}
	return r
}

// setInt adds a query parameter unless the value is zero.
func (r *request) setInt(key string, value int) *request {
	if value != 0 {
		r.query.Set(key, strconv.Itoa(value))
	}
	return r
}

// setList adds a comma-separated query parameter unless the list is empty.
func (r *request) setList(key string, values []string) *request {
	if len(values) > 0 {
		r.query.Set(key, strings.Join(values, ","))
	}
	return r
}

// send makes an HTTP request to the Spotify Web API.
//
// It handles:
// - Base URL resolution and query encoding
// - The bearer token, read at send time
// - JSON body encoding and response decoding into out
// - Error envelope parsing for non-2xx statuses
// - One refresh-and-retry on 401 when AutoRefresh is enabled
//
// A 204 or empty body leaves out untouched.
func (c *Client) send(ctx context.Context, r *request, out interface{}) error {
	var payload []byte
	if r.body != nil {
		var err error
		payload, err = json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("spotify: failed to encode request body: %w", err)
		}
	}

	token := c.GetAccessToken()
	status, body, err := c.roundTrip(ctx, r, payload, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && c.canAutoRefresh() {
		c.logDebugf("spotify: %s %s unauthorized, refreshing token", r.method, r.path)
		if err := c.auth.refreshIfStale(ctx, token); err != nil {
			return err
		}
		status, body, err = c.roundTrip(ctx, r, payload, c.GetAccessToken())
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return parseError(status, body)
	}

	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 || out == nil {
		c.logDebugf("spotify: %s %s succeeded", r.method, r.path)
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("spotify: failed to parse response: %w", err)
	}

	c.logDebugf("spotify: %s %s succeeded", r.method, r.path)
	return nil
}

// canAutoRefresh reports whether a 401 may be answered with a refresh.
// Without both credentials the original 401 is returned instead.
func (c *Client) canAutoRefresh() bool {
	return c.autoRefresh && c.clientSecret != "" && c.GetRefreshToken() != ""
}

// roundTrip performs a single attempt with the given token and returns
// the status code and the full response body.
func (c *Client) roundTrip(ctx context.Context, r *request, payload []byte, token string) (int, []byte, error) {
	endpoint := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("spotify: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logDebugf("spotify: calling %s %s", r.method, r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, r.method, r.path, err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	return resp.StatusCode, body, nil
}

// parseError builds an *Error from a non-2xx response, falling back to
// the status text when the body is not a Spotify error envelope.
func parseError(status int, body []byte) error {
	apiErr := &Error{Status: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
		apiErr.Reason = env.Error.Reason
	} else if msg := strings.TrimSpace(string(body)); msg != "" && len(msg) < 256 {
		apiErr.Message = msg
	} else {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
