// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/ghnotify/ghnotify/internal/log"
)

const apiVersion = "2022-11-28"

// HTTPError is a request failure with the numeric status preserved, so
// callers can distinguish bad credentials (401) from missing scopes (403).
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "authentication failed (401): check your GitHub token"
	case http.StatusForbidden:
		return "access forbidden (403): token lacks the notifications scope"
	default:
		return fmt.Sprintf("API error: %d", e.Status)
	}
}

// IsAuthError reports whether err is a 401 authentication failure.
func IsAuthError(err error) bool {
	return statusFromError(err) == http.StatusUnauthorized
}

// IsScopeError reports whether err is a 403 authorization/scope failure.
func IsScopeError(err error) bool {
	return statusFromError(err) == http.StatusForbidden
}

func statusFromError(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

// wrapError converts go-github error responses into HTTPError so the status
// survives wrapping.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &HTTPError{Status: ghErr.Response.StatusCode}
	}
	return err
}

// apiTransport wraps an http.RoundTripper to pin the API version, defeat
// any intermediate response caching, and capture the X-Poll-Interval hint
// GitHub attaches to notification responses.
type apiTransport struct {
	base       http.RoundTripper
	onPollHint func(minutes int)
}

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if hint := resp.Header.Get("X-Poll-Interval"); hint != "" && t.onPollHint != nil {
		if seconds, err := strconv.Atoi(hint); err == nil && seconds > 0 {
			// Whole minutes, rounded up, never less than one.
			minutes := (seconds + 59) / 60
			if minutes < 1 {
				minutes = 1
			}
			t.onPollHint(minutes)
		}
	}

	return resp, nil
}

// Client wraps the GitHub API client
type Client struct {
	client *gh.Client
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token string

	mu               sync.Mutex
	pollIntervalMins int
}

// NewClient creates a new GitHub client using a personal access token.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	c := &Client{token: token}
	tc.Transport = &apiTransport{
		base:       tc.Transport,
		onPollHint: c.setPollInterval,
	}
	c.client = gh.NewClient(tc)

	return c, nil
}

func (c *Client) setPollInterval(minutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if minutes != c.pollIntervalMins {
		log.Debug("server suggested poll interval", "minutes", minutes)
	}
	c.pollIntervalMins = minutes
}

// PollInterval returns the server-suggested poll interval in whole minutes
// and whether one has been observed on this client yet.
func (c *Client) PollInterval() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pollIntervalMins, c.pollIntervalMins > 0
}

// AuthenticatedUser returns the authenticated user's login
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", wrapError(err))
	}
	return user.GetLogin(), nil
}
