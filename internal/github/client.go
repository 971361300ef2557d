// Package github refreshes star and fork counts for catalog projects
// from the GitHub REST API. The API rate limit is respected by
// sleeping until the advertised reset time; transient failures are
// retried with a doubling backoff.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// ErrNotFound reports a repository that no longer exists (renamed,
// deleted, or made private). Callers keep the stale counts.
var ErrNotFound = errors.New("repository not found")

const (
	defaultBaseURL = "https://api.github.com"
	maxRetries     = 5
)

// RepoStats holds the counters the catalog cares about.
type RepoStats struct {
	Stars int `json:"stargazers_count"`
	Forks int `json:"forks_count"`
}

// Client talks to the GitHub REST API.
type Client struct {
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// Token is an optional personal access token. Unauthenticated
	// requests work but hit the rate limit after ~60 calls.
	Token string

	HTTPClient *http.Client

	// sleep is stubbed in tests so rate-limit waits don't stall them.
	sleep func(time.Duration)
}

// NewClient returns a client authenticated with token, which may be
// empty for anonymous access.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      time.Sleep,
	}
}

// RepoStats fetches current counters for an owner/repo path.
func (c *Client) RepoStats(ctx context.Context, path string) (RepoStats, error) {
	backoff := time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		stats, retryAfter, err := c.fetch(ctx, path)
		if err == nil {
			return stats, nil
		}
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return RepoStats{}, err
		}
		lastErr = err

		if retryAfter > 0 {
			// Rate limit waits are server-driven and don't count
			// against the retry budget.
			slog.Warn("rate limit exceeded, waiting for reset",
				"repo", path, "wait", retryAfter)
			c.sleep(retryAfter)
			attempt--
			continue
		}

		slog.Warn("request failed, retrying",
			"repo", path, "error", err, "backoff", backoff,
			"attempt", attempt+1, "max_attempts", maxRetries)
		c.sleep(backoff)
		backoff *= 2
	}
	return RepoStats{}, fmt.Errorf("fetch %s after %d attempts: %w", path, maxRetries, lastErr)
}

// fetch performs a single API call. A positive retryAfter means the
// rate limit was hit and the caller should wait that long.
func (c *Client) fetch(ctx context.Context, path string) (stats RepoStats, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/repos/"+path, nil)
	if err != nil {
		return RepoStats{}, 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return RepoStats{}, 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			return RepoStats{}, 0, fmt.Errorf("decode response: %w", err)
		}
		return stats, 0, nil

	case resp.StatusCode == http.StatusNotFound:
		return RepoStats{}, 0, fmt.Errorf("%s: %w", path, ErrNotFound)

	case rateLimited(resp):
		return RepoStats{}, resetWait(resp), fmt.Errorf("rate limit exceeded")

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return RepoStats{}, 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
}

func rateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// resetWait converts the X-RateLimit-Reset epoch header into a wait
// duration, padded by a second so the retry lands after the reset.
func resetWait(resp *http.Response) time.Duration {
	reset, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Minute
	}
	wait := time.Until(time.Unix(reset, 0)) + time.Second
	if wait < time.Second {
		wait = time.Second
	}
	return wait
}
