package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/folio/internal/project"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("")
	c.BaseURL = srv.URL
	c.sleep = func(time.Duration) {}
	return c
}

func TestRepoStats(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/avasquez/folio", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"stargazers_count": 128, "forks_count": 9}`)
	}))

	stats, err := c.RepoStats(context.Background(), "avasquez/folio")
	require.NoError(t, err)
	assert.Equal(t, RepoStats{Stars: 128, Forks: 9}, stats)
}

func TestRepoStatsSendsToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{}`)
	}))
	c.Token = "s3cret"

	_, err := c.RepoStats(context.Background(), "avasquez/folio")
	require.NoError(t, err)
}

func TestRepoStatsNotFoundIsTerminal(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))

	_, err := c.RepoStats(context.Background(), "avasquez/gone")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load(), "404 must not be retried")
}

func TestRepoStatsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"stargazers_count": 1, "forks_count": 0}`)
	}))

	stats, err := c.RepoStats(context.Background(), "avasquez/flaky")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Stars)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRepoStatsGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.RepoStats(context.Background(), "avasquez/down")
	require.Error(t, err)
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestRepoStatsWaitsOutRateLimit(t *testing.T) {
	var calls atomic.Int32
	var slept atomic.Int32

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
			http.Error(w, `{"message": "rate limit exceeded"}`, http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"stargazers_count": 5, "forks_count": 2}`)
	}))
	c.sleep = func(d time.Duration) {
		assert.GreaterOrEqual(t, d, time.Second)
		slept.Add(1)
	}

	stats, err := c.RepoStats(context.Background(), "avasquez/popular")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Stars)
	assert.Equal(t, int32(1), slept.Load())
}

func TestUpdateAll(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/avasquez/alpha":
			fmt.Fprint(w, `{"stargazers_count": 10, "forks_count": 1}`)
		case "/repos/avasquez/gone":
			http.Error(w, "nope", http.StatusNotFound)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	projects := []project.Project{
		{Name: "alpha", Links: []project.Link{{URL: "https://github.com/avasquez/alpha"}}},
		{Name: "no-link"},
		{Name: "gone", Stars: 7, Links: []project.Link{{URL: "https://github.com/avasquez/gone"}}},
	}

	updated, err := c.UpdateAll(context.Background(), projects)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 10, projects[0].Stars)
	assert.Equal(t, 7, projects[2].Stars, "vanished repo keeps stale counts")
}
