package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubClient_User(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat","name":"The Octocat","public_repos":8,"followers":10,"avatar_url":"https://a/1"}`))
	}))
	defer server.Close()

	c := NewGitHubClient(server.URL, "secret", time.Second)
	user, err := c.User(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "The Octocat", user.Name)
	assert.Equal(t, 8, user.PublicRepos)
	assert.Equal(t, "https://a/1", user.AvatarURL)
}

func TestGitHubClient_ReposQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`[{"name":"hello","stargazers_count":3,"updated_at":"2026-01-02T03:04:05Z"}]`))
	}))
	defer server.Close()

	repos, err := NewGitHubClient(server.URL, "", time.Second).Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, 2026, repos[0].UpdatedAt.Year())
}

func TestGitHubClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		remaining   string
		rateLimited bool
	}{
		{"not found", http.StatusNotFound, "", false},
		{"unauthorized", http.StatusUnauthorized, "", false},
		{"forbidden with quota left", http.StatusForbidden, "12", false},
		{"forbidden quota exhausted", http.StatusForbidden, "0", true},
		{"too many requests", http.StatusTooManyRequests, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.remaining != "" {
					w.Header().Set("X-RateLimit-Remaining", tt.remaining)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewGitHubClient(server.URL, "", time.Second).User(context.Background(), "x")
			require.Error(t, err)
			se, ok := AsStatusError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.rateLimited, se.RateLimited)
		})
	}
}

func TestGitHubClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewGitHubClient(url, "", time.Second).User(context.Background(), "x")
	se, ok := AsStatusError(err)
	require.True(t, ok)
	assert.Zero(t, se.StatusCode)
	assert.Contains(t, se.Error(), "request failed")
}

func TestDevToClient_Articles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articles", r.URL.Path)
		assert.Equal(t, "ben", r.URL.Query().Get("username"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"A","tag_list":["go","web"],"reading_time_minutes":4},
			{"id":2,"title":"B","tag_list":"go, testing ,"}
		]`))
	}))
	defer server.Close()

	articles, err := NewDevToClient(server.URL, time.Second).Articles(context.Background(), "ben")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, TagList{"go", "web"}, articles[0].TagList)
	assert.Equal(t, TagList{"go", "testing"}, articles[1].TagList)
	assert.Equal(t, 4, articles[0].ReadingTimeMinutes)
}

func TestRelayClient_Send(t *testing.T) {
	var got RelayMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent"}`))
	}))
	defer server.Close()

	c, err := NewRelayClient(server.URL+"/submit", "key-1", time.Second)
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), RelayMessage{Name: "Ada", Email: "ada@example.com", Message: "hello there"})
	require.NoError(t, err)
	assert.True(t, reply.Success)
	assert.Equal(t, "key-1", got.AccessKey)
	assert.Equal(t, "Ada", got.Name)
}

func TestRelayClient_AcceptsAny2xx(t *testing.T) {
	for _, code := range []int{http.StatusCreated, http.StatusAccepted} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"success":true}`))
		}))

		c, err := NewRelayClient(server.URL+"/submit", "key-1", time.Second)
		require.NoError(t, err)
		reply, err := c.Send(context.Background(), RelayMessage{Name: "Ada"})
		server.Close()

		require.NoError(t, err, code)
		assert.True(t, reply.Success)
	}
}

func TestRelayClient_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c, err := NewRelayClient(server.URL+"/submit", "key-1", time.Second)
	require.NoError(t, err)
	_, err = c.Send(context.Background(), RelayMessage{})
	se, ok := AsStatusError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestRelayClient_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid access key"}`))
	}))
	defer server.Close()

	c, err := NewRelayClient(server.URL+"/submit", "bad", time.Second)
	require.NoError(t, err)
	_, err = c.Send(context.Background(), RelayMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access key")
}

func TestRelayClient_NotConfigured(t *testing.T) {
	c, err := NewRelayClient("", "", time.Second)
	require.NoError(t, err)
	assert.False(t, c.Configured())
	_, err = c.Send(context.Background(), RelayMessage{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewRelayClient_InvalidURL(t *testing.T) {
	_, err := NewRelayClient("not a url", "k", time.Second)
	assert.Error(t, err)
}
