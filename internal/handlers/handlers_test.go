package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/upstream"
	"portfolio.dev/internal/web"
)

// fakeUpstream serves the GitHub, dev.to and relay endpoints from one server
type fakeUpstream struct {
	relaySuccess atomic.Bool
	relayCalls   atomic.Int32
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/users/ghost":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	case r.URL.Path == "/users/limited":
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	case r.URL.Path == "/users/octocat":
		_, _ = w.Write([]byte(`{"login":"octocat","name":"The Octocat","public_repos":2,"followers":10,"html_url":"https://github.com/octocat"}`))
	case r.URL.Path == "/users/octocat/repos":
		_, _ = w.Write([]byte(`[{"name":"hello","language":"Go","stargazers_count":3,"forks_count":1,"updated_at":"2026-01-02T00:00:00Z"}]`))
	case r.URL.Path == "/users/octocat/events/public":
		_, _ = w.Write([]byte(`[]`))
	case r.URL.Path == "/articles":
		if r.URL.Query().Get("username") == "nobody" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		var out []map[string]any
		for i := 1; i <= 10; i++ {
			out = append(out, map[string]any{"id": i, "title": "Post", "tag_list": "go, web", "reading_time_minutes": 3})
		}
		_ = json.NewEncoder(w).Encode(out)
	case r.URL.Path == "/submit":
		f.relayCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": f.relaySuccess.Load(), "message": "ok"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type testServer struct {
	handler  http.Handler
	upstream *fakeUpstream
}

func newTestServer(t *testing.T, relayKey string) *testServer {
	t.Helper()
	fake := &fakeUpstream{}
	fake.relaySuccess.Store(true)
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	relay, err := upstream.NewRelayClient(ts.URL+"/submit", relayKey, time.Second)
	require.NoError(t, err)
	sceneSvc, err := services.NewSceneService()
	require.NoError(t, err)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	site := &models.Site{Profile: models.Profile{Name: "Ada", Title: "Engineer"}}
	projects := &models.ProjectList{Projects: []models.Project{
		{ID: "p1", Title: "One", Category: "web"},
		{ID: "p2", Title: "Two", Category: "cli", Featured: true},
	}}
	for i := 3; i <= 8; i++ {
		projects.Projects = append(projects.Projects, models.Project{ID: "p" + string(rune('0'+i)), Title: "Extra", Category: "web"})
	}

	cfg := &config.Config{RateLimitPerMinute: 1000, ContactPerHour: 1000}
	svc := &Services{
		Projects: services.NewProjectService(projects),
		Content:  services.NewContentService(site),
		GitHub:   services.NewGitHubService(upstream.NewGitHubClient(ts.URL, "", time.Second), nil, 0),
		Blogs:    services.NewBlogService(upstream.NewDevToClient(ts.URL, time.Second), nil, 0),
		Contact:  services.NewContactService(relay, nil, "Ada"),
		Scene:    sceneSvc,
		Renderer: renderer,
	}
	return &testServer{handler: SetupRoutes(cfg, svc), upstream: fake}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "key")
	rec := s.get("/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestHealth_Degraded(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(map[string]func(context.Context) error{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","dependencies":{"redis":"connection refused"}}`, rec.Body.String())
}

func TestProjects(t *testing.T) {
	s := newTestServer(t, "key")

	rec := s.get("/api/projects")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Project
	decodeBody(t, rec, &all)
	require.Len(t, all, 8)
	assert.Equal(t, "p2", all[0].ID, "featured first")

	rec = s.get("/api/projects?category=cli")
	var cli []models.Project
	decodeBody(t, rec, &cli)
	require.Len(t, cli, 1)

	rec = s.get("/api/projects/p1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.get("/api/projects/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
}

func TestContent(t *testing.T) {
	s := newTestServer(t, "key")
	rec := s.get("/api/content")
	require.Equal(t, http.StatusOK, rec.Code)
	var site models.Site
	decodeBody(t, rec, &site)
	assert.Equal(t, "Ada", site.Profile.Name)
}

func TestGitHub(t *testing.T) {
	s := newTestServer(t, "key")

	tests := []struct {
		name   string
		query  string
		status int
		errMsg string
	}{
		{"missing username", "", http.StatusBadRequest, "Username is required"},
		{"not found", "?username=ghost", http.StatusNotFound, "GitHub user not found"},
		{"rate limited", "?username=limited", http.StatusTooManyRequests, "GitHub API rate limit exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.get("/api/github" + tt.query)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			var body map[string]string
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.errMsg, body["error"])
		})
	}

	t.Run("ok", func(t *testing.T) {
		rec := s.get("/api/github?username=octocat")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		var stats models.GitHubStats
		decodeBody(t, rec, &stats)
		assert.Equal(t, "octocat", stats.Username)
		assert.Equal(t, 3, stats.TotalStars)
		require.Len(t, stats.TopLanguages, 1)
		assert.Equal(t, "Go", stats.TopLanguages[0].Name)
	})
}

func TestBlogs(t *testing.T) {
	s := newTestServer(t, "key")

	rec := s.get("/api/blogs")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.get("/api/blogs?username=nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for query, want := range map[string]int{"": 6, "&limit=2": 2, "&limit=50": 10, "&limit=abc": 6} {
		rec = s.get("/api/blogs?username=ada" + query)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		var blogs []models.Blog
		decodeBody(t, rec, &blogs)
		assert.Len(t, blogs, want, query)
		assert.Equal(t, []string{"go", "web"}, blogs[0].Tags)
	}
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContactAPI(t *testing.T) {
	s := newTestServer(t, "key")

	t.Run("validation", func(t *testing.T) {
		rec := s.do(postJSON("/api/contact", `{"name":"A","email":"bad","message":"short"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "Validation failed", body.Error)
		assert.Equal(t, "Name must be at least 2 characters", body.Fields["name"])
		assert.Equal(t, "Please enter a valid email address", body.Fields["email"])
		assert.Equal(t, "Message must be at least 10 characters", body.Fields["message"])
	})

	t.Run("malformed", func(t *testing.T) {
		rec := s.do(postJSON("/api/contact", `{`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("json ok", func(t *testing.T) {
		rec := s.do(postJSON("/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello, lovely site!"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body map[string]any
		decodeBody(t, rec, &body)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, services.SuccessMessage, body["message"])
	})

	t.Run("form ok", func(t *testing.T) {
		rec := s.do(postForm("/api/contact", url.Values{
			"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello, lovely site!"},
		}))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("relay rejects", func(t *testing.T) {
		s.upstream.relaySuccess.Store(false)
		defer s.upstream.relaySuccess.Store(true)

		rec := s.do(postJSON("/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello, lovely site!"}`))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to send message"}`, rec.Body.String())
	})
}

func TestContactAPI_NotConfigured(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(postJSON("/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello, lovely site!"}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Contact form is not configured"}`, rec.Body.String())
	assert.Zero(t, s.upstream.relayCalls.Load())
}

func TestContactForm(t *testing.T) {
	s := newTestServer(t, "key")
	good := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello, lovely site!"}}

	t.Run("plain post redirects", func(t *testing.T) {
		rec := s.do(postForm("/contact", good))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?sent=1#contact", rec.Header().Get("Location"))
	})

	t.Run("script post gets fragment", func(t *testing.T) {
		req := postForm("/contact", good)
		req.Header.Set("X-Requested-With", "fetch")
		rec := s.do(req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thank you for your message!")
	})

	t.Run("invalid renders errors", func(t *testing.T) {
		rec := s.do(postForm("/contact", url.Values{"name": {"Ada"}, "email": {"nope"}, "message": {"Hello, lovely site!"}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a valid email address")
		assert.Contains(t, rec.Body.String(), `value="Ada"`)
	})
}

func TestScene(t *testing.T) {
	s := newTestServer(t, "key")

	t.Run("device selection", func(t *testing.T) {
		rec := s.get("/api/scene?cores=2&memory=8")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.SceneResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "low", resp.Preset.Name)
		assert.Len(t, resp.Nodes, 4)
	})

	t.Run("reduced motion", func(t *testing.T) {
		rec := s.get("/api/scene?cores=16&memory=16&reducedMotion=true")
		var resp models.SceneResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "high", resp.Preset.Name)
		assert.False(t, resp.Preset.Animate)
		assert.Equal(t, 32, resp.Preset.Segments)
	})

	t.Run("explicit preset", func(t *testing.T) {
		rec := s.get("/api/scene?preset=medium")
		var resp models.SceneResponse
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Nodes, 6)

		rec = s.get("/api/scene?preset=ultra")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("fps degrade", func(t *testing.T) {
		rec := s.do(postJSON("/api/scene/fps", `{"preset":"high","frames":12,"windowMs":1000}`))
		require.Equal(t, http.StatusOK, rec.Code)
		var p models.ScenePreset
		decodeBody(t, rec, &p)
		assert.Equal(t, "medium", p.Name)

		rec = s.do(postJSON("/api/scene/fps", `{"preset":"low","frames":1,"windowMs":1000}`))
		decodeBody(t, rec, &p)
		assert.Equal(t, "low", p.Name)

		rec = s.do(postJSON("/api/scene/fps", `{"preset":"high","frames":10,"windowMs":0}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPages(t *testing.T) {
	s := newTestServer(t, "key")

	t.Run("home", func(t *testing.T) {
		rec := s.get("/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, `data-theme="dark"`)
		assert.Contains(t, body, "See all 8 projects")
		assert.Equal(t, 6, strings.Count(body, `class="card project"`))
	})

	t.Run("category filter", func(t *testing.T) {
		rec := s.get("/?category=cli")
		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, `class="card project"`))
		assert.NotContains(t, body, "See all")
	})

	t.Run("all projects", func(t *testing.T) {
		rec := s.get("/projects")
		assert.Equal(t, 8, strings.Count(rec.Body.String(), `class="card project"`))
	})

	t.Run("sent banner", func(t *testing.T) {
		rec := s.get("/?sent=1")
		assert.Contains(t, rec.Body.String(), "Thank you for your message!")
	})

	t.Run("client hints", func(t *testing.T) {
		rec := s.get("/")
		assert.Contains(t, rec.Header().Get("Accept-CH"), "Sec-CH-Prefers-Reduced-Motion")
		assert.Contains(t, rec.Body.String(), `attributeName="cx"`, "desktop default animates")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Sec-CH-Prefers-Reduced-Motion", "reduce")
		rec = s.do(req)
		assert.NotContains(t, rec.Body.String(), "<animate")

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Device-Memory", "1")
		rec = s.do(req)
		assert.NotContains(t, rec.Body.String(), "<animate", "low memory gets the still preset")
	})
}

func TestDeviceFromHints(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone)")
	req.Header.Set("Device-Memory", "0.5")
	req.Header.Set("Sec-CH-Prefers-Reduced-Motion", "no-preference")
	d := deviceFromHints(req)
	assert.Equal(t, 0.5, d.MemoryGB)
	assert.False(t, d.ReducedMotion)
	assert.Contains(t, d.UserAgent, "iPhone")

	req.Header.Set("Device-Memory", "lots")
	assert.Zero(t, deviceFromHints(req).MemoryGB)
}

func TestTheme(t *testing.T) {
	s := newTestServer(t, "key")

	req := httptest.NewRequest(http.MethodGet, "/theme/light", nil)
	req.Header.Set("Referer", "http://example.com/projects?category=web")
	req.Host = "example.com"
	rec := s.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects?category=web", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "light", cookies[0].Value)

	req = httptest.NewRequest(http.MethodGet, "/theme/dark", nil)
	req.Header.Set("Referer", "https://evil.example/")
	rec = s.do(req)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.get("/theme/neon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: web.ThemeCookie, Value: "light"})
	rec = s.do(req)
	assert.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestStaticAndMetrics(t *testing.T) {
	s := newTestServer(t, "key")

	rec := s.get("/static/js/scene.js")
	assert.Equal(t, http.StatusOK, rec.Code)

	s.get("/api/health")
	rec = s.get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_request_duration_seconds")

	rec = s.get("/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
