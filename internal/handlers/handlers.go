package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/log"
	"portfolio.dev/internal/middleware"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/web"
)

// Services bundles everything the routes depend on
type Services struct {
	Projects *services.ProjectService
	Content  *services.ContentService
	GitHub   *services.GitHubService
	Blogs    *services.BlogService
	Contact  *services.ContactService
	Scene    *services.SceneService
	Renderer *web.Renderer

	// HealthChecks are run by /api/health, keyed by dependency name
	HealthChecks map[string]func(context.Context) error
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, svc *Services) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(""))

	projectHandler := NewProjectHandler(svc.Projects)
	contentHandler := NewContentHandler(svc.Content)
	githubHandler := NewGitHubHandler(svc.GitHub)
	blogHandler := NewBlogHandler(svc.Blogs)
	contactHandler := NewContactHandler(svc.Contact, svc.Renderer)
	sceneHandler := NewSceneHandler(svc.Scene)
	pageHandler := NewPageHandler(svc.Content, svc.Projects, svc.Scene, svc.Renderer)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIRateLimit(cfg.RateLimitPerMinute))

		// Content endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/content", contentHandler.GetContent)

		// Proxies
		r.With(middleware.NoStore).Get("/github", githubHandler.GetStats)
		r.With(middleware.NoStore).Get("/blogs", blogHandler.GetBlogs)
		r.With(middleware.NoStore, middleware.ContactRateLimit(cfg.ContactPerHour)).
			Post("/contact", contactHandler.SubmitJSON)

		// Background scene
		r.Get("/scene", sceneHandler.GetScene)
		r.Post("/scene/fps", sceneHandler.ReportFPS)

		// Health check
		r.Get("/health", healthHandler(svc.HealthChecks))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(svc.HealthChecks))

	// Static files
	r.Handle("/static/*", web.Static())

	// Pages
	r.Get("/", pageHandler.Home)
	r.Get("/projects", pageHandler.Projects)
	r.Get("/theme/{mode}", pageHandler.SetTheme)
	r.With(middleware.ContactRateLimit(cfg.ContactPerHour)).Post("/contact", contactHandler.SubmitForm)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})

	return r
}

func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]any{"status": "ok"}
		if len(checks) > 0 {
			deps := make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(r.Context()); err != nil {
					deps[name] = err.Error()
					status = http.StatusServiceUnavailable
					body["status"] = "degraded"
					continue
				}
				deps[name] = "ok"
			}
			body["dependencies"] = deps
		}
		respondJSON(w, status, body)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger := log.WithComponent("handlers")
		logger.Error().Err(err).Msg("error encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error onto its status and message.
// Validation errors also carry per-field messages.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *services.APIError
	if !errors.As(err, &apiErr) {
		logger := log.FromContext(r.Context(), "handlers")
		logger.Error().Err(err).Msg("unhandled service error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if apiErr.Status >= http.StatusInternalServerError {
		logger := log.FromContext(r.Context(), "handlers")
		logger.Error().Err(err).Int(log.FieldStatus, apiErr.Status).Msg("request failed")
	}
	if len(apiErr.Fields) > 0 {
		respondJSON(w, apiErr.Status, map[string]any{"error": apiErr.Message, "fields": apiErr.Fields})
		return
	}
	respondError(w, apiErr.Status, apiErr.Message)
}
