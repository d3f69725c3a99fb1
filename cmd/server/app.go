package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"portfolio.dev/internal/cache"
	"portfolio.dev/internal/config"
	"portfolio.dev/internal/handlers"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/store"
	"portfolio.dev/internal/upstream"
	"portfolio.dev/internal/web"
)

// buildServices wires clients, cache, submission log and services from cfg.
// The returned cleanup closes everything that was opened.
func buildServices(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*handlers.Services, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn().Err(err).Msg("cleanup failed")
			}
		}
	}
	fail := func(err error) (*handlers.Services, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	checks := make(map[string]func(context.Context) error)

	c, closeCache, err := newCache(ctx, cfg, logger, checks)
	if err != nil {
		return fail(err)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	var submissions services.SubmissionLog
	if cfg.ContactDBPath != "" {
		contactLog, err := store.Open(ctx, cfg.ContactDBPath, cfg.HashSalt)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, contactLog.Close)
		submissions = contactLog
		logger.Info().Str("path", cfg.ContactDBPath).Msg("contact submission log enabled")
	}

	relay, err := upstream.NewRelayClient(cfg.RelayURL, cfg.RelayKey, cfg.UpstreamWait)
	if err != nil {
		return fail(err)
	}
	if !relay.Configured() {
		logger.Warn().Msg("RELAY_ACCESS_KEY not set, contact form will answer 500")
	}

	sceneSvc, err := services.NewSceneService()
	if err != nil {
		return fail(err)
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return fail(err)
	}

	github := upstream.NewGitHubClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.UpstreamWait)
	devto := upstream.NewDevToClient(cfg.DevToAPIURL, cfg.UpstreamWait)

	svc := &handlers.Services{
		Projects:     services.NewProjectService(cfg.Projects),
		Content:      services.NewContentService(cfg.Site),
		GitHub:       services.NewGitHubService(github, c, cfg.CacheTTL),
		Blogs:        services.NewBlogService(devto, c, cfg.CacheTTL),
		Contact:      services.NewContactService(relay, submissions, cfg.Site.Profile.Name),
		Scene:        sceneSvc,
		Renderer:     renderer,
		HealthChecks: checks,
	}
	return svc, cleanup, nil
}

// newCache picks Redis when REDIS_ADDR is set, otherwise an in-process cache.
// Caching is off entirely when CACHE_TTL is zero.
func newCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger, checks map[string]func(context.Context) error) (cache.Cache, func() error, error) {
	if cfg.CacheTTL <= 0 {
		return cache.NewNoOpCache(), nil, nil
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init cache: %w", err)
		}
		checks["redis"] = rc.HealthCheck
		if err := cache.NewStatsCollector(rc, "redis").Register(prometheus.DefaultRegisterer); err != nil {
			logger.Warn().Err(err).Msg("cache metrics unavailable")
		}
		return rc, rc.Close, nil
	}
	mc := cache.NewMemoryCache(time.Minute)
	logger.Info().Dur("ttl", cfg.CacheTTL).Msg("using in-memory upstream cache")
	if err := cache.NewStatsCollector(mc, "memory").Register(prometheus.DefaultRegisterer); err != nil {
		logger.Warn().Err(err).Msg("cache metrics unavailable")
	}
	return mc, mc.Close, nil
}

// reloadServices swaps reloaded content into the running services
func reloadServices(svc *handlers.Services) config.ReloadFunc {
	return func(site *models.Site, projects *models.ProjectList) {
		svc.Content.Replace(site)
		svc.Projects.Replace(projects)
	}
}
