package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"portfolio.dev/internal/cache"
	"portfolio.dev/internal/log"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/upstream"
)

// DevToAPI is the upstream surface the blog proxy needs
type DevToAPI interface {
	Articles(ctx context.Context, username string) ([]upstream.DevToArticle, error)
}

// Blog list limits
const (
	DefaultBlogLimit = 6
	MaxBlogLimit     = upstream.DevToPageSize
)

// BlogService fetches and reshapes dev.to articles
type BlogService struct {
	api   DevToAPI
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewBlogService creates a BlogService. A zero ttl disables caching.
func NewBlogService(api DevToAPI, c cache.Cache, ttl time.Duration) *BlogService {
	if c == nil || ttl <= 0 {
		c = cache.NewNoOpCache()
	}
	return &BlogService{api: api, cache: c, ttl: ttl}
}

// Latest returns up to limit articles for username. limit is clamped to
// [1, MaxBlogLimit]; zero selects DefaultBlogLimit.
func (s *BlogService) Latest(ctx context.Context, username string, limit int) ([]models.Blog, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, badRequest("Username is required")
	}
	if limit == 0 {
		limit = DefaultBlogLimit
	}
	limit = max(1, min(limit, MaxBlogLimit))

	blogs, err := s.all(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(blogs) > limit {
		blogs = blogs[:limit]
	}
	return blogs, nil
}

func (s *BlogService) all(ctx context.Context, username string) ([]models.Blog, error) {
	key := "devto:" + strings.ToLower(username)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var blogs []models.Blog
		if err := json.Unmarshal(raw, &blogs); err == nil {
			return blogs, nil
		}
		s.cache.Delete(ctx, key)
	}

	blogs, err := shared(ctx, &s.group, key, func(ctx context.Context) ([]models.Blog, error) {
		articles, err := s.api.Articles(ctx, username)
		if err != nil {
			logger := log.FromContext(ctx, "devto")
			logger.Warn().Err(err).Str(log.FieldUsername, username).Msg("dev.to article listing failed")
			return nil, fromUpstream(err, "dev.to user not found", "Failed to fetch blog posts")
		}
		blogs := make([]models.Blog, 0, len(articles))
		for _, a := range articles {
			blogs = append(blogs, toBlog(a))
		}
		if raw, err := json.Marshal(blogs); err == nil {
			s.cache.Set(ctx, key, raw, s.ttl)
		}
		return blogs, nil
	})
	if err != nil {
		return nil, err
	}
	// Copy so callers slicing the result never share the backing array.
	out := make([]models.Blog, len(blogs))
	copy(out, blogs)
	return out, nil
}

func toBlog(a upstream.DevToArticle) models.Blog {
	tags := []string(a.TagList)
	if tags == nil {
		tags = []string{}
	}
	return models.Blog{
		ID:                 a.ID,
		Title:              a.Title,
		Description:        a.Description,
		URL:                a.URL,
		CoverImage:         a.CoverImage,
		PublishedAt:        a.PublishedAt,
		ReadingTimeMinutes: a.ReadingTimeMinutes,
		Tags:               tags,
		Reactions:          a.PositiveReactionsCount,
		Comments:           a.CommentsCount,
	}
}
