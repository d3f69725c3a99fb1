package services

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"portfolio.dev/internal/cache"
	"portfolio.dev/internal/log"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/upstream"
)

// GitHubAPI is the upstream surface the stats proxy needs
type GitHubAPI interface {
	User(ctx context.Context, username string) (*upstream.GitHubUser, error)
	Repos(ctx context.Context, username string) ([]upstream.GitHubRepo, error)
	Events(ctx context.Context, username string) ([]upstream.GitHubEvent, error)
}

const (
	topLanguages = 5
	recentRepos  = 6
)

// GitHub logins are alphanumeric runs joined by single hyphens, at most 39 long
const maxGitHubUsername = 39

var githubUsername = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

// GitHubService aggregates a user's GitHub profile, repos and activity
type GitHubService struct {
	api   GitHubAPI
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

// NewGitHubService creates a GitHubService. A zero ttl disables caching.
func NewGitHubService(api GitHubAPI, c cache.Cache, ttl time.Duration) *GitHubService {
	if c == nil || ttl <= 0 {
		c = cache.NewNoOpCache()
	}
	return &GitHubService{api: api, cache: c, ttl: ttl, now: time.Now}
}

// Stats returns the reshaped stats for username
func (s *GitHubService) Stats(ctx context.Context, username string) (*models.GitHubStats, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, badRequest("Username is required")
	}
	if len(username) > maxGitHubUsername || !githubUsername.MatchString(username) {
		return nil, badRequest("Invalid GitHub username")
	}

	key := "github:" + strings.ToLower(username)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var stats models.GitHubStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
		s.cache.Delete(ctx, key)
	}

	return shared(ctx, &s.group, key, func(ctx context.Context) (*models.GitHubStats, error) {
		stats, err := s.fetch(ctx, username)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, key, raw, s.ttl)
		}
		return stats, nil
	})
}

func (s *GitHubService) fetch(ctx context.Context, username string) (*models.GitHubStats, error) {
	logger := log.FromContext(ctx, "github")
	const notFound, failed = "GitHub user not found", "Failed to fetch GitHub data"

	user, err := s.api.User(ctx, username)
	if err != nil {
		logger.Warn().Err(err).Str(log.FieldUsername, username).Msg("github user lookup failed")
		return nil, fromUpstream(err, notFound, failed)
	}
	repos, err := s.api.Repos(ctx, username)
	if err != nil {
		logger.Warn().Err(err).Str(log.FieldUsername, username).Msg("github repo listing failed")
		return nil, fromUpstream(err, notFound, failed)
	}
	events, err := s.api.Events(ctx, username)
	if err != nil {
		logger.Warn().Err(err).Str(log.FieldUsername, username).Msg("github events listing failed")
		return nil, fromUpstream(err, notFound, failed)
	}

	stats := buildStats(user, repos, events, s.now())
	logger.Debug().
		Str(log.FieldUsername, username).
		Int("repos", len(repos)).
		Int("events", len(events)).
		Msg("github stats assembled")
	return stats, nil
}

func buildStats(user *upstream.GitHubUser, repos []upstream.GitHubRepo, events []upstream.GitHubEvent, now time.Time) *models.GitHubStats {
	stats := &models.GitHubStats{
		Username:     user.Login,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		Bio:          user.Bio,
		ProfileURL:   user.HTMLURL,
		PublicRepos:  user.PublicRepos,
		Followers:    user.Followers,
		Following:    user.Following,
		TopLanguages: make([]models.LanguageCount, 0),
		RecentRepos:  make([]models.RepoSummary, 0),
	}
	if stats.ProfileURL == "" {
		stats.ProfileURL = "https://github.com/" + user.Login
	}

	langs := make(map[string]int)
	for _, r := range repos {
		stats.TotalStars += r.StargazersCount
		stats.TotalForks += r.ForksCount
		if r.Language != "" {
			langs[r.Language]++
		}
	}
	for name, count := range langs {
		stats.TopLanguages = append(stats.TopLanguages, models.LanguageCount{Name: name, Count: count})
	}
	sort.Slice(stats.TopLanguages, func(i, j int) bool {
		a, b := stats.TopLanguages[i], stats.TopLanguages[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(stats.TopLanguages) > topLanguages {
		stats.TopLanguages = stats.TopLanguages[:topLanguages]
	}

	own := make([]upstream.GitHubRepo, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			own = append(own, r)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].UpdatedAt.After(own[j].UpdatedAt) })
	for i, r := range own {
		if i == recentRepos {
			break
		}
		stats.RecentRepos = append(stats.RecentRepos, models.RepoSummary{
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			Language:    r.Language,
			Stars:       r.StargazersCount,
			Forks:       r.ForksCount,
			UpdatedAt:   r.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	stamps := make([]time.Time, len(events))
	for i, e := range events {
		stamps[i] = e.CreatedAt
	}
	stats.Contributions = contributionStats(stamps, now)
	return stats
}
