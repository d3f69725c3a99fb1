package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"portfolio.dev/internal/models"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string
	DataPath   string
	LogLevel   string
	LogPretty  bool
	// WatchContent reloads the data files when they change on disk
	WatchContent bool

	GitHubToken  string
	GitHubAPIURL string
	DevToAPIURL  string
	RelayURL     string
	RelayKey     string
	UpstreamWait time.Duration

	CacheTTL  time.Duration
	RedisAddr string
	RedisDB   int

	ContactDBPath string
	HashSalt      string

	RateLimitPerMinute int
	ContactPerHour     int

	Site     *models.Site
	Projects *models.ProjectList
}

// Load reads the environment and the JSON content files under DATA_PATH
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DataPath:   getEnv("DATA_PATH", "data"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogPretty:  getEnvBool("LOG_PRETTY", false),

		WatchContent: getEnvBool("WATCH_CONTENT", false),

		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),
		DevToAPIURL:  os.Getenv("DEVTO_API_URL"),
		RelayURL:     os.Getenv("RELAY_URL"),
		RelayKey:     os.Getenv("RELAY_ACCESS_KEY"),
		UpstreamWait: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),

		CacheTTL:  getEnvDuration("CACHE_TTL", 0),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		ContactDBPath: os.Getenv("CONTACT_DB_PATH"),
		HashSalt:      os.Getenv("HASH_SALT"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ContactPerHour:     getEnvInt("CONTACT_PER_HOUR", 5),
	}

	if err := cfg.LoadContent(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Content file names under DataPath
const (
	ContentFile  = "content.json"
	ProjectsFile = "projects.json"
)

// LoadContent reads and validates the content files from DataPath
func (c *Config) LoadContent() error {
	site, projects, err := ReadContent(c.DataPath)
	if err != nil {
		return err
	}
	c.Site = site
	c.Projects = projects
	return nil
}

// ReadContent reads and validates content.json and projects.json in dir
func ReadContent(dir string) (*models.Site, *models.ProjectList, error) {
	var site models.Site
	if err := readJSON(filepath.Join(dir, ContentFile), &site); err != nil {
		return nil, nil, err
	}
	var projects models.ProjectList
	if err := readJSON(filepath.Join(dir, ProjectsFile), &projects); err != nil {
		return nil, nil, err
	}
	if err := ValidateSite(&site); err != nil {
		return nil, nil, err
	}
	if err := ValidateProjects(&projects); err != nil {
		return nil, nil, err
	}
	return &site, &projects, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: RATE_LIMIT_PER_MINUTE must be non-negative")
	}
	if c.ContactPerHour < 0 {
		return fmt.Errorf("config error: CONTACT_PER_HOUR must be non-negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: CACHE_TTL must be non-negative")
	}
	if c.UpstreamWait <= 0 {
		return fmt.Errorf("config error: UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

// ValidateSite checks field presence on the hand-authored content
func ValidateSite(site *models.Site) error {
	if strings.TrimSpace(site.Profile.Name) == "" {
		return fmt.Errorf("content error: profile.name is required")
	}
	for i, cat := range site.Skills {
		if cat.Title == "" {
			return fmt.Errorf("content error: skills[%d].title is required", i)
		}
		for j, s := range cat.Skills {
			if s.Name == "" {
				return fmt.Errorf("content error: skills[%d].skills[%d].name is required", i, j)
			}
			if s.Level < 0 || s.Level > 100 {
				return fmt.Errorf("content error: skill %q level %d out of range 0-100", s.Name, s.Level)
			}
		}
	}
	for i, e := range site.Experience {
		if e.Role == "" || e.Company == "" {
			return fmt.Errorf("content error: experience[%d] needs role and company", i)
		}
	}
	for i, a := range site.Achievements {
		if a.Title == "" {
			return fmt.Errorf("content error: achievements[%d].title is required", i)
		}
	}
	return nil
}

// ValidateProjects checks field presence and ID uniqueness
func ValidateProjects(list *models.ProjectList) error {
	seen := make(map[string]bool, len(list.Projects))
	for i, p := range list.Projects {
		if p.ID == "" || p.Title == "" {
			return fmt.Errorf("content error: projects[%d] needs id and title", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("content error: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return CheckSchema(filepath.Base(path), data)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
