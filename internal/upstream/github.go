package upstream

import (
	"context"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

// DefaultGitHubURL is the public GitHub REST API.
const DefaultGitHubURL = "https://api.github.com"

// GitHubPageSize is the fixed page size for repo and event listings.
const GitHubPageSize = 100

// GitHubUser is the subset of /users/{u} we use.
type GitHubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// GitHubRepo is the subset of a repository listing entry we use.
type GitHubRepo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Fork            bool      `json:"fork"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GitHubEvent is a public activity event.
type GitHubEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// GitHubClient talks to the GitHub REST API.
type GitHubClient struct {
	http fastshot.ClientHttpMethods
}

// NewGitHubClient creates a client. token may be empty for anonymous access.
func NewGitHubClient(baseURL, token string, timeout time.Duration) *GitHubClient {
	if baseURL == "" {
		baseURL = DefaultGitHubURL
	}
	return &GitHubClient{http: newClient(baseURL, timeout, token)}
}

const githubService = "github"

// User fetches a user profile.
func (c *GitHubClient) User(ctx context.Context, username string) (*GitHubUser, error) {
	start := time.Now()
	resp, err := c.http.GET("/users/"+url.PathEscape(username)).
		Context().Set(ctx).
		Header().Add("X-GitHub-Api-Version", "2022-11-28").
		Send()

	var user GitHubUser
	if err := decode(githubService, start, resp, err, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Repos lists the user's public repositories, most recently updated first.
func (c *GitHubClient) Repos(ctx context.Context, username string) ([]GitHubRepo, error) {
	start := time.Now()
	resp, err := c.http.GET("/users/"+url.PathEscape(username)+"/repos").
		Context().Set(ctx).
		Header().Add("X-GitHub-Api-Version", "2022-11-28").
		Query().AddParam("per_page", "100").
		Query().AddParam("sort", "updated").
		Send()

	var repos []GitHubRepo
	if err := decode(githubService, start, resp, err, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Events lists the user's recent public events.
func (c *GitHubClient) Events(ctx context.Context, username string) ([]GitHubEvent, error) {
	start := time.Now()
	resp, err := c.http.GET("/users/"+url.PathEscape(username)+"/events/public").
		Context().Set(ctx).
		Header().Add("X-GitHub-Api-Version", "2022-11-28").
		Query().AddParam("per_page", "100").
		Send()

	var events []GitHubEvent
	if err := decode(githubService, start, resp, err, &events); err != nil {
		return nil, err
	}
	return events, nil
}
