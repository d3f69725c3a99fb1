package handlers

import (
	"net/http"
	"strconv"

	"portfolio.dev/internal/services"
)

// GitHubHandler proxies the GitHub profile summary
type GitHubHandler struct {
	githubService *services.GitHubService
}

// NewGitHubHandler creates a new GitHubHandler
func NewGitHubHandler(gs *services.GitHubService) *GitHubHandler {
	return &GitHubHandler{githubService: gs}
}

// GetStats handles GET /api/github?username=
func (h *GitHubHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.githubService.Stats(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// BlogHandler proxies dev.to articles
type BlogHandler struct {
	blogService *services.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(bs *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: bs}
}

// GetBlogs handles GET /api/blogs?username=&limit=
func (h *BlogHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// unparseable limits fall back to the default
	limit, _ := strconv.Atoi(q.Get("limit"))

	blogs, err := h.blogService.Latest(r.Context(), q.Get("username"), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}
