package services

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"portfolio.dev/internal/models"
)

// ProjectService handles project-related operations
type ProjectService struct {
	current atomic.Pointer[models.ProjectList]
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects *models.ProjectList) *ProjectService {
	s := &ProjectService{}
	s.current.Store(projects)
	return s
}

// Replace swaps in a freshly loaded project list
func (s *ProjectService) Replace(projects *models.ProjectList) {
	s.current.Store(projects)
}

func (s *ProjectService) list() []models.Project {
	return s.current.Load().Projects
}

// GetAll returns all projects, featured first, otherwise in file order
func (s *ProjectService) GetAll() []models.Project {
	projects := s.list()
	out := make([]models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	projects := s.list()
	for i := range projects {
		if projects[i].ID == id {
			p := projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project not found: %s", id)
}

// Filter returns projects in category (case-insensitive, empty means all),
// capped at limit when limit > 0
func (s *ProjectService) Filter(category string, limit int) []models.Project {
	all := s.GetAll()
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories returns the distinct categories in first-seen order
func (s *ProjectService) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.list() {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p.Category)
	}
	return out
}

// Count returns the number of projects
func (s *ProjectService) Count() int {
	return len(s.list())
}
