package services

import (
	"sync/atomic"

	"portfolio.dev/internal/models"
)

// ContentService serves the hand-authored site content. The content can be
// swapped at runtime when the data files change.
type ContentService struct {
	current atomic.Pointer[models.Site]
}

// NewContentService creates a new ContentService
func NewContentService(site *models.Site) *ContentService {
	s := &ContentService{}
	s.current.Store(site)
	return s
}

// Replace swaps in freshly loaded content
func (s *ContentService) Replace(site *models.Site) {
	s.current.Store(site)
}

// Profile returns the owner's profile
func (s *ContentService) Profile() models.Profile {
	return s.current.Load().Profile
}

// Skills returns the skill categories
func (s *ContentService) Skills() []models.SkillCategory {
	return s.current.Load().Skills
}

// Experience returns work history with current positions first
func (s *ContentService) Experience() []models.Experience {
	site := s.current.Load()
	out := make([]models.Experience, 0, len(site.Experience))
	for _, e := range site.Experience {
		if e.Current {
			out = append(out, e)
		}
	}
	for _, e := range site.Experience {
		if !e.Current {
			out = append(out, e)
		}
	}
	return out
}

// Achievements returns the achievements
func (s *ContentService) Achievements() []models.Achievement {
	return s.current.Load().Achievements
}

// Site returns a copy of the whole content document with experience
// ordered as Experience returns it
func (s *ContentService) Site() *models.Site {
	site := *s.current.Load()
	site.Experience = s.Experience()
	return &site
}
