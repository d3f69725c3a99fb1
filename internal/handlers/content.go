package handlers

import (
	"net/http"

	"portfolio.dev/internal/services"
)

// ContentHandler serves the hand-authored site content
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(cs *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

// GetContent handles GET /api/content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Site())
}
