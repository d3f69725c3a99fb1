package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net"
	"net/http"

	"portfolio.dev/internal/log"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/web"
)

// maxContactBody bounds the request body; the longest valid message is 5000 characters
const maxContactBody = 64 << 10

// ContactHandler accepts contact form submissions
type ContactHandler struct {
	contactService *services.ContactService
	renderer       *web.Renderer
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(cs *services.ContactService, renderer *web.Renderer) *ContactHandler {
	return &ContactHandler{contactService: cs, renderer: renderer}
}

// SubmitJSON handles POST /api/contact with a JSON or form-encoded body
func (h *ContactHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	data, err := decodeContact(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.contactService.Submit(r.Context(), data, clientIP(r)); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": services.SuccessMessage})
}

// SubmitForm handles POST /contact from the rendered page. Script-driven
// posts get the form fragment back; plain posts redirect to the contact section.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	result := web.ContactResult{Submitted: true}
	status := http.StatusOK

	data, err := decodeContact(w, r)
	if err != nil {
		status = http.StatusBadRequest
		result.Message = "Invalid request body"
	} else {
		result.Form = data
		if err := h.contactService.Submit(r.Context(), data, clientIP(r)); err != nil {
			status = services.HTTPStatus(err)
			result.Message = "Something went wrong. Please try again later."
			var apiErr *services.APIError
			if errors.As(err, &apiErr) {
				result.Message = apiErr.Message
				result.Fields = apiErr.Fields
			}
		} else {
			result.Success = true
			result.Message = services.SuccessMessage
			result.Form = models.ContactFormData{}
		}
	}

	if r.Header.Get("X-Requested-With") == "" && result.Success {
		http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := h.renderer.Fragment(w, "contact_form", result); err != nil {
		logger := log.FromContext(r.Context(), "handlers")
		logger.Error().Err(err).Msg("failed to render contact fragment")
	}
}

func decodeContact(w http.ResponseWriter, r *http.Request) (models.ContactFormData, error) {
	var data models.ContactFormData
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&data)
		return data, err
	}
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxContactBody); err != nil {
			return data, err
		}
	} else if err := r.ParseForm(); err != nil {
		return data, err
	}
	data.Name = r.PostForm.Get("name")
	data.Email = r.PostForm.Get("email")
	data.Subject = r.PostForm.Get("subject")
	data.Message = r.PostForm.Get("message")
	return data, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
