package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"portfolio.dev/internal/log"
	"portfolio.dev/internal/scene"
	"portfolio.dev/internal/services"
	"portfolio.dev/internal/web"
)

// Backdrop viewport in SVG user units
const (
	backdropWidth  = 1200
	backdropHeight = 800
)

// Client hints the backdrop uses to pick a preset on the first render
const (
	hintDeviceMemory  = "Device-Memory"
	hintReducedMotion = "Sec-CH-Prefers-Reduced-Motion"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	content  *services.ContentService
	projects *services.ProjectService
	scene    *services.SceneService
	renderer *web.Renderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(cs *services.ContentService, ps *services.ProjectService, ss *services.SceneService, renderer *web.Renderer) *PageHandler {
	return &PageHandler{content: cs, projects: ps, scene: ss, renderer: renderer}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	if len(data.Projects) > web.ProjectsOnHome {
		data.Projects = data.Projects[:web.ProjectsOnHome]
		data.MoreProjects = true
	}
	if r.URL.Query().Get("sent") != "" {
		data.Contact = web.ContactResult{Submitted: true, Success: true, Message: services.SuccessMessage}
	}
	h.render(w, r, "index", data)
}

// Projects handles GET /projects
func (h *PageHandler) Projects(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "projects", h.pageData(r))
}

// SetTheme handles GET /theme/{mode} and sends the visitor back where they were
func (h *PageHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	theme, ok := web.ParseTheme(chi.URLParam(r, "mode"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown theme")
		return
	}
	web.SetTheme(w, theme)
	http.Redirect(w, r, sameOriginReferer(r), http.StatusSeeOther)
}

func (h *PageHandler) pageData(r *http.Request) web.PageData {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	projects := h.projects.Filter(category, 0)
	return web.PageData{
		Theme:         web.ThemeFromRequest(r),
		Site:          h.content.Site(),
		Projects:      projects,
		Categories:    h.projects.Categories(),
		Category:      category,
		TotalProjects: len(projects),
		Backdrop:      web.NewBackdrop(h.scene.ForDevice(deviceFromHints(r)), backdropWidth, backdropHeight),
	}
}

// deviceFromHints reads what the browser volunteered through client hints.
// Browsers that never send them get a preset from the User-Agent alone.
func deviceFromHints(r *http.Request) scene.Device {
	d := scene.Device{UserAgent: r.UserAgent()}
	if mem, err := strconv.ParseFloat(r.Header.Get(hintDeviceMemory), 64); err == nil && mem > 0 {
		d.MemoryGB = mem
	}
	d.ReducedMotion = r.Header.Get(hintReducedMotion) == "reduce"
	return d
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page string, data web.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", hintDeviceMemory+", "+hintReducedMotion)
	w.Header().Add("Vary", hintDeviceMemory+", "+hintReducedMotion)
	if err := h.renderer.Page(w, page, data); err != nil {
		logger := log.FromContext(r.Context(), "handlers")
		logger.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// sameOriginReferer returns the referer path when it points back at this
// host, otherwise "/"
func sameOriginReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	out := ref.Path
	if ref.RawQuery != "" {
		out += "?" + ref.RawQuery
	}
	return out
}
