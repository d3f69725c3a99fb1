package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"portfolio.dev/internal/log"
	"portfolio.dev/internal/scene"
	"portfolio.dev/internal/services"
)

// SceneHandler serves the background network and its quality presets
type SceneHandler struct {
	sceneService *services.SceneService
}

// NewSceneHandler creates a new SceneHandler
func NewSceneHandler(ss *services.SceneService) *SceneHandler {
	return &SceneHandler{sceneService: ss}
}

// GetScene handles GET /api/scene. An explicit ?preset= wins; otherwise the
// preset is chosen from ?cores=, ?memory=, ?reducedMotion= and the User-Agent.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if name := q.Get("preset"); name != "" {
		resp, err := h.sceneService.ForLevel(name)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}

	d := scene.Device{UserAgent: r.UserAgent()}
	d.Cores, _ = strconv.Atoi(q.Get("cores"))
	d.MemoryGB, _ = strconv.ParseFloat(q.Get("memory"), 64)
	d.ReducedMotion, _ = strconv.ParseBool(q.Get("reducedMotion"))

	resp := h.sceneService.ForDevice(d)
	logger := log.FromContext(r.Context(), "scene")
	logger.Debug().Str(log.FieldPreset, resp.Preset.Name).Int("cores", d.Cores).Float64("memory_gb", d.MemoryGB).Msg("scene preset selected")
	respondJSON(w, http.StatusOK, resp)
}

type fpsReport struct {
	Preset   string `json:"preset"`
	Frames   int    `json:"frames"`
	WindowMs int    `json:"windowMs"`
}

// ReportFPS handles POST /api/scene/fps and returns the preset to use next
func (h *SceneHandler) ReportFPS(w http.ResponseWriter, r *http.Request) {
	var req fpsReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	next, err := h.sceneService.Degrade(req.Preset, req.Frames, time.Duration(req.WindowMs)*time.Millisecond)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if next.Name != req.Preset {
		logger := log.FromContext(r.Context(), "scene")
		logger.Info().Str(log.FieldPreset, next.Name).Int("frames", req.Frames).Int("window_ms", req.WindowMs).Msg("scene preset degraded")
	}
	respondJSON(w, http.StatusOK, next)
}
