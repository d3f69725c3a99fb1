package services

import (
	"fmt"
	"net/http"
	"time"

	"portfolio.dev/internal/models"
	"portfolio.dev/internal/scene"
)

// SceneService serves the background network, pre-built for every preset
type SceneService struct {
	scenes map[scene.Level]models.SceneResponse
}

// NewSceneService builds the scene for every quality level
func NewSceneService() (*SceneService, error) {
	s := &SceneService{scenes: make(map[scene.Level]models.SceneResponse)}
	for _, level := range []scene.Level{scene.Low, scene.Medium, scene.High} {
		resp, err := BuildScene(scene.PresetFor(level))
		if err != nil {
			return nil, err
		}
		s.scenes[level] = resp
	}
	return s, nil
}

// BuildScene renders the graph for preset p into its wire form
func BuildScene(p scene.Preset) (models.SceneResponse, error) {
	g, err := scene.Build(p)
	if err != nil {
		return models.SceneResponse{}, fmt.Errorf("build scene %s: %w", p.Level, err)
	}

	backbone := make(map[string]bool)
	for _, e := range g.MST() {
		backbone[e.From+"|"+e.To] = true
	}

	resp := models.SceneResponse{
		Preset: presetModel(p),
		Nodes:  make([]models.SceneNode, 0, len(g.Order)),
		Edges:  make([]models.SceneEdge, 0, len(g.Edges)),
	}
	for _, id := range g.Order {
		n := g.Nodes[id]
		resp.Nodes = append(resp.Nodes, models.SceneNode{
			ID:       n.ID,
			Label:    n.Label,
			Position: n.Position.Array(),
			Radius:   n.Radius,
			Color:    n.Color,
			Phase:    n.Phase,
			Segments: scene.SegmentsAt(p.Segments, n.Position.Dist(camera)),
		})
	}
	for _, e := range g.Edges {
		resp.Edges = append(resp.Edges, models.SceneEdge{
			From:     e.From,
			To:       e.To,
			Length:   e.Weight,
			Backbone: backbone[e.From+"|"+e.To],
		})
	}
	return resp, nil
}

// camera is where the client script places its perspective camera
var camera = scene.Vec3{Z: 12}

func presetModel(p scene.Preset) models.ScenePreset {
	return models.ScenePreset{
		Name:           p.Level.String(),
		NodeCount:      p.NodeCount,
		Segments:       p.Segments,
		Particles:      p.Particles,
		Animate:        p.Animate,
		Pulses:         p.Pulses,
		MinFPS:         scene.MinFPS,
		SampleWindowMs: int(scene.SampleWindow / time.Millisecond),
	}
}

// ForDevice returns the scene matching the device heuristics
func (s *SceneService) ForDevice(d scene.Device) models.SceneResponse {
	p := scene.SelectQuality(d)
	resp := s.scenes[p.Level]
	resp.Preset = presetModel(p)
	return resp
}

// ForLevel returns the scene for an explicit level name
func (s *SceneService) ForLevel(name string) (models.SceneResponse, error) {
	level, err := scene.ParseLevel(name)
	if err != nil {
		return models.SceneResponse{}, badRequest(err.Error())
	}
	return s.scenes[level], nil
}

// Degrade applies one FPS sampling window to the named preset and returns
// the preset to use next
func (s *SceneService) Degrade(name string, frames int, window time.Duration) (models.ScenePreset, error) {
	level, err := scene.ParseLevel(name)
	if err != nil {
		return models.ScenePreset{}, badRequest(err.Error())
	}
	if frames < 0 || window <= 0 {
		return models.ScenePreset{}, &APIError{Status: http.StatusBadRequest, Message: "frames must be non-negative and windowMs positive"}
	}
	return presetModel(scene.PresetFor(scene.NextLevel(level, frames, window))), nil
}
