package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dev/internal/scene"
)

func TestSceneService_ForDevice(t *testing.T) {
	svc, err := NewSceneService()
	require.NoError(t, err)

	high := svc.ForDevice(scene.Device{Cores: 8, MemoryGB: 8})
	assert.Equal(t, "high", high.Preset.Name)
	assert.Len(t, high.Nodes, 8)

	backbone := 0
	for _, e := range high.Edges {
		if e.Backbone {
			backbone++
		}
	}
	assert.Equal(t, 7, backbone)

	low := svc.ForDevice(scene.Device{UserAgent: "iPhone"})
	assert.Equal(t, "low", low.Preset.Name)
	assert.Len(t, low.Nodes, 4)
	for _, n := range low.Nodes {
		assert.GreaterOrEqual(t, n.Segments, scene.MinSegments)
	}
}

func TestSceneService_ReducedMotion(t *testing.T) {
	svc, err := NewSceneService()
	require.NoError(t, err)

	resp := svc.ForDevice(scene.Device{Cores: 8, MemoryGB: 8, ReducedMotion: true})
	assert.False(t, resp.Preset.Animate)
	assert.Equal(t, 32, resp.Preset.Segments)

	again := svc.ForDevice(scene.Device{Cores: 8, MemoryGB: 8})
	assert.True(t, again.Preset.Animate, "cached scene is not mutated")
}

func TestSceneService_ForLevel(t *testing.T) {
	svc, err := NewSceneService()
	require.NoError(t, err)

	resp, err := svc.ForLevel("medium")
	require.NoError(t, err)
	assert.Len(t, resp.Nodes, 6)

	_, err = svc.ForLevel("ultra")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestSceneService_Degrade(t *testing.T) {
	svc, err := NewSceneService()
	require.NoError(t, err)

	next, err := svc.Degrade("high", 12, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "medium", next.Name)

	next, err = svc.Degrade("medium", 58, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "medium", next.Name)

	_, err = svc.Degrade("high", 10, 0)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
