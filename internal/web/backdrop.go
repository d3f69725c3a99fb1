package web

import (
	"strconv"
	"strings"

	"portfolio.dev/internal/models"
	"portfolio.dev/internal/scene"
)

// Backdrop is a flat SVG rendering of the scene, shown before the script
// takes over and when scripts are disabled. Animated presets carry SMIL
// keyframes so the nodes drift without any script.
type Backdrop struct {
	Width, Height float64
	Nodes         []BackdropNode
	Edges         []BackdropEdge
	// Dur is the loop length in seconds; zero means a still image
	Dur float64
}

type BackdropNode struct {
	ID     string
	X, Y   float64
	R      float64
	Color  string
	CX, CY string // keyframe value lists, empty when still
}

type BackdropEdge struct {
	X1, Y1, X2, Y2 float64
	Backbone       bool
	KX1, KY1       string
	KX2, KY2       string
}

const (
	// pixelsPerUnit scales node radii into viewport pixels
	pixelsPerUnit = 40
	// driftFrames is the number of keyframe intervals in one drift loop
	driftFrames = 24
)

type track struct{ xs, ys string }

// NewBackdrop projects the scene onto a width x height viewport
func NewBackdrop(s models.SceneResponse, width, height float64) Backdrop {
	b := Backdrop{Width: width, Height: height}
	if s.Preset.Animate {
		b.Dur = scene.DriftPeriod
	}

	points := make(map[string]scene.Point2, len(s.Nodes))
	tracks := make(map[string]track, len(s.Nodes))
	for _, n := range s.Nodes {
		node := &scene.Node{
			ID:       n.ID,
			Position: scene.Vec3{X: n.Position[0], Y: n.Position[1], Z: n.Position[2]},
			Phase:    n.Phase,
		}
		p := scene.Project(node.Position, width, height)
		points[n.ID] = p

		bn := BackdropNode{ID: n.ID, X: p.X, Y: p.Y, R: n.Radius * pixelsPerUnit, Color: n.Color}
		if b.Dur > 0 {
			t := driftTrack(node, width, height)
			tracks[n.ID] = t
			bn.CX, bn.CY = t.xs, t.ys
		}
		b.Nodes = append(b.Nodes, bn)
	}

	for _, e := range s.Edges {
		from, ok1 := points[e.From]
		to, ok2 := points[e.To]
		if !ok1 || !ok2 {
			continue
		}
		be := BackdropEdge{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y, Backbone: e.Backbone}
		if b.Dur > 0 {
			be.KX1, be.KY1 = tracks[e.From].xs, tracks[e.From].ys
			be.KX2, be.KY2 = tracks[e.To].xs, tracks[e.To].ys
		}
		b.Edges = append(b.Edges, be)
	}
	return b
}

// driftTrack samples one drift period of n, projected to the viewport. The
// last keyframe repeats the first so the loop is seamless.
func driftTrack(n *scene.Node, width, height float64) track {
	xs := make([]string, 0, driftFrames+1)
	ys := make([]string, 0, driftFrames+1)
	for i := 0; i <= driftFrames; i++ {
		elapsed := scene.Lerp(0, scene.DriftPeriod, float64(i)/driftFrames)
		if i == driftFrames {
			elapsed = 0
		}
		p := scene.Project(scene.PositionAt(n, elapsed), width, height)
		xs = append(xs, strconv.FormatFloat(p.X, 'f', 1, 64))
		ys = append(ys, strconv.FormatFloat(p.Y, 'f', 1, 64))
	}
	return track{xs: strings.Join(xs, ";"), ys: strings.Join(ys, ";")}
}
