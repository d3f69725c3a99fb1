package scene

import (
	"fmt"
	"math"
)

// seed keeps node drift phases stable between builds
const seed = 0x5eed

var restNodes = []Node{
	{ID: "core", Label: "Go", Position: Vec3{0, 0, 0}, Radius: 0.9, Color: "#00add8"},
	{ID: "api", Label: "APIs", Position: Vec3{4, 2, -1}, Radius: 0.6, Color: "#7c3aed"},
	{ID: "cloud", Label: "Cloud", Position: Vec3{-4, 1.5, 0.5}, Radius: 0.6, Color: "#0ea5e9"},
	{ID: "data", Label: "Data", Position: Vec3{0.5, -3.5, 1}, Radius: 0.6, Color: "#22c55e"},
	{ID: "web", Label: "Web", Position: Vec3{3, -2, -3}, Radius: 0.5, Color: "#f59e0b"},
	{ID: "ops", Label: "DevOps", Position: Vec3{-3, -2.5, -2}, Radius: 0.5, Color: "#ef4444"},
	{ID: "test", Label: "Testing", Position: Vec3{1, 4, 2.5}, Radius: 0.45, Color: "#ec4899"},
	{ID: "design", Label: "Design", Position: Vec3{-1.5, 3, -3.5}, Radius: 0.45, Color: "#a3a3a3"},
}

var links = [][2]string{
	{"core", "api"}, {"core", "cloud"}, {"core", "data"},
	{"api", "web"}, {"data", "web"}, {"cloud", "ops"}, {"data", "ops"},
	{"api", "test"}, {"cloud", "test"}, {"test", "design"}, {"cloud", "design"},
}

// Network builds the full hand-authored graph
func Network() (*Graph, error) {
	rng := NewRNG(seed)
	g := NewGraph()
	for _, def := range restNodes {
		n := def
		n.Phase = rng.Range(0, 2*math.Pi)
		g.AddNode(&n)
	}
	for _, e := range links {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("build network: %w", err)
		}
	}
	if missing := g.FindUnreachable(restNodes[0].ID); len(missing) > 0 {
		return nil, fmt.Errorf("build network: unreachable nodes %v", missing)
	}
	return g, nil
}

// Build trims the network to the preset's node count. The trimmed graph is
// always connected because nodes are ordered outward from the core.
func Build(p Preset) (*Graph, error) {
	full, err := Network()
	if err != nil {
		return nil, err
	}
	g, err := full.Subgraph(p.NodeCount)
	if err != nil {
		return nil, err
	}
	if !g.IsConnected(restNodes[0].ID) {
		return nil, fmt.Errorf("preset %s leaves the network disconnected", p.Level)
	}
	return g, nil
}

// DriftAmplitude is how far a node wanders from its rest position
const DriftAmplitude = 0.35

// DriftPeriod is the time in seconds after which every node is back where it
// started, the common period of the three drift waves
const DriftPeriod = 20 * math.Pi

// PositionAt returns where an animated node sits after elapsed seconds
func PositionAt(n *Node, elapsed float64) Vec3 {
	t := elapsed*0.5 + n.Phase
	offset := Vec3{
		X: math.Sin(t),
		Y: math.Cos(t * 0.8),
		Z: math.Sin(t * 0.6),
	}
	return n.Position.Add(offset.Scale(DriftAmplitude))
}
