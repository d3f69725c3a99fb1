package scene

import (
	"cmp"
	"fmt"
	"slices"
)

// Node is a sphere in the network
type Node struct {
	ID       string
	Label    string
	Position Vec3
	Radius   float64
	Color    string
	Phase    float64 // drift phase offset in radians
}

// Edge connects two nodes
type Edge struct {
	From, To string
	Weight   float64 // Euclidean length
}

// Graph holds nodes in insertion order plus their undirected edges
type Graph struct {
	Nodes map[string]*Node
	Order []string
	Edges []*Edge

	neighbors map[string][]string
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes:     make(map[string]*Node),
		neighbors: make(map[string][]string),
	}
}

// AddNode inserts n, replacing any node with the same ID in place
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.Nodes[n.ID]; !exists {
		g.Order = append(g.Order, n.ID)
	}
	g.Nodes[n.ID] = n
}

// AddEdge links two existing nodes, weighting the edge by their distance
func (g *Graph) AddEdge(fromID, toID string) error {
	from, ok := g.Nodes[fromID]
	if !ok {
		return fmt.Errorf("unknown node %q", fromID)
	}
	to, ok := g.Nodes[toID]
	if !ok {
		return fmt.Errorf("unknown node %q", toID)
	}
	switch {
	case fromID == toID:
		return fmt.Errorf("self edge on %q", fromID)
	case g.GetEdge(fromID, toID) != nil:
		return fmt.Errorf("duplicate edge %s-%s", fromID, toID)
	}

	g.Edges = append(g.Edges, &Edge{From: fromID, To: toID, Weight: from.Position.Dist(to.Position)})
	g.neighbors[fromID] = append(g.neighbors[fromID], toID)
	g.neighbors[toID] = append(g.neighbors[toID], fromID)
	return nil
}

// GetEdge returns the edge joining a and b in either direction, or nil
func (g *Graph) GetEdge(a, b string) *Edge {
	idx := slices.IndexFunc(g.Edges, func(e *Edge) bool {
		return (e.From == a && e.To == b) || (e.From == b && e.To == a)
	})
	if idx < 0 {
		return nil
	}
	return g.Edges[idx]
}

// IsConnected reports whether a breadth-first walk from startID reaches
// every node. The empty graph is connected.
func (g *Graph) IsConnected(startID string) bool {
	return len(g.Nodes) == 0 || len(g.walk(startID)) == len(g.Nodes)
}

// FindUnreachable lists, in insertion order, the nodes a walk from startID misses
func (g *Graph) FindUnreachable(startID string) []string {
	seen := g.walk(startID)
	var missing []string
	for _, id := range g.Order {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// walk is a breadth-first search returning the set of visited IDs
func (g *Graph) walk(startID string) map[string]bool {
	seen := map[string]bool{}
	if _, ok := g.Nodes[startID]; !ok {
		return seen
	}
	seen[startID] = true
	for frontier := []string{startID}; len(frontier) > 0; {
		id := frontier[0]
		frontier = frontier[1:]
		for _, next := range g.neighbors[id] {
			if !seen[next] {
				seen[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	return seen
}

// Subgraph returns a graph containing the first n nodes in insertion order
// and the edges whose endpoints are both kept.
func (g *Graph) Subgraph(n int) (*Graph, error) {
	n = min(max(n, 0), len(g.Order))
	sub := NewGraph()
	for _, id := range g.Order[:n] {
		node := *g.Nodes[id]
		sub.AddNode(&node)
	}
	for _, e := range g.Edges {
		_, okFrom := sub.Nodes[e.From]
		_, okTo := sub.Nodes[e.To]
		if !okFrom || !okTo {
			continue
		}
		if err := sub.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("subgraph of %d nodes: %w", n, err)
		}
	}
	return sub, nil
}

// MST returns the backbone edges: Kruskal over edges ordered by weight,
// equal weights keeping insertion order so the result is stable.
func (g *Graph) MST() []*Edge {
	sets := newDisjointSet(g.Order)

	byWeight := slices.Clone(g.Edges)
	slices.SortStableFunc(byWeight, func(a, b *Edge) int {
		return cmp.Compare(a.Weight, b.Weight)
	})

	var tree []*Edge
	for _, e := range byWeight {
		if sets.union(e.From, e.To) {
			tree = append(tree, e)
		}
	}
	return tree
}

// disjointSet is union-find keyed by node ID
type disjointSet struct {
	parent map[string]string
	size   map[string]int
}

func newDisjointSet(ids []string) *disjointSet {
	d := &disjointSet{parent: make(map[string]string, len(ids)), size: make(map[string]int, len(ids))}
	for _, id := range ids {
		d.parent[id] = id
		d.size[id] = 1
	}
	return d
}

func (d *disjointSet) root(id string) string {
	for d.parent[id] != id {
		d.parent[id] = d.parent[d.parent[id]]
		id = d.parent[id]
	}
	return id
}

// union merges the sets holding a and b, reporting false if already joined
func (d *disjointSet) union(a, b string) bool {
	ra, rb := d.root(a), d.root(b)
	if ra == rb {
		return false
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	return true
}
