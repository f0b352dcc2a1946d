package graph

import (
	"sort"

	"github.com/lorispalmarin/twitch-network/pkg/dataset"
)

// Graph is an undirected simple graph over streamer ids. Attributes live on
// nodes only; a node loaded from the edge file alone carries none.
type Graph struct {
	features  map[uint64]*dataset.FeatureRecord // nil value = node without a feature row
	adjacency map[uint64]map[uint64]struct{}
	edgeCount int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		features:  make(map[uint64]*dataset.FeatureRecord),
		adjacency: make(map[uint64]map[uint64]struct{}),
	}
}

// AddNode registers a node id. Adding an existing node is a no-op.
func (g *Graph) AddNode(id uint64) {
	if _, ok := g.adjacency[id]; ok {
		return
	}
	g.adjacency[id] = make(map[uint64]struct{})
	if _, ok := g.features[id]; !ok {
		g.features[id] = nil
	}
}

// SetFeatures attaches an attribute record to its node. The record is stored
// as-is; callers who need isolation pass a clone.
func (g *Graph) SetFeatures(id uint64, rec *dataset.FeatureRecord) {
	g.AddNode(id)
	g.features[id] = rec
}

// AddEdge inserts the undirected edge {a, b}, creating missing endpoints.
// Self-loops and already-present pairs are rejected; returns whether the
// edge was added.
func (g *Graph) AddEdge(a, b uint64) bool {
	if a == b {
		return false
	}
	g.AddNode(a)
	g.AddNode(b)
	if _, ok := g.adjacency[a][b]; ok {
		return false
	}
	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
	g.edgeCount++
	return true
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id uint64) bool {
	_, ok := g.adjacency[id]
	return ok
}

// HasEdge reports whether the undirected edge {a, b} exists.
func (g *Graph) HasEdge(a, b uint64) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Degree returns the number of edges incident to a node.
func (g *Graph) Degree(id uint64) (int, bool) {
	neighbors, ok := g.adjacency[id]
	if !ok {
		return 0, false
	}
	return len(neighbors), true
}

// Neighbors returns a node's adjacent ids in ascending order.
func (g *Graph) Neighbors(id uint64) []uint64 {
	set, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]uint64, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeIDs returns all node ids in ascending order.
func (g *Graph) NodeIDs() []uint64 {
	out := make([]uint64, 0, len(g.adjacency))
	for id := range g.adjacency {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Features returns the attribute record attached to a node, nil when the
// node has none (or does not exist).
func (g *Graph) Features(id uint64) *dataset.FeatureRecord {
	return g.features[id]
}

// ForEachEdge visits every undirected edge exactly once, with a < b,
// in ascending (a, b) order.
func (g *Graph) ForEachEdge(visit func(a, b uint64)) {
	for _, a := range g.NodeIDs() {
		for _, b := range g.Neighbors(a) {
			if a < b {
				visit(a, b)
			}
		}
	}
}

// Clone creates a deep copy: mutating the copy never touches the original.
func (g *Graph) Clone() *Graph {
	clone := New()
	for id, neighbors := range g.adjacency {
		clone.AddNode(id)
		if rec := g.features[id]; rec != nil {
			clone.features[id] = rec.Clone()
		}
		for n := range neighbors {
			clone.AddEdge(id, n)
		}
	}
	return clone
}
