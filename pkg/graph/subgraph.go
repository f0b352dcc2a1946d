package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lorispalmarin/twitch-network/pkg/dataset"
)

// ErrEmptyResult is returned when a filter selects no nodes.
var ErrEmptyResult = errors.New("empty result")

// Induced returns the subgraph induced by the nodes accepted by keep: those
// nodes plus every parent edge whose both endpoints were accepted. The result
// is an independent copy with no shared mutable state.
func (g *Graph) Induced(keep func(id uint64, rec *dataset.FeatureRecord) bool) *Graph {
	sub := New()

	for id, rec := range g.features {
		if !keep(id, rec) {
			continue
		}
		sub.AddNode(id)
		if rec != nil {
			sub.features[id] = rec.Clone()
		}
	}

	for a, neighbors := range g.adjacency {
		if !sub.HasNode(a) {
			continue
		}
		for b := range neighbors {
			if a < b && sub.HasNode(b) {
				sub.AddEdge(a, b)
			}
		}
	}

	return sub
}

// InducedByLanguage filters to the streamers broadcasting in the given
// language code (case-insensitive). Nodes without a feature row never match.
func (g *Graph) InducedByLanguage(code string) (*Graph, error) {
	target := strings.ToUpper(code)

	sub := g.Induced(func(_ uint64, rec *dataset.FeatureRecord) bool {
		return rec != nil && rec.Language == target
	})

	if sub.NodeCount() == 0 {
		return nil, fmt.Errorf("filter language=%s: %w", target, ErrEmptyResult)
	}
	return sub, nil
}
