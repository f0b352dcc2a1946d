package graph

import (
	"github.com/lorispalmarin/twitch-network/pkg/dataset"
)

// BuildReport summarizes what the builder did with its input rows.
type BuildReport struct {
	Nodes                int
	Edges                int
	SelfLoopsRemoved     int // edge rows with identical endpoints
	DuplicatePairsMerged int // repeated unordered pairs collapsed away
	NodesWithoutFeatures int // ids seen only in the edge file
}

// Build constructs the friendship graph: one node per distinct id appearing
// in either table, one undirected edge per distinct non-reflexive pair, each
// feature record attached (as a copy) to the node sharing its id.
func Build(edges *dataset.EdgeTable, features *dataset.FeatureTable) (*Graph, BuildReport) {
	g := New()
	var report BuildReport

	if features != nil {
		for i := range features.Records {
			rec := &features.Records[i]
			g.SetFeatures(rec.ID, rec.Clone())
		}
	}

	if edges != nil {
		for _, e := range edges.Edges {
			switch {
			case e.A == e.B:
				// The node itself still counts, only the loop is dropped
				g.AddNode(e.A)
				report.SelfLoopsRemoved++
			case g.HasEdge(e.A, e.B):
				report.DuplicatePairsMerged++
			default:
				g.AddEdge(e.A, e.B)
			}
		}
	}

	for id := range g.adjacency {
		if g.features[id] == nil {
			report.NodesWithoutFeatures++
		}
	}

	report.Nodes = g.NodeCount()
	report.Edges = g.EdgeCount()
	return g, report
}
