package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/lorispalmarin/twitch-network/pkg/dataset"
)

// genEdgeRows generates edge tables over a small id range so duplicates,
// reversals and self-loops occur often
func genEdgeRows() gopter.Gen {
	pair := gopter.CombineGens(
		gen.UInt64Range(1, 12),
		gen.UInt64Range(1, 12),
	).Map(func(vals []interface{}) dataset.EdgeRecord {
		return dataset.EdgeRecord{A: vals[0].(uint64), B: vals[1].(uint64)}
	})
	return gen.SliceOf(pair)
}

func edgeTableOf(rows []dataset.EdgeRecord) *dataset.EdgeTable {
	return &dataset.EdgeTable{Edges: rows}
}

// TestGraphInvariants verifies build and filter invariants that must hold
// for any edge list whatsoever
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property 1: no self-loop survives the build, and the edge count equals
	// an independent count of distinct non-reflexive unordered pairs
	properties.Property("build yields distinct non-reflexive pairs", prop.ForAll(
		func(rows []dataset.EdgeRecord) bool {
			g, _ := Build(edgeTableOf(rows), nil)

			for _, id := range g.NodeIDs() {
				if g.HasEdge(id, id) {
					return false
				}
			}

			distinct := make(map[[2]uint64]struct{})
			for _, r := range rows {
				if r.A == r.B {
					continue
				}
				lo, hi := r.A, r.B
				if lo > hi {
					lo, hi = hi, lo
				}
				distinct[[2]uint64{lo, hi}] = struct{}{}
			}
			return g.EdgeCount() == len(distinct)
		},
		genEdgeRows(),
	))

	// Property 2: node count equals the number of distinct ids in the input
	properties.Property("build yields one node per distinct id", prop.ForAll(
		func(rows []dataset.EdgeRecord) bool {
			g, _ := Build(edgeTableOf(rows), nil)

			ids := make(map[uint64]struct{})
			for _, r := range rows {
				ids[r.A] = struct{}{}
				ids[r.B] = struct{}{}
			}
			return g.NodeCount() == len(ids)
		},
		genEdgeRows(),
	))

	// Property 3: degree sum equals twice the edge count (handshake lemma)
	properties.Property("degree sum is twice the edge count", prop.ForAll(
		func(rows []dataset.EdgeRecord) bool {
			g, _ := Build(edgeTableOf(rows), nil)

			sum := 0
			for _, id := range g.NodeIDs() {
				d, _ := g.Degree(id)
				sum += d
			}
			return sum == 2*g.EdgeCount()
		},
		genEdgeRows(),
	))

	// Property 4: an induced subgraph is edge-closed over its node set and
	// filtering twice with the same predicate changes nothing
	properties.Property("induced subgraph is closed and idempotent", prop.ForAll(
		func(rows []dataset.EdgeRecord) bool {
			g, _ := Build(edgeTableOf(rows), nil)

			keepEven := func(id uint64, _ *dataset.FeatureRecord) bool { return id%2 == 0 }
			sub := g.Induced(keepEven)

			closed := true
			sub.ForEachEdge(func(a, b uint64) {
				if !sub.HasNode(a) || !sub.HasNode(b) || !g.HasEdge(a, b) {
					closed = false
				}
			})
			if !closed {
				return false
			}

			again := sub.Induced(keepEven)
			return again.NodeCount() == sub.NodeCount() && again.EdgeCount() == sub.EdgeCount()
		},
		genEdgeRows(),
	))

	properties.TestingRun(t)
}
