package analysis

import (
	"sort"

	"github.com/lorispalmarin/twitch-network/pkg/graph"
)

// DegreeStats holds the summary statistics over all node degrees.
type DegreeStats struct {
	Min  int
	Max  int
	Mean float64
}

// Degrees computes (min, max, mean) degree over every node of the graph.
// An empty graph yields zero stats rather than an error.
func Degrees(g *graph.Graph) DegreeStats {
	if g.NodeCount() == 0 {
		return DegreeStats{}
	}

	var stats DegreeStats
	first := true
	sum := 0

	for _, id := range g.NodeIDs() {
		d, _ := g.Degree(id)
		sum += d
		if first {
			stats.Min, stats.Max = d, d
			first = false
			continue
		}
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
	}

	stats.Mean = float64(sum) / float64(g.NodeCount())
	return stats
}

// DegreeQuantiles returns the degree at each requested quantile (0..1),
// using the nearest-rank method over the sorted degree sequence.
func DegreeQuantiles(g *graph.Graph, quantiles ...float64) []int {
	out := make([]int, len(quantiles))
	n := g.NodeCount()
	if n == 0 {
		return out
	}

	degrees := make([]int, 0, n)
	for _, id := range g.NodeIDs() {
		d, _ := g.Degree(id)
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	for i, q := range quantiles {
		if q <= 0 {
			out[i] = degrees[0]
			continue
		}
		if q >= 1 {
			out[i] = degrees[n-1]
			continue
		}
		rank := int(q * float64(n))
		if rank >= n {
			rank = n - 1
		}
		out[i] = degrees[rank]
	}
	return out
}
