package analysis

import (
	"sort"

	"github.com/lorispalmarin/twitch-network/pkg/graph"
)

// LanguageUnknown buckets nodes that carry no feature record.
const LanguageUnknown = "UNKNOWN"

// LanguageBreakdown counts nodes per broadcast language code. Useful for
// choosing a filter value before extracting a subgraph.
func LanguageBreakdown(g *graph.Graph) map[string]int {
	counts := make(map[string]int)
	for _, id := range g.NodeIDs() {
		rec := g.Features(id)
		if rec == nil {
			counts[LanguageUnknown]++
			continue
		}
		counts[rec.Language]++
	}
	return counts
}

// LanguageCount pairs a language code with its node count.
type LanguageCount struct {
	Language string
	Nodes    int
}

// TopLanguages returns the n most common languages, largest first; ties
// break alphabetically so the ordering is stable.
func TopLanguages(g *graph.Graph, n int) []LanguageCount {
	counts := LanguageBreakdown(g)

	out := make([]LanguageCount, 0, len(counts))
	for lang, c := range counts {
		out = append(out, LanguageCount{Language: lang, Nodes: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nodes != out[j].Nodes {
			return out[i].Nodes > out[j].Nodes
		}
		return out[i].Language < out[j].Language
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
