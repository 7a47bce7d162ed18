package graph

import (
	"github.com/yenhunghuang/bha/internal/trace"
)

// Builder assembles a Graph from a BuildTrace's compilation units and
// their includes, mirroring the teacher's GraphBuilder.BuildFromPackageList
// shape (accumulate nodes, then edges, in a single deterministic pass).
type Builder struct {
	graph *Graph
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{graph: New()}
}

// BuildFromTrace constructs the include graph: one node per compilation
// unit and per distinct header, one DIRECT_INCLUDE edge per (unit,
// header) pair, weighted by the header's parse time in milliseconds.
func (b *Builder) BuildFromTrace(bt trace.BuildTrace) *Graph {
	for _, unit := range bt.Units {
		sourceKey := trace.NormalizePath(unit.SourceFile)
		b.graph.AddNode(sourceKey)

		for _, inc := range unit.Includes {
			headerKey := trace.NormalizePath(inc.Header)
			b.graph.AddEdge(sourceKey, headerKey, DirectInclude, WeightFromDuration(inc.ParseTime))
		}
	}
	return b.graph
}

// GetGraph returns the graph assembled so far.
func (b *Builder) GetGraph() *Graph { return b.graph }

// MaterializeTransitiveClosure adds a TRANSITIVE edge (node -> ancestor)
// for every pair where node already reaches ancestor through two or more
// DIRECT_INCLUDE hops, without an existing direct edge between them. This
// is the "materialized by closure computation" edge kind spec.md §4.1
// reserves TRANSITIVE for.
func MaterializeTransitiveClosure(g *Graph) {
	for _, node := range g.GetAllNodes() {
		reachable := GetTransitiveDependencies(g, node)
		direct := make(map[string]bool)
		for _, d := range g.GetDependencies(node) {
			direct[d] = true
		}
		for _, r := range reachable {
			if r == node || direct[r] {
				continue
			}
			g.AddEdge(node, r, Transitive, 0)
		}
	}
}
