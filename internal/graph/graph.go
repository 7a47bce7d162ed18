// Package graph implements the dependency graph described in spec.md §4.1
// and its algorithmic layer (§4.2): a directed multigraph keyed by
// normalized path, storage-backed by gonum.org/v1/gonum/graph/simple so
// that topological sort and strongly-connected-component computation can
// reuse gonum's graph/topo package rather than hand-rolled Kahn/Tarjan,
// grounded on the pattern in _examples/other_examples's graph analyzer
// (string-identity <-> gonum int64 node-ID maps around a
// *simple.DirectedGraph).
package graph

import (
	"time"

	"gonum.org/v1/gonum/graph/simple"
)

// EdgeType tags why an edge exists.
type EdgeType int

const (
	// DirectInclude marks an edge materialized by a literal #include.
	DirectInclude EdgeType = iota
	// Transitive marks an edge materialized by closure computation.
	Transitive
	// Synthetic is reserved for future synthetic edge kinds.
	Synthetic
)

func (t EdgeType) String() string {
	switch t {
	case DirectInclude:
		return "DIRECT_INCLUDE"
	case Transitive:
		return "TRANSITIVE"
	default:
		return "SYNTHETIC"
	}
}

// Edge is one directed, typed, weighted connection between two nodes.
// Distinct edge types between the same endpoints are distinct edges
// (spec.md §4.1), so a Graph can hold more than one Edge for a given
// (source, target) pair.
type Edge struct {
	Source string
	Target string
	Type   EdgeType
	Weight float64 // compile time in ms, or zero if unweighted
}

// Graph is a directed, path-keyed multigraph. The zero value is not
// usable; construct with New.
type Graph struct {
	g        *simple.DirectedGraph
	idOf     map[string]int64
	nodeOf   map[int64]string
	nextID   int64
	// outEdges/inEdges preserve insertion order and the full multi-edge
	// set; gonum's DirectedGraph only models simple edges; the typed
	// multigraph semantics spec.md §4.1 requires are layered on top by
	// this package.
	outEdges map[string][]Edge
	inEdges  map[string][]Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		g:        simple.NewDirectedGraph(),
		idOf:     make(map[string]int64),
		nodeOf:   make(map[int64]string),
		outEdges: make(map[string][]Edge),
		inEdges:  make(map[string][]Edge),
	}
}

// AddNode inserts a node if it is not already present. Idempotent.
func (gr *Graph) AddNode(path string) {
	if _, ok := gr.idOf[path]; ok {
		return
	}
	id := gr.nextID
	gr.nextID++
	gr.idOf[path] = id
	gr.nodeOf[id] = path
	gr.g.AddNode(simple.Node(id))
	if gr.outEdges[path] == nil {
		gr.outEdges[path] = nil
	}
	if gr.inEdges[path] == nil {
		gr.inEdges[path] = nil
	}
}

// HasNode reports whether path has been inserted.
func (gr *Graph) HasNode(path string) bool {
	_, ok := gr.idOf[path]
	return ok
}

// AddEdge inserts an edge of the given type, implicitly creating missing
// endpoints. Adding an identical edge (same source, target and type)
// again is a no-op; distinct types between the same endpoints are
// distinct edges.
func (gr *Graph) AddEdge(source, target string, edgeType EdgeType, weight float64) {
	gr.AddNode(source)
	gr.AddNode(target)

	for _, e := range gr.outEdges[source] {
		if e.Target == target && e.Type == edgeType {
			return
		}
	}

	e := Edge{Source: source, Target: target, Type: edgeType, Weight: weight}
	gr.outEdges[source] = append(gr.outEdges[source], e)
	gr.inEdges[target] = append(gr.inEdges[target], e)

	u, v := gr.idOf[source], gr.idOf[target]
	if !gr.g.HasEdgeFromTo(u, v) {
		gr.g.SetEdge(gr.g.NewEdge(simple.Node(u), simple.Node(v)))
	}
}

// HasEdge reports whether any edge exists from source to target,
// regardless of type.
func (gr *Graph) HasEdge(source, target string) bool {
	for _, e := range gr.outEdges[source] {
		if e.Target == target {
			return true
		}
	}
	return false
}

// GetDependencies returns the outgoing neighbor list of node, in
// insertion order, with duplicate targets collapsed (distinct edge types
// to the same target still yield one neighbor entry, matching the
// dependency-graph semantics graph algorithms operate on).
func (gr *Graph) GetDependencies(node string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range gr.outEdges[node] {
		if !seen[e.Target] {
			seen[e.Target] = true
			out = append(out, e.Target)
		}
	}
	return out
}

// GetReverseDependencies returns the incoming neighbor list of node, in
// insertion order, duplicate sources collapsed.
func (gr *Graph) GetReverseDependencies(node string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range gr.inEdges[node] {
		if !seen[e.Source] {
			seen[e.Source] = true
			out = append(out, e.Source)
		}
	}
	return out
}

// GetEdges returns every outgoing edge from node, including parallel
// edges of distinct types to the same target.
func (gr *Graph) GetEdges(node string) []Edge {
	out := make([]Edge, len(gr.outEdges[node]))
	copy(out, gr.outEdges[node])
	return out
}

// GetAllNodes returns every node. Iteration order is unspecified.
func (gr *Graph) GetAllNodes() []string {
	out := make([]string, 0, len(gr.idOf))
	for n := range gr.idOf {
		out = append(out, n)
	}
	return out
}

// NodeCount returns the number of nodes.
func (gr *Graph) NodeCount() int { return len(gr.idOf) }

// EdgeCount returns the total number of distinct (source, target, type)
// edges.
func (gr *Graph) EdgeCount() int {
	n := 0
	for _, es := range gr.outEdges {
		n += len(es)
	}
	return n
}

// NodeWeight returns the first non-zero weight recorded on an edge
// targeting node, in the order those edges were added,
// used by weight(v)-style algorithms when a per-node weight map is not
// supplied explicitly. Returns 0 if unknown.
func (gr *Graph) NodeWeight(node string) float64 {
	for _, e := range gr.inEdges[node] {
		if e.Weight != 0 {
			return e.Weight
		}
	}
	return 0
}

// compileTimeMillis is a convenience conversion used by callers building
// edge weights from compile-time durations.
func compileTimeMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// WeightFromDuration exposes compileTimeMillis for Builder callers.
func WeightFromDuration(d time.Duration) float64 { return compileTimeMillis(d) }
