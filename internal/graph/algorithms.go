package graph

import (
	"math"

	"github.com/yenhunghuang/bha/internal/bhaerr"
	"gonum.org/v1/gonum/graph/topo"
)

// TopologicalSort returns a node order consistent with edge direction:
// for every edge u -> v, u precedes v. If the graph has a cycle the
// returned slice is shorter than NodeCount() (spec.md §4.2). Delegates to
// gonum.org/v1/gonum/graph/topo.Sort, which orders nodes the same way:
// edges point from earlier nodes to later ones.
func TopologicalSort(g *Graph) []string {
	order, err := topo.Sort(g.g)
	out := make([]string, 0, len(order))
	for _, n := range order {
		if n == nil {
			continue // gonum pads cyclic components with nils; skip them
		}
		out = append(out, g.nodeOf[n.ID()])
	}
	_ = err // err is non-nil exactly when a cycle exists; caller checks length
	return out
}

// TopologicalSortChecked is TopologicalSort but fails with a
// CIRCULAR_DEPENDENCY-flavored AnalysisError if the graph is not a DAG.
func TopologicalSortChecked(g *Graph) ([]string, error) {
	order := TopologicalSort(g)
	if len(order) != g.NodeCount() {
		return nil, bhaerr.NewAnalysisError("graph contains cycles, topological sort not possible").WithContext("CIRCULAR_DEPENDENCY")
	}
	return order, nil
}

// FindCycles enumerates simple cycles via DFS with a recursion stack.
// Each cycle is emitted once as [v1, v2, ..., vk, v1]; ordering of
// cycles, and each cycle's representative rotation, follow discovery
// order. Ported directly from
// original_source/sources/bha/graph/graph_algorithms.cpp's dfs_cycle.
func FindCycles(g *Graph) [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	var path []string

	var dfsCycle func(node string)
	dfsCycle = func(node string) {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		for _, dep := range g.GetDependencies(node) {
			if recStack[dep] {
				idx := -1
				for i, p := range path {
					if p == dep {
						idx = i
						break
					}
				}
				if idx >= 0 {
					cycle := append([]string{}, path[idx:]...)
					cycle = append(cycle, dep)
					cycles = append(cycles, cycle)
				}
			} else if !visited[dep] {
				dfsCycle(dep)
			}
		}

		recStack[node] = false
		path = path[:len(path)-1]
	}

	for _, node := range g.GetAllNodes() {
		if !visited[node] {
			dfsCycle(node)
		}
	}
	return cycles
}

// HasCycle reports whether the graph has any cycle.
func HasCycle(g *Graph) bool {
	return len(FindCycles(g)) > 0
}

// IsDAG reports whether the graph is acyclic.
func IsDAG(g *Graph) bool { return !HasCycle(g) }

// StronglyConnectedComponents returns components of size >= 2, via
// gonum's Tarjan implementation (singletons without self-loops are not
// SCCs of interest per spec.md §4.2).
func StronglyConnectedComponents(g *Graph) [][]string {
	sccs := topo.TarjanSCC(g.g)
	var out [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		comp := make([]string, 0, len(scc))
		for _, n := range scc {
			comp = append(comp, g.nodeOf[n.ID()])
		}
		out = append(out, comp)
	}
	return out
}

// FindPath returns a shortest edge path from start to end by BFS, or nil
// if no path exists.
func FindPath(g *Graph, start, end string) []string {
	if !g.HasNode(start) || !g.HasNode(end) {
		return nil
	}

	parent := make(map[string]string)
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == end {
			var path []string
			for cur := end; cur != start; cur = parent[cur] {
				path = append(path, cur)
			}
			path = append(path, start)
			reverse(path)
			return path
		}

		for _, dep := range g.GetDependencies(node) {
			if !visited[dep] {
				visited[dep] = true
				parent[dep] = node
				queue = append(queue, dep)
			}
		}
	}
	return nil
}

// FindLongestPath returns one of the longest acyclic paths in the graph,
// by DP over topological order. Returns nil if the graph is cyclic.
func FindLongestPath(g *Graph) []string {
	sorted := TopologicalSort(g)
	if len(sorted) != g.NodeCount() {
		return nil
	}

	dist := make(map[string]int)
	parent := make(map[string]string)
	for _, n := range sorted {
		dist[n] = 0
	}

	for _, n := range sorted {
		for _, dep := range g.GetDependencies(n) {
			if dist[dep] < dist[n]+1 {
				dist[dep] = dist[n] + 1
				parent[dep] = n
			}
		}
	}

	longest := ""
	maxDist := -1
	for _, n := range sorted { // deterministic iteration
		if dist[n] > maxDist {
			maxDist = dist[n]
			longest = n
		}
	}

	var path []string
	for cur := longest; cur != ""; {
		path = append(path, cur)
		next, ok := parent[cur]
		if !ok {
			break
		}
		cur = next
	}
	reverse(path)
	return path
}

// CalculateDepth computes the length of the longest outgoing chain from
// node (leaves have depth 0), via memoized DFS. The memo guard makes this
// terminate and return a bounded (if unspecified) result even on cycles,
// per spec.md §4.2 and §9's "Cycles vs. DAGs" note. Returns -1 if node is
// unknown.
func CalculateDepth(g *Graph, node string) int {
	if !g.HasNode(node) {
		return -1
	}
	memo := make(map[string]int)
	inProgress := make(map[string]bool)

	var helper func(n string) int
	helper = func(n string) int {
		if d, ok := memo[n]; ok {
			return d
		}
		if inProgress[n] {
			// Cycle guard: break recursion, treat as a leaf from here.
			return 0
		}
		inProgress[n] = true
		deps := g.GetDependencies(n)
		maxDepth := 0
		for _, dep := range deps {
			if d := helper(dep) + 1; d > maxDepth {
				maxDepth = d
			}
		}
		inProgress[n] = false
		memo[n] = maxDepth
		return maxDepth
	}

	return helper(node)
}

// CalculateMaxDepth returns the largest depth among all nodes.
func CalculateMaxDepth(g *Graph) int {
	maxDepth := 0
	for _, n := range g.GetAllNodes() {
		if d := CalculateDepth(g, n); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// CalculateAllDepths computes depths for every node.
func CalculateAllDepths(g *Graph) map[string]int {
	out := make(map[string]int)
	for _, n := range g.GetAllNodes() {
		out[n] = CalculateDepth(g, n)
	}
	return out
}

// GetRootNodes returns nodes with no incoming edges.
func GetRootNodes(g *Graph) []string {
	var roots []string
	for _, n := range g.GetAllNodes() {
		if len(g.GetReverseDependencies(n)) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// GetLeafNodes returns nodes with no outgoing edges.
func GetLeafNodes(g *Graph) []string {
	var leaves []string
	for _, n := range g.GetAllNodes() {
		if len(g.GetDependencies(n)) == 0 {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// CalculateFanout returns the outgoing-edge count for every node.
func CalculateFanout(g *Graph) map[string]int {
	out := make(map[string]int)
	for _, n := range g.GetAllNodes() {
		out[n] = len(g.GetDependencies(n))
	}
	return out
}

// CalculateFanin returns the incoming-edge count for every node.
func CalculateFanin(g *Graph) map[string]int {
	out := make(map[string]int)
	for _, n := range g.GetAllNodes() {
		out[n] = len(g.GetReverseDependencies(n))
	}
	return out
}

// GetTransitiveDependencies returns every node reachable (directly or
// indirectly) from node, excluding node itself.
func GetTransitiveDependencies(g *Graph, node string) []string {
	var out []string
	visited := make(map[string]bool)
	DFS(g, node, visited, func(n string) {
		if n != node {
			out = append(out, n)
		}
	})
	return out
}

// GetTransitiveDependents returns every node that depends (directly or
// indirectly) on node.
func GetTransitiveDependents(g *Graph, node string) []string {
	reversed := ReverseGraph(g)
	return GetTransitiveDependencies(reversed, node)
}

// DFS performs an iterative depth-first traversal from node, visiting
// children in insertion order (matching the recursive reference
// semantics by pushing dependencies onto an explicit stack in reverse).
func DFS(g *Graph, node string, visited map[string]bool, callback func(string)) {
	stack := []string{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur] {
			continue
		}
		visited[cur] = true
		callback(cur)

		deps := g.GetDependencies(cur)
		for i := len(deps) - 1; i >= 0; i-- {
			if !visited[deps[i]] {
				stack = append(stack, deps[i])
			}
		}
	}
}

// BFS performs a breadth-first traversal from start, calling callback
// with each node and its distance (level) from start.
func BFS(g *Graph, start string, callback func(node string, level int)) {
	type item struct {
		node  string
		level int
	}
	visited := map[string]bool{start: true}
	queue := []item{{start, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		callback(cur.node, cur.level)

		for _, dep := range g.GetDependencies(cur.node) {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, item{dep, cur.level + 1})
			}
		}
	}
}

// ReverseGraph returns a new graph with every edge's direction flipped.
func ReverseGraph(g *Graph) *Graph {
	reversed := New()
	for _, n := range g.GetAllNodes() {
		reversed.AddNode(n)
	}
	for _, n := range g.GetAllNodes() {
		for _, e := range g.GetEdges(n) {
			reversed.AddEdge(e.Target, e.Source, e.Type, e.Weight)
		}
	}
	return reversed
}

// Subgraph extracts the induced subgraph over nodes, retaining only
// edges whose endpoints are both in the selection.
func Subgraph(g *Graph, nodes []string) *Graph {
	sub := New()
	nodeSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = true
	}

	for _, n := range nodes {
		if g.HasNode(n) {
			sub.AddNode(n)
		}
	}
	for _, n := range nodes {
		if !g.HasNode(n) {
			continue
		}
		for _, e := range g.GetEdges(n) {
			if nodeSet[e.Target] {
				sub.AddEdge(e.Source, e.Target, e.Type, e.Weight)
			}
		}
	}
	return sub
}

// FindCriticalPath finds the heaviest dependency chain through the
// graph, weighted by nodeWeights (e.g. compile times). dist[v] =
// weight(v) + max_{u in preds} dist[u]; ties break on first node
// encountered in topological order. Missing weights default to 0.
// Returns nil if the graph is cyclic.
func FindCriticalPath(g *Graph, nodeWeights map[string]float64) []string {
	sorted := TopologicalSort(g)
	if len(sorted) != g.NodeCount() {
		return nil
	}

	dist := make(map[string]float64)
	parent := make(map[string]string)
	for _, n := range sorted {
		dist[n] = nodeWeights[n]
	}

	for _, n := range sorted {
		for _, dep := range g.GetDependencies(n) {
			newDist := dist[n] + nodeWeights[dep]
			if newDist > dist[dep] {
				dist[dep] = newDist
				parent[dep] = n
			}
		}
	}

	longest := ""
	maxDist := math.Inf(-1)
	for _, n := range sorted {
		if dist[n] > maxDist {
			maxDist = dist[n]
			longest = n
		}
	}

	var path []string
	for cur := longest; cur != ""; {
		path = append(path, cur)
		next, ok := parent[cur]
		if !ok {
			break
		}
		cur = next
	}
	reverse(path)
	return path
}

// CountPaths counts the distinct simple paths from start to end via
// memoized DFS.
func CountPaths(g *Graph, start, end string) int {
	if !g.HasNode(start) || !g.HasNode(end) {
		return 0
	}

	memo := make(map[string]int)
	var helper func(node string) int
	helper = func(node string) int {
		if node == end {
			return 1
		}
		if c, ok := memo[node]; ok {
			return c
		}
		count := 0
		for _, dep := range g.GetDependencies(node) {
			count += helper(dep)
		}
		memo[node] = count
		return count
	}

	return helper(start)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

