package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeIdempotent(t *testing.T) {
	g := New()
	g.AddNode("a.cpp")
	g.AddNode("a.cpp")
	assert.Equal(t, 1, g.NodeCount())
}

func TestAddEdgeCreatesEndpointsAndDedupes(t *testing.T) {
	g := New()
	g.AddEdge("a.cpp", "a.h", DirectInclude, 5)
	g.AddEdge("a.cpp", "a.h", DirectInclude, 5)
	g.AddEdge("a.cpp", "a.h", Transitive, 0)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount(), "distinct edge types between the same endpoints are distinct edges")
	assert.Equal(t, []string{"a.h"}, g.GetDependencies("a.cpp"))
}

func TestReverseDependenciesSymmetric(t *testing.T) {
	g := New()
	g.AddEdge("a.cpp", "a.h", DirectInclude, 1)
	g.AddEdge("b.cpp", "a.h", DirectInclude, 1)

	assert.ElementsMatch(t, []string{"a.cpp", "b.cpp"}, g.GetReverseDependencies("a.h"))
}

func buildChain(t *testing.T) *Graph {
	t.Helper()
	g := New()
	g.AddEdge("a.cpp", "b.h", DirectInclude, 10)
	g.AddEdge("b.h", "c.h", DirectInclude, 20)
	g.AddEdge("c.h", "d.h", DirectInclude, 30)
	return g
}

func TestTopologicalSortOrdersDependerBeforeDependency(t *testing.T) {
	g := buildChain(t)
	order, err := TopologicalSortChecked(g)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int)
	for i, n := range order {
		pos[n] = i
	}
	assert.Less(t, pos["a.cpp"], pos["b.h"])
	assert.Less(t, pos["b.h"], pos["c.h"])
	assert.Less(t, pos["c.h"], pos["d.h"])
}

func TestTopologicalSortCheckedFailsOnCycle(t *testing.T) {
	g := New()
	g.AddEdge("a.h", "b.h", DirectInclude, 1)
	g.AddEdge("b.h", "a.h", DirectInclude, 1)

	_, err := TopologicalSortChecked(g)
	assert.Error(t, err)
}

func TestFindCyclesReturnsWitness(t *testing.T) {
	g := New()
	g.AddEdge("a.h", "b.h", DirectInclude, 1)
	g.AddEdge("b.h", "c.h", DirectInclude, 1)
	g.AddEdge("c.h", "a.h", DirectInclude, 1)

	cycles := FindCycles(g)
	require.Len(t, cycles, 1)
	assert.Equal(t, cycles[0][0], cycles[0][len(cycles[0])-1], "cycle witness must close the loop")
	assert.True(t, HasCycle(g))
	assert.False(t, IsDAG(g))
}

func TestStronglyConnectedComponentsFiltersSingletons(t *testing.T) {
	g := New()
	g.AddEdge("a.h", "b.h", DirectInclude, 1)
	g.AddEdge("b.h", "a.h", DirectInclude, 1)
	g.AddNode("isolated.h")

	sccs := StronglyConnectedComponents(g)
	require.Len(t, sccs, 1)
	assert.ElementsMatch(t, []string{"a.h", "b.h"}, sccs[0])
}

func TestFindPathBFS(t *testing.T) {
	g := buildChain(t)
	path := FindPath(g, "a.cpp", "d.h")
	assert.Equal(t, []string{"a.cpp", "b.h", "c.h", "d.h"}, path)

	assert.Nil(t, FindPath(g, "d.h", "a.cpp"))
}

func TestFindLongestPathOnChain(t *testing.T) {
	g := buildChain(t)
	path := FindLongestPath(g)
	assert.Equal(t, []string{"a.cpp", "b.h", "c.h", "d.h"}, path)
}

func TestFindLongestPathNilOnCycle(t *testing.T) {
	g := New()
	g.AddEdge("a.h", "b.h", DirectInclude, 1)
	g.AddEdge("b.h", "a.h", DirectInclude, 1)
	assert.Nil(t, FindLongestPath(g))
}

func TestCalculateDepthMonotonicAlongChain(t *testing.T) {
	g := buildChain(t)
	assert.Equal(t, 0, CalculateDepth(g, "d.h"))
	assert.Equal(t, 1, CalculateDepth(g, "c.h"))
	assert.Equal(t, 2, CalculateDepth(g, "b.h"))
	assert.Equal(t, 3, CalculateDepth(g, "a.cpp"))
	assert.Equal(t, 3, CalculateMaxDepth(g))

	all := CalculateAllDepths(g)
	assert.Equal(t, 3, all["a.cpp"])
}

func TestCalculateDepthToleratesCycles(t *testing.T) {
	g := New()
	g.AddEdge("a.h", "b.h", DirectInclude, 1)
	g.AddEdge("b.h", "a.h", DirectInclude, 1)
	assert.NotPanics(t, func() { CalculateDepth(g, "a.h") })
}

func TestRootAndLeafNodes(t *testing.T) {
	g := buildChain(t)
	assert.Equal(t, []string{"a.cpp"}, GetRootNodes(g))
	assert.Equal(t, []string{"d.h"}, GetLeafNodes(g))
}

func TestFanoutFanin(t *testing.T) {
	g := New()
	g.AddEdge("a.cpp", "h.h", DirectInclude, 1)
	g.AddEdge("b.cpp", "h.h", DirectInclude, 1)

	fanin := CalculateFanin(g)
	assert.Equal(t, 2, fanin["h.h"])

	fanout := CalculateFanout(g)
	assert.Equal(t, 1, fanout["a.cpp"])
}

func TestTransitiveDependenciesAndDependents(t *testing.T) {
	g := buildChain(t)
	assert.ElementsMatch(t, []string{"b.h", "c.h", "d.h"}, GetTransitiveDependencies(g, "a.cpp"))
	assert.ElementsMatch(t, []string{"a.cpp", "b.h", "c.h"}, GetTransitiveDependents(g, "d.h"))
}

func TestDFSAndBFSVisitEveryReachableNode(t *testing.T) {
	g := buildChain(t)

	var dfsOrder []string
	DFS(g, "a.cpp", make(map[string]bool), func(n string) { dfsOrder = append(dfsOrder, n) })
	assert.Equal(t, []string{"a.cpp", "b.h", "c.h", "d.h"}, dfsOrder)

	levels := make(map[string]int)
	BFS(g, "a.cpp", func(n string, level int) { levels[n] = level })
	assert.Equal(t, 3, levels["d.h"])
}

func TestReverseGraphFlipsEdges(t *testing.T) {
	g := buildChain(t)
	rev := ReverseGraph(g)
	assert.Equal(t, []string{"a.cpp"}, rev.GetDependencies("b.h"))
	assert.Contains(t, rev.GetDependencies("d.h"), "c.h")
}

func TestSubgraphRetainsOnlyInducedEdges(t *testing.T) {
	g := buildChain(t)
	sub := Subgraph(g, []string{"a.cpp", "b.h", "d.h"})
	assert.Equal(t, 3, sub.NodeCount())
	assert.Empty(t, sub.GetDependencies("b.h"), "c.h is excluded so b.h->c.h must not survive")
	assert.Equal(t, []string{"b.h"}, sub.GetDependencies("a.cpp"))
}

func TestFindCriticalPathWeighted(t *testing.T) {
	g := New()
	g.AddEdge("a.cpp", "b.h", DirectInclude, 1)
	g.AddEdge("a.cpp", "c.h", DirectInclude, 1)
	g.AddEdge("b.h", "d.h", DirectInclude, 1)
	g.AddEdge("c.h", "d.h", DirectInclude, 1)

	weights := map[string]float64{
		"a.cpp": 10,
		"b.h":   5,
		"c.h":   50,
		"d.h":   20,
	}

	path := FindCriticalPath(g, weights)
	assert.Equal(t, []string{"a.cpp", "c.h", "d.h"}, path, "heavier chain through c.h must dominate")
}

func TestCountPathsOnDiamond(t *testing.T) {
	g := New()
	g.AddEdge("a.cpp", "b.h", DirectInclude, 1)
	g.AddEdge("a.cpp", "c.h", DirectInclude, 1)
	g.AddEdge("b.h", "d.h", DirectInclude, 1)
	g.AddEdge("c.h", "d.h", DirectInclude, 1)

	assert.Equal(t, 2, CountPaths(g, "a.cpp", "d.h"))
	assert.Equal(t, 1, CountPaths(g, "b.h", "d.h"))
	assert.Equal(t, 0, CountPaths(g, "d.h", "a.cpp"))
}
