package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yenhunghuang/bha/internal/trace"
)

func TestBuildFromTraceAddsDirectIncludeEdges(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{
				SourceFile: "src/a.cpp",
				Includes: []trace.IncludeInfo{
					{Header: "include/a.h", ParseTime: 2 * time.Millisecond},
					{Header: "include/b.h", ParseTime: 4 * time.Millisecond},
				},
			},
		},
	}

	g := NewBuilder().BuildFromTrace(bt)
	assert.ElementsMatch(t, []string{"src/a.cpp", "include/a.h", "include/b.h"}, g.GetAllNodes())

	deps := g.GetDependencies("src/a.cpp")
	assert.ElementsMatch(t, []string{"include/a.h", "include/b.h"}, deps)

	for _, e := range g.GetEdges("src/a.cpp") {
		assert.Equal(t, DirectInclude, e.Type)
		assert.Greater(t, e.Weight, 0.0)
	}
}

func TestMaterializeTransitiveClosureAddsIndirectEdges(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{SourceFile: "a.cpp", Includes: []trace.IncludeInfo{{Header: "b.h"}}},
		},
	}
	g := NewBuilder().BuildFromTrace(bt)
	g.AddEdge("b.h", "c.h", DirectInclude, 1)

	MaterializeTransitiveClosure(g)

	found := false
	for _, e := range g.GetEdges("a.cpp") {
		if e.Target == "c.h" && e.Type == Transitive {
			found = true
		}
	}
	assert.True(t, found, "a.cpp reaches c.h only through b.h, so closure must add a TRANSITIVE edge")

	for _, e := range g.GetEdges("a.cpp") {
		if e.Target == "b.h" {
			assert.Equal(t, DirectInclude, e.Type, "existing direct edge must not be duplicated as transitive")
		}
	}
}
