package analyzers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

func TestClassifySymbolType(t *testing.T) {
	cases := map[string]string{
		"class Widget":                 "type",
		"Widget::Widget()":             "constructor",
		"Widget::~Widget()":            "destructor",
		"Widget::operator==()":         "operator",
		"Widget::draw()":               "method",
		"Widget::count":                "member",
		"computeChecksum()":            "function",
		"MAX_RETRIES":                  "macro_or_constant",
		"globalCounter":                "variable",
		"Stack<int>":                   "template_class",
		"process<int>()":               "template_function",
	}
	for sig, want := range cases {
		assert.Equal(t, want, classifySymbolType(sig), sig)
	}
}

func TestInferLinkage(t *testing.T) {
	assert.Equal(t, LinkageTemplate, inferLinkage("Stack<int>", "template_class"))
	assert.Equal(t, LinkageInline, inferLinkage("inline int helper()", "function"))
	assert.Equal(t, LinkageInternal, inferLinkage("static int counter", "variable"))
	assert.Equal(t, LinkageExternal, inferLinkage("int publicApi()", "function"))
}

func TestDetectODRViolation(t *testing.T) {
	assert.False(t, detectODRViolation(LinkageInternal, []string{"a", "b"}))
	assert.True(t, detectODRViolation(LinkageExternal, []string{"a", "b"}))
	assert.False(t, detectODRViolation(LinkageExternal, []string{"a"}))
	assert.False(t, detectODRViolation(LinkageInline, []string{"a", "b", "c"}))
	assert.True(t, detectODRViolation(LinkageInline, []string{"a", "b", "c", "d"}))
}

func TestSymbolAnalyzerThreePassUsageCredit(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{
				SourceFile:     "widget.h",
				SymbolsDefined: []string{"int computeArea()"},
			},
			{
				SourceFile: "main.cpp",
				Includes:   []trace.IncludeInfo{{Header: "widget.h"}},
			},
		},
	}

	res, err := SymbolAnalyzer{}.Analyze(context.Background(), bt, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)
	require.Len(t, res.Symbols.Symbols, 1)
	assert.Equal(t, 1, res.Symbols.Symbols[0].UsageCount, "a plain symbol's defining unit is not itself a user; only an includer credits usage")
}

func TestSymbolAnalyzerPlainSymbolWithNoIncluderIsUnused(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{
				SourceFile:     "widget.cpp",
				SymbolsDefined: []string{"int computeArea()"},
			},
		},
	}

	res, err := SymbolAnalyzer{}.Analyze(context.Background(), bt, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)
	require.Len(t, res.Symbols.Symbols, 1)
	assert.Equal(t, 0, res.Symbols.Symbols[0].UsageCount)
	assert.Equal(t, 1, res.Symbols.UnusedSymbols)
}

func TestSymbolAnalyzerTemplateInstantiationCreditsDefiningUnit(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{
				SourceFile: "main.cpp",
				Templates: []trace.TemplateInstantiation{
					{Name: "vector", FullSignature: "std::vector<int>", Count: 1},
				},
			},
		},
	}

	res, err := SymbolAnalyzer{}.Analyze(context.Background(), bt, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)
	require.Len(t, res.Symbols.Symbols, 1)
	assert.Equal(t, 1, res.Symbols.Symbols[0].UsageCount, "a template instantiation credits its own unit as a user")
}

func TestSymbolAnalyzerSkippedWhenDisabled(t *testing.T) {
	opts := trace.DefaultAnalysisOptions()
	opts.AnalyzeSymbols = false
	bt := trace.BuildTrace{Units: []trace.CompilationUnit{{SourceFile: "a.cpp", SymbolsDefined: []string{"foo()"}}}}

	res, err := SymbolAnalyzer{}.Analyze(context.Background(), bt, opts, heuristics.Defaults())
	require.NoError(t, err)
	assert.True(t, res.Symbols.IsEmpty())
}
