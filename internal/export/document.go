package export

import (
	"time"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/graph"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// bhaVersion is the engine's own version string, stamped into every
// exported document's "bha_version" field.
const bhaVersion = "0.1.0"

// document is the intermediate, format-agnostic representation every
// exporter builds from once. It mirrors the stable JSON layout spec.md
// §4.5 documents field-for-field; the JSON exporter serializes it
// directly, and the HTML exporter embeds the same structure verbatim in
// its script tag, guaranteeing the two never drift apart.
type document struct {
	Schema        string            `json:"$schema"`
	SchemaVersion string            `json:"schema_version"`
	BHAVersion    string            `json:"bha_version"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Summary       summaryDoc        `json:"summary"`
	Files         []fileDoc         `json:"files"`
	Dependencies  *dependenciesDoc  `json:"dependencies,omitempty"`
	Templates     *templatesDoc     `json:"templates,omitempty"`
	Symbols       *symbolsDoc       `json:"symbols,omitempty"`
	Suggestions   []suggestionDoc   `json:"suggestions,omitempty"`
}

type summaryDoc struct {
	TotalFiles          int     `json:"total_files"`
	TotalCompileTimeMs  float64 `json:"total_compile_time_ms"`
	AnalysisDurationMs  float64 `json:"analysis_duration_ms"`
	SuggestionsCount    int     `json:"suggestions_count"`
}

type fileDoc struct {
	Path         string  `json:"path"`
	TotalTimeMs  float64 `json:"total_time_ms"`
	FrontendMs   float64 `json:"frontend_time_ms"`
	BackendMs    float64 `json:"backend_time_ms"`
	LinesOfCode  int     `json:"lines_of_code"`
	IncludeCount int     `json:"include_count"`
}

type dependenciesDoc struct {
	TotalIncludes       int         `json:"total_includes"`
	UniqueHeaders       int         `json:"unique_headers"`
	MaxDepth            int         `json:"max_depth"`
	CircularDependenciesCount int   `json:"circular_dependencies_count"`
	Headers             []headerDoc `json:"headers"`
	Graph               *graphDoc   `json:"graph,omitempty"`
}

type headerDoc struct {
	Path           string   `json:"path"`
	InclusionCount int      `json:"inclusion_count"`
	IncludingFiles int      `json:"including_files"`
	ParseTimeMs    float64  `json:"parse_time_ms"`
	ImpactScore    float64  `json:"impact_score"`
	IncludedBy     []string `json:"included_by"`
}

type graphNodeDoc struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type graphLinkDoc struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type graphDoc struct {
	Nodes []graphNodeDoc `json:"nodes"`
	Links []graphLinkDoc `json:"links"`
}

type templatesDoc struct {
	TotalInstantiations int           `json:"total_instantiations"`
	TotalTimeMs         float64       `json:"total_time_ms"`
	Templates           []templateDoc `json:"templates"`
}

type templateDoc struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	TimeMs      float64 `json:"time_ms"`
	TimePercent float64 `json:"time_percent"`
}

type symbolsDoc struct {
	TotalSymbols  int         `json:"total_symbols"`
	UnusedSymbols int         `json:"unused_symbols"`
	Symbols       []symbolDoc `json:"symbols"`
}

type symbolDoc struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	DefinedIn  string `json:"defined_in"`
	UsageCount int    `json:"usage_count"`
}

type suggestionDoc struct {
	Type               string  `json:"type"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	TargetFile         string  `json:"target_file"`
	TargetLine         int     `json:"target_line"`
	Confidence         float64 `json:"confidence"`
	Priority           string  `json:"priority"`
	EstimatedSavingsMs float64 `json:"estimated_savings_ms"`
	AutoApplicable     bool    `json:"auto_applicable"`
	BeforeCode         string  `json:"before_code,omitempty"`
	AfterCode          string  `json:"after_code,omitempty"`
}

// buildDocument assembles the shared intermediate representation,
// applying every ExportOptions include_*/min_*/max_* filter exactly
// once so JSON, HTML and (selectively) the other formats stay
// consistent with each other.
func buildDocument(result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, analysisDuration time.Duration, generatedAt time.Time) document {
	doc := document{
		SchemaVersion: opts.JSONSchemaVersion,
		BHAVersion:    bhaVersion,
		GeneratedAt:   generatedAt,
		Summary: summaryDoc{
			TotalFiles:         result.Files.TotalFiles,
			TotalCompileTimeMs: msOf(result.Performance.TotalBuildTime),
			AnalysisDurationMs: msOf(analysisDuration),
			SuggestionsCount:   0,
		},
	}
	doc.Schema = "https://bha.dev/schemas/analysis-v" + doc.SchemaVersion + ".json"

	if opts.IncludeFileDetails {
		for _, f := range filteredFiles(result, opts) {
			doc.Files = append(doc.Files, fileDoc{
				Path:         f.Path,
				TotalTimeMs:  msOf(f.CompileTime),
				FrontendMs:   msOf(f.FrontendTime),
				BackendMs:    msOf(f.BackendTime),
				LinesOfCode:  f.LinesOfCode,
				IncludeCount: f.IncludeCount,
			})
		}
	}

	if opts.IncludeDependencies {
		doc.Dependencies = buildDependenciesDoc(result)
	}

	if opts.IncludeTemplates && !result.Templates.IsEmpty() {
		td := &templatesDoc{
			TotalInstantiations: result.Templates.TotalInstantiations,
			TotalTimeMs:         msOf(result.Templates.TotalTemplateTime),
		}
		for _, t := range result.Templates.Templates {
			td.Templates = append(td.Templates, templateDoc{
				Name:        t.Name,
				Type:        "template",
				Count:       t.InstantiationCount,
				TimeMs:      msOf(t.TotalTime),
				TimePercent: t.TimePercent,
			})
		}
		doc.Templates = td
	}

	if opts.IncludeSymbols && !result.Symbols.IsEmpty() {
		sd := &symbolsDoc{
			TotalSymbols:  len(result.Symbols.Symbols),
			UnusedSymbols: result.Symbols.UnusedSymbols,
		}
		for _, s := range result.Symbols.Symbols {
			definedIn := ""
			if len(s.DefinitionFiles) > 0 {
				definedIn = s.DefinitionFiles[0]
			}
			sd.Symbols = append(sd.Symbols, symbolDoc{
				Name:       s.Name,
				Type:       s.Kind,
				DefinedIn:  definedIn,
				UsageCount: s.UsageCount,
			})
		}
		doc.Symbols = sd
	}

	if opts.IncludeSuggestions {
		for _, s := range filteredSuggestions(sugg, opts) {
			sd := suggestionDoc{
				Type:               s.Type.String(),
				Title:              s.Title,
				Description:        s.Description,
				Confidence:         s.Impact.Confidence,
				Priority:           s.Priority.String(),
				EstimatedSavingsMs: msOf(s.Impact.EstimatedTimeSavings),
				AutoApplicable:     s.Safe,
			}
			if len(s.Targets) > 0 {
				sd.TargetFile = s.Targets[0].Path
				sd.TargetLine = s.Targets[0].Line
			}
			if s.Example != nil {
				sd.BeforeCode = s.Example.Before
				sd.AfterCode = s.Example.After
			}
			doc.Suggestions = append(doc.Suggestions, sd)
		}
		doc.Summary.SuggestionsCount = len(doc.Suggestions)
	}

	return doc
}

func buildDependenciesDoc(result analyzers.AnalysisResult) *dependenciesDoc {
	dd := &dependenciesDoc{
		TotalIncludes:   result.Dependencies.TotalIncludes,
		UniqueHeaders:   result.Dependencies.UniqueHeaders,
		MaxDepth:        result.Dependencies.MaxIncludeDepth,
	}

	headerSet := make(map[string]bool, len(result.Dependencies.Headers))
	for _, h := range result.Dependencies.Headers {
		headerSet[h.Path] = true
		dd.Headers = append(dd.Headers, headerDoc{
			Path:           h.Path,
			InclusionCount: h.InclusionCount,
			IncludingFiles: len(h.IncludingFiles),
			ParseTimeMs:    msOf(h.TotalParseTime),
			ImpactScore:    h.ImpactScore,
			IncludedBy:     append([]string{}, h.IncludingFiles...),
		})
	}

	if result.Dependencies.Graph != nil {
		g := result.Dependencies.Graph
		dd.CircularDependenciesCount = len(graph.FindCycles(g))
		gd := &graphDoc{}
		for _, n := range g.GetAllNodes() {
			typ := "source"
			if headerSet[n] {
				typ = "header"
			}
			gd.Nodes = append(gd.Nodes, graphNodeDoc{ID: n, Type: typ})
		}
		for _, n := range g.GetAllNodes() {
			for _, e := range g.GetEdges(n) {
				gd.Links = append(gd.Links, graphLinkDoc{Source: e.Source, Target: e.Target, Type: e.Type.String()})
			}
		}
		dd.Graph = gd
	}

	return dd
}
