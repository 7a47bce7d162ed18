package analyzers

import (
	"context"
	"sort"
	"time"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// TemplateAnalyzer aggregates template instantiation cost by full
// signature across every translation unit. Ported from
// original_source/sources/bha/analyzers/template_analyzer.cpp.
type TemplateAnalyzer struct{}

// Name identifies this pass.
func (TemplateAnalyzer) Name() string { return "template" }

type templateAccum struct {
	name  string
	total time.Duration
	count int
}

// Analyze implements Analyzer. Returns an empty result, not an error, if
// options.AnalyzeTemplates is false, matching the early-return in the
// reference implementation.
func (TemplateAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, _ heuristics.Config) (AnalysisResult, error) {
	if !opts.AnalyzeTemplates {
		return AnalysisResult{}, nil
	}

	bySignature := make(map[string]*templateAccum)
	var order []string

	for _, u := range bt.Units {
		for _, tmpl := range u.Templates {
			acc, ok := bySignature[tmpl.FullSignature]
			if !ok {
				acc = &templateAccum{name: tmpl.Name}
				bySignature[tmpl.FullSignature] = acc
				order = append(order, tmpl.FullSignature)
			}
			acc.total += tmpl.Time
			acc.count += tmpl.Count
		}
	}

	if len(order) == 0 {
		return AnalysisResult{}, nil
	}

	var totalTemplateTime time.Duration
	var totalInstantiations int
	for _, sig := range order {
		acc := bySignature[sig]
		totalTemplateTime += acc.total
		totalInstantiations += acc.count
	}

	templates := make([]TemplateInfo, 0, len(order))
	for _, sig := range order {
		acc := bySignature[sig]
		percent := 0.0
		if totalTemplateTime > 0 {
			percent = 100 * float64(acc.total) / float64(totalTemplateTime)
		}
		templates = append(templates, TemplateInfo{
			Name:               acc.name,
			FullSignature:      sig,
			TotalTime:          acc.total,
			InstantiationCount: acc.count,
			TimePercent:        percent,
		})
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].TotalTime != templates[j].TotalTime {
			return templates[i].TotalTime > templates[j].TotalTime
		}
		return templates[i].FullSignature < templates[j].FullSignature
	})

	templateTimePercent := 0.0
	buildTime := bt.EffectiveTotalTime()
	if buildTime > 0 {
		templateTimePercent = 100 * float64(totalTemplateTime) / float64(buildTime)
	}

	result := TemplateAnalysisResult{
		Templates:           templates,
		TotalInstantiations: totalInstantiations,
		TotalTemplateTime:   totalTemplateTime,
		TemplateTimePercent: templateTimePercent,
	}
	return AnalysisResult{Templates: result}, nil
}
