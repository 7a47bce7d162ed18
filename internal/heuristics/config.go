// Package heuristics holds the named, research-backed threshold bundles
// that the suggestion generators read. Two cut-offs are fixed in generator
// code rather than read from here: ModuleMigrationGenerator's minimum
// PCH score of 1.0 and MoveToCppGenerator's limit of one use.
//
// Defaults mirror original_source/headers/bha/heuristics/config.hpp
// byte-exactly:
//   - ClangBuildAnalyzer (https://github.com/aras-p/ClangBuildAnalyzer)
//   - Microsoft C++ Build Insights (https://github.com/microsoft/cpp-build-insights-samples)
//   - Chromium Jumbo Builds (https://chromium.googlesource.com/chromium/src.git/+/65.0.3283.0/docs/jumbo.md)
package heuristics

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AnalysisConfig bounds how many items of each kind are reported.
//
// Reference: ClangBuildAnalyzer Config struct.
type AnalysisConfig struct {
	MaxFilesToReport    int           `yaml:"max_files_to_report" json:"max_files_to_report"`
	MaxTemplatesToReport int          `yaml:"max_templates_to_report" json:"max_templates_to_report"`
	MaxHeadersToReport  int           `yaml:"max_headers_to_report" json:"max_headers_to_report"`
	MaxHeaderChainDepth int           `yaml:"max_header_chain_depth" json:"max_header_chain_depth"`
	MinFileTime         time.Duration `yaml:"min_file_time" json:"min_file_time"`
	MaxNameLength       int           `yaml:"max_name_length" json:"max_name_length"`
}

// PCHPriorityThresholds classifies PCH candidates into priority tiers.
type PCHPriorityThresholds struct {
	CriticalIncludes  int     `yaml:"critical_includes" json:"critical_includes"`
	HighIncludes      int     `yaml:"high_includes" json:"high_includes"`
	CriticalTimeRatio float64 `yaml:"critical_time_ratio" json:"critical_time_ratio"`
	HighTimeRatio     float64 `yaml:"high_time_ratio" json:"high_time_ratio"`
}

// PCHConfig bounds precompiled-header suggestion thresholds.
type PCHConfig struct {
	MinIncludeCount int                   `yaml:"min_include_count" json:"min_include_count"`
	MinAggregateTime time.Duration        `yaml:"min_aggregate_time" json:"min_aggregate_time"`
	Priority        PCHPriorityThresholds `yaml:"priority" json:"priority"`
}

// TemplateConfig bounds template-optimization thresholds.
type TemplateConfig struct {
	MinInstantiationCount int           `yaml:"min_instantiation_count" json:"min_instantiation_count"`
	MinTotalTime          time.Duration `yaml:"min_total_time" json:"min_total_time"`
	HighPriorityPercent   float64       `yaml:"high_priority_percent" json:"high_priority_percent"`
	RecursiveDepthWarning int           `yaml:"recursive_depth_warning" json:"recursive_depth_warning"`
}

// CodeGenConfig bounds function-codegen thresholds.
type CodeGenConfig struct {
	LongCodegenThreshold  time.Duration `yaml:"long_codegen_threshold" json:"long_codegen_threshold"`
	InlineWarningThreshold time.Duration `yaml:"inline_warning_threshold" json:"inline_warning_threshold"`
}

// HeaderTimeThresholds classifies header parse time into priority tiers.
type HeaderTimeThresholds struct {
	Critical time.Duration `yaml:"critical" json:"critical"`
	High     time.Duration `yaml:"high" json:"high"`
	Medium   time.Duration `yaml:"medium" json:"medium"`
	Low      time.Duration `yaml:"low" json:"low"`
}

// HeaderConfig bounds header-analysis thresholds.
type HeaderConfig struct {
	MinParseTime         time.Duration        `yaml:"min_parse_time" json:"min_parse_time"`
	MinIncludersForSplit int                  `yaml:"min_includers_for_split" json:"min_includers_for_split"`
	Time                 HeaderTimeThresholds `yaml:"time" json:"time"`
}

// UnityBuildConfig bounds unity/jumbo-build feasibility thresholds.
//
// Reference: Chromium Jumbo Builds.
type UnityBuildConfig struct {
	FilesPerUnit        int     `yaml:"files_per_unit" json:"files_per_unit"`
	MinFilesThreshold   int     `yaml:"min_files_threshold" json:"min_files_threshold"`
	HeaderParsingRatio  float64 `yaml:"header_parsing_ratio" json:"header_parsing_ratio"`
}

// ForwardDeclConfig bounds forward-declaration suggestion thresholds.
type ForwardDeclConfig struct {
	MinParseTime  time.Duration `yaml:"min_parse_time" json:"min_parse_time"`
	MinUsageSites int           `yaml:"min_usage_sites" json:"min_usage_sites"`
}

// Config is the full heuristics bundle passed to the suggestion engine.
type Config struct {
	Analysis     AnalysisConfig     `yaml:"analysis" json:"analysis"`
	PCH          PCHConfig          `yaml:"pch" json:"pch"`
	Templates    TemplateConfig     `yaml:"templates" json:"templates"`
	CodeGen      CodeGenConfig      `yaml:"codegen" json:"codegen"`
	Headers      HeaderConfig       `yaml:"headers" json:"headers"`
	UnityBuild   UnityBuildConfig   `yaml:"unity_build" json:"unity_build"`
	ForwardDecl  ForwardDeclConfig  `yaml:"forward_decl" json:"forward_decl"`
}

// Defaults returns the research-backed reference configuration. Per
// spec.md §9 Open Question 3, these scaling constants are a
// compatibility surface: do not change them without a schema-breaking
// revision.
func Defaults() Config {
	return Config{
		Analysis: AnalysisConfig{
			MaxFilesToReport:     10,
			MaxTemplatesToReport: 30,
			MaxHeadersToReport:   10,
			MaxHeaderChainDepth:  5,
			MinFileTime:          10 * time.Millisecond,
			MaxNameLength:        70,
		},
		PCH: PCHConfig{
			MinIncludeCount:  10,
			MinAggregateTime: 500 * time.Millisecond,
			Priority: PCHPriorityThresholds{
				CriticalIncludes:  50,
				HighIncludes:      20,
				CriticalTimeRatio: 0.05,
				HighTimeRatio:     0.02,
			},
		},
		Templates: TemplateConfig{
			MinInstantiationCount: 5,
			MinTotalTime:          100 * time.Millisecond,
			HighPriorityPercent:   10.0,
			RecursiveDepthWarning: 10,
		},
		CodeGen: CodeGenConfig{
			LongCodegenThreshold:   500 * time.Millisecond,
			InlineWarningThreshold: 100 * time.Millisecond,
		},
		Headers: HeaderConfig{
			MinParseTime:         100 * time.Millisecond,
			MinIncludersForSplit: 5,
			Time: HeaderTimeThresholds{
				Critical: 2000 * time.Millisecond,
				High:     1000 * time.Millisecond,
				Medium:   500 * time.Millisecond,
				Low:      100 * time.Millisecond,
			},
		},
		UnityBuild: UnityBuildConfig{
			FilesPerUnit:       50,
			MinFilesThreshold:  10,
			HeaderParsingRatio: 0.45,
		},
		ForwardDecl: ForwardDeclConfig{
			MinParseTime:  50 * time.Millisecond,
			MinUsageSites: 3,
		},
	}
}

// Load reads a YAML tuning file and overlays it onto Defaults(). The
// overlaid values are returned as parsed; Load does not validate them.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read heuristics config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse heuristics config %s: %w", path, err)
	}
	return cfg, nil
}
