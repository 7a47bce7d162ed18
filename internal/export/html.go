package export

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"io"
	"time"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// HTMLExporter produces a single self-contained document embedding the
// full JSON payload in a script tag plus a fixed dashboard shell, per
// spec.md §4.5: "Bit-exact HTML is not required, but the embedded JSON
// is." The embedded payload is the exact same document type the JSON
// exporter serializes, so external tooling can always rely on it.
type HTMLExporter struct{}

// NewHTMLExporter constructs an HTMLExporter.
func NewHTMLExporter() *HTMLExporter { return &HTMLExporter{} }

// Format implements Exporter.
func (HTMLExporter) Format() Format { return HTML }

// Metadata implements Exporter.
func (HTMLExporter) Metadata() Metadata {
	return Metadata{Name: "html", Version: bhaVersion, SupportedFormats: []Format{HTML}}
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en" data-theme="{{if .DarkMode}}dark{{else}}light{{end}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: {{if .DarkMode}}#1b1b1f{{else}}#fafafa{{end}}; color: {{if .DarkMode}}#eee{{else}}#111{{end}}; }
header { padding: 1.5rem 2rem; border-bottom: 1px solid #8883; }
nav { display: flex; gap: 1rem; padding: 0 2rem; border-bottom: 1px solid #8883; }
nav button { background: none; border: none; padding: 0.75rem 0; font-size: 1rem; cursor: pointer; color: inherit; opacity: 0.6; }
nav button.active { opacity: 1; border-bottom: 2px solid currentColor; }
main { padding: 2rem; }
.tab { display: none; }
.tab.active { display: block; }
</style>
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<nav id="tabs">
  <button data-tab="files" class="active">Files</button>
  <button data-tab="includes">Include Tree</button>
  <button data-tab="timeline">Timeline</button>
  <button data-tab="treemap">Treemap</button>
  <button data-tab="templates">Templates</button>
  <button data-tab="suggestions">Suggestions</button>
  <button data-tab="dependencies">Dependencies</button>
</nav>
<main>
  <section id="files" class="tab active"></section>
  <section id="includes" class="tab"></section>
  <section id="timeline" class="tab"></section>
  <section id="treemap" class="tab"></section>
  <section id="templates" class="tab"></section>
  <section id="suggestions" class="tab"></section>
  <section id="dependencies" class="tab"></section>
</main>
<script id="bha-data" type="application/json">{{.JSONPayload}}</script>
<script>
(function() {
  var data = JSON.parse(document.getElementById('bha-data').textContent);
  var interactive = {{.Interactive}};
  var tabs = document.querySelectorAll('#tabs button');
  tabs.forEach(function(btn) {
    btn.addEventListener('click', function() {
      if (!interactive) return;
      tabs.forEach(function(b) { b.classList.remove('active'); });
      document.querySelectorAll('.tab').forEach(function(s) { s.classList.remove('active'); });
      btn.classList.add('active');
      document.getElementById(btn.dataset.tab).classList.add('active');
    });
  });
  var filesSection = document.getElementById('files');
  var rows = data.files.map(function(f) {
    return '<tr><td>' + f.path + '</td><td>' + f.total_time_ms.toFixed(1) + '</td></tr>';
  }).join('');
  filesSection.innerHTML = '<table><thead><tr><th>File</th><th>Total (ms)</th></tr></thead><tbody>' + rows + '</tbody></table>';

  var suggestionsSection = document.getElementById('suggestions');
  suggestionsSection.innerHTML = (data.suggestions || []).map(function(s) {
    return '<h3>' + s.title + '</h3><p>' + s.description + '</p>';
  }).join('');
})();
</script>
</body>
</html>
`))

type dashboardData struct {
	Title       string
	DarkMode    bool
	Interactive bool
	JSONPayload template.JS
}

// ExportToString implements Exporter.
func (e HTMLExporter) ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToStream(ctx, &buf, result, sugg, opts, progress); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToStream implements Exporter.
func (HTMLExporter) ExportToStream(_ context.Context, w io.Writer, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error {
	if progress == nil {
		progress = noopProgress
	}
	if opts.JSONSchemaVersion == "" {
		opts.JSONSchemaVersion = "1.0.0"
	}
	title := opts.HTMLTitle
	if title == "" {
		title = "Build Hotspot Analysis"
	}

	progress(0, 3, "build_document")
	doc := buildDocument(result, sugg, opts, 0, time.Now().UTC())

	progress(1, 3, "marshal")
	payload, err := json.Marshal(doc)
	if err != nil {
		return bhaerr.Newf(bhaerr.IoError, "marshal embedded json: %v", err)
	}

	progress(2, 3, "render")
	// HTMLOffline is a no-op here: the dashboard never references an
	// external resource (no CDN script/stylesheet), so it is always
	// offline-renderable regardless of the flag's value.
	data := dashboardData{
		Title:       title,
		DarkMode:    opts.HTMLDarkMode,
		Interactive: opts.HTMLInteractive,
		JSONPayload: template.JS(payload),
	}
	if err := dashboardTemplate.Execute(w, data); err != nil {
		return bhaerr.Newf(bhaerr.IoError, "render html export: %v", err)
	}

	progress(3, 3, "done")
	return nil
}
