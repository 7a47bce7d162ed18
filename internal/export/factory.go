package export

import (
	"github.com/yenhunghuang/bha/internal/bhaerr"
)

// Factory dispatches on Format to produce the right Exporter
// implementation. Each NewFactory call builds its own registry, which is
// read-only after registration, matching spec.md §9's "Registries" design note and the
// analyzer/suggester registries' shape.
type Factory struct {
	byFormat map[Format]func() Exporter
}

// NewFactory builds the default factory with every built-in exporter
// registered.
func NewFactory() *Factory {
	f := &Factory{byFormat: make(map[Format]func() Exporter)}
	f.register(JSON, func() Exporter { return NewJSONExporter() })
	f.register(HTML, func() Exporter { return NewHTMLExporter() })
	f.register(CSV, func() Exporter { return NewCSVExporter() })
	f.register(Markdown, func() Exporter { return NewMarkdownExporter() })
	f.register(SARIF, func() Exporter { return NewSARIFExporter() })
	return f
}

func (f *Factory) register(format Format, ctor func() Exporter) {
	f.byFormat[format] = ctor
}

// New constructs the Exporter for format, or an InvalidArgument error if
// format is not one of the registered variants.
func (f *Factory) New(format Format) (Exporter, error) {
	ctor, ok := f.byFormat[format]
	if !ok {
		return nil, bhaerr.Newf(bhaerr.InvalidArgument, "unknown export format %q", format)
	}
	return ctor(), nil
}

// NewFromString resolves a format name (CLI --format value) the same way
// ParseFormat does, surfacing an InvalidArgument error on an unknown
// string, per spec.md §6's export subcommand contract.
func (f *Factory) NewFromString(s string) (Exporter, error) {
	format, ok := ParseFormat(s)
	if !ok {
		return nil, bhaerr.Newf(bhaerr.InvalidArgument, "unknown export format %q", s)
	}
	return f.New(format)
}

// NewFromExtension resolves an exporter from an output file's extension
// (".json"/".html"/".htm"/".csv"/".md"), per spec.md §6.
func (f *Factory) NewFromExtension(ext string) (Exporter, error) {
	switch ext {
	case ".json":
		return f.New(JSON)
	case ".html", ".htm":
		return f.New(HTML)
	case ".csv":
		return f.New(CSV)
	case ".md":
		return f.New(Markdown)
	case ".sarif":
		return f.New(SARIF)
	default:
		return nil, bhaerr.Newf(bhaerr.InvalidArgument, "unrecognized output extension %q", ext)
	}
}
