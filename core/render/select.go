package render

import (
	"fmt"

	"github.com/crashtools/socorro-cli/core"
)

// Select returns the renderer for the given output format.
func Select(format core.Format) (core.Renderer, error) {
	switch format {
	case core.FormatCompact:
		return NewCompactRenderer(), nil
	case core.FormatJSON:
		return NewJSONRenderer(), nil
	case core.FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case core.FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
}
