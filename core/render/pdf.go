package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/crashtools/socorro-cli/core"
)

// PDFRenderer produces a printable document from a summary. It renders the
// markdown form of the summary and converts it line by line: headings get
// variable font sizes, stack traces and tables use a monospace font.
type PDFRenderer struct {
	md *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{md: NewMarkdownRenderer()}
}

// RenderCrash formats a crash summary as a PDF document.
func (r *PDFRenderer) RenderCrash(s *core.CrashSummary) ([]byte, error) {
	markdown, err := r.md.RenderCrash(s)
	if err != nil {
		return nil, err
	}
	return markdownToPDF(string(markdown))
}

// RenderSearch formats a search result set as a PDF document.
func (r *PDFRenderer) RenderSearch(s *core.SearchResultSet) ([]byte, error) {
	markdown, err := r.md.RenderSearch(s)
	if err != nil {
		return nil, err
	}
	return markdownToPDF(string(markdown))
}

// RenderCorrelations formats a correlation summary as a PDF document.
func (r *PDFRenderer) RenderCorrelations(s *core.CorrelationSummary) ([]byte, error) {
	markdown, err := r.md.RenderCorrelations(s)
	if err != nil {
		return nil, err
	}
	return markdownToPDF(string(markdown))
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

var numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)

// markdownToPDF converts the markdown rendering into PDF bytes.
func markdownToPDF(markdown string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	lines := strings.Split(markdown, "\n")
	inCodeBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			// Stack frames render in monospace with a light background.
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}

		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(line, "#") {
			level := 0
			for _, ch := range line {
				if ch != '#' {
					break
				}
				level++
			}
			writeHeading(pdf, strings.TrimSpace(strings.TrimLeft(line, "# ")), level)
			continue
		}

		// Table rows keep their pipes and render in monospace so the
		// columns stay readable.
		if strings.HasPrefix(trimmed, "|") {
			pdf.SetFont("Courier", "", 8)
			pdf.MultiCell(0, 4, cleanInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, "• "+cleanInlineMarkdown(strings.TrimSpace(trimmed[2:])), "", "L", false)
			continue
		}

		if numberedItemRegex.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, cleanInlineMarkdown(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeHeading sets the font size based on heading level and writes text.
func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

var (
	italicRegex     = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// cleanInlineMarkdown strips inline markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = mdLinkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
