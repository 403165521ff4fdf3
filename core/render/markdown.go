package render

import (
	"fmt"
	"strings"

	"github.com/crashtools/socorro-cli/core"
)

// MarkdownRenderer produces the same field set as the compact format with
// heading and list markup, suited for documents and chat rendering.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// RenderCrash formats a crash summary as a markdown document.
func (r *MarkdownRenderer) RenderCrash(s *core.CrashSummary) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Crash Report\n\n")
	fmt.Fprintf(&b, "**Crash ID:** `%s`\n\n", s.CrashID)
	if s.Signature != nil {
		fmt.Fprintf(&b, "**Signature:** `%s`\n\n", *s.Signature)
	}

	b.WriteString("## Details\n\n")
	if s.Reason != nil {
		b.WriteString("- **Crash Reason:** " + *s.Reason)
		if s.Address != nil && *s.Address != "" {
			fmt.Fprintf(&b, " at `%s`%s", *s.Address, nullPointerNote(*s.Address, " (null pointer)"))
		}
		b.WriteByte('\n')
	}
	if s.MozCrashReason != nil {
		fmt.Fprintf(&b, "- **Mozilla Crash Reason:** %s\n", *s.MozCrashReason)
	}
	if s.AbortMessage != nil {
		fmt.Fprintf(&b, "- **Abort Message:** %s\n", *s.AbortMessage)
	}
	if line := productLine(s); line != "" {
		fmt.Fprintf(&b, "- **Product:** %s\n", line)
	}
	if s.Channel != nil {
		fmt.Fprintf(&b, "- **Channel:** %s\n", *s.Channel)
	}
	if s.BuildID != nil {
		fmt.Fprintf(&b, "- **Build ID:** %s\n", *s.BuildID)
	}

	if len(s.Threads) > 0 {
		if s.AllThreads {
			b.WriteString("\n## All Threads\n")
		} else {
			b.WriteString("\n## Stack Trace\n")
		}
		for _, t := range s.Threads {
			marker := ""
			if t.Crashing {
				marker = " **[CRASHING]**"
			}
			fmt.Fprintf(&b, "\n### Thread %d (%s)%s\n\n", t.Index, t.Name, marker)
			b.WriteString("```\n")
			for _, f := range t.Frames {
				fmt.Fprintf(&b, "#%d %s%s\n", f.Index, f.Function, frameLocation(f))
			}
			b.WriteString("```\n")
		}
	}

	return []byte(b.String()), nil
}

// RenderSearch formats a search result set as a markdown document.
func (r *MarkdownRenderer) RenderSearch(s *core.SearchResultSet) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Search Results\n\n")
	fmt.Fprintf(&b, "Found **%d** crashes\n", s.Total)

	if len(s.Rows) > 0 {
		b.WriteString("\n## Crashes\n\n")
		b.WriteString("| Crash ID | Product | Version | Platform | Signature |\n")
		b.WriteString("|----------|---------|---------|----------|-----------|\n")
		for _, row := range s.Rows {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				shortID(row.CrashID),
				strOr(row.Product, "?"), strOr(row.Version, "?"),
				strOr(row.Platform, "Unknown"),
				strOr(row.Signature, "(no signature)"))
		}
	}

	if len(s.Facets) > 0 {
		b.WriteString("\n## Aggregations\n")
		for _, group := range s.Facets {
			fmt.Fprintf(&b, "\n### %s\n\n", group.Field)
			for _, bucket := range group.Buckets {
				fmt.Fprintf(&b, "- **%s**: %d crashes\n", bucket.Value, bucket.Count)
			}
		}
	}

	return []byte(b.String()), nil
}

// RenderCorrelations formats a correlation summary as a markdown document.
func (r *MarkdownRenderer) RenderCorrelations(s *core.CorrelationSummary) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Correlations: `%s`\n\n", s.Signature)
	fmt.Fprintf(&b, "**Channel:** %s (%s)\n\n", s.Channel, s.Date)
	fmt.Fprintf(&b, "Signature crashes: **%.0f** of **%d** on the channel\n", s.SigCount, s.RefCount)

	for _, group := range s.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", group.Attribute)
		b.WriteString("| sig_% | ref_% | attribute |\n")
		b.WriteString("|-------|-------|-----------|\n")
		for _, item := range group.Items {
			fmt.Fprintf(&b, "| %.1f%% | %.1f%% | %s |\n", item.SigPct, item.RefPct, item.Label)
			if item.Prior != nil {
				fmt.Fprintf(&b, "| %.1f%% | %.1f%% | prior: %s |\n",
					item.Prior.SigPct, item.Prior.RefPct, item.Prior.Label)
			}
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
