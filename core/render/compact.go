// Package render provides the output renderers for socorro-cli. Each
// renderer consumes normalized summaries only; none of them sees raw
// records or re-derives summary data.
package render

import (
	"fmt"
	"strings"

	"github.com/crashtools/socorro-cli/core"
)

// CompactRenderer produces label-minimized plain text, the token-efficient
// default format. Absent fields are omitted entirely, never printed as
// empty placeholders.
type CompactRenderer struct{}

// NewCompactRenderer creates a CompactRenderer.
func NewCompactRenderer() *CompactRenderer {
	return &CompactRenderer{}
}

// RenderCrash formats a crash summary as compact text.
func (r *CompactRenderer) RenderCrash(s *core.CrashSummary) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "CRASH %s\n", s.CrashID)
	if s.Signature != nil {
		fmt.Fprintf(&b, "sig: %s\n", *s.Signature)
	}
	if s.Reason != nil {
		b.WriteString("reason: " + *s.Reason)
		if s.Address != nil && *s.Address != "" {
			b.WriteString(" @ " + *s.Address + nullPointerNote(*s.Address, " (null ptr)"))
		}
		b.WriteByte('\n')
	}
	if s.MozCrashReason != nil {
		fmt.Fprintf(&b, "moz_reason: %s\n", *s.MozCrashReason)
	}
	if s.AbortMessage != nil {
		fmt.Fprintf(&b, "abort: %s\n", *s.AbortMessage)
	}
	if line := productLine(s); line != "" {
		fmt.Fprintf(&b, "product: %s\n", line)
	}
	if s.Channel != nil {
		fmt.Fprintf(&b, "channel: %s\n", *s.Channel)
	}
	if s.BuildID != nil {
		fmt.Fprintf(&b, "build: %s\n", *s.BuildID)
	}

	for _, t := range s.Threads {
		b.WriteByte('\n')
		marker := ""
		if t.Crashing {
			marker = " [CRASHING]"
		}
		fmt.Fprintf(&b, "stack[thread %d:%s%s]:\n", t.Index, t.Name, marker)
		for _, f := range t.Frames {
			fmt.Fprintf(&b, "  #%d %s%s\n", f.Index, f.Function, frameLocation(f))
		}
	}

	return []byte(b.String()), nil
}

// RenderSearch formats a search result set as compact text.
func (r *CompactRenderer) RenderSearch(s *core.SearchResultSet) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "FOUND %d crashes\n", s.Total)

	if len(s.Rows) > 0 {
		b.WriteByte('\n')
	}
	for _, row := range s.Rows {
		fmt.Fprintf(&b, "%s | %s %s | %s | %s\n",
			shortID(row.CrashID),
			strOr(row.Product, "?"), strOr(row.Version, "?"),
			strOr(row.Platform, "Unknown"),
			strOr(row.Signature, "(no signature)"))
	}

	if len(s.Facets) > 0 {
		b.WriteString("\nAGGREGATIONS:\n")
		for _, group := range s.Facets {
			fmt.Fprintf(&b, "\n%s:\n", group.Field)
			for _, bucket := range group.Buckets {
				fmt.Fprintf(&b, "  %s (%d)\n", bucket.Value, bucket.Count)
			}
		}
	}

	return []byte(b.String()), nil
}

// RenderCorrelations formats a correlation summary as compact text.
// Each item shows its signature percentage against the channel-wide
// reference percentage.
func (r *CompactRenderer) RenderCorrelations(s *core.CorrelationSummary) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "CORRELATIONS %s\n", s.Signature)
	fmt.Fprintf(&b, "channel: %s (%s)\n", s.Channel, s.Date)
	fmt.Fprintf(&b, "crashes: %.0f sig / %d channel\n", s.SigCount, s.RefCount)

	for _, group := range s.Groups {
		fmt.Fprintf(&b, "\n%s:\n", group.Attribute)
		for _, item := range group.Items {
			fmt.Fprintf(&b, "  %.1f%% vs %.1f%%  %s\n", item.SigPct, item.RefPct, item.Label)
			if item.Prior != nil {
				fmt.Fprintf(&b, "    given %s: %.1f%% vs %.1f%%\n",
					item.Prior.Label, item.Prior.SigPct, item.Prior.RefPct)
			}
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for compact output.
func (r *CompactRenderer) Extension() string {
	return ".txt"
}

// frameLocation formats the " @ file:line" suffix, omitted when unknown.
func frameLocation(f core.StackFrame) string {
	switch {
	case f.File != nil && f.Line != nil:
		return fmt.Sprintf(" @ %s:%d", *f.File, *f.Line)
	case f.File != nil:
		return " @ " + *f.File
	default:
		return ""
	}
}

// nullPointerNote annotates zero addresses.
func nullPointerNote(addr, note string) string {
	if addr == "0x0" || addr == "0" {
		return note
	}
	return ""
}

// productLine assembles "Product Version (OS OSVersion, Model AndroidVer)"
// from whatever fields are present, returning "" when none are.
func productLine(s *core.CrashSummary) string {
	var name []string
	if s.Product != nil {
		name = append(name, *s.Product)
	}
	if s.Version != nil {
		name = append(name, *s.Version)
	}

	var env []string
	var platform []string
	if s.OSName != nil {
		platform = append(platform, *s.OSName)
	}
	if s.OSVersion != nil {
		platform = append(platform, *s.OSVersion)
	}
	if len(platform) > 0 {
		env = append(env, strings.Join(platform, " "))
	}
	var device []string
	if s.AndroidModel != nil {
		device = append(device, *s.AndroidModel)
	}
	if s.AndroidVersion != nil {
		device = append(device, *s.AndroidVersion)
	}
	if len(device) > 0 {
		env = append(env, strings.Join(device, " "))
	}

	line := strings.Join(name, " ")
	if len(env) > 0 {
		if line != "" {
			line += " "
		}
		line += "(" + strings.Join(env, ", ") + ")"
	}
	return line
}

// strOr dereferences an optional string, substituting fallback when absent.
func strOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// shortID returns the leading segment of a crash UUID for one-line rows.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
