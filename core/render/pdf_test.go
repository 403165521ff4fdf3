package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashtools/socorro-cli/core"
)

func TestPDFRenderCrash(t *testing.T) {
	out, err := NewPDFRenderer().RenderCrash(sampleCrashSummary())
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFRenderSearch(t *testing.T) {
	out, err := NewPDFRenderer().RenderSearch(sampleResultSet())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFRenderCorrelations(t *testing.T) {
	out, err := NewPDFRenderer().RenderCorrelations(sampleCorrelations())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExtension(t *testing.T) {
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}

func TestCleanInlineMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "**Crash ID:** abc", "Crash ID: abc"},
		{"inline code", "see `0x0` here", "see 0x0 here"},
		{"link", "[docs](https://example.com)", "docs"},
		{"plain", "nothing to strip", "nothing to strip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanInlineMarkdown(tt.input))
		})
	}
}

func TestSelect(t *testing.T) {
	for format, ext := range map[core.Format]string{
		core.FormatCompact:  ".txt",
		core.FormatJSON:     ".json",
		core.FormatMarkdown: ".md",
		core.FormatPDF:      ".pdf",
	} {
		r, err := Select(format)
		require.NoError(t, err)
		assert.Equal(t, ext, r.Extension())
	}

	_, err := Select(core.Format("yaml"))
	assert.Error(t, err)
}
