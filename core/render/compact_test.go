package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashtools/socorro-cli/core"
)

func ptr[T any](v T) *T { return &v }

func sampleCrashSummary() *core.CrashSummary {
	return &core.CrashSummary{
		CrashID:   "247653e8-7a18-4836-97d1-42a720260120",
		Signature: ptr("mozilla::AudioDecoderInputTrack::EnsureTimeStretcher"),
		Reason:    ptr("SIGSEGV"),
		Address:   ptr("0x0"),
		Product:   ptr("Fenix"),
		Version:   ptr("147.0.1"),
		OSName:    ptr("Android"),
		OSVersion: ptr("36"),
		Channel:   ptr("release"),
		Threads: []core.ThreadSummary{
			{
				Index:    1,
				Name:     "GraphRunner",
				Crashing: true,
				Frames: []core.StackFrame{
					{Index: 0, Function: "EnsureTimeStretcher", File: ptr("AudioDecoderInputTrack.cpp"), Line: ptr(624)},
					{Index: 1, Function: "AppendData", File: ptr("AudioDecoderInputTrack.cpp")},
					{Index: 2, Function: "???"},
				},
			},
		},
	}
}

func sampleResultSet() *core.SearchResultSet {
	return &core.SearchResultSet{
		Total: 42,
		Rows: []core.CrashRow{
			{
				CrashID:   "247653e8-7a18-4836-97d1-42a720260120",
				Product:   ptr("Firefox"),
				Version:   ptr("120.0"),
				Platform:  ptr("Windows NT"),
				Signature: ptr("mozilla::SomeFunction"),
			},
		},
		Facets: []core.FacetGroup{
			{Field: "version", Buckets: []core.FacetBucket{
				{Value: "120.0", Count: 50},
				{Value: "119.0", Count: 30},
			}},
		},
	}
}

func sampleCorrelations() *core.CorrelationSummary {
	return &core.CorrelationSummary{
		Signature: "shutdownhang",
		Channel:   "release",
		Date:      "2026-02-13",
		SigCount:  220,
		RefCount:  79268,
		Groups: []core.CorrelationGroup{
			{
				Attribute: "startup_crash",
				Items: []core.CorrelationItem{
					{
						Label:  "startup_crash = null",
						Count:  65,
						SigPct: 29.5,
						RefPct: 1.2,
						Prior: &core.CorrelationPrior{
							Label:  "process_type = parent",
							SigPct: 50.9,
							RefPct: 4.6,
						},
					},
				},
			},
		},
	}
}

func TestCompactRenderCrash(t *testing.T) {
	out, err := NewCompactRenderer().RenderCrash(sampleCrashSummary())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "CRASH 247653e8-7a18-4836-97d1-42a720260120\n")
	assert.Contains(t, text, "sig: mozilla::AudioDecoderInputTrack::EnsureTimeStretcher\n")
	assert.Contains(t, text, "reason: SIGSEGV @ 0x0 (null ptr)\n")
	assert.Contains(t, text, "product: Fenix 147.0.1 (Android 36)\n")
	assert.Contains(t, text, "stack[thread 1:GraphRunner [CRASHING]]:\n")
	assert.Contains(t, text, "  #0 EnsureTimeStretcher @ AudioDecoderInputTrack.cpp:624\n")
	assert.Contains(t, text, "  #1 AppendData @ AudioDecoderInputTrack.cpp\n")
	assert.Contains(t, text, "  #2 ???\n")
}

func TestCompactRenderCrashOmitsAbsentFields(t *testing.T) {
	out, err := NewCompactRenderer().RenderCrash(&core.CrashSummary{CrashID: "minimal"})
	require.NoError(t, err)

	assert.Equal(t, "CRASH minimal\n", string(out))
}

func TestCompactRenderCrashNonNullAddress(t *testing.T) {
	s := sampleCrashSummary()
	s.Address = ptr("0x7fff1234")

	out, err := NewCompactRenderer().RenderCrash(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "reason: SIGSEGV @ 0x7fff1234\n")
	assert.NotContains(t, string(out), "null ptr")
}

func TestCompactRenderSearch(t *testing.T) {
	out, err := NewCompactRenderer().RenderSearch(sampleResultSet())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "FOUND 42 crashes\n"))
	assert.Contains(t, text, "247653e8 | Firefox 120.0 | Windows NT | mozilla::SomeFunction\n")
	assert.Contains(t, text, "AGGREGATIONS:\n")
	assert.Contains(t, text, "version:\n")
	assert.Contains(t, text, "  120.0 (50)\n")
}

func TestCompactRenderSearchMissingRowFields(t *testing.T) {
	set := &core.SearchResultSet{
		Total: 1,
		Rows:  []core.CrashRow{{CrashID: "short"}},
	}

	out, err := NewCompactRenderer().RenderSearch(set)
	require.NoError(t, err)
	assert.Contains(t, string(out), "short | ? ? | Unknown | (no signature)\n")
}

func TestCompactRenderSearchEmpty(t *testing.T) {
	out, err := NewCompactRenderer().RenderSearch(&core.SearchResultSet{})
	require.NoError(t, err)
	assert.Equal(t, "FOUND 0 crashes\n", string(out))
}

func TestCompactRenderCorrelations(t *testing.T) {
	out, err := NewCompactRenderer().RenderCorrelations(sampleCorrelations())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "CORRELATIONS shutdownhang\n")
	assert.Contains(t, text, "channel: release (2026-02-13)\n")
	assert.Contains(t, text, "crashes: 220 sig / 79268 channel\n")
	assert.Contains(t, text, "startup_crash:\n")
	assert.Contains(t, text, "  29.5% vs 1.2%  startup_crash = null\n")
	assert.Contains(t, text, "    given process_type = parent: 50.9% vs 4.6%\n")
}

func TestCompactExtension(t *testing.T) {
	assert.Equal(t, ".txt", NewCompactRenderer().Extension())
}
