package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCrashJSON = `{
	"uuid": "247653e8-7a18-4836-97d1-42a720260120",
	"signature": "mozilla::AudioDecoderInputTrack::EnsureTimeStretcher",
	"product": "Fenix",
	"version": "147.0.1",
	"os_name": "Android",
	"os_version": "36",
	"build": 20260115093402,
	"crashing_thread": 1,
	"moz_crash_reason": "MOZ_RELEASE_ASSERT(mTimeStretcher->Init())",
	"crash_info": {
		"type": "SIGSEGV",
		"address": "0x0",
		"crashing_thread": 1
	},
	"threads": [
		{
			"thread": 0,
			"thread_name": "MainThread",
			"frames": [
				{"frame": 0, "function": "main", "file": "main.cpp", "line": 10}
			]
		},
		{
			"thread": 1,
			"thread_name": "GraphRunner",
			"frames": [
				{"frame": 0, "function": "EnsureTimeStretcher", "file": "AudioDecoderInputTrack.cpp", "line": 624},
				{"frame": 1, "function": "AppendData", "file": "AudioDecoderInputTrack.cpp", "line": 423}
			]
		}
	]
}`

func TestDecodeCrashRecord(t *testing.T) {
	var record RawCrashRecord
	require.NoError(t, json.Unmarshal([]byte(sampleCrashJSON), &record))

	assert.Equal(t, "247653e8-7a18-4836-97d1-42a720260120", record.UUID)
	require.NotNil(t, record.Signature)
	assert.Equal(t, "mozilla::AudioDecoderInputTrack::EnsureTimeStretcher", *record.Signature)
	require.NotNil(t, record.CrashingThread)
	assert.Equal(t, 1, *record.CrashingThread)
	require.NotNil(t, record.Build)
	assert.Equal(t, FlexString("20260115093402"), *record.Build)
	require.Len(t, record.Threads, 2)
	assert.Len(t, record.Threads[1].Frames, 2)
}

func TestDecodeCrashRecordMinimal(t *testing.T) {
	var record RawCrashRecord
	require.NoError(t, json.Unmarshal([]byte(`{"uuid": "minimal-crash"}`), &record))

	assert.Equal(t, "minimal-crash", record.UUID)
	assert.Nil(t, record.Signature)
	assert.Nil(t, record.Threads)
	assert.Nil(t, record.CrashingThread)
}

func TestDecodeCrashRecordIgnoresUnknownFields(t *testing.T) {
	// Anything not modeled is dropped at decode time.
	var record RawCrashRecord
	require.NoError(t, json.Unmarshal([]byte(`{"uuid": "x", "user_comments": "my name is ...", "email": "a@b"}`), &record))
	assert.Equal(t, "x", record.UUID)
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexString
		ok    bool
	}{
		{"string", `"20260115"`, "20260115", true},
		{"integer", `20260115093402`, "20260115093402", true},
		{"float", `1.5`, "1.5", true},
		{"object", `{"a": 1}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, f)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecodeSearchResponse(t *testing.T) {
	data := `{
		"total": 100,
		"hits": [
			{
				"uuid": "247653e8-7a18-4836-97d1-42a720260120",
				"date": "2026-01-15T10:30:00",
				"signature": "mozilla::SomeFunction",
				"product": "Firefox",
				"version": "120.0",
				"build_id": 20260115093402
			}
		],
		"facets": {
			"version": [
				{"term": "120.0", "count": 50},
				{"term": "119.0", "count": 30}
			]
		}
	}`

	var resp RawSearchResponse
	require.NoError(t, json.Unmarshal([]byte(data), &resp))

	assert.Equal(t, uint64(100), resp.Total)
	require.Len(t, resp.Hits, 1)
	assert.Nil(t, resp.Hits[0].Platform)
	require.NotNil(t, resp.Hits[0].BuildID)
	assert.Equal(t, FlexString("20260115093402"), *resp.Hits[0].BuildID)
	require.Len(t, resp.Facets["version"], 2)
	assert.Equal(t, "120.0", resp.Facets["version"][0].Term)
}

func TestCorrelationTotalsForChannel(t *testing.T) {
	var totals RawCorrelationTotals
	require.NoError(t, json.Unmarshal(
		[]byte(`{"date":"2026-02-13","release":79268,"beta":4996,"nightly":4876,"esr":792}`),
		&totals))

	for channel, want := range map[string]uint64{
		"release": 79268, "beta": 4996, "nightly": 4876, "esr": 792,
	} {
		got, ok := totals.TotalForChannel(channel)
		assert.True(t, ok, channel)
		assert.Equal(t, want, got, channel)
	}

	_, ok := totals.TotalForChannel("aurora")
	assert.False(t, ok)
}

func TestDecodeCorrelationResponse(t *testing.T) {
	data := `{
		"total": 220.0,
		"results": [
			{
				"item": {"Module \"cscapi.dll\"": true},
				"count_reference": 19432.0,
				"count_group": 220.0,
				"prior": null
			},
			{
				"item": {"startup_crash": null},
				"count_reference": 920.0,
				"count_group": 65.0,
				"prior": {
					"item": {"process_type": "parent"},
					"count_reference": 3630.0,
					"count_group": 112.0,
					"total_reference": 79268.0,
					"total_group": 220.0
				}
			}
		]
	}`

	var resp RawCorrelationResponse
	require.NoError(t, json.Unmarshal([]byte(data), &resp))

	assert.Equal(t, 220.0, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Nil(t, resp.Results[0].Prior)
	require.NotNil(t, resp.Results[1].Prior)
	assert.Equal(t, 220.0, resp.Results[1].Prior.TotalGroup)
}
