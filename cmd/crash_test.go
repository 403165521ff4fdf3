package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCrashID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"bare id",
			"247653e8-7a18-4836-97d1-42a720260120",
			"247653e8-7a18-4836-97d1-42a720260120",
		},
		{
			"report url",
			"https://crash-stats.mozilla.org/report/index/247653e8-7a18-4836-97d1-42a720260120",
			"247653e8-7a18-4836-97d1-42a720260120",
		},
		{
			"trailing slash",
			"https://crash-stats.mozilla.org/report/index/247653e8-7a18-4836-97d1-42a720260120/",
			"247653e8-7a18-4836-97d1-42a720260120",
		},
		{
			"http url",
			"http://crash-stats.mozilla.org/report/index/abc123",
			"abc123",
		},
		{
			"not a url stays intact",
			"report/index/something",
			"report/index/something",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCrashID(tt.input))
		})
	}
}
