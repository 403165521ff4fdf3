package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorPreviewBounded(t *testing.T) {
	payload := []byte(strings.Repeat("x", 5000))
	err := NewParseError(errors.New("boom"), payload)

	assert.Len(t, err.Preview, parsePreviewLimit)
	assert.Contains(t, err.Error(), "boom")
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad json")
	err := NewParseError(cause, []byte("{"))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "{", err.Preview)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"compact", "json", "markdown", "pdf"} {
		format, err := ParseFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, Format(s), format)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}
