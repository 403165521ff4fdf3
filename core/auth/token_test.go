package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  abc123token\n"), 0600))
	t.Setenv(TokenPathEnvVar, path)

	assert.Equal(t, "abc123token", tokenFromFile())
}

func TestTokenFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n\t \n"), 0600))
	t.Setenv(TokenPathEnvVar, path)

	assert.Equal(t, "", tokenFromFile())
}

func TestTokenFromFileMissing(t *testing.T) {
	t.Setenv(TokenPathEnvVar, filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, "", tokenFromFile())
}

func TestTokenFromFileUnsetEnv(t *testing.T) {
	t.Setenv(TokenPathEnvVar, "")
	assert.Equal(t, "", tokenFromFile())
}
