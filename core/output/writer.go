// Package output handles where rendered text goes: stdout by default, a
// file when --output is given, and a derived filename for formats that are
// not meant for a terminal (PDF).
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer writes rendered output to its destination.
type Writer struct {
	path   string
	stdout io.Writer
}

// New creates a Writer. An empty path means stdout, unless a default
// filename is supplied at write time.
func New(path string) *Writer {
	return &Writer{path: path, stdout: os.Stdout}
}

// Write sends data to the configured destination. defaultName is used when
// no explicit path was given but the format should not go to a terminal;
// pass "" to default to stdout. It returns the destination written to,
// with "-" meaning stdout.
func (w *Writer) Write(data []byte, defaultName string) (string, error) {
	path := w.path
	if path == "" {
		path = defaultName
	}
	if path == "" {
		if _, err := w.stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "-", nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// SanitizeName replaces characters outside [a-zA-Z0-9._-] with
// underscores, for filenames derived from crash IDs and signatures.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '.', ch == '_', ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
