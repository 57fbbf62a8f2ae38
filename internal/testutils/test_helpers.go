package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// NormalizeTranscript strips escape sequences and trailing whitespace on each line.
func NormalizeTranscript(s string) string {
	lines := strings.Split(StripANSI(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// AssertTranscript fails the test with a line diff if actual, normalized,
// differs from expected.
func AssertTranscript(t *testing.T, expected, actual string) {
	t.Helper()

	actual = NormalizeTranscript(actual)
	if expected == actual {
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	t.Errorf("transcript mismatch:\n%s", dmp.DiffPrettyText(diffs))
}

// CreateTempFile writes content to filename inside a temporary directory and
// returns the full path.
func CreateTempFile(t *testing.T, filename, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
