package shell

import "strings"

// Tokenize splits a raw input line on runs of whitespace. The first token is
// the command, the rest are its arguments. A blank line yields no tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// isComment reports whether a script line should be skipped.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
