package handlers

import (
	"strings"
)

// CredentialBatch is the ordered set of credential lines extracted from
// an operator-supplied message, one `username - password` entry per line.
// The format convention is not validated.
type CredentialBatch struct {
	Lines []string
}

// ParseCredentialBatch splits raw text into trimmed, non-blank lines.
func ParseCredentialBatch(raw string) CredentialBatch {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return CredentialBatch{Lines: lines}
}

// Count returns the number of credential lines in the batch.
func (b CredentialBatch) Count() int {
	return len(b.Lines)
}

// Joined returns the batch as a single newline-separated block.
func (b CredentialBatch) Joined() string {
	return strings.Join(b.Lines, "\n")
}

// CountMismatch reports whether the batch dropped lines relative to a
// naive newline split of the trimmed input. The operator is warned when
// the counts differ.
func (b CredentialBatch) CountMismatch(raw string) bool {
	return len(b.Lines) != len(strings.Split(strings.TrimSpace(raw), "\n"))
}
