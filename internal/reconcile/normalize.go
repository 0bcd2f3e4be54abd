package reconcile

import "strings"

// Normalize derives the comparison form of an instruction file: every
// line loses its trailing whitespace (including any carriage return),
// and trailing blank lines at end-of-file are dropped. Internal
// content is untouched. The normalized form exists only for equality
// testing; raw bytes are always what gets written.
func Normalize(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Equivalent reports whether two raw contents are equal after
// normalization. Running a sync on equivalent files must never write.
func Equivalent(a, b []byte) bool {
	return Normalize(a) == Normalize(b)
}
