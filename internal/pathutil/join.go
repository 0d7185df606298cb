package pathutil

import "strings"

// Join concatenates a and b with exactly one separator between them.
// Separators trailing a and leading b are trimmed first. An empty argument
// contributes nothing, so Join("", b) is b and Join(a, "") is a.
func Join(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return strings.TrimRight(a, SeparatorString) + SeparatorString + strings.TrimLeft(b, SeparatorString)
}

// JoinAll folds Join left to right over elems.
func JoinAll(elems ...string) string {
	if len(elems) == 0 {
		return ""
	}
	out := elems[0]
	for _, elem := range elems[1:] {
		out = Join(out, elem)
	}
	return out
}
