package pathutil

import "strings"

// Basename returns the text of the last segment of path.
// It reports false when path has no segments ("" or only separators).
func Basename(path string) (string, bool) {
	last, ok := Split(path).Last()
	if !ok {
		return "", false
	}
	return last.Text, true
}

// Dirname returns path up to and including the separator that precedes the
// basename. It reports false when there is no basename or nothing precedes
// it, so "a" and "a/" have no dirname while "/a" has "/".
func Dirname(path string) (string, bool) {
	last, ok := Split(path).Last()
	if !ok || last.Begin == 0 {
		return "", false
	}
	return path[:last.Begin], true
}

// Extension returns the suffix of the basename starting at its last ".".
// A dot at position 0 of the basename does not start an extension, and "."
// and ".." have none.
func Extension(path string) (string, bool) {
	last, ok := Split(path).Last()
	if !ok || last.Kind != KindNormal {
		return "", false
	}
	dot := strings.LastIndexByte(last.Text, '.')
	if dot <= 0 {
		return "", false
	}
	return last.Text[dot:], true
}
