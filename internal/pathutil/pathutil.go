package pathutil

// IsAbsolute reports whether path starts with the separator.
// The empty path is not absolute.
func IsAbsolute(path string) bool {
	return len(path) > 0 && path[0] == Separator
}

// IsRelative reports whether path is relative.
// The empty path is relative.
func IsRelative(path string) bool {
	if path == "" {
		return true
	}
	return !IsAbsolute(path)
}

// Root returns the root prefix of path. The second result is false when the
// path has no root, which is distinct from a root that happens to be empty.
//
// Volume prefixes such as "C:" are not roots; they segment as ordinary
// components.
func Root(path string) (string, bool) {
	if !IsAbsolute(path) {
		return "", false
	}
	return SeparatorString, true
}
