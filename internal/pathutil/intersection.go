package pathutil

// Intersection returns the longest common segment prefix of a and b.
// Segments compare whole, so "/a" and "/ab" share nothing but the root. The
// result carries a leading separator only when both paths are absolute.
func Intersection(a, b string) string {
	sa, sb := Split(a), Split(b)
	n := 0
	for n < len(sa.Segments) && n < len(sb.Segments) && sa.Segments[n].Text == sb.Segments[n].Text {
		n++
	}
	return joinSegments(sa.Segments[:n], sa.Rooted && sb.Rooted)
}
