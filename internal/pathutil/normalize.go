package pathutil

// Normalize collapses "." and ".." components and drops a leading home
// marker. The result has no leading or trailing separator and never starts
// with "..": a ".." with nothing left to remove is discarded.
//
// Normalize(Normalize(p)) == Normalize(p) for every p.
func Normalize(path string) string {
	seq := Split(path)
	stack := make([]Segment, 0, len(seq.Segments))
	for _, seg := range seq.Segments {
		switch seg.Kind {
		case KindCurrent:
		case KindBack:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			// A home marker can only lead the output if it is dropped here;
			// keeping it would make a second pass remove it.
			if len(stack) == 0 && seg.Text == HomeMarker {
				continue
			}
			stack = append(stack, seg)
		}
	}
	return joinSegments(stack, false)
}
