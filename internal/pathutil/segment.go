// Package pathutil implements the path manipulation engine: segmentation,
// classification, normalization, joining, intersection and positional
// access over unix-style path strings.
//
// Every function is pure and total. Nothing here touches the filesystem.
package pathutil

import (
	"iter"
	"strings"
)

const (
	// Separator is the only recognised path separator.
	Separator = '/'
	// SeparatorString is Separator as a string.
	SeparatorString = "/"
	// HomeMarker is dropped by Normalize when it would lead the output.
	HomeMarker = "~"
)

// Kind classifies a single path segment.
type Kind int

const (
	// KindNormal is any component other than "." or "..".
	KindNormal Kind = iota
	// KindCurrent is a literal "." component.
	KindCurrent
	// KindBack is a literal ".." component.
	KindBack
	// KindRoot marks the leading separator of an absolute path. It is never
	// part of Sequence.Segments.
	KindRoot
)

// String returns the lowercase name used in segment listings.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindCurrent:
		return "current"
	case KindBack:
		return "back"
	case KindRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Segment is one component of a path. Text is a substring of the source
// path and Begin/End are its byte offsets there.
type Segment struct {
	Text  string
	Kind  Kind
	Begin int
	End   int
}

// Sequence is the ordered list of segments derived from one path.
type Sequence struct {
	Path     string
	Rooted   bool
	Segments []Segment
}

func classify(component string) Kind {
	switch component {
	case ".":
		return KindCurrent
	case "..":
		return KindBack
	default:
		return KindNormal
	}
}

// Segments returns a lazy sequence of the segments of path, keyed by their
// zero-based position. Each range over the result rescans path from the
// start.
func Segments(path string) iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		i := 0
		start := 0
		for pos := 0; pos <= len(path); pos++ {
			if pos < len(path) && path[pos] != Separator {
				continue
			}
			if pos > start {
				text := path[start:pos]
				if !yield(i, Segment{Text: text, Kind: classify(text), Begin: start, End: pos}) {
					return
				}
				i++
			}
			start = pos + 1
		}
	}
}

// Split segments path eagerly.
func Split(path string) Sequence {
	seq := Sequence{
		Path:   path,
		Rooted: IsAbsolute(path),
	}
	for _, seg := range Segments(path) {
		seq.Segments = append(seq.Segments, seg)
	}
	return seq
}

// Len returns the number of segments.
func (s Sequence) Len() int {
	return len(s.Segments)
}

// Root returns the root marker segment of an absolute path.
func (s Sequence) Root() (Segment, bool) {
	if !s.Rooted {
		return Segment{}, false
	}
	return Segment{Text: SeparatorString, Kind: KindRoot, Begin: 0, End: 1}, true
}

// At resolves a possibly negative index. -1 is the last segment.
func (s Sequence) At(index int) (Segment, bool) {
	n := len(s.Segments)
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return Segment{}, false
	}
	return s.Segments[index], true
}

// Last returns the final segment.
func (s Sequence) Last() (Segment, bool) {
	return s.At(-1)
}

// String joins the segments with a single separator, with a leading
// separator when the source path was rooted. The result splits back into
// the same sequence.
func (s Sequence) String() string {
	return joinSegments(s.Segments, s.Rooted)
}

func joinSegments(segs []Segment, rooted bool) string {
	var sb strings.Builder
	if rooted {
		sb.WriteByte(Separator)
	}
	for i, seg := range segs {
		if i > 0 {
			sb.WriteByte(Separator)
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// SegmentAt returns the segment of path at index. Negative indexes count
// from the end. Out-of-range indexes report false.
func SegmentAt(path string, index int) (string, bool) {
	if index >= 0 {
		for i, seg := range Segments(path) {
			if i == index {
				return seg.Text, true
			}
		}
		return "", false
	}
	seg, ok := Split(path).At(index)
	if !ok {
		return "", false
	}
	return seg.Text, true
}
