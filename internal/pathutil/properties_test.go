package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// samplePaths covers boundary shapes: empty, separator-only, rooted,
// relative, dotted, home-prefixed and repeated separators.
var samplePaths = []string{
	"",
	"/",
	"//",
	".",
	"..",
	"~",
	"a",
	"a/",
	"/a",
	"a/b.txt",
	"/this/is/a/test",
	"/this/is/a/ayoo/what",
	"~/../a/b/./c/../ayoo",
	"/home/root/.././.ssh/keys",
	"./~/x",
	"a/../~/b",
	"../../x/../y",
	"a//b///c//",
	"C:/a/b.txt",
	"/a/b/../../..",
	"x/./././y",
}

func TestProperty_NormalizeIdempotent(t *testing.T) {
	for _, p := range samplePaths {
		once := Normalize(p)
		assert.Equal(t, once, Normalize(once), "path %q", p)
	}
}

func TestProperty_NormalizeNeverLeadsWithBack(t *testing.T) {
	for _, p := range samplePaths {
		first, ok := SegmentAt(Normalize(p), 0)
		if ok {
			assert.NotEqual(t, "..", first, "path %q", p)
		}
	}
}

func TestProperty_Recomposition(t *testing.T) {
	for _, p := range samplePaths {
		base, ok := Basename(p)
		if !ok {
			continue
		}
		dir, ok := Dirname(p)
		if !ok {
			continue
		}
		assert.Equal(t, Split(p).String(), Split(Join(dir, base)).String(), "path %q", p)
	}
}

func TestProperty_IntersectionCommutative(t *testing.T) {
	for _, a := range samplePaths {
		for _, b := range samplePaths {
			assert.Equal(t, Intersection(a, b), Intersection(b, a), "paths %q %q", a, b)
		}
	}
}

func TestProperty_IndexingSymmetry(t *testing.T) {
	for _, p := range samplePaths {
		n := Split(p).Len()

		var lastRow string
		for _, seg := range Segments(p) {
			lastRow = seg.Text
		}

		if n > 0 {
			fromEnd, ok := SegmentAt(p, -1)
			assert.True(t, ok)
			fromStart, ok := SegmentAt(p, n-1)
			assert.True(t, ok)
			assert.Equal(t, fromStart, fromEnd, "path %q", p)
			assert.Equal(t, lastRow, fromEnd, "path %q", p)
		}

		_, ok := SegmentAt(p, n)
		assert.False(t, ok, "path %q", p)
		_, ok = SegmentAt(p, -(n + 1))
		assert.False(t, ok, "path %q", p)
	}
}

func TestProperty_ExtensionIsBasenameSuffix(t *testing.T) {
	for _, p := range samplePaths {
		ext, ok := Extension(p)
		if !ok {
			continue
		}
		base, _ := Basename(p)
		assert.NotEqual(t, base, ext, "path %q", p)
		assert.Equal(t, ext, base[len(base)-len(ext):], "path %q", p)
	}
}
