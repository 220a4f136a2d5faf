package match

import (
	"image"
	"iter"
)

// Positions enumerates candidate top-left offsets in row-major order.
// The zero value yields nothing. A Positions can be iterated any number
// of times.
type Positions struct {
	// MaxX and MaxY are exclusive upper bounds of the offsets.
	MaxX, MaxY int
}

// NewPositions returns the offsets at which a target of size target can be
// placed inside a source of size source. With includeEdges false the range
// is [0, sw-tw) x [0, sh-th), so a target as wide or as tall as the source
// yields no positions. With includeEdges true the range is [0, sw-tw] x
// [0, sh-th].
func NewPositions(source, target image.Point, includeEdges bool) Positions {
	p := Positions{MaxX: source.X - target.X, MaxY: source.Y - target.Y}
	if includeEdges {
		p.MaxX++
		p.MaxY++
	}
	if p.MaxX < 0 || p.MaxY < 0 {
		return Positions{}
	}
	return p
}

// Count returns the number of candidate offsets.
func (p Positions) Count() int {
	if p.Empty() {
		return 0
	}
	return p.MaxX * p.MaxY
}

// Empty reports whether there are no offsets to try.
func (p Positions) Empty() bool { return p.MaxX <= 0 || p.MaxY <= 0 }

// All yields every offset, y outer and x inner.
func (p Positions) All() iter.Seq[image.Point] {
	return p.Rows(0, p.MaxY)
}

// Rows yields the offsets of rows [y0, y1) in row-major order. Rows outside
// the range are ignored.
func (p Positions) Rows(y0, y1 int) iter.Seq[image.Point] {
	y0 = max(y0, 0)
	y1 = min(y1, p.MaxY)
	return func(yield func(image.Point) bool) {
		if p.MaxX <= 0 {
			return
		}
		for y := y0; y < y1; y++ {
			for x := 0; x < p.MaxX; x++ {
				if !yield(image.Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// RegionMatches compares target against the window of source whose
// top-left corner is at (relative to source.Bounds().Min). The window must
// lie inside source. The comparison is row-major and stops at the first
// mismatch.
func RegionMatches(source, target image.Image, at image.Point, tol Tolerance) bool {
	tb := target.Bounds()
	w, h := tb.Dx(), tb.Dy()
	if s, ok := source.(*image.RGBA); ok {
		if t, ok := target.(*image.RGBA); ok {
			return regionMatchesRGBA(s, t, at, tol)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !tol.Pixels(PixelAt(source, at.X+x, at.Y+y), PixelAt(target, x, y)) {
				return false
			}
		}
	}
	return true
}

// regionMatchesRGBA walks the Pix slices directly. Pairs where either
// sample is not opaque are un-premultiplied before comparing.
func regionMatchesRGBA(source, target *image.RGBA, at image.Point, tol Tolerance) bool {
	sb, tb := source.Rect, target.Rect
	w, h := tb.Dx(), tb.Dy()
	d := tol.maxDiff
	for y := 0; y < h; y++ {
		si := source.PixOffset(sb.Min.X+at.X, sb.Min.Y+at.Y+y)
		ti := target.PixOffset(tb.Min.X, tb.Min.Y+y)
		srow := source.Pix[si : si+w*4 : si+w*4]
		trow := target.Pix[ti : ti+w*4 : ti+w*4]
		for i := 0; i < len(trow); i += 4 {
			if srow[i+3] != 0xff || trow[i+3] != 0xff {
				if !tol.Pixels(rgbaPixel(srow, i), rgbaPixel(trow, i)) {
					return false
				}
				continue
			}
			if absDiff(srow[i], trow[i]) > d ||
				absDiff(srow[i+1], trow[i+1]) > d ||
				absDiff(srow[i+2], trow[i+2]) > d {
				return false
			}
		}
	}
	return true
}
