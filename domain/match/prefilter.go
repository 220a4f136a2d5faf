package match

import (
	"fmt"
	"image"
)

// Prefilter is a cheap test run at every candidate offset before the full
// region comparison. Implementations may accept non-matches but must never
// reject an offset where the whole target matches.
type Prefilter interface {
	Accept(source, target image.Image, at image.Point, tol Tolerance) bool
}

// AnchorPrefilter compares the source pixel at the offset against the
// target's top-left pixel.
type AnchorPrefilter struct{}

func (AnchorPrefilter) Accept(source, target image.Image, at image.Point, tol Tolerance) bool {
	return tol.Pixels(PixelAt(source, at.X, at.Y), PixelAt(target, 0, 0))
}

// RowPrefilter compares the target's first row against the source before
// the full region. It rejects more candidates than AnchorPrefilter at a
// higher per-candidate cost.
type RowPrefilter struct{}

func (RowPrefilter) Accept(source, target image.Image, at image.Point, tol Tolerance) bool {
	w := target.Bounds().Dx()
	for x := 0; x < w; x++ {
		if !tol.Pixels(PixelAt(source, at.X+x, at.Y), PixelAt(target, x, 0)) {
			return false
		}
	}
	return true
}

// noPrefilter accepts everything.
type noPrefilter struct{}

func (noPrefilter) Accept(image.Image, image.Image, image.Point, Tolerance) bool { return true }

// PrefilterByName maps a configuration name to a Prefilter.
func PrefilterByName(name string) (Prefilter, error) {
	switch name {
	case "", "anchor":
		return AnchorPrefilter{}, nil
	case "row":
		return RowPrefilter{}, nil
	case "none":
		return noPrefilter{}, nil
	}
	return nil, fmt.Errorf("match: unknown prefilter %q", name)
}
