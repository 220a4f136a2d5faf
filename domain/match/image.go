package match

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrDimensionMismatch is returned when two images expected to share a
	// size do not.
	ErrDimensionMismatch = errors.New("match: image dimensions differ")
	// ErrEmptyTarget is returned for a target with zero width or height.
	ErrEmptyTarget = errors.New("match: empty target image")
)

// DimensionError carries the sizes of the two images that were compared.
type DimensionError struct {
	A, B image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("match: image dimensions differ: %dx%d vs %dx%d", e.A.X, e.A.Y, e.B.X, e.B.Y)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ImagesMatch reports whether img1 and img2 match pixel for pixel within
// looseness. Both images must have the same width and height.
func ImagesMatch(img1, img2 image.Image, looseness float64) (bool, error) {
	tol, err := NewTolerance(looseness)
	if err != nil {
		return false, err
	}
	return tol.Images(img1, img2)
}

// Images compares two equally sized images row by row and stops at the
// first pixel pair outside the tolerance.
func (t Tolerance) Images(img1, img2 image.Image) (bool, error) {
	if img1 == nil || img2 == nil {
		return false, errors.New("match: nil image")
	}
	s1, s2 := img1.Bounds().Size(), img2.Bounds().Size()
	if s1 != s2 {
		return false, &DimensionError{A: s1, B: s2}
	}
	return RegionMatches(img1, img2, image.Point{}, t), nil
}
