package match

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrInvalidLooseness is returned when a looseness value falls outside [0, 1].
var ErrInvalidLooseness = errors.New("match: looseness must be within [0, 1]")

// LoosenessError reports the rejected looseness value.
type LoosenessError struct {
	Looseness float64
}

func (e *LoosenessError) Error() string {
	return fmt.Sprintf("match: invalid looseness %v: must be within [0, 1]", e.Looseness)
}

func (e *LoosenessError) Unwrap() error { return ErrInvalidLooseness }

// Pixel is an opaque 8-bit RGB sample. Alpha is dropped when reading.
type Pixel struct {
	R, G, B uint8
}

// Tolerance is a validated looseness. Construct it with NewTolerance or
// MustTolerance; the zero value demands exact pixels.
type Tolerance struct {
	looseness float64
	maxDiff   uint8
}

// NewTolerance validates looseness and converts it into an integer channel
// threshold, truncating floor(looseness*255).
func NewTolerance(looseness float64) (Tolerance, error) {
	if math.IsNaN(looseness) || looseness < 0 || looseness > 1 {
		return Tolerance{}, &LoosenessError{Looseness: looseness}
	}
	return Tolerance{looseness: looseness, maxDiff: uint8(looseness * 255)}, nil
}

// MustTolerance is like NewTolerance but panics on an invalid looseness.
func MustTolerance(looseness float64) Tolerance {
	t, err := NewTolerance(looseness)
	if err != nil {
		panic(err)
	}
	return t
}

// Looseness returns the validated looseness.
func (t Tolerance) Looseness() float64 { return t.looseness }

// MaxDiff returns the largest per-channel difference still considered equal.
func (t Tolerance) MaxDiff() uint8 { return t.maxDiff }

// Pixels reports whether every channel of p1 and p2 differs by at most MaxDiff.
func (t Tolerance) Pixels(p1, p2 Pixel) bool {
	return absDiff(p1.R, p2.R) <= t.maxDiff &&
		absDiff(p1.G, p2.G) <= t.maxDiff &&
		absDiff(p1.B, p2.B) <= t.maxDiff
}

// PixelsMatch validates looseness and compares a single pixel pair.
func PixelsMatch(p1, p2 Pixel, looseness float64) (bool, error) {
	t, err := NewTolerance(looseness)
	if err != nil {
		return false, err
	}
	return t.Pixels(p1, p2), nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// PixelAt reads the pixel at (x, y) relative to img.Bounds().Min as
// non-premultiplied channels, whatever the storage type of img.
func PixelAt(img image.Image, x, y int) Pixel {
	b := img.Bounds()
	px, py := b.Min.X+x, b.Min.Y+y
	switch m := img.(type) {
	case *image.RGBA:
		return rgbaPixel(m.Pix, m.PixOffset(px, py))
	case *image.NRGBA:
		i := m.PixOffset(px, py)
		s := m.Pix[i : i+3 : i+3]
		return Pixel{s[0], s[1], s[2]}
	}
	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	return Pixel{c.R, c.G, c.B}
}

// rgbaPixel reads the premultiplied sample at pix[i:i+4]. Opaque samples are
// returned as stored; others are converted the way color.NRGBAModel does.
func rgbaPixel(pix []uint8, i int) Pixel {
	s := pix[i : i+4 : i+4]
	if s[3] == 0xff {
		return Pixel{s[0], s[1], s[2]}
	}
	c := color.NRGBAModel.Convert(color.RGBA{s[0], s[1], s[2], s[3]}).(color.NRGBA)
	return Pixel{c.R, c.G, c.B}
}
