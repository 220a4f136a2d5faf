package images

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrRegionOutOfBounds is returned when a region is not fully inside an image.
var ErrRegionOutOfBounds = errors.New("images: region out of bounds")

// Region copies the rectangle r, given relative to img.Bounds().Min, into a
// new image whose bounds start at (0, 0). Unlike a clamped crop the
// rectangle must be non-empty and lie entirely inside img.
func Region(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New("images: nil image")
	}
	b := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("images: empty region %v", r)
	}
	abs := r.Add(b.Min)
	if !abs.In(b) {
		return nil, fmt.Errorf("%w: region=%v size=%v", ErrRegionOutOfBounds, r, b.Size())
	}
	return imaging.Crop(img, abs), nil
}

// ParseRect parses "x,y,w,h" into a rectangle.
func ParseRect(s string) (image.Rectangle, error) {
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("images: parse region %q: want x,y,w,h: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("images: parse region %q: width and height must be positive", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}
