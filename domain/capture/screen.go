// Package capture acquires screen pixels for the matcher. Backends wrap
// platform screenshot libraries behind the Screen interface; CaptureArea
// enforces that a request lies inside the screen before anything is grabbed.
package capture

import (
	"errors"
	"fmt"
	"image"
)

// Backend names accepted by NewScreen.
const (
	BackendScreenshot = "screenshot"
	BackendDisplay    = "display"
	BackendGDI        = "gdi"
)

var (
	// ErrOutOfBounds is returned when a capture request exceeds the screen.
	ErrOutOfBounds = errors.New("capture: region outside screen")
	// ErrBackendUnavailable is returned for a backend this platform lacks.
	ErrBackendUnavailable = errors.New("capture: backend unavailable on this platform")
)

// OutOfBoundsError reports the rejected region and the screen size.
type OutOfBoundsError struct {
	Region image.Rectangle
	Screen image.Point
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("capture: region %v outside screen %dx%d", e.Region, e.Screen.X, e.Screen.Y)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// NewScreen returns the Screen for backend. display selects a monitor for
// the display backend and is ignored by the others.
func NewScreen(backend string, display int) (Screen, error) {
	switch backend {
	case "", BackendScreenshot:
		return primaryScreen{}, nil
	case BackendDisplay:
		return newDisplayScreen(display)
	case BackendGDI:
		return newGDIScreen()
	}
	return nil, fmt.Errorf("capture: unknown backend %q", backend)
}

// CaptureArea grabs r from s. The region must be non-empty and lie wholly
// inside the screen; it is never clamped. The returned image has its
// origin at (0, 0).
func CaptureArea(s Screen, r image.Rectangle) (*image.RGBA, error) {
	size, err := s.Size()
	if err != nil {
		return nil, fmt.Errorf("capture: screen size: %w", err)
	}
	if r.Empty() || !r.In(image.Rectangle{Max: size}) {
		return nil, &OutOfBoundsError{Region: r, Screen: size}
	}
	img, err := s.Capture(r)
	if err != nil {
		return nil, fmt.Errorf("capture: grab %v: %w", r, err)
	}
	if img == nil {
		return nil, fmt.Errorf("capture: grab %v: no frame", r)
	}
	if img.Rect.Size() != r.Size() || len(img.Pix) < r.Dx()*r.Dy()*4 {
		return nil, fmt.Errorf("capture: grab %v: got %v frame", r, img.Rect.Size())
	}
	img.Rect = img.Rect.Sub(img.Rect.Min)
	return img, nil
}

// CaptureFull grabs the whole screen.
func CaptureFull(s Screen) (*image.RGBA, error) {
	size, err := s.Size()
	if err != nil {
		return nil, fmt.Errorf("capture: screen size: %w", err)
	}
	return CaptureArea(s, image.Rectangle{Max: size})
}
