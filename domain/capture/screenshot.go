package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// primaryScreen captures the primary monitor through vova616/screenshot.
type primaryScreen struct{}

func (primaryScreen) Size() (image.Point, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Point{}, err
	}
	return r.Size(), nil
}

func (primaryScreen) Capture(r image.Rectangle) (*image.RGBA, error) {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	return screenshot.CaptureRect(r.Add(screen.Min))
}
