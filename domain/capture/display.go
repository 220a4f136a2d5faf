package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// displayScreen captures one monitor of a multi-display setup through
// kbinani/screenshot. bounds is the monitor's rectangle on the virtual
// desktop.
type displayScreen struct {
	index  int
	bounds image.Rectangle
}

func newDisplayScreen(index int) (*displayScreen, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("capture: no active displays found")
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("capture: display %d out of range, %d active", index, n)
	}
	return &displayScreen{index: index, bounds: screenshot.GetDisplayBounds(index)}, nil
}

func (d *displayScreen) Size() (image.Point, error) { return d.bounds.Size(), nil }

func (d *displayScreen) Capture(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r.Add(d.bounds.Min))
}
