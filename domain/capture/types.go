package capture

import (
	"image"
	"time"
)

// Screen is a display that can be captured. Rectangles are in the
// screen's own coordinate space with (0, 0) at its top-left corner.
type Screen interface {
	// Size returns the width and height of the screen in pixels.
	Size() (image.Point, error)
	// Capture grabs r, which the caller guarantees lies inside the screen.
	Capture(r image.Rectangle) (*image.RGBA, error)
}

// FrameSnapshot carries the latest captured frame and metadata.
// Origin is the screen position of the frame's top-left pixel.
type FrameSnapshot struct {
	Image      *image.RGBA
	Origin     image.Point
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture loop behaviour for instrumentation.
type CaptureStats struct {
	Captures       uint64
	AvgCapture     time.Duration
	LastCapture    time.Time
	LatestFrameAge time.Duration
	Sequence       uint64
}
