// Package locator finds a target image on screen or inside a source image.
// It composes the capture backends with the matcher and owns the polling
// loop used when waiting for a target to appear.
package locator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-locate-go/domain/capture"
	"github.com/soocke/pixel-locate-go/domain/match"
	"github.com/soocke/pixel-locate-go/images"
)

// Locator searches screens and images for a target.
type Locator struct {
	screen  capture.Screen
	matcher *match.Matcher
	logger  *slog.Logger
}

// New returns a Locator. screen may be nil when only FindInImage is used.
func New(screen capture.Screen, opts match.Options, logger *slog.Logger) (*Locator, error) {
	m, err := match.NewMatcher(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{screen: screen, matcher: m, logger: logger}, nil
}

var errNoScreen = errors.New("locator: no screen configured")

// FindOnScreen captures the whole screen and returns the screen position of
// the first match.
func (l *Locator) FindOnScreen(target image.Image) (image.Point, bool, error) {
	if l.screen == nil {
		return image.Point{}, false, errNoScreen
	}
	frame, err := capture.CaptureFull(l.screen)
	if err != nil {
		return image.Point{}, false, err
	}
	return l.find(frame, image.Point{}, target)
}

// FindInRegion captures r and returns the screen position of the first
// match inside it.
func (l *Locator) FindInRegion(target image.Image, r image.Rectangle) (image.Point, bool, error) {
	if l.screen == nil {
		return image.Point{}, false, errNoScreen
	}
	frame, err := capture.CaptureArea(l.screen, r)
	if err != nil {
		return image.Point{}, false, err
	}
	return l.find(frame, r.Min, target)
}

// FindInImage searches source, or only region of it when region is
// non-empty. The returned position is relative to source.
func (l *Locator) FindInImage(source, target image.Image, region image.Rectangle) (image.Point, bool, error) {
	if region.Empty() {
		return l.find(source, image.Point{}, target)
	}
	sub, err := images.Region(source, region)
	if err != nil {
		return image.Point{}, false, fmt.Errorf("locator: %w", err)
	}
	return l.find(sub, region.Min, target)
}

// WaitOnScreen captures region (the full screen when empty) every interval
// until target appears. Reaching ctx's deadline reports not found; explicit
// cancellation and capture failures are returned as errors.
func (l *Locator) WaitOnScreen(ctx context.Context, target image.Image, region image.Rectangle, interval time.Duration) (image.Point, bool, error) {
	if l.screen == nil {
		return image.Point{}, false, errNoScreen
	}
	svc := capture.NewService(l.screen, region, interval, l.logger)
	svc.Start()
	defer svc.Stop()

	var seen uint64
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				l.logger.Info("locate.timeout", "frames", seen)
				return image.Point{}, false, nil
			}
			return image.Point{}, false, ctx.Err()
		case <-svc.Updated():
		}
		if err := svc.Err(); err != nil {
			return image.Point{}, false, err
		}
		snap := svc.LatestFrame()
		if snap.Image == nil || snap.Sequence == seen {
			continue
		}
		seen = snap.Sequence
		at, ok, err := l.find(snap.Image, snap.Origin, target)
		if err != nil || ok {
			return at, ok, err
		}
	}
}

// find runs the matcher on frame and translates the result by origin.
func (l *Locator) find(frame image.Image, origin image.Point, target image.Image) (image.Point, bool, error) {
	res, err := l.matcher.Find(frame, target)
	if err != nil {
		return image.Point{}, false, err
	}
	attrs := []any{
		"candidates", res.Candidates,
		"verified", res.Verified,
		"duration", res.Duration,
	}
	if !res.Found {
		l.logger.Debug("locate.miss", attrs...)
		return image.Point{}, false, nil
	}
	at := res.Point().Add(origin)
	l.logger.Debug("locate.found", append(attrs, "x", at.X, "y", at.Y)...)
	return at, true, nil
}
