// Package match implements tolerance-based, exact-scale template matching:
// a per-channel pixel comparator and an exhaustive row-major search for
// the first window of a source image that matches a target image.
package match

import (
	"errors"
	"image"
	"time"
)

// Options configures a Matcher.
type Options struct {
	Looseness float64 // Per-channel tolerance in [0, 1] (0 = exact)
	// IncludeEdges extends the scan range to offsets where the target is
	// flush with the source's right or bottom edge. Off by default, in which
	// case the last column and row of offsets are never tried.
	IncludeEdges bool
	Prefilter    Prefilter // Cheap rejection test; AnchorPrefilter when nil
	Workers      int       // Goroutines scanning rows; <= 1 scans sequentially
}

// Result is the outcome of a search. X and Y are relative to the source's
// bounds and are only meaningful when Found is set.
type Result struct {
	X, Y       int
	Found      bool
	Candidates uint64        // offsets visited
	Verified   uint64        // offsets that passed the prefilter
	Duration   time.Duration // wall time of the search
}

// Point returns the match position.
func (r Result) Point() image.Point { return image.Point{X: r.X, Y: r.Y} }

// Matcher searches a source image for the first occurrence of a target.
// It holds no per-search state and may be shared between goroutines.
type Matcher struct {
	opts Options
	tol  Tolerance
}

// NewMatcher validates opts and returns a Matcher.
func NewMatcher(opts Options) (*Matcher, error) {
	tol, err := NewTolerance(opts.Looseness)
	if err != nil {
		return nil, err
	}
	if opts.Prefilter == nil {
		opts.Prefilter = AnchorPrefilter{}
	}
	return &Matcher{opts: opts, tol: tol}, nil
}

// Tolerance returns the validated tolerance in use.
func (m *Matcher) Tolerance() Tolerance { return m.tol }

// FindTarget returns the top-left corner of the first region of source, in
// row-major scan order, that matches target within looseness.
func FindTarget(source, target image.Image, looseness float64) (image.Point, bool, error) {
	m, err := NewMatcher(Options{Looseness: looseness})
	if err != nil {
		return image.Point{}, false, err
	}
	res, err := m.Find(source, target)
	if err != nil {
		return image.Point{}, false, err
	}
	return res.Point(), res.Found, nil
}

// Find scans source for target. A search that completes without a match
// returns Found == false and a nil error.
func (m *Matcher) Find(source, target image.Image) (Result, error) {
	if source == nil || target == nil {
		return Result{}, errors.New("match: nil image")
	}
	ts := target.Bounds().Size()
	if ts.X <= 0 || ts.Y <= 0 {
		return Result{}, ErrEmptyTarget
	}
	start := time.Now()
	pos := NewPositions(source.Bounds().Size(), ts, m.opts.IncludeEdges)
	var res Result
	switch {
	case pos.Empty():
	case m.opts.Workers > 1 && pos.MaxY > 1:
		res = m.findParallel(source, target, pos)
	default:
		res = m.scan(source, target, pos, 0, pos.MaxY, nil)
	}
	res.Duration = time.Since(start)
	return res, nil
}

// scan visits rows [y0, y1) and returns the first match. If stop is non-nil
// it is consulted before each candidate and ends the scan when true.
func (m *Matcher) scan(source, target image.Image, pos Positions, y0, y1 int, stop func(image.Point) bool) Result {
	var res Result
	for at := range pos.Rows(y0, y1) {
		if stop != nil && stop(at) {
			break
		}
		res.Candidates++
		if !m.opts.Prefilter.Accept(source, target, at, m.tol) {
			continue
		}
		res.Verified++
		if RegionMatches(source, target, at, m.tol) {
			res.X, res.Y, res.Found = at.X, at.Y, true
			break
		}
	}
	return res
}
