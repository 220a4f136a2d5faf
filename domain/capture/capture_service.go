package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// Service captures a screen region in the background and exposes the
// latest frame. The first capture error stops the loop; it is reported by
// Err and never retried. Start and Stop are safe for concurrent use. Use
// NewService to construct an instance.
type Service interface {
	Start()
	Stop()
	Running() bool
	LatestFrame() FrameSnapshot
	// Updated is signalled after each new frame and when the loop stops on
	// an error.
	Updated() <-chan struct{}
	Err() error
	Stats() CaptureStats
}

type captureService struct {
	screen   Screen
	region   image.Rectangle // empty means full screen
	interval time.Duration
	logger   *slog.Logger

	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	err          atomic.Pointer[error]
	updated      chan struct{}
	mu           sync.Mutex // guards quit
	quit         chan struct{}
	wg           sync.WaitGroup
	captures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewService constructs a capture service for region of screen. An empty
// region captures the full screen. interval is the pause between captures.
func NewService(screen Screen, region image.Rectangle, interval time.Duration, logger *slog.Logger) Service {
	return &captureService{
		screen:   screen,
		region:   region,
		interval: interval,
		logger:   logger,
		updated:  make(chan struct{}, 1),
	}
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Updated() <-chan struct{} { return s.updated }

func (s *captureService) Err() error {
	if p := s.err.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:       captures,
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

func (s *captureService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.err.Store(nil)
	s.quit = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.quit)
}

// Stop ends the capture loop and waits for it to exit.
func (s *captureService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.CompareAndSwap(true, false) {
		close(s.quit)
	}
	s.wg.Wait()
}

func (s *captureService) loop(quit chan struct{}) {
	defer s.wg.Done()
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	for {
		start := time.Now()
		img, err := s.grab()
		if err != nil {
			// Err hands the failure to the caller, which decides how to report it.
			if s.logger != nil {
				s.logger.Debug("capture.failed", "region", s.region, "error", err)
			}
			s.err.Store(&err)
			if s.running.CompareAndSwap(true, false) {
				close(quit)
			}
			s.signal()
			return
		}

		s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
		s.captures.Add(1)
		seq := s.sequence.Add(1)
		s.latest.Store(&FrameSnapshot{Image: img, Origin: s.region.Min, CapturedAt: time.Now(), Sequence: seq})
		s.signal()

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		select {
		case <-quit:
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *captureService) grab() (*image.RGBA, error) {
	if s.region.Empty() {
		return CaptureFull(s.screen)
	}
	return CaptureArea(s.screen, s.region)
}

func (s *captureService) signal() {
	select {
	case s.updated <- struct{}{}:
	default:
	}
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
