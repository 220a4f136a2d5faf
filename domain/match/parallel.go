package match

import (
	"image"
	"math"
	"sync"
	"sync/atomic"
)

// bandsPerWorker controls how finely rows are split. Smaller bands let
// workers abandon rows below an early match sooner.
const bandsPerWorker = 4

// findParallel splits the candidate rows into bands scanned concurrently.
// The winning offset is the smallest row-major index found by any band, so
// the result equals that of a sequential scan.
func (m *Matcher) findParallel(source, target image.Image, pos Positions) Result {
	workers := m.opts.Workers
	bandRows := max(1, (pos.MaxY+workers*bandsPerWorker-1)/(workers*bandsPerWorker))

	var best atomic.Int64
	best.Store(math.MaxInt64)
	var candidates, verified atomic.Uint64
	index := func(p image.Point) int64 { return int64(p.Y)*int64(pos.MaxX) + int64(p.X) }
	stop := func(p image.Point) bool { return index(p) >= best.Load() }

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for y0 := 0; y0 < pos.MaxY; y0 += bandRows {
		if stop(image.Point{Y: y0}) {
			break
		}
		y1 := min(y0+bandRows, pos.MaxY)
		wg.Add(1)
		sem <- struct{}{}
		go func(y0, y1 int) {
			defer wg.Done()
			defer func() { <-sem }()
			r := m.scan(source, target, pos, y0, y1, stop)
			candidates.Add(r.Candidates)
			verified.Add(r.Verified)
			if !r.Found {
				return
			}
			idx := index(r.Point())
			for {
				cur := best.Load()
				if idx >= cur || best.CompareAndSwap(cur, idx) {
					return
				}
			}
		}(y0, y1)
	}
	wg.Wait()

	res := Result{Candidates: candidates.Load(), Verified: verified.Load()}
	if b := best.Load(); b != math.MaxInt64 {
		res.X, res.Y, res.Found = int(b%int64(pos.MaxX)), int(b/int64(pos.MaxX)), true
	}
	return res
}
