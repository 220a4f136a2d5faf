package match

import (
	"image"
	"slices"
	"testing"
)

func TestPositions_RowMajorExclusive(t *testing.T) {
	p := NewPositions(image.Pt(5, 4), image.Pt(2, 2), false)
	if p.MaxX != 3 || p.MaxY != 2 || p.Count() != 6 {
		t.Fatalf("unexpected range %+v count=%d", p, p.Count())
	}
	got := slices.Collect(p.All())
	want := []image.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestPositions_Restartable(t *testing.T) {
	p := NewPositions(image.Pt(8, 6), image.Pt(3, 2), false)
	first := slices.Collect(p.All())
	second := slices.Collect(p.All())
	if !slices.Equal(first, second) || len(first) != p.Count() {
		t.Fatalf("iteration not repeatable: %d vs %d", len(first), len(second))
	}
}

func TestPositions_EarlyBreak(t *testing.T) {
	p := NewPositions(image.Pt(100, 100), image.Pt(1, 1), false)
	n := 0
	for range p.All() {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Fatalf("expected to stop after 5, got %d", n)
	}
}

func TestPositions_EqualSizeIsEmpty(t *testing.T) {
	for _, tc := range []struct{ src, tgt image.Point }{
		{image.Pt(10, 10), image.Pt(10, 10)},
		{image.Pt(10, 10), image.Pt(10, 3)},
		{image.Pt(10, 10), image.Pt(3, 10)},
		{image.Pt(10, 10), image.Pt(11, 3)},
	} {
		p := NewPositions(tc.src, tc.tgt, false)
		if !p.Empty() || p.Count() != 0 {
			t.Fatalf("src=%v tgt=%v: expected empty range, got %+v", tc.src, tc.tgt, p)
		}
		if n := len(slices.Collect(p.All())); n != 0 {
			t.Fatalf("src=%v tgt=%v: yielded %d positions", tc.src, tc.tgt, n)
		}
	}
}

func TestPositions_IncludeEdges(t *testing.T) {
	p := NewPositions(image.Pt(10, 10), image.Pt(10, 10), true)
	if got := slices.Collect(p.All()); !slices.Equal(got, []image.Point{{0, 0}}) {
		t.Fatalf("expected single offset, got %v", got)
	}
	p = NewPositions(image.Pt(5, 4), image.Pt(2, 2), true)
	if p.MaxX != 4 || p.MaxY != 3 {
		t.Fatalf("unexpected inclusive range %+v", p)
	}
	if !NewPositions(image.Pt(5, 4), image.Pt(6, 2), true).Empty() {
		t.Fatalf("oversized target must stay empty")
	}
}

func TestPositions_RowsClipped(t *testing.T) {
	p := NewPositions(image.Pt(4, 6), image.Pt(2, 2), false) // 2 x 4
	got := slices.Collect(p.Rows(-3, 2))
	if len(got) != 4 || got[0] != (image.Point{0, 0}) || got[3] != (image.Point{1, 1}) {
		t.Fatalf("unexpected rows %v", got)
	}
	if n := len(slices.Collect(p.Rows(3, 99))); n != 2 {
		t.Fatalf("expected 2 positions in last row, got %d", n)
	}
}

func TestRegionMatches_GenericAndFastPathAgree(t *testing.T) {
	src := noiseFrame(30, 20, 11, 256)
	tgt := image.NewRGBA(image.Rect(0, 0, 6, 4))
	paste(tgt, src.SubImage(image.Rect(9, 7, 15, 11)), image.Point{})
	tol := MustTolerance(0)

	if !RegionMatches(src, tgt, image.Pt(9, 7), tol) {
		t.Fatalf("fast path: expected match at (9,7)")
	}
	if !RegionMatches(wrap{src}, tgt, image.Pt(9, 7), tol) {
		t.Fatalf("generic path: expected match at (9,7)")
	}
	if RegionMatches(src, tgt, image.Pt(8, 7), tol) || RegionMatches(wrap{src}, tgt, image.Pt(8, 7), tol) {
		t.Fatalf("unexpected match at (8,7)")
	}
}

// wrap hides the concrete image type so the generic code path runs.
type wrap struct{ image.Image }
