package match

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestImagesMatch_Reflexive(t *testing.T) {
	img := noiseFrame(37, 23, 1, 256)
	for _, l := range []float64{0, 0.3, 1} {
		ok, err := ImagesMatch(img, img, l)
		if err != nil || !ok {
			t.Fatalf("image vs itself at looseness %v: ok=%v err=%v", l, ok, err)
		}
	}
}

func TestImagesMatch_DimensionMismatch(t *testing.T) {
	a := noiseFrame(10, 10, 1, 256)
	b := noiseFrame(10, 11, 1, 256)
	_, err := ImagesMatch(a, b, 0)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	var de *DimensionError
	if !errors.As(err, &de) || de.A != (image.Point{10, 10}) || de.B != (image.Point{10, 11}) {
		t.Fatalf("unexpected dimension error %#v", de)
	}
}

func TestImagesMatch_SinglePixelDifference(t *testing.T) {
	a := noiseFrame(20, 20, 7, 200)
	b := image.NewRGBA(a.Rect)
	copy(b.Pix, a.Pix)
	i := b.PixOffset(19, 19)
	b.Pix[i+1] += 3

	if ok, _ := ImagesMatch(a, b, 0); ok {
		t.Fatalf("expected mismatch at looseness 0")
	}
	if ok, _ := ImagesMatch(a, b, 0.02); !ok {
		t.Fatalf("expected match at looseness 0.02")
	}
}

func TestImagesMatch_MixedFormats(t *testing.T) {
	a := noiseFrame(16, 9, 3, 256)
	b := image.NewNRGBA(a.Rect)
	draw.Draw(b, b.Rect, a, image.Point{}, draw.Src)
	if ok, err := ImagesMatch(a, b, 0); err != nil || !ok {
		t.Fatalf("rgba vs nrgba copy: ok=%v err=%v", ok, err)
	}
	b.SetNRGBA(4, 4, color.NRGBA{255, 255, 255, 255})
	a.SetRGBA(4, 4, color.RGBA{0, 0, 0, 255})
	if ok, _ := ImagesMatch(a, b, 0.5); ok {
		t.Fatalf("expected mismatch after changing one pixel")
	}
}

func TestImagesMatch_InvalidLooseness(t *testing.T) {
	img := noiseFrame(4, 4, 1, 256)
	if _, err := ImagesMatch(img, img, -0.5); !errors.Is(err, ErrInvalidLooseness) {
		t.Fatalf("expected ErrInvalidLooseness, got %v", err)
	}
}
