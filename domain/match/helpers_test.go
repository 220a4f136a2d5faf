package match

import (
	"image"
	"image/draw"
	"math/rand/v2"
)

// noiseFrame creates an opaque RGBA image filled with deterministic random
// colors whose channels are below limit.
func noiseFrame(w, h int, seed uint64, limit int) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.IntN(limit))
		img.Pix[i+1] = uint8(rng.IntN(limit))
		img.Pix[i+2] = uint8(rng.IntN(limit))
		img.Pix[i+3] = 255
	}
	return img
}

// buttonFrame draws a small gradient "button" with a border.
func buttonFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 234, 30, 99
			} else {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = uint8(40+x*3), uint8(200-y*2), uint8(x*y%200)
			}
			img.Pix[i+3] = 255
		}
	}
	return img
}

// paste copies src into dst with its top-left corner at at.
func paste(dst *image.RGBA, src image.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
}

// shifted returns a copy of img with delta added to every color channel,
// saturating at 255.
func shifted(img *image.RGBA, delta int) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = uint8(min(255, int(out.Pix[i+c])+delta))
		}
	}
	return out
}
