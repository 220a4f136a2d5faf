// Package images loads, crops and saves the images handed to the matcher.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an encoded image (png, jpeg, gif, bmp, tiff or webp) and
// returns it with the detected format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("images: decode: %w", err)
	}
	return img, format, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("images: decode: empty buffer")
	}
	img, _, err := Decode(bytes.NewReader(b))
	return img, err
}

// Load opens and decodes the image file at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("images: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("images: decode %s: %w", path, err)
	}
	return img, nil
}

// Save writes img to path, choosing the encoder from the file extension.
func Save(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("images: save %s: nil image", path)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("images: save %s: %w", path, err)
	}
	return nil
}
