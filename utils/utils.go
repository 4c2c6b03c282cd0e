// Package utils holds the file collaborators of catppuccinifier: image
// decoding, PNG output and hald CLUT files.
package utils

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	catppuccinifier "github.com/lighttigerXIV/catppuccinifier"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes a PNG, JPEG, GIF, WebP, BMP or TIFF file.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ToNRGBA returns img as non-premultiplied RGBA. An *image.NRGBA is
// returned as is; anything else is copied.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// ReadNRGBA decodes the file at path into a fresh NRGBA buffer.
func ReadNRGBA(path string) (*image.NRGBA, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}

// SaveTable writes t as a hald CLUT PNG.
func SaveTable(t *catppuccinifier.Table, filename string) error {
	return SaveImage(t.Image(), filename)
}

// LoadTable reads a hald CLUT image written by SaveTable or any other
// hald CLUT generator.
func LoadTable(filename string) (*catppuccinifier.Table, error) {
	img, err := ReadImage(filename)
	if err != nil {
		return nil, err
	}
	t, err := catppuccinifier.TableFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}
