package catppuccinifier

import (
	"image"
	"runtime"
	"sync"

	"golang.org/x/image/draw"
)

// Correct replaces the RGB channels of every pixel of img with the table
// entry of its nearest cube sample. Alpha is left untouched.
func Correct(img *image.NRGBA, t *Table) error {
	return correct(img, t, t.Lookup)
}

// CorrectTrilinear is Correct with trilinear interpolation between the
// eight surrounding cube samples.
func CorrectTrilinear(img *image.NRGBA, t *Table) error {
	return correct(img, t, t.Interpolate)
}

// CorrectImage corrects a copy of src. The copy has the bounds of src and
// keeps its alpha.
func CorrectImage(src image.Image, t *Table) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	if err := Correct(dst, t); err != nil {
		return nil, err
	}
	return dst, nil
}

func correct(img *image.NRGBA, t *Table, lookup func(Color) Color) error {
	if img == nil || img.Rect.Empty() {
		return ErrEmptyImage
	}
	if t == nil || len(t.Entries) == 0 {
		return ErrInvalidResolution
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()

	numWorkers := min(runtime.GOMAXPROCS(0), h)
	rowsPerWorker := (h + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for wk := range numWorkers {
		yStart := wk * rowsPerWorker
		yEnd := min(yStart+rowsPerWorker, h)
		if yStart >= yEnd {
			break
		}
		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				row := img.Pix[y*img.Stride : y*img.Stride+w*4]
				for x := 0; x < len(row); x += 4 {
					c := lookup(Color{R: row[x], G: row[x+1], B: row[x+2]})
					row[x] = c.R
					row[x+1] = c.G
					row[x+2] = c.B
				}
			}
		}(yStart, yEnd)
	}
	wg.Wait()
	return nil
}
