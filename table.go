package catppuccinifier

import (
	"image"
	"image/color"
	"math"
)

// MaxLevel is the largest hald level whose samples are still distinct 8-bit
// values: level 16 gives 256 samples per channel.
const MaxLevel = 16

// Table is a generated color lookup cube. Entries are stored blue-major:
// the flat index of sample (r, g, b) is (b*Size+g)*Size+r, which is also the
// pixel order of a hald CLUT image. A Table is read-only once built.
type Table struct {
	Level   int
	Size    int // samples per channel, Level²
	Entries []Color
}

func newTable(level int) (*Table, error) {
	if level < 1 || level > MaxLevel {
		return nil, ErrInvalidResolution
	}
	n := level * level
	return &Table{
		Level:   level,
		Size:    n,
		Entries: make([]Color, n*n*n),
	}, nil
}

// IdentityTable returns the cube that maps every sample to itself.
func IdentityTable(level int) (*Table, error) {
	t, err := newTable(level)
	if err != nil {
		return nil, err
	}
	n := t.Size
	for b := range n {
		for g := range n {
			for r := range n {
				t.Entries[t.Index(r, g, b)] = t.sample(r, g, b)
			}
		}
	}
	return t, nil
}

func (t *Table) Index(r, g, b int) int {
	return (b*t.Size+g)*t.Size + r
}

func (t *Table) At(r, g, b int) Color {
	return t.Entries[t.Index(r, g, b)]
}

// sampleValue is the channel value of sample coordinate i.
func (t *Table) sampleValue(i int) uint8 {
	if t.Size == 1 {
		return 0
	}
	return uint8((i*255 + (t.Size-1)/2) / (t.Size - 1))
}

func (t *Table) sample(r, g, b int) Color {
	return Color{R: t.sampleValue(r), G: t.sampleValue(g), B: t.sampleValue(b)}
}

// bucket returns the sample coordinate nearest to channel value v.
func (t *Table) bucket(v uint8) int {
	return (int(v)*(t.Size-1) + 127) / 255
}

// Lookup returns the entry of the sample nearest to c. No interpolation is
// done between samples.
func (t *Table) Lookup(c Color) Color {
	return t.At(t.bucket(c.R), t.bucket(c.G), t.bucket(c.B))
}

// Interpolate blends the eight samples surrounding c trilinearly.
func (t *Table) Interpolate(c Color) Color {
	if t.Size == 1 {
		return t.Entries[0]
	}
	scale := float64(t.Size-1) / 255
	r0, fr := split(float64(c.R)*scale, t.Size)
	g0, fg := split(float64(c.G)*scale, t.Size)
	b0, fb := split(float64(c.B)*scale, t.Size)

	corner := func(dr, dg, db int) vec {
		return t.At(r0+dr, g0+dg, b0+db).vec()
	}
	c00 := corner(0, 0, 0).blend(corner(1, 0, 0), fr)
	c10 := corner(0, 1, 0).blend(corner(1, 1, 0), fr)
	c01 := corner(0, 0, 1).blend(corner(1, 0, 1), fr)
	c11 := corner(0, 1, 1).blend(corner(1, 1, 1), fr)
	c0 := c00.blend(c10, fg)
	c1 := c01.blend(c11, fg)
	return c0.blend(c1, fb).color()
}

// split returns the lower sample coordinate of x and the fractional offset
// toward the next one. The lower coordinate never exceeds size-2.
func split(x float64, size int) (int, float64) {
	i := min(int(math.Floor(x)), size-2)
	return i, x - float64(i)
}

// Image encodes t as a square hald CLUT raster of side Level³.
func (t *Table) Image() *image.NRGBA {
	side := t.Level * t.Level * t.Level
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i, c := range t.Entries {
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
	}
	return img
}

// TableFromImage decodes a hald CLUT raster. The image must be square with
// a side that is the cube of a level in [1, MaxLevel].
func TableFromImage(img image.Image) (*Table, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, ErrInvalidResolution
	}
	level := int(math.Round(math.Cbrt(float64(b.Dx()))))
	if level*level*level != b.Dx() {
		return nil, ErrInvalidResolution
	}
	t, err := newTable(level)
	if err != nil {
		return nil, err
	}
	side := b.Dx()
	for y := range side {
		for x := range side {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.Entries[y*side+x] = Color{R: c.R, G: c.G, B: c.B}
		}
	}
	return t, nil
}
