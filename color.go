package catppuccinifier

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triplet. Alpha never takes part in remapping.
type Color struct {
	R, G, B uint8
}

// FromColorful converts a go-colorful color (channels in [0,1]) to a Color,
// clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns c as a go-colorful color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Distance returns the Euclidean distance between a and b on the 0..255 scale.
func Distance(a, b Color) float64 {
	return math.Sqrt(a.vec().dist2(b.vec()))
}

// Blend mixes src toward candidate: src*(1-luminosity) + candidate*luminosity.
func Blend(src, candidate Color, luminosity float64) Color {
	return src.vec().blend(candidate.vec(), luminosity).color()
}

// vec is a color in float64 channel space, used for all weighting math.
type vec [3]float64

func (c Color) vec() vec {
	return vec{float64(c.R), float64(c.G), float64(c.B)}
}

func (v vec) dist2(w vec) float64 {
	d0 := v[0] - w[0]
	d1 := v[1] - w[1]
	d2 := v[2] - w[2]
	return d0*d0 + d1*d1 + d2*d2
}

func (v vec) blend(w vec, t float64) vec {
	oneMinusT := 1 - t
	return vec{
		v[0]*oneMinusT + w[0]*t,
		v[1]*oneMinusT + w[1]*t,
		v[2]*oneMinusT + w[2]*t,
	}
}

func (v vec) color() Color {
	return Color{R: channel(v[0]), G: channel(v[1]), B: channel(v[2])}
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}

// Palette is an ordered set of unique target colors.
type Palette []Color

// NewPalette returns the colors with duplicates removed, keeping the first
// occurrence of each.
func NewPalette(colors ...Color) (Palette, error) {
	seen := make(map[Color]struct{}, len(colors))
	p := make(Palette, 0, len(colors))
	for _, c := range colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		p = append(p, c)
	}
	if len(p) == 0 {
		return nil, ErrInvalidPalette
	}
	return p, nil
}

// PaletteFromColorful converts palette collaborator output to a Palette.
func PaletteFromColorful(colors []colorful.Color) (Palette, error) {
	out := make([]Color, len(colors))
	for i, c := range colors {
		out[i] = FromColorful(c)
	}
	return NewPalette(out...)
}
