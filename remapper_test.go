package catppuccinifier

import (
	"errors"
	"math/rand/v2"
	"testing"
)

var allAlgorithms = []Algorithm{NearestNeighbor, LinearRBF, GaussianRBF, ShepardsMethod, GaussianSampling}

func testOptions(a Algorithm) Options {
	o := DefaultOptions()
	o.Algorithm = a
	o.Nearest = 4
	o.Iterations = 16
	return o
}

func testColors() []Color {
	rng := rand.New(rand.NewPCG(7, 7))
	colors := []Color{{0, 0, 0}, {255, 255, 255}, {10, 10, 10}, {250, 5, 5}}
	for range 60 {
		colors = append(colors, Color{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256))})
	}
	return colors
}

func mochaLike() Palette {
	return Palette{
		{0xf5, 0xe0, 0xdc}, {0xf3, 0x8b, 0xa8}, {0xfa, 0xb3, 0x87}, {0xf9, 0xe2, 0xaf},
		{0xa6, 0xe3, 0xa1}, {0x94, 0xe2, 0xd5}, {0x89, 0xb4, 0xfa}, {0xcb, 0xa6, 0xf7},
		{0xcd, 0xd6, 0xf4}, {0x6c, 0x70, 0x86}, {0x31, 0x32, 0x44}, {0x1e, 0x1e, 0x2e},
		{0x11, 0x11, 0x1b},
	}
}

func TestNewRemapperErrors(t *testing.T) {
	if _, err := NewRemapper(nil, DefaultOptions()); !errors.Is(err, ErrInvalidPalette) {
		t.Errorf("empty palette: got %v, want ErrInvalidPalette", err)
	}
	o := DefaultOptions()
	o.Luminosity = 2
	if _, err := NewRemapper(mochaLike(), o); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("bad luminosity: got %v, want ErrInvalidParameter", err)
	}
}

func TestNearestNeighborHitsPalette(t *testing.T) {
	p := mochaLike()
	r, err := NewRemapper(p, testOptions(NearestNeighbor))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range testColors() {
		got := r.Remap(c)
		if want := p[bruteKNearest(p, c, 1)[0]]; got != want {
			t.Errorf("Remap(%v) = %v, want %v", c, got, want)
		}
	}
}

func TestLuminosityZeroKeepsSource(t *testing.T) {
	for _, a := range allAlgorithms {
		o := testOptions(a)
		o.Luminosity = 0
		r, err := NewRemapper(mochaLike(), o)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range testColors() {
			if got := r.Remap(c); got != c {
				t.Errorf("%v: Remap(%v) = %v with luminosity 0", a, c, got)
			}
		}
	}
}

func TestSingleColorPalette(t *testing.T) {
	only := Color{0xcb, 0xa6, 0xf7}
	for _, a := range allAlgorithms {
		r, err := NewRemapper(Palette{only}, testOptions(a))
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range testColors() {
			if got := r.Remap(c); got != only {
				t.Errorf("%v: Remap(%v) = %v, want %v", a, c, got, only)
			}
		}
	}
}

func TestNearestClampedToPaletteSize(t *testing.T) {
	p := mochaLike()
	for _, a := range []Algorithm{LinearRBF, GaussianRBF, ShepardsMethod} {
		exact := testOptions(a)
		exact.Nearest = len(p)
		over := exact
		over.Nearest = 1000

		re, err := NewRemapper(p, exact)
		if err != nil {
			t.Fatal(err)
		}
		ro, err := NewRemapper(p, over)
		if err != nil {
			t.Fatal(err)
		}
		if ro.Neighbors() != len(p) {
			t.Errorf("%v: Neighbors() = %d, want %d", a, ro.Neighbors(), len(p))
		}
		for _, c := range testColors() {
			if want, got := re.Remap(c), ro.Remap(c); want != got {
				t.Errorf("%v: Remap(%v) = %v with nearest=%d, %v with nearest=1000", a, c, want, len(p), got)
			}
		}
	}
}

func TestShepardExactMatch(t *testing.T) {
	p := mochaLike()
	for _, power := range []float64{0.5, 1, 4, 16} {
		o := testOptions(ShepardsMethod)
		o.Power = power
		o.Nearest = len(p)
		r, err := NewRemapper(p, o)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range p {
			if got := r.Remap(c); got != c {
				t.Errorf("power %v: Remap(%v) = %v, want the palette color", power, c, got)
			}
		}
	}
}

func TestWeightedVariantsStayInHull(t *testing.T) {
	// Averages of palette colors cannot leave the palette bounding box.
	p := Palette{{40, 40, 40}, {200, 40, 40}, {40, 200, 40}, {40, 40, 200}}
	for _, a := range []Algorithm{LinearRBF, GaussianRBF, ShepardsMethod, GaussianSampling} {
		r, err := NewRemapper(p, testOptions(a))
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range testColors() {
			got := r.Remap(c)
			for _, ch := range []uint8{got.R, got.G, got.B} {
				if ch < 40 || ch > 200 {
					t.Fatalf("%v: Remap(%v) = %v leaves the palette hull", a, c, got)
				}
			}
		}
	}
}

func TestLinearRBFMidpoint(t *testing.T) {
	// With two neighbors the farther one gets weight 0.
	p := Palette{{0, 0, 0}, {200, 0, 0}}
	o := testOptions(LinearRBF)
	o.Nearest = 2
	r, err := NewRemapper(p, o)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Remap(Color{50, 0, 0}); got != p[0] {
		t.Errorf("Remap = %v, want %v", got, p[0])
	}
	// Equidistant: both weights are 0 and the first color wins.
	if got := r.Remap(Color{100, 0, 0}); got != p[0] {
		t.Errorf("Remap = %v, want %v", got, p[0])
	}
}

func TestGaussianRBFBlends(t *testing.T) {
	p := Palette{{0, 0, 0}, {200, 0, 0}}
	o := testOptions(GaussianRBF)
	o.Nearest = 2
	o.Shape = 1e6 // nearly flat kernel: plain average
	r, err := NewRemapper(p, o)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Remap(Color{30, 0, 0}); got != (Color{100, 0, 0}) {
		t.Errorf("Remap = %v, want {100 0 0}", got)
	}
}

func TestGaussianSamplingDeterministic(t *testing.T) {
	p := mochaLike()
	o := testOptions(GaussianSampling)
	r1, _ := NewRemapper(p, o)
	r2, _ := NewRemapper(p, o)
	for _, c := range testColors() {
		if a, b := r1.Remap(c), r2.Remap(c); a != b {
			t.Errorf("Remap(%v) = %v then %v", c, a, b)
		}
	}

	// Zero noise degenerates to nearest neighbor.
	o.Std = 0
	o.Mean = 0
	rs, _ := NewRemapper(p, o)
	rn, _ := NewRemapper(p, testOptions(NearestNeighbor))
	for _, c := range testColors() {
		if a, b := rs.Remap(c), rn.Remap(c); a != b {
			t.Errorf("zero-noise sampling Remap(%v) = %v, nearest neighbor gives %v", c, a, b)
		}
	}
}
