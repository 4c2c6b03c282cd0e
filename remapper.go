package catppuccinifier

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Remapper pulls arbitrary colors toward a palette using one of the
// Algorithm variants. It is immutable after NewRemapper and safe for
// concurrent use.
type Remapper struct {
	palette Palette
	opts    Options
	nearest int
	index   *paletteIndex
}

// NewRemapper validates opts once and precomputes the palette neighbor index.
// Options.Nearest is clamped to the palette size.
func NewRemapper(p Palette, opts Options) (*Remapper, error) {
	if len(p) == 0 {
		return nil, ErrInvalidPalette
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	k := 1
	if opts.Algorithm.weighted() {
		k = min(opts.Nearest, len(p))
	}
	return &Remapper{
		palette: p,
		opts:    opts,
		nearest: k,
		index:   newPaletteIndex(p),
	}, nil
}

func (r *Remapper) Options() Options { return r.opts }
func (r *Remapper) Palette() Palette { return r.palette }

// Neighbors returns the neighbor count actually used after clamping.
func (r *Remapper) Neighbors() int { return r.nearest }

// Remap returns the remapped color for src.
func (r *Remapper) Remap(src Color) Color {
	var dst [1]Color
	r.remapBatch(r.newScratch(), dst[:], []Color{src})
	return dst[0]
}

// scratch is the mutable per-worker state. It is never shared between
// goroutines.
type scratch struct {
	search  *searcher
	weights []float64
	pcg     *rand.PCG
	normal  distuv.Normal
}

func (r *Remapper) newScratch() *scratch {
	pcg := rand.NewPCG(r.opts.Seed, 0)
	return &scratch{
		search:  r.index.searcher(r.nearest),
		weights: make([]float64, r.nearest),
		pcg:     pcg,
		normal:  distuv.Normal{Mu: r.opts.Mean, Sigma: r.opts.Std, Src: pcg},
	}
}

// remapBatch remaps src into dst. The variant is resolved here, once per
// batch, so the per-color loop runs on a concrete kernel type.
func (r *Remapper) remapBatch(s *scratch, dst, src []Color) {
	switch r.opts.Algorithm {
	case LinearRBF:
		remapWith(r, linearKernel{}, s, dst, src)
	case GaussianRBF:
		remapWith(r, gaussianKernel{twoShape2: 2 * r.opts.Shape * r.opts.Shape}, s, dst, src)
	case ShepardsMethod:
		remapWith(r, shepardKernel{power: r.opts.Power}, s, dst, src)
	case GaussianSampling:
		remapWith(r, samplingKernel{iterations: r.opts.Iterations}, s, dst, src)
	default:
		remapWith(r, nearestKernel{}, s, dst, src)
	}
}

type kernel interface {
	candidate(r *Remapper, s *scratch, src Color) vec
}

func remapWith[K kernel](r *Remapper, k K, s *scratch, dst, src []Color) {
	lum := r.opts.Luminosity
	for i, c := range src {
		if lum == 0 {
			dst[i] = c
			continue
		}
		dst[i] = c.vec().blend(k.candidate(r, s, c), lum).color()
	}
}

type nearestKernel struct{}

func (nearestKernel) candidate(r *Remapper, s *scratch, src Color) vec {
	return r.index.colors[s.search.nearest(src.vec())]
}

// linearKernel weights each of the k nearest colors by
// max(0, 1 - d/dmax), dmax being the distance of the farthest one.
type linearKernel struct{}

func (linearKernel) candidate(r *Remapper, s *scratch, src Color) vec {
	ns := s.search.knearest(src.vec())
	dmax := ns[len(ns)-1].dist
	if dmax == 0 {
		return r.index.colors[ns[0].index]
	}
	w := s.weights[:len(ns)]
	for i, n := range ns {
		w[i] = max(0, 1-n.dist/dmax)
	}
	return r.weightedAverage(ns, w)
}

// gaussianKernel weights each of the k nearest colors by exp(-d²/2σ²).
type gaussianKernel struct {
	twoShape2 float64
}

func (g gaussianKernel) candidate(r *Remapper, s *scratch, src Color) vec {
	ns := s.search.knearest(src.vec())
	if ns[len(ns)-1].dist == 0 {
		return r.index.colors[ns[0].index]
	}
	w := s.weights[:len(ns)]
	for i, n := range ns {
		w[i] = math.Exp(-(n.dist * n.dist) / g.twoShape2)
	}
	return r.weightedAverage(ns, w)
}

// shepardKernel is inverse distance weighting, 1/d^p. An exact palette
// match is returned as is.
type shepardKernel struct {
	power float64
}

func (sk shepardKernel) candidate(r *Remapper, s *scratch, src Color) vec {
	ns := s.search.knearest(src.vec())
	if ns[0].dist == 0 {
		return r.index.colors[ns[0].index]
	}
	w := s.weights[:len(ns)]
	for i, n := range ns {
		w[i] = 1 / math.Pow(n.dist, sk.power)
	}
	return r.weightedAverage(ns, w)
}

// samplingKernel averages the nearest palette colors of noisy copies of the
// source. The noise stream is keyed by the source color, so a color always
// draws the same values no matter which worker remaps it.
type samplingKernel struct {
	iterations int
}

func (sk samplingKernel) candidate(r *Remapper, s *scratch, src Color) vec {
	s.pcg.Seed(r.opts.Seed, streamID(src))
	v := src.vec()
	var acc vec
	for range sk.iterations {
		p := vec{
			v[0] + s.normal.Rand(),
			v[1] + s.normal.Rand(),
			v[2] + s.normal.Rand(),
		}
		c := r.index.colors[s.search.nearest(p)]
		acc[0] += c[0]
		acc[1] += c[1]
		acc[2] += c[2]
	}
	n := float64(sk.iterations)
	return vec{acc[0] / n, acc[1] / n, acc[2] / n}
}

func streamID(c Color) uint64 {
	return uint64(c.R)<<16 | uint64(c.G)<<8 | uint64(c.B)
}

// weightedAverage normalizes w over the neighbor colors. A zero or
// non-finite total falls back to the nearest neighbor.
func (r *Remapper) weightedAverage(ns []neighbor, w []float64) vec {
	total := floats.Sum(w)
	if !(total > 0) || math.IsInf(total, 0) {
		return r.index.colors[ns[0].index]
	}
	var acc vec
	for i, n := range ns {
		c := r.index.colors[n.index]
		acc[0] += c[0] * w[i]
		acc[1] += c[1] * w[i]
		acc[2] += c[2] * w[i]
	}
	return vec{acc[0] / total, acc[1] / total, acc[2] / total}
}
