package catppuccinifier

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Algorithm selects how a cube sample is pulled toward the palette.
type Algorithm int

const (
	NearestNeighbor Algorithm = iota
	LinearRBF
	GaussianRBF
	ShepardsMethod
	GaussianSampling
)

var algorithmNames = [...]string{
	NearestNeighbor:  "nearest-neighbor",
	LinearRBF:        "linear-rbf",
	GaussianRBF:      "gaussian-rbf",
	ShepardsMethod:   "shepards-method",
	GaussianSampling: "gaussian-sampling",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// weighted reports whether the variant blends the k nearest palette colors.
func (a Algorithm) weighted() bool {
	return a == LinearRBF || a == GaussianRBF || a == ShepardsMethod
}

// ParseAlgorithm accepts the names printed by Algorithm.String, ignoring
// case, dashes and underscores ("GaussianRBF" and "gaussian_rbf" both work).
func ParseAlgorithm(s string) (Algorithm, error) {
	key := normalizeName(s)
	for i, name := range algorithmNames {
		if normalizeName(name) == key {
			return Algorithm(i), nil
		}
	}
	return 0, &ParameterError{Field: "algorithm", Value: s, Reason: "unknown algorithm"}
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// DefaultSeed seeds GaussianSampling so repeated runs are reproducible.
var DefaultSeed = binary.BigEndian.Uint64([]byte("42080085"))

type Options struct {
	Algorithm Algorithm
	// Blend factor in [0,1]. 0 keeps the source color, 1 fully replaces it
	// with the remapped candidate.
	Luminosity float64
	// Gaussian RBF kernel width, in 0..255 channel units. Must be > 0.
	Shape float64
	// Shepard's method distance exponent. Must be > 0; values above 1
	// sharpen the pull toward the closest palette color.
	Power float64
	// Neighbor count for the weighted variants. Clamped to the palette size.
	Nearest int
	// Gaussian sampling noise, per channel.
	Mean, Std float64
	// Gaussian sampling draws per source color.
	Iterations int
	// Gaussian sampling stream seed.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Algorithm:  NearestNeighbor,
		Luminosity: 1,
		Shape:      128,
		Power:      4,
		Nearest:    16,
		Mean:       0,
		Std:        20,
		Iterations: 512,
		Seed:       DefaultSeed,
	}
}

// Validate checks the fields used by o.Algorithm. Fields that the selected
// variant ignores are not checked.
func (o Options) Validate() error {
	if o.Algorithm < 0 || int(o.Algorithm) >= len(algorithmNames) {
		return &ParameterError{Field: "algorithm", Value: int(o.Algorithm), Reason: "unknown algorithm"}
	}
	if math.IsNaN(o.Luminosity) || o.Luminosity < 0 || o.Luminosity > 1 {
		return &ParameterError{Field: "luminosity", Value: o.Luminosity, Reason: "must be in [0,1]"}
	}
	if o.Algorithm.weighted() && o.Nearest < 1 {
		return &ParameterError{Field: "nearest", Value: o.Nearest, Reason: "must be at least 1"}
	}
	switch o.Algorithm {
	case GaussianRBF:
		if !(o.Shape > 0) || math.IsInf(o.Shape, 0) {
			return &ParameterError{Field: "shape", Value: o.Shape, Reason: "must be a finite value > 0"}
		}
	case ShepardsMethod:
		if !(o.Power > 0) || math.IsInf(o.Power, 0) {
			return &ParameterError{Field: "power", Value: o.Power, Reason: "must be a finite value > 0"}
		}
	case GaussianSampling:
		if math.IsNaN(o.Mean) || math.IsInf(o.Mean, 0) {
			return &ParameterError{Field: "mean", Value: o.Mean, Reason: "must be finite"}
		}
		if math.IsNaN(o.Std) || math.IsInf(o.Std, 0) || o.Std < 0 {
			return &ParameterError{Field: "std", Value: o.Std, Reason: "must be a finite value >= 0"}
		}
		if o.Iterations < 1 {
			return &ParameterError{Field: "iterations", Value: o.Iterations, Reason: "must be at least 1"}
		}
	}
	return nil
}
