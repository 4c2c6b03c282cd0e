package catppuccinifier

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultSeed(t *testing.T) {
	// "42080085" read as a big-endian uint64.
	const want uint64 = 0x3432303830303835
	if DefaultSeed != want {
		t.Errorf("DefaultSeed = %#x, want %#x", DefaultSeed, want)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"nearest-neighbor", NearestNeighbor},
		{"NearestNeighbor", NearestNeighbor},
		{"linear_rbf", LinearRBF},
		{"GaussianRBF", GaussianRBF},
		{"shepards-method", ShepardsMethod},
		{"gaussian-sampling", GaussianSampling},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, _ := ParseAlgorithm(got.String()); back != got {
			t.Errorf("String round trip of %v gave %v", got, back)
		}
	}
	if _, err := ParseAlgorithm("bilinear"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown algorithm: got %v, want ErrInvalidParameter", err)
	}
}

func TestValidate(t *testing.T) {
	with := func(f func(*Options)) Options {
		o := DefaultOptions()
		f(&o)
		return o
	}
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"defaults", DefaultOptions(), ""},
		{"luminosity low", with(func(o *Options) { o.Luminosity = -0.1 }), "luminosity"},
		{"luminosity high", with(func(o *Options) { o.Luminosity = 1.5 }), "luminosity"},
		{"luminosity nan", with(func(o *Options) { o.Luminosity = math.NaN() }), "luminosity"},
		{"unknown algorithm", with(func(o *Options) { o.Algorithm = 42 }), "algorithm"},
		{"nearest zero", with(func(o *Options) { o.Algorithm = LinearRBF; o.Nearest = 0 }), "nearest"},
		{"nearest ignored", with(func(o *Options) { o.Nearest = 0 }), ""},
		{"shape zero", with(func(o *Options) { o.Algorithm = GaussianRBF; o.Shape = 0 }), "shape"},
		{"shape ignored", with(func(o *Options) { o.Algorithm = LinearRBF; o.Shape = 0 }), ""},
		{"power negative", with(func(o *Options) { o.Algorithm = ShepardsMethod; o.Power = -2 }), "power"},
		{"std negative", with(func(o *Options) { o.Algorithm = GaussianSampling; o.Std = -1 }), "std"},
		{"mean inf", with(func(o *Options) { o.Algorithm = GaussianSampling; o.Mean = math.Inf(1) }), "mean"},
		{"iterations zero", with(func(o *Options) { o.Algorithm = GaussianSampling; o.Iterations = 0 }), "iterations"},
		{"std zero", with(func(o *Options) { o.Algorithm = GaussianSampling; o.Std = 0 }), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var pe *ParameterError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want *ParameterError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("field = %q, want %q", pe.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%v does not match ErrInvalidParameter", err)
			}
		})
	}
}
