// Command catppuccinify recolors an image toward a Catppuccin flavor (or
// the palette of another image) through a generated hald CLUT.
//
// Usage:
//
//	catppuccinify [options] -o <output.png> <input>
//	catppuccinify [options] -lut <clut.png>          only generate the CLUT
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	catppuccinifier "github.com/lighttigerXIV/catppuccinifier"
	"github.com/lighttigerXIV/catppuccinifier/palette"
	"github.com/lighttigerXIV/catppuccinifier/utils"
	"github.com/lucasb-eyer/go-colorful"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "catppuccinify: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	flavor      string
	paletteFrom string
	colors      int
	extract     string
	algorithm   string
	level       int
	opts        catppuccinifier.Options
	lutOut      string
	lutIn       string
	output      string
	trilinear   bool
	verbose     bool
	input       string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	def := catppuccinifier.DefaultOptions()
	cfg := &config{opts: def}

	fs := flag.NewFlagSet("catppuccinify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.flavor, "flavor", "mocha", "palette flavor: latte, frappe, macchiato, mocha, oled")
	fs.StringVar(&cfg.paletteFrom, "palette-from", "", "extract the palette from this image instead of using a flavor")
	fs.IntVar(&cfg.colors, "colors", 16, "number of colors to extract with -palette-from")
	fs.StringVar(&cfg.extract, "extract", "dominantcolor", "extraction method: dominantcolor, kmeans")
	fs.StringVar(&cfg.algorithm, "algorithm", def.Algorithm.String(),
		"nearest-neighbor, linear-rbf, gaussian-rbf, shepards-method, gaussian-sampling")
	fs.IntVar(&cfg.level, "level", 8, "hald level (1-16)")
	fs.Float64Var(&cfg.opts.Luminosity, "luminosity", def.Luminosity, "blend factor in [0,1]")
	fs.Float64Var(&cfg.opts.Shape, "shape", def.Shape, "gaussian-rbf kernel width")
	fs.Float64Var(&cfg.opts.Power, "power", def.Power, "shepards-method exponent")
	fs.IntVar(&cfg.opts.Nearest, "nearest", def.Nearest, "neighbors used by the weighted algorithms")
	fs.Float64Var(&cfg.opts.Mean, "mean", def.Mean, "gaussian-sampling noise mean")
	fs.Float64Var(&cfg.opts.Std, "std", def.Std, "gaussian-sampling noise standard deviation")
	fs.IntVar(&cfg.opts.Iterations, "iterations", def.Iterations, "gaussian-sampling draws per color")
	fs.Uint64Var(&cfg.opts.Seed, "seed", def.Seed, "gaussian-sampling seed")
	fs.StringVar(&cfg.lutOut, "lut", "", "write the generated hald CLUT to this PNG")
	fs.StringVar(&cfg.lutIn, "load-lut", "", "apply an existing hald CLUT instead of generating one")
	fs.StringVar(&cfg.output, "o", "", "output image (PNG)")
	fs.BoolVar(&cfg.trilinear, "trilinear", false, "interpolate between CLUT samples")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	alg, err := catppuccinifier.ParseAlgorithm(cfg.algorithm)
	if err != nil {
		return nil, err
	}
	cfg.opts.Algorithm = alg

	switch fs.NArg() {
	case 0:
		if cfg.lutOut == "" {
			return nil, errors.New("no input image and no -lut output given")
		}
	case 1:
		cfg.input = fs.Arg(0)
		if cfg.output == "" {
			return nil, errors.New("missing -o output path")
		}
	default:
		return nil, fmt.Errorf("expected one input image, got %d", fs.NArg())
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	table, err := loadOrGenerate(logger, cfg)
	if err != nil {
		return err
	}
	if cfg.lutOut != "" {
		if err := utils.SaveTable(table, cfg.lutOut); err != nil {
			return fmt.Errorf("save clut: %w", err)
		}
		logger.Info("wrote clut", "path", cfg.lutOut, "level", table.Level)
	}
	if cfg.input == "" {
		return nil
	}

	img, err := utils.ReadNRGBA(cfg.input)
	if err != nil {
		return err
	}
	correct := catppuccinifier.Correct
	if cfg.trilinear {
		correct = catppuccinifier.CorrectTrilinear
	}
	start := time.Now()
	if err := correct(img, table); err != nil {
		return fmt.Errorf("correct %s: %w", cfg.input, err)
	}
	logger.Debug("corrected image", "size", img.Rect.Size(), "elapsed", time.Since(start))

	if err := utils.SaveImage(img, cfg.output); err != nil {
		return err
	}
	logger.Info("wrote image", "path", cfg.output)
	return nil
}

func loadOrGenerate(logger *slog.Logger, cfg *config) (*catppuccinifier.Table, error) {
	if cfg.lutIn != "" {
		t, err := utils.LoadTable(cfg.lutIn)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded clut", "path", cfg.lutIn, "level", t.Level)
		return t, nil
	}

	colors, err := paletteColors(logger, cfg)
	if err != nil {
		return nil, err
	}
	p, err := catppuccinifier.PaletteFromColorful(colors)
	if err != nil {
		return nil, err
	}
	logger.Info("generating clut",
		"colors", len(p),
		"algorithm", cfg.opts.Algorithm,
		"level", cfg.level,
		"luminosity", cfg.opts.Luminosity)
	start := time.Now()
	t, err := catppuccinifier.Generate(p, cfg.opts, cfg.level)
	if err != nil {
		return nil, err
	}
	logger.Debug("generated clut", "samples", len(t.Entries), "elapsed", time.Since(start))
	return t, nil
}

func paletteColors(logger *slog.Logger, cfg *config) ([]colorful.Color, error) {
	if cfg.paletteFrom == "" {
		f, err := palette.ParseFlavor(cfg.flavor)
		if err != nil {
			return nil, err
		}
		logger.Debug("using flavor", "flavor", f)
		return palette.Get(f), nil
	}
	method, err := palette.ParseMethod(cfg.extract)
	if err != nil {
		return nil, err
	}
	ref, err := utils.ReadImage(cfg.paletteFrom)
	if err != nil {
		return nil, err
	}
	colors := palette.Extract(ref, cfg.colors, method)
	palette.SortByBrightness(colors)
	logger.Info("extracted palette", "path", cfg.paletteFrom, "method", method, "colors", len(colors))
	return colors, nil
}
