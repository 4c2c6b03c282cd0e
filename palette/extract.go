package palette

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how a palette is pulled out of a reference image.
type Method int

const (
	MethodDominantColor Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "dominantcolor", "dominant":
		return MethodDominantColor, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return 0, fmt.Errorf("palette: unknown extraction method %q", s)
}

// candidate is an extracted color and how much of the image it covers.
type candidate struct {
	col    colorful.Color
	weight float64
}

// Extract returns up to k well separated colors of img, so an image can be
// recolored toward the palette of another image. KMeans falls back to the
// dominant color method when clustering yields nothing.
func Extract(img image.Image, k int, method Method) []colorful.Color {
	if method == MethodKMeans {
		if p := fromKMeans(img, k); len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned no clusters, falling back to dominantcolor")
	}
	return fromDominant(img, k)
}

func fromDominant(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]candidate, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, candidate{col: col.Clamped(), weight: c.Weight})
	}
	return selectDiverse(cands, k)
}

// maxKMeansSamples bounds the observations handed to kmeans.
const maxKMeansSamples = 12000

func fromKMeans(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	if k <= 0 || b.Empty() {
		return nil
	}
	step := 1
	if area := b.Dx() * b.Dy(); area > maxKMeansSamples {
		step = int(math.Sqrt(float64(area)/maxKMeansSamples)) + 1
	}
	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(obs) == 0 {
		return nil
	}
	// Over-cluster, then keep the k most distinct clusters.
	km := kmeans.New()
	parts, err := km.Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil {
		return nil
	}
	cands := make([]candidate, 0, len(parts))
	for _, c := range parts {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		cands = append(cands, candidate{col: col.Clamped(), weight: float64(len(c.Observations))})
	}
	return selectDiverse(cands, k)
}

// selectDiverse greedily picks k candidates: the heaviest first, then the
// one farthest in Lab from everything already picked, scaled by its weight.
func selectDiverse(cands []candidate, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	for i := range cands {
		cands[i].weight = max(cands[i].weight, 1e-6)
		maxW = max(maxW, cands[i].weight)
	}

	first := 0
	for i, c := range cands {
		if c.weight > cands[first].weight {
			first = i
		}
	}
	picked := []int{first}
	taken := make([]bool, len(cands))
	taken[first] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if taken[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, j := range picked {
				nearest = min(nearest, c.col.DistanceLab(cands[j].col))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(c.weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, j := range picked {
		out[i] = cands[j].col
	}
	return out
}

// SortByBrightness orders colors from darkest to brightest by relative
// luminance.
func SortByBrightness(p []colorful.Color) {
	slices.SortStableFunc(p, func(a, b colorful.Color) int {
		la, lb := luminance(a), luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Swatch renders p as a row of tileSize squares.
func Swatch(p []colorful.Color, tileSize int) (*image.NRGBA, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("palette: empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(p), tileSize))
	for i, c := range p {
		r, g, b := c.Clamped().RGB255()
		fill := color.NRGBA{R: r, G: g, B: b, A: 255}
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img, nil
}
