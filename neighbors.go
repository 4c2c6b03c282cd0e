package catppuccinifier

import (
	"container/heap"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// entry is a palette color placed in the k-d tree. Queries use index -1.
type entry struct {
	p     vec
	index int
}

func (e *entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return e.p[d] - c.(*entry).p[d]
}

func (e *entry) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as kdtree expects.
func (e *entry) Distance(c kdtree.Comparable) float64 {
	return e.p.dist2(c.(*entry).p)
}

// entries implements kdtree.Interface with a deterministic pivot, so the
// tree shape depends only on the palette.
type entries []*entry

func (es entries) Index(i int) kdtree.Comparable         { return es[i] }
func (es entries) Len() int                              { return len(es) }
func (es entries) Slice(start, end int) kdtree.Interface { return es[start:end] }

func (es entries) Pivot(d kdtree.Dim) int {
	sort.Slice(es, func(i, j int) bool {
		if es[i].p[d] != es[j].p[d] {
			return es[i].p[d] < es[j].p[d]
		}
		return es[i].index < es[j].index
	})
	return len(es) / 2
}

// rankedHeap is a bounded kdtree.Keeper ordered by (distance, palette index).
// Equal distances rank the earlier palette color first, which makes nearest
// and k-nearest queries independent of tree traversal order.
type rankedHeap []kdtree.ComparableDist

func newRankedHeap(k int) *rankedHeap {
	h := make(rankedHeap, 1, k)
	h[0].Dist = math.Inf(1)
	return &h
}

func (h *rankedHeap) reset() {
	*h = (*h)[:1]
	(*h)[0] = kdtree.ComparableDist{Dist: math.Inf(1)}
}

// after reports whether a ranks behind b. The nil sentinel ranks last.
func after(a, b kdtree.ComparableDist) bool {
	if a.Comparable == nil || b.Comparable == nil {
		return a.Comparable == nil && b.Comparable != nil
	}
	if a.Dist != b.Dist {
		return a.Dist > b.Dist
	}
	return a.Comparable.(*entry).index > b.Comparable.(*entry).index
}

func (h *rankedHeap) Keep(c kdtree.ComparableDist) {
	if !after((*h)[0], c) {
		return
	}
	if len(*h) == cap(*h) {
		(*h)[0] = c
		heap.Fix(h, 0)
		return
	}
	heap.Push(h, c)
}

func (h *rankedHeap) Max() kdtree.ComparableDist { return (*h)[0] }
func (h *rankedHeap) Len() int                   { return len(*h) }
func (h *rankedHeap) Less(i, j int) bool         { return after((*h)[i], (*h)[j]) }
func (h *rankedHeap) Swap(i, j int)              { (*h)[i], (*h)[j] = (*h)[j], (*h)[i] }
func (h *rankedHeap) Push(x any)                 { *h = append(*h, x.(kdtree.ComparableDist)) }

func (h *rankedHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// paletteIndex answers nearest-color queries over a fixed palette.
type paletteIndex struct {
	colors []vec
	tree   *kdtree.Tree
}

func newPaletteIndex(p Palette) *paletteIndex {
	colors := make([]vec, len(p))
	es := make(entries, len(p))
	for i, c := range p {
		colors[i] = c.vec()
		es[i] = &entry{p: colors[i], index: i}
	}
	return &paletteIndex{colors: colors, tree: kdtree.New(es, false)}
}

// neighbor is a palette color and its Euclidean distance to a query.
type neighbor struct {
	index int
	dist  float64
}

// searcher holds the per-worker scratch for paletteIndex queries.
type searcher struct {
	idx   *paletteIndex
	query entry
	heap  *rankedHeap
	out   []neighbor
}

func (pi *paletteIndex) searcher(k int) *searcher {
	k = max(1, min(k, len(pi.colors)))
	return &searcher{
		idx:   pi,
		query: entry{index: -1},
		heap:  newRankedHeap(k),
		out:   make([]neighbor, 0, k),
	}
}

// nearest returns the palette index closest to v, ties going to the lowest
// index.
func (s *searcher) nearest(v vec) int {
	best, bestDist := 0, math.Inf(1)
	if len(s.idx.colors) <= linearScanLimit {
		for i, c := range s.idx.colors {
			if d := v.dist2(c); d < bestDist {
				best, bestDist = i, d
			}
		}
		return best
	}
	return s.knearest(v)[0].index
}

// knearest returns up to k neighbors of v ordered by distance, then palette
// index. The slice is reused by the next call.
func (s *searcher) knearest(v vec) []neighbor {
	s.query.p = v
	s.heap.reset()
	s.idx.tree.NearestSet(s.heap, &s.query)
	s.out = s.out[:0]
	for _, cd := range *s.heap {
		s.out = append(s.out, neighbor{
			index: cd.Comparable.(*entry).index,
			dist:  math.Sqrt(cd.Dist),
		})
	}
	return s.out
}

// linearScanLimit is the palette size below which a plain scan beats the
// tree for single nearest queries.
const linearScanLimit = 8
