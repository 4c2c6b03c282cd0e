package catppuccinifier

import (
	"runtime"
	"sync"
)

// Generate builds the lookup cube for palette p at the given hald level.
// Every sample of the cube is remapped exactly once; the result depends only
// on (p, opts, level), never on how the work was scheduled.
func Generate(p Palette, opts Options, level int) (*Table, error) {
	r, err := NewRemapper(p, opts)
	if err != nil {
		return nil, err
	}
	return r.Generate(level)
}

// Generate builds the lookup cube at the given hald level with r.
func (r *Remapper) Generate(level int) (*Table, error) {
	t, err := newTable(level)
	if err != nil {
		return nil, err
	}
	n := t.Size
	plane := n * n

	numWorkers := min(runtime.GOMAXPROCS(0), n)
	planesPerWorker := (n + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := range numWorkers {
		bStart := w * planesPerWorker
		bEnd := min(bStart+planesPerWorker, n)
		if bStart >= bEnd {
			break
		}
		wg.Add(1)
		go func(bStart, bEnd int) {
			defer wg.Done()
			s := r.newScratch()
			src := make([]Color, plane)
			for b := bStart; b < bEnd; b++ {
				for g := range n {
					for rr := range n {
						src[g*n+rr] = t.sample(rr, g, b)
					}
				}
				r.remapBatch(s, t.Entries[b*plane:(b+1)*plane], src)
			}
		}(bStart, bEnd)
	}
	wg.Wait()
	return t, nil
}
