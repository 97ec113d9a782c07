package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeans/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uniform generates num points of the given width with components in [minVal, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) Uniform(num, width int, minVal, maxVal float64) model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*width)
	ds := make(model.Dataset, num)
	span := maxVal - minVal

	for i := range num {
		p := data[i*width : (i+1)*width : (i+1)*width]
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		ds[i] = p
	}

	return ds
}

// Blobs generates perCenter points around every center with Gaussian noise of
// the given spread. Points are interleaved (center 0, 1, ..., 0, 1, ...).
// The second return value holds the index of the generating center per point.
func (r *RNG) Blobs(centers []model.Point, perCenter int, spread float64) (model.Dataset, model.Labels) {
	r.mu.Lock()
	defer r.mu.Unlock()

	num := len(centers) * perCenter
	ds := make(model.Dataset, num)
	truth := make(model.Labels, num)

	for i := range num {
		c := i % len(centers)
		p := make(model.Point, len(centers[c]))
		for j := range p {
			p[j] = centers[c][j] + r.rand.NormFloat64()*spread
		}
		ds[i] = p
		truth[i] = c
	}

	return ds, truth
}

// WithPassengers returns a copy of ds where every point has extra random
// trailing components appended. The leading components are unchanged.
func (r *RNG) WithPassengers(ds model.Dataset, extra int) model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(model.Dataset, len(ds))
	for i, p := range ds {
		q := make(model.Point, len(p)+extra)
		copy(q, p)
		for j := len(p); j < len(q); j++ {
			q[j] = r.rand.NormFloat64() * 1e6
		}
		out[i] = q
	}

	return out
}

// SamePartition reports whether two labelings describe the same partition,
// ignoring how cluster indices are numbered.
func SamePartition(a, b model.Labels) bool {
	if len(a) != len(b) {
		return false
	}
	ab := map[int]int{}
	ba := map[int]int{}
	for i := range a {
		if v, ok := ab[a[i]]; ok && v != b[i] {
			return false
		}
		if v, ok := ba[b[i]]; ok && v != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}
