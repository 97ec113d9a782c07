package kmeans

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
)

var (
	// ErrInvalidK is returned when k is not in [1, N].
	ErrInvalidK = errors.New("invalid k")

	// ErrInvalidThreshold is returned for negative or NaN thresholds.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrInvalidLabel is returned when an assignment references a cluster outside [0, k).
	ErrInvalidLabel = errors.New("invalid label")
)

// seedStream decorrelates the second PCG word from the user seed.
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns the deterministic generator used for initialization.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// Initialize selects k distinct points uniformly at random (without replacement)
// and returns copies of their first ndim components.
func Initialize(ds model.Dataset, k, ndim int, rng *rand.Rand) (model.Centroids, error) {
	n := len(ds)
	if n == 0 {
		return nil, model.ErrEmptyDataset
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: %d (dataset has %d points)", ErrInvalidK, k, n)
	}

	// Partial Fisher-Yates: only the first k slots are shuffled.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}

	centroids := make(model.Centroids, k)
	for i := 0; i < k; i++ {
		sub, err := project(ds[perm[i]], ndim, "point", perm[i])
		if err != nil {
			return nil, err
		}
		centroids[i] = model.Point(sub).Clone()
	}
	return centroids, nil
}

// FromPoints validates caller-supplied initial centroids and returns copies
// projected to ndim components. Points wider than ndim are truncated.
func FromPoints(points []model.Point, k, ndim int) (model.Centroids, error) {
	if len(points) != k {
		return nil, fmt.Errorf("%w: %d initial centroids for k=%d", ErrInvalidK, len(points), k)
	}
	centroids := make(model.Centroids, k)
	for i, p := range points {
		sub, err := project(p, ndim, "centroid", i)
		if err != nil {
			return nil, err
		}
		centroids[i] = model.Point(sub).Clone()
	}
	return centroids, nil
}

// project is distance.Project with the offending input identified.
// Expected is the requested ndim, Actual the width of the input.
func project(p model.Point, ndim int, context string, index int) ([]float64, error) {
	sub, err := distance.Project(p, ndim)
	if err != nil {
		return nil, &model.ErrDimensionMismatch{Context: context, Index: index, Expected: ndim, Actual: len(p)}
	}
	return sub, nil
}
