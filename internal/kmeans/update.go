package kmeans

import (
	"fmt"

	"github.com/hupe1980/kmeans/model"
	"gonum.org/v1/gonum/floats"
)

// Update recomputes every centroid as the per-dimension mean of the first ndim
// components of its assigned points.
//
// A cluster that received no points keeps a copy of its previous centroid.
// The returned centroid set is freshly allocated; prev is never modified.
func Update(ds model.Dataset, labels model.Labels, prev model.Centroids, ndim int) (model.Centroids, error) {
	if err := checkCentroids(prev, ndim); err != nil {
		return nil, err
	}
	if len(labels) != len(ds) {
		return nil, &model.ErrDimensionMismatch{Context: "labels", Index: -1, Expected: len(ds), Actual: len(labels)}
	}

	k := len(prev)
	sums := make(model.Centroids, k)
	for j := range sums {
		sums[j] = make(model.Point, ndim)
	}
	counts := make([]int, k)

	for i, p := range ds {
		label := labels[i]
		if label < 0 || label >= k {
			return nil, fmt.Errorf("%w: %d at point %d (k=%d)", ErrInvalidLabel, label, i, k)
		}
		vec, err := project(p, ndim, "point", i)
		if err != nil {
			return nil, err
		}
		floats.Add(sums[label], vec)
		counts[label]++
	}

	next := make(model.Centroids, k)
	for j := range next {
		if counts[j] == 0 {
			next[j] = prev[j].Clone()
			continue
		}
		floats.Scale(1/float64(counts[j]), sums[j])
		next[j] = sums[j]
	}
	return next, nil
}
