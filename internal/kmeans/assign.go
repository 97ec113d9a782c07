package kmeans

import (
	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
)

// Assign labels every point with the index of its nearest centroid, measured
// over the first ndim components. Ties resolve to the lowest centroid index.
func Assign(ds model.Dataset, centroids model.Centroids, ndim int, fn distance.Func) (model.Labels, error) {
	if err := checkCentroids(centroids, ndim); err != nil {
		return nil, err
	}

	labels := make(model.Labels, len(ds))
	for i, p := range ds {
		vec, err := project(p, ndim, "point", i)
		if err != nil {
			return nil, err
		}

		best := 0
		bestDist, err := fn(vec, centroids[0])
		if err != nil {
			return nil, err
		}
		for j := 1; j < len(centroids); j++ {
			d, err := fn(vec, centroids[j])
			if err != nil {
				return nil, err
			}
			// Strict comparison keeps the lowest index on ties.
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		labels[i] = best
	}
	return labels, nil
}

func checkCentroids(centroids model.Centroids, ndim int) error {
	if len(centroids) == 0 {
		return ErrInvalidK
	}
	for i, c := range centroids {
		if len(c) != ndim {
			return &model.ErrDimensionMismatch{Context: "centroid", Index: i, Expected: ndim, Actual: len(c)}
		}
	}
	return nil
}
