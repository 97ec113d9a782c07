package kmeans

import (
	"fmt"
	"math"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
)

// Shift returns the largest distance any centroid moved between old and next.
func Shift(old, next model.Centroids, fn distance.Func) (float64, error) {
	if len(old) != len(next) {
		return 0, &model.ErrDimensionMismatch{Context: "centroids", Index: -1, Expected: len(old), Actual: len(next)}
	}
	var maxShift float64
	for j := range old {
		d, err := fn(old[j], next[j])
		if err != nil {
			return 0, err
		}
		if d > maxShift {
			maxShift = d
		}
	}
	return maxShift, nil
}

// Converged reports whether no centroid moved by more than threshold.
// A threshold of 0 requires the centroid sets to be identical.
func Converged(old, next model.Centroids, threshold float64, fn distance.Func) (bool, error) {
	if err := CheckThreshold(threshold); err != nil {
		return false, err
	}
	shift, err := Shift(old, next, fn)
	if err != nil {
		return false, err
	}
	return shift <= threshold, nil
}

// CheckThreshold rejects negative and NaN thresholds.
func CheckThreshold(threshold float64) error {
	if threshold < 0 || math.IsNaN(threshold) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Inertia returns the total within-cluster squared Euclidean distance over
// the first ndim components.
func Inertia(ds model.Dataset, labels model.Labels, centroids model.Centroids, ndim int) (float64, error) {
	if len(labels) != len(ds) {
		return 0, &model.ErrDimensionMismatch{Context: "labels", Index: -1, Expected: len(ds), Actual: len(labels)}
	}
	var total float64
	for i, p := range ds {
		label := labels[i]
		if label < 0 || label >= len(centroids) {
			return 0, fmt.Errorf("%w: %d at point %d (k=%d)", ErrInvalidLabel, label, i, len(centroids))
		}
		vec, err := project(p, ndim, "point", i)
		if err != nil {
			return 0, err
		}
		d, err := distance.SquaredEuclidean(vec, centroids[label])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}
