package distance

import (
	"fmt"
	"math"

	"github.com/hupe1980/kmeans/model"
	"gonum.org/v1/gonum/floats"
)

// Project returns the first ndim components of p.
//
// The result is a capacity-limited view into p: it does not copy, and appending
// to it can never overwrite the passenger components that follow.
func Project(p []float64, ndim int) ([]float64, error) {
	if ndim < 1 || ndim > len(p) {
		return nil, &model.ErrDimensionMismatch{Context: "ndim", Index: -1, Expected: len(p), Actual: ndim}
	}
	return p[:ndim:ndim], nil
}

// Euclidean calculates sqrt(Σ (a_i − b_i)²).
func Euclidean(a, b []float64) (float64, error) {
	if err := sameLength(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 2), nil
}

// SquaredEuclidean calculates Σ (a_i − b_i)².
func SquaredEuclidean(a, b []float64) (float64, error) {
	if err := sameLength(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}

// Manhattan calculates Σ |a_i − b_i|.
func Manhattan(a, b []float64) (float64, error) {
	if err := sameLength(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 1), nil
}

// Chebyshev calculates max |a_i − b_i|.
func Chebyshev(a, b []float64) (float64, error) {
	if err := sameLength(a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

func sameLength(a, b []float64) error {
	if len(a) != len(b) {
		return &model.ErrDimensionMismatch{Context: "vector", Index: -1, Expected: len(a), Actual: len(b)}
	}
	return nil
}

// Metric represents the distance metric used to compare a point with a centroid.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMetric returns the metric whose String form equals name.
func ParseMetric(name string) (Metric, error) {
	for _, m := range []Metric{MetricEuclidean, MetricSquaredEuclidean, MetricManhattan, MetricChebyshev} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric: %q", name)
}

// Func is a function type for distance calculation between two equal-length vectors.
type Func func(a, b []float64) (float64, error)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
