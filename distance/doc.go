// Package distance provides projection and distance calculations for
// partial-dimension clustering.
//
// Distances are computed with gonum's floats package. Every function checks
// vector lengths and reports a *model.ErrDimensionMismatch instead of panicking.
//
// # Supported Metrics
//
//   - MetricEuclidean: sqrt(Σ (a_i − b_i)²) (default)
//   - MetricSquaredEuclidean: Σ (a_i − b_i)²
//   - MetricManhattan: Σ |a_i − b_i|
//   - MetricChebyshev: max |a_i − b_i|
//
// # Usage
//
//	sub, err := distance.Project(point, 3) // first three components, no copy
//	d, err := distance.Euclidean(sub, centroid)
//
//	fn, err := distance.Provider(distance.MetricManhattan)
//	d, err = fn(a, b)
package distance
