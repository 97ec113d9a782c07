// Package model defines the core data types shared by the clustering packages.
//
// # Data Types
//
//   - Point: a fixed-width record of float64 components
//   - Dataset: an ordered sequence of points of equal width
//   - Centroids: k vectors of width ndim (the active prefix)
//   - Labels: one centroid index per point
//
// # Active Dimensions
//
// Only the leading ndim components of a Point take part in clustering.
// The remaining components are passengers: they are never read by the
// algorithm, but they stay attached to their record so callers can recover
// the full row (pixel coordinates, detection confidence, ...) next to its label.
//
//	ds := model.Dataset{
//	    {0, 0, 42}, // ndim=2 clusters on x,y; 42 rides along
//	    {10, 10, 7},
//	}
//	if err := ds.Validate(); err != nil { ... }
package model
