// Package testutil provides testing utilities for the clustering packages.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for datasets with known cluster structure
// and passenger columns.
//
// # Random Datasets
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.Uniform(100, 4, 0, 1)            // 100 points, 4 dims in [0, 1)
//	ds, truth := rng.Blobs(centers, 50, 0.1)  // gaussian blobs around centers
//	ds = rng.WithPassengers(ds, 2)            // append two random passenger columns
package testutil
