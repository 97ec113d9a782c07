// Package kmeans provides k-means clustering over a leading subset of each
// record's dimensions.
//
// Only the first ndim components of every point take part in distance and
// centroid computation. The remaining components are passengers: they are
// never read by the algorithm and stay attached to their record, so a pixel
// keeps its coordinates while being clustered by colour, or a detection keeps
// its confidence while being clustered by bounding box.
//
// # Quick Start
//
//	data := model.Dataset{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
//	res, err := kmeans.Cluster(ctx, data, 2, kmeans.WithSeed(42))
//	fmt.Println(res.Centroids(), res.Labels(), res.Reason)
//
// Clustering on a prefix:
//
//	// [r, g, b, x, y] records, cluster on colour only
//	res, err := kmeans.Cluster(ctx, pixels, 8, kmeans.WithNDim(3))
//
// # Algorithm
//
// A run initializes k centroids by sampling k distinct points without
// replacement (or takes them from WithInitialCentroids), then repeats
//
//  1. assignment: every point is labelled with its nearest centroid;
//     ties go to the lowest centroid index
//  2. update: every centroid becomes the mean of its points; a cluster that
//     received no points keeps its previous centroid
//  3. convergence: the run stops once no centroid moved farther than the
//     threshold, or when the iteration cap is reached
//
// Every iteration is recorded as an immutable State in Result.History, so the
// evolution can be replayed (Result.Frames) without re-running the algorithm.
//
// # Reproducibility
//
// Initialization randomness comes only from the seed passed with WithSeed.
// Unseeded runs draw a seed and report it in Result.Seed.
//
// # Persistence
//
// The archive package stores a run's history in any blobstore.Store (local
// files, memory, S3, MinIO) for later replay.
package kmeans
