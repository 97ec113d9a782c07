// Package kmeans implements the individual steps of Lloyd's algorithm over
// the active dimension prefix of a dataset.
//
// The driver in the root package composes these steps; each step allocates
// its output and never mutates its inputs, so earlier iterations stay valid
// as history snapshots.
package kmeans
