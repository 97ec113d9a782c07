package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyDataset is returned when a dataset contains no points.
var ErrEmptyDataset = errors.New("dataset is empty")

// ErrDimensionMismatch indicates inconsistent vector widths or an active
// dimension count outside [1, width].
type ErrDimensionMismatch struct {
	// Context names the offending input ("point", "centroid", "ndim", ...).
	Context string
	// Index is the position of the offending input, or -1 if not applicable.
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("dimension mismatch: %s %d: expected %d, got %d", e.Context, e.Index, e.Expected, e.Actual)
	}
	if e.Context != "" {
		return fmt.Sprintf("dimension mismatch: %s: expected %d, got %d", e.Context, e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Point is a single fixed-width record.
// Points are treated as immutable once they are part of a Dataset.
type Point []float64

// Clone returns a copy of p that shares no memory with it.
func (p Point) Clone() Point {
	return slices.Clone(p)
}

// Dataset is an ordered sequence of points that all have the same width.
type Dataset []Point

// Len returns the number of points.
func (d Dataset) Len() int { return len(d) }

// Width returns the dimensionality D of the dataset (the width of its first point).
// It returns 0 for an empty dataset.
func (d Dataset) Width() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Validate checks that the dataset is non-empty, that every point has the
// width of the first point and that the width is at least one.
func (d Dataset) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDataset
	}
	width := len(d[0])
	if width == 0 {
		return &ErrDimensionMismatch{Context: "point", Index: 0, Expected: 1, Actual: 0}
	}
	for i, p := range d {
		if len(p) != width {
			return &ErrDimensionMismatch{Context: "point", Index: i, Expected: width, Actual: len(p)}
		}
	}
	return nil
}

// CheckNDim reports whether ndim is a valid active dimension count for the dataset.
func (d Dataset) CheckNDim(ndim int) error {
	width := d.Width()
	if ndim < 1 || ndim > width {
		return &ErrDimensionMismatch{Context: "ndim", Index: -1, Expected: width, Actual: ndim}
	}
	return nil
}

// FromRows builds a Dataset over the given rows without copying them.
func FromRows(rows [][]float64) Dataset {
	ds := make(Dataset, len(rows))
	for i, r := range rows {
		ds[i] = r
	}
	return ds
}

// Centroids holds one vector per cluster, each of width ndim.
type Centroids []Point

// K returns the number of centroids.
func (c Centroids) K() int { return len(c) }

// Clone returns a deep copy of the centroid set.
func (c Centroids) Clone() Centroids {
	out := make(Centroids, len(c))
	for i, p := range c {
		out[i] = p.Clone()
	}
	return out
}

// Labels maps each point index to a centroid index.
type Labels []int

// Clone returns a copy of the labels.
func (l Labels) Clone() Labels {
	return slices.Clone(l)
}

// Counts returns the number of points assigned to each of the k clusters.
// Labels outside [0, k) are ignored.
func (l Labels) Counts(k int) []int {
	counts := make([]int, k)
	for _, label := range l {
		if label >= 0 && label < k {
			counts[label]++
		}
	}
	return counts
}
