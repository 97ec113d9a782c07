package kmeans

import (
	"errors"

	ikmeans "github.com/hupe1980/kmeans/internal/kmeans"
	"github.com/hupe1980/kmeans/model"
)

var (
	// ErrEmptyDataset is returned when the dataset contains no points.
	ErrEmptyDataset = model.ErrEmptyDataset

	// ErrInvalidK is returned when k < 1, k exceeds the number of points,
	// or the number of initial centroids differs from k.
	ErrInvalidK = ikmeans.ErrInvalidK

	// ErrInvalidThreshold is returned for a negative or NaN convergence threshold.
	ErrInvalidThreshold = ikmeans.ErrInvalidThreshold

	// ErrInvalidLabel is returned when an assignment references a cluster outside [0, k).
	ErrInvalidLabel = ikmeans.ErrInvalidLabel

	// ErrInvalidMaxIterations is returned when the iteration cap is not positive.
	ErrInvalidMaxIterations = errors.New("max iterations must be positive")

	// ErrMaxIterations is returned together with the result by strict runs
	// that hit the iteration cap before converging.
	ErrMaxIterations = errors.New("iteration count exceeded")
)

// ErrDimensionMismatch indicates inconsistent vector widths or an active
// dimension count outside [1, D].
//
// Context and Index identify the offending input, e.g. point 3 or ndim.
type ErrDimensionMismatch = model.ErrDimensionMismatch
