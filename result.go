package kmeans

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans/model"
)

// State is the snapshot recorded after every iteration.
//
// States are immutable: the driver allocates fresh centroids and labels for
// every iteration, so earlier states stay valid for replay. Callers must not
// modify the slices they receive.
type State struct {
	Iteration int
	// Centroids after the update step, each of width ndim.
	Centroids model.Centroids
	// Labels produced by the assignment step, one per point.
	Labels model.Labels
	// Shift is the largest centroid movement caused by the update step.
	Shift float64
	// Inertia is the within-cluster sum of squared distances over ndim,
	// measured against Centroids.
	Inertia float64
}

// LabeledPoint is a full-width record together with its cluster label.
type LabeledPoint struct {
	Index int
	// Record is the original row, passengers included. It is shared with the
	// input dataset, not copied.
	Record model.Point
	Label  int
}

// Frame pairs a state with the labeled records it implies; one frame per
// animation step.
type Frame struct {
	State  State
	Points []LabeledPoint
}

// Result is the outcome of a clustering run.
type Result struct {
	K    int
	NDim int
	// Seed is the seed used for initialization (drawn at random if none was configured).
	Seed uint64
	// Initial holds the starting centroids.
	Initial model.Centroids
	// History contains one state per iteration, in order.
	History []State
	// Reason is PhaseConverged or PhaseMaxIterReached.
	Reason Phase

	data model.Dataset
}

// NewResult assembles a Result from recorded parts, e.g. a decoded archive.
func NewResult(data model.Dataset, k, ndim int, seed uint64, initial model.Centroids, history []State, reason Phase) *Result {
	return &Result{
		K:       k,
		NDim:    ndim,
		Seed:    seed,
		Initial: initial,
		History: history,
		Reason:  reason,
		data:    data,
	}
}

// Data returns the clustered dataset.
func (r *Result) Data() model.Dataset { return r.data }

// Converged reports whether the run stopped because the centroids settled.
func (r *Result) Converged() bool { return r.Reason == PhaseConverged }

// Iterations returns the number of completed iterations.
func (r *Result) Iterations() int { return len(r.History) }

// Final returns the last recorded state.
func (r *Result) Final() State {
	if len(r.History) == 0 {
		return State{Centroids: r.Initial}
	}
	return r.History[len(r.History)-1]
}

// Centroids returns the final centroids.
func (r *Result) Centroids() model.Centroids { return r.Final().Centroids }

// Labels returns the final assignment.
func (r *Result) Labels() model.Labels { return r.Final().Labels }

// Frame returns the labeled records of the i-th recorded state (0-based).
func (r *Result) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(r.History) {
		return Frame{}, fmt.Errorf("frame %d out of range [0, %d)", i, len(r.History))
	}
	state := r.History[i]
	return Frame{State: state, Points: r.label(state.Labels)}, nil
}

// Frames yields one frame per recorded state, in iteration order.
func (r *Result) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, state := range r.History {
			if !yield(Frame{State: state, Points: r.label(state.Labels)}) {
				return
			}
		}
	}
}

// Groups returns the full-width records of every cluster under the final
// assignment. Every label in [0, K) is present, empty clusters included.
func (r *Result) Groups() map[int][]model.Point {
	groups := make(map[int][]model.Point, r.K)
	for j := 0; j < r.K; j++ {
		groups[j] = nil
	}
	for i, label := range r.Labels() {
		groups[label] = append(groups[label], r.data[i])
	}
	return groups
}

// Members returns the indices of the points assigned to label under the
// final assignment.
func (r *Result) Members(label int) *roaring.Bitmap {
	bm := roaring.New()
	for i, l := range r.Labels() {
		if l == label {
			bm.Add(uint32(i))
		}
	}
	return bm
}

func (r *Result) label(labels model.Labels) []LabeledPoint {
	points := make([]LabeledPoint, len(labels))
	for i, label := range labels {
		points[i] = LabeledPoint{Index: i, Record: r.data[i], Label: label}
	}
	return points
}
