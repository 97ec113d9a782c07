package kmeans

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/kmeans/distance"
	ikmeans "github.com/hupe1980/kmeans/internal/kmeans"
	"github.com/hupe1980/kmeans/model"
)

// Phase is a state of the clustering driver.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseIterating
	PhaseConverged
	PhaseMaxIterReached
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "INITIALIZING"
	case PhaseIterating:
		return "ITERATING"
	case PhaseConverged:
		return "CONVERGED"
	case PhaseMaxIterReached:
		return "MAX_ITER_REACHED"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Clusterer runs k-means with a fixed configuration.
//
// A Clusterer holds no per-run state and is safe for concurrent use.
type Clusterer struct {
	k    int
	opts options
	dist distance.Func
}

// New validates the configuration and returns a Clusterer for k clusters.
// Dataset-dependent checks (k ≤ N, ndim ≤ D) happen in Fit.
func New(k int, optFns ...Option) (*Clusterer, error) {
	o := applyOptions(optFns)

	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if err := ikmeans.CheckThreshold(o.threshold); err != nil {
		return nil, err
	}
	if o.maxIterations < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxIterations, o.maxIterations)
	}
	if o.ndim < 0 {
		return nil, &ErrDimensionMismatch{Context: "ndim", Index: -1, Expected: 1, Actual: o.ndim}
	}
	if o.initial != nil && len(o.initial) != k {
		return nil, fmt.Errorf("%w: %d initial centroids for k=%d", ErrInvalidK, len(o.initial), k)
	}
	dist, err := distance.Provider(o.metric)
	if err != nil {
		return nil, err
	}

	return &Clusterer{k: k, opts: o, dist: dist}, nil
}

// Cluster is a convenience wrapper for New followed by Fit.
func Cluster(ctx context.Context, data model.Dataset, k int, optFns ...Option) (*Result, error) {
	c, err := New(k, optFns...)
	if err != nil {
		return nil, err
	}
	return c.Fit(ctx, data)
}

// K returns the configured number of clusters.
func (c *Clusterer) K() int { return c.k }

// Fit clusters data.
//
// The run stops when the largest centroid movement drops to the threshold
// (PhaseConverged) or when the iteration cap is reached (PhaseMaxIterReached).
// Any validation or step failure aborts the run and is returned; ctx is
// checked between iterations.
func (c *Clusterer) Fit(ctx context.Context, data model.Dataset) (*Result, error) {
	start := time.Now()

	seed := c.opts.seed
	if !c.opts.seeded {
		seed = rand.Uint64()
	}

	res, err := c.fit(ctx, data, seed)

	iterations, converged := 0, false
	phase := PhaseInitializing
	if res != nil {
		iterations = res.Iterations()
		converged = res.Converged()
		phase = res.Reason
	}
	c.opts.metricsCollector.RecordRun(iterations, converged && err == nil, time.Since(start), err)
	c.opts.logger.WithK(c.k).WithSeed(seed).LogRun(ctx, len(data), iterations, phase, err)

	return res, err
}

func (c *Clusterer) fit(ctx context.Context, data model.Dataset, seed uint64) (*Result, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	ndim := c.opts.ndim
	if ndim == 0 {
		ndim = data.Width()
	}
	if err := data.CheckNDim(ndim); err != nil {
		return nil, err
	}
	if c.k > len(data) {
		return nil, fmt.Errorf("%w: %d (dataset has %d points)", ErrInvalidK, c.k, len(data))
	}

	logger := c.opts.logger.WithK(c.k).WithDimension(ndim)

	var (
		centroids model.Centroids
		err       error
	)
	if c.opts.initial != nil {
		centroids, err = ikmeans.FromPoints(c.opts.initial, c.k, ndim)
	} else {
		centroids, err = ikmeans.Initialize(data, c.k, ndim, ikmeans.NewRand(seed))
	}
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	res := &Result{
		K:       c.k,
		NDim:    ndim,
		Seed:    seed,
		Initial: centroids,
		Reason:  PhaseIterating,
		data:    data,
	}

	for iteration := 1; iteration <= c.opts.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}

		iterStart := time.Now()
		state, err := c.step(data, centroids, ndim, iteration)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}
		res.History = append(res.History, state)

		c.opts.metricsCollector.RecordIteration(iteration, state.Shift, time.Since(iterStart))
		logger.LogIteration(ctx, iteration, state.Shift, state.Inertia)

		if c.opts.observer != nil {
			if err := c.opts.observer(ctx, state); err != nil {
				return nil, fmt.Errorf("iteration %d: observer: %w", iteration, err)
			}
		}

		if state.Shift <= c.opts.threshold {
			res.Reason = PhaseConverged
			return res, nil
		}
		centroids = state.Centroids
	}

	res.Reason = PhaseMaxIterReached
	if c.opts.strict {
		return res, fmt.Errorf("%w: %d", ErrMaxIterations, c.opts.maxIterations)
	}
	return res, nil
}

// step runs one assignment/update round and measures the centroid movement.
func (c *Clusterer) step(data model.Dataset, centroids model.Centroids, ndim, iteration int) (State, error) {
	labels, err := ikmeans.Assign(data, centroids, ndim, c.dist)
	if err != nil {
		return State{}, fmt.Errorf("assign: %w", err)
	}
	next, err := ikmeans.Update(data, labels, centroids, ndim)
	if err != nil {
		return State{}, fmt.Errorf("update: %w", err)
	}
	shift, err := ikmeans.Shift(centroids, next, c.dist)
	if err != nil {
		return State{}, fmt.Errorf("convergence: %w", err)
	}
	inertia, err := ikmeans.Inertia(data, labels, next, ndim)
	if err != nil {
		return State{}, fmt.Errorf("inertia: %w", err)
	}
	return State{
		Iteration: iteration,
		Centroids: next,
		Labels:    labels,
		Shift:     shift,
		Inertia:   inertia,
	}, nil
}
