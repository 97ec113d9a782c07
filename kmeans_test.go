package kmeans

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
	"github.com/hupe1980/kmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareData() model.Dataset {
	return model.Dataset{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
}

func TestCluster(t *testing.T) {
	ctx := context.Background()

	t.Run("FixedStart", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 2,
			WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10}),
		)
		require.NoError(t, err)

		assert.Equal(t, PhaseConverged, res.Reason)
		assert.True(t, res.Converged())
		assert.Equal(t, 2, res.Iterations())
		assert.Equal(t, model.Centroids{{0, 0.5}, {10, 10.5}}, res.Centroids())
		assert.Equal(t, model.Labels{0, 0, 1, 1}, res.Labels())
		assert.Equal(t, model.Centroids{{0, 0}, {10, 10}}, res.Initial)

		first := res.History[0]
		assert.Equal(t, 1, first.Iteration)
		assert.InDelta(t, 0.5, first.Shift, 1e-12)
		assert.InDelta(t, 1.0, first.Inertia, 1e-12)
		assert.Equal(t, 0.0, res.Final().Shift)
	})

	t.Run("PrefixOnly", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 2,
			WithNDim(1),
			WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10}),
		)
		require.NoError(t, err)

		assert.Equal(t, 1, res.NDim)
		assert.Equal(t, model.Centroids{{0}, {10}}, res.Centroids())
		assert.Equal(t, model.Labels{0, 0, 1, 1}, res.Labels())
		assert.Equal(t, 1, res.Iterations())
	})

	t.Run("AnySeedFindsSquares", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			res, err := Cluster(ctx, squareData(), 2, WithSeed(seed))
			require.NoError(t, err)
			assert.True(t, res.Converged())
			assert.True(t, testutil.SamePartition(model.Labels{0, 0, 1, 1}, res.Labels()), "seed %d", seed)
			assert.Equal(t, seed, res.Seed)
		}
	})

	t.Run("KEqualsN", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 4, WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1, 1, 1}, res.Labels().Counts(4))
		assert.Equal(t, 0.0, res.Final().Inertia)
	})

	t.Run("Manhattan", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 2,
			WithMetric(distance.MetricManhattan),
			WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10}),
		)
		require.NoError(t, err)
		assert.Equal(t, model.Centroids{{0, 0.5}, {10, 10.5}}, res.Centroids())
	})
}

func TestFitInvariants(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(4711)
	centers := []model.Point{{0, 0, 0}, {20, 0, 0}, {0, 20, 0}}
	blobs, truth := rng.Blobs(centers, 50, 1.0)
	data := rng.WithPassengers(blobs, 2)
	original := make(model.Dataset, len(data))
	for i, p := range data {
		original[i] = p.Clone()
	}

	res, err := Cluster(ctx, data, 3, WithNDim(3), WithThreshold(0), WithSeed(7))
	require.NoError(t, err)
	require.True(t, res.Converged())
	assert.Equal(t, 0.0, res.Final().Shift)

	t.Run("Completeness", func(t *testing.T) {
		for _, state := range res.History {
			require.Len(t, state.Labels, len(data))
			for _, label := range state.Labels {
				assert.GreaterOrEqual(t, label, 0)
				assert.Less(t, label, 3)
			}
			require.Len(t, state.Centroids, 3)
			for _, c := range state.Centroids {
				assert.Len(t, c, 3)
			}
		}
	})

	t.Run("InertiaNonIncreasing", func(t *testing.T) {
		for i := 1; i < len(res.History); i++ {
			assert.LessOrEqual(t, res.History[i].Inertia, res.History[i-1].Inertia+1e-9)
		}
	})

	t.Run("PassengersUntouched", func(t *testing.T) {
		assert.Equal(t, original, data)
		for frame := range res.Frames() {
			for i, lp := range frame.Points {
				assert.Same(t, &data[i][0], &lp.Record[0])
				assert.Equal(t, original[i], lp.Record)
			}
		}
	})

	t.Run("PassengersIgnored", func(t *testing.T) {
		other := rng.WithPassengers(blobs, 2)
		res2, err := Cluster(ctx, other, 3, WithNDim(3), WithThreshold(0), WithSeed(7))
		require.NoError(t, err)
		assert.Equal(t, res.Centroids(), res2.Centroids())
		assert.Equal(t, res.Labels(), res2.Labels())
		assert.Equal(t, res.Iterations(), res2.Iterations())
	})

	t.Run("RecoversBlobs", func(t *testing.T) {
		// Well separated blobs may still be merged by an unlucky start, so
		// only the cluster count is checked unconditionally.
		counts := res.Labels().Counts(3)
		assert.Len(t, counts, 3)
		if testutil.SamePartition(truth, res.Labels()) {
			assert.Equal(t, []int{50, 50, 50}, counts)
		}
	})
}

func TestEmptyClusterKeepsCentroid(t *testing.T) {
	res, err := Cluster(context.Background(), squareData(), 3,
		WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10}, model.Point{1000, 1000}),
	)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 0}, res.Labels().Counts(3))
	for _, state := range res.History {
		assert.Equal(t, model.Point{1000, 1000}, state.Centroids[2])
	}

	groups := res.Groups()
	assert.Len(t, groups, 3)
	assert.Empty(t, groups[2])
	assert.True(t, res.Members(2).IsEmpty())
}

func TestValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data model.Dataset
		k    int
		opts []Option
		want error
	}{
		{name: "EmptyDataset", data: nil, k: 1, want: ErrEmptyDataset},
		{name: "KZero", data: squareData(), k: 0, want: ErrInvalidK},
		{name: "KTooLarge", data: squareData(), k: 5, want: ErrInvalidK},
		{name: "NegativeThreshold", data: squareData(), k: 2, opts: []Option{WithThreshold(-1)}, want: ErrInvalidThreshold},
		{name: "ZeroMaxIterations", data: squareData(), k: 2, opts: []Option{WithMaxIterations(0)}, want: ErrInvalidMaxIterations},
		{name: "InitialCount", data: squareData(), k: 2, opts: []Option{WithInitialCentroids(model.Point{0, 0})}, want: ErrInvalidK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Cluster(ctx, tt.data, tt.k, tt.opts...)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("NDimTooLarge", func(t *testing.T) {
		_, err := Cluster(ctx, squareData(), 2, WithNDim(3))
		var mismatch *ErrDimensionMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "ndim", mismatch.Context)
		assert.Equal(t, 2, mismatch.Expected)
		assert.Equal(t, 3, mismatch.Actual)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		_, err := Cluster(ctx, model.Dataset{{0, 0}, {1}, {2, 2}}, 2)
		var mismatch *ErrDimensionMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "point", mismatch.Context)
		assert.Equal(t, 1, mismatch.Index)
	})

	t.Run("UnknownMetric", func(t *testing.T) {
		_, err := New(2, WithMetric(distance.Metric(99)))
		assert.Error(t, err)
	})
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Cluster(ctx, squareData(), 2, WithSeed(1))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObserver(t *testing.T) {
	ctx := context.Background()
	start := WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10})

	t.Run("SeesEveryState", func(t *testing.T) {
		var seen []int
		res, err := Cluster(ctx, squareData(), 2, start, WithObserver(func(_ context.Context, s State) error {
			seen = append(seen, s.Iteration)
			return nil
		}))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, seen)
		assert.Equal(t, res.Iterations(), len(seen))
	})

	t.Run("Abort", func(t *testing.T) {
		errStop := errors.New("stop")
		res, err := Cluster(ctx, squareData(), 2, start, WithObserver(func(context.Context, State) error {
			return errStop
		}))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, errStop)
	})
}

func TestMaxIterations(t *testing.T) {
	ctx := context.Background()
	start := WithInitialCentroids(model.Point{0, 0}, model.Point{10, 10})

	t.Run("Lenient", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 2, start, WithMaxIterations(1))
		require.NoError(t, err)
		assert.Equal(t, PhaseMaxIterReached, res.Reason)
		assert.False(t, res.Converged())
		assert.Equal(t, 1, res.Iterations())
	})

	t.Run("Strict", func(t *testing.T) {
		res, err := Cluster(ctx, squareData(), 2, start, WithMaxIterations(1), WithStrict())
		assert.ErrorIs(t, err, ErrMaxIterations)
		require.NotNil(t, res)
		assert.Equal(t, PhaseMaxIterReached, res.Reason)
		assert.Equal(t, model.Centroids{{0, 0.5}, {10, 10.5}}, res.Centroids())
	})
}

func TestSeedReporting(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1)
	data := rng.Uniform(40, 2, 0, 1)

	res, err := Cluster(ctx, data, 4)
	require.NoError(t, err)

	again, err := Cluster(ctx, data, 4, WithSeed(res.Seed))
	require.NoError(t, err)
	assert.Equal(t, res.Initial, again.Initial)
	assert.Equal(t, res.Labels(), again.Labels())
}

func TestClustererReuse(t *testing.T) {
	c, err := New(2, WithSeed(3))
	require.NoError(t, err)
	assert.Equal(t, 2, c.K())

	r1, err := c.Fit(context.Background(), squareData())
	require.NoError(t, err)
	r2, err := c.Fit(context.Background(), squareData())
	require.NoError(t, err)
	assert.Equal(t, r1.History, r2.History)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "INITIALIZING", PhaseInitializing.String())
	assert.Equal(t, "ITERATING", PhaseIterating.String())
	assert.Equal(t, "CONVERGED", PhaseConverged.String())
	assert.Equal(t, "MAX_ITER_REACHED", PhaseMaxIterReached.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
