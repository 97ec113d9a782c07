package kmeans

import (
	"context"
	"log/slog"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
)

const (
	// DefaultThreshold is the default convergence threshold: twenty machine
	// epsilons for float64, i.e. "no centroid moved beyond rounding noise".
	DefaultThreshold = 20 * 2.220446049250313e-16

	// DefaultMaxIterations is the default iteration cap.
	DefaultMaxIterations = 250
)

// Observer is called with every state as soon as its iteration completes.
// Returning an error aborts the run; the error is returned by Fit.
type Observer func(ctx context.Context, state State) error

type options struct {
	ndim             int
	threshold        float64
	maxIterations    int
	seed             uint64
	seeded           bool
	metric           distance.Metric
	initial          []model.Point
	strict           bool
	observer         Observer
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Clusterer.
type Option func(*options)

// WithNDim sets the number of leading dimensions used for clustering.
// The remaining dimensions are carried along untouched.
//
// The default (0) clusters on the full width of the dataset.
func WithNDim(ndim int) Option {
	return func(o *options) {
		o.ndim = ndim
	}
}

// WithThreshold sets the convergence threshold: a run converges once no
// centroid moves farther than threshold between two iterations.
// A threshold of 0 requires the centroids to stop moving exactly.
//
// Default: DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMaxIterations sets the hard iteration cap that guarantees termination.
//
// Default: DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSeed makes centroid initialization reproducible.
// Without a seed every run draws a fresh one; it is reported in Result.Seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithMetric selects the distance used for assignment and convergence.
//
// Default: distance.MetricEuclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithInitialCentroids skips random initialization and starts from the given
// points. Exactly k points are required; each must have at least ndim
// components and is projected to ndim.
func WithInitialCentroids(points ...model.Point) Option {
	return func(o *options) {
		o.initial = points
	}
}

// WithStrict makes Fit return ErrMaxIterations (alongside the result) when the
// iteration cap is reached before convergence.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithObserver registers a callback that receives every iteration's state.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans.BasicMetricsCollector{}
//	c, _ := kmeans.New(3, kmeans.WithMetricsCollector(metrics))
//	// ... c.Fit(ctx, data) ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans.NewJSONLogger(slog.LevelDebug)
//	c, _ := kmeans.New(3, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        DefaultThreshold,
		maxIterations:    DefaultMaxIterations,
		metric:           distance.MetricEuclidean,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
