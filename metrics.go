package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter         prometheus.Counter
//	    iterationHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(iterations int, converged bool, duration time.Duration, err error) {
//	    p.runCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordIteration is called after each assignment/update round.
	// shift is the largest centroid movement of the round.
	RecordIteration(iteration int, shift float64, duration time.Duration)

	// RecordRun is called once per clustering run.
	// converged is false when the iteration cap was hit or the run failed,
	// err is nil if successful.
	RecordRun(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, float64, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunTotalNanos       atomic.Int64
	ConvergedCount      atomic.Int64
	MaxIterCount        atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(iteration int, shift float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err != nil:
		b.RunErrors.Add(1)
	case converged:
		b.ConvergedCount.Add(1)
	default:
		b.MaxIterCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		ConvergedCount:    b.ConvergedCount.Load(),
		MaxIterCount:      b.MaxIterCount.Load(),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	ConvergedCount    int64
	MaxIterCount      int64
	IterationCount    int64
	IterationAvgNanos int64
}
