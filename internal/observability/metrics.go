package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal    = "turbulence.run.files.total"
	metricFailuresTotal = "turbulence.run.failures.total"
	metricRunDuration   = "turbulence.run.duration.seconds"

	attrStrategy = "strategy"
)

// durationBucketBoundaries covers 10ms to 600s, from small repositories
// to full monorepo history walks.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// RunMetrics holds OTel instruments describing completed pipeline runs.
type RunMetrics struct {
	filesTotal    metric.Int64Counter
	failuresTotal metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// RunStats holds the statistics of a single completed run.
type RunStats struct {
	Measured int
	Failures int
	Strategy string
	Elapsed  time.Duration
}

// NewRunMetrics creates the run metric instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	b := newMetricBuilder(mt)

	rm := &RunMetrics{
		filesTotal:    b.counter(metricFilesTotal, "Total files measured", "{file}"),
		failuresTotal: b.counter(metricFailuresTotal, "Total files that failed measurement", "{file}"),
		runDuration:   b.histogram(metricRunDuration, "Pipeline run duration in seconds", "s", durationBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return rm, nil
}

// RecordRun records the statistics of a completed run.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordRun(ctx context.Context, stats RunStats) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrStrategy, stats.Strategy))

	rm.filesTotal.Add(ctx, int64(stats.Measured), attrs)
	rm.failuresTotal.Add(ctx, int64(stats.Failures), attrs)
	rm.runDuration.Record(ctx, stats.Elapsed.Seconds(), attrs)
}

// metricBuilder accumulates OTel instrument creation errors,
// enabling batch construction with a single error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func newMetricBuilder(mt metric.Meter) *metricBuilder {
	return &metricBuilder{meter: mt}
}

// counter creates an Int64Counter instrument.
func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

// histogram creates a Float64Histogram instrument with explicit bucket boundaries.
func (b *metricBuilder) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(desc),
		metric.WithUnit(unit),
	}

	if len(bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(bounds...))
	}

	h, err := b.meter.Float64Histogram(name, opts...)
	b.setErr(name, err)

	return h
}

// setErr records the first instrument creation error.
func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}
