package offsetgrid

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
//	    setCounter    prometheus.Counter
//	    saveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSet(grew bool) {
//	    p.setCounter.Inc()
//	    // ... record growth state, etc.
//	}
type MetricsCollector interface {
	// RecordSet is called after each matrix set operation.
	// grew is true when the set extended a row or the row sequence.
	RecordSet(grew bool)

	// RecordGet is called after each matrix get operation.
	// hit is true when the cell was materialized, false when the
	// default-value fallback applied.
	RecordGet(hit bool)

	// RecordSave is called after each save operation.
	// cells is the number of materialized cells written, duration is the
	// total time taken, err is nil if successful.
	RecordSave(cells int, duration time.Duration, err error)

	// RecordLoad is called after each load operation.
	RecordLoad(cells int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSet(bool)                       {}
func (NoopMetricsCollector) RecordGet(bool)                       {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetCount       atomic.Int64
	SetGrowths     atomic.Int64
	GetCount       atomic.Int64
	GetMisses      atomic.Int64
	SaveCount      atomic.Int64
	SaveErrors     atomic.Int64
	SaveCells      atomic.Int64
	SaveTotalNanos atomic.Int64
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadCells      atomic.Int64
	LoadTotalNanos atomic.Int64
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(grew bool) {
	b.SetCount.Add(1)
	if grew {
		b.SetGrowths.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hit bool) {
	b.GetCount.Add(1)
	if !hit {
		b.GetMisses.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(cells int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveCells.Add(int64(cells))
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(cells int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadCells.Add(int64(cells))
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetCount:      b.SetCount.Load(),
		SetGrowths:    b.SetGrowths.Load(),
		GetCount:      b.GetCount.Load(),
		GetMisses:     b.GetMisses.Load(),
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		SaveCells:     b.SaveCells.Load(),
		SaveAvgNanos:  avgNanos(b.SaveTotalNanos.Load(), b.SaveCount.Load()),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadCells:     b.LoadCells.Load(),
		LoadAvgNanos:  avgNanos(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetCount     int64
	SetGrowths   int64
	GetCount     int64
	GetMisses    int64
	SaveCount    int64
	SaveErrors   int64
	SaveCells    int64
	SaveAvgNanos int64
	LoadCount    int64
	LoadErrors   int64
	LoadCells    int64
	LoadAvgNanos int64
}
