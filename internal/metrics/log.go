// Package metrics keeps the append-only extraction quality log and
// computes windowed KPI reports against the fixed target table.
package metrics

import (
	"sync"
	"time"

	"github.com/intakeworks/docvalid/internal/model"
)

// SampleLog is a concurrency-safe, append-only log of metrics samples.
// Samples are never mutated or discarded; windowing is a read-time
// filter. Readers take a point-in-time snapshot and never block writers
// beyond the copy.
type SampleLog struct {
	mu      sync.Mutex
	samples []model.MetricsSample
}

// NewSampleLog creates an empty log.
func NewSampleLog() *SampleLog {
	return &SampleLog{}
}

// Append records a sample. Safe for concurrent use. A zero timestamp is
// stamped with the current time.
func (l *SampleLog) Append(sample model.MetricsSample) {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	l.samples = append(l.samples, sample)
	l.mu.Unlock()
}

// Len returns the total number of recorded samples.
func (l *SampleLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.samples)
}

// Snapshot copies every sample with a timestamp at or after cutoff.
func (l *SampleLog) Snapshot(cutoff time.Time) []model.MetricsSample {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.MetricsSample, 0, len(l.samples))
	for _, s := range l.samples {
		if s.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out
}
