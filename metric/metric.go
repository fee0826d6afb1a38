// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package metric provides the concurrency-safe statistical primitives the
// collectors aggregate into: counters, gauges, timers and intervals, each
// holding a lazily-populated keyed family of values.
//
// Update paths are designed for high-frequency instrumentation events: values
// live in atomic cells reached through sharded maps, so writers on unrelated
// keys never contend on a common lock and updates to one key are linearizable.
// Read accessors return (value, ok) pairs where ok reports whether the key has
// ever been observed; "no data" is therefore distinguishable from a zero
// value. Reads traverse cells individually, so a snapshot taken while writers
// are active may be momentarily inconsistent across fields of the same cell.
package metric

import "time"

// Kind discriminates the families of primitives a Sample can originate from.
type Kind int

const (
	// KindCounter identifies monotonic-style accumulator samples.
	KindCounter Kind = iota
	// KindGauge identifies last-written-value samples.
	KindGauge
	// KindTimer identifies duration-distribution samples.
	KindTimer
	// KindInterval identifies first/last observation span samples.
	KindInterval
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindTimer:
		return "timer"
	case KindInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Sample is the flattened, export-friendly view of one keyed value inside a
// primitive. Collectors emit samples during snapshot traversals; reporters and
// stores serialize them as-is.
type Sample struct {
	// Kind tells which family the sample belongs to and therefore which of
	// the value fields below are meaningful.
	Kind Kind `json:"kind"`
	// Name is the metric name, e.g. "actors_active".
	Name string `json:"name"`
	// Key is the entry key within the metric family, e.g. an actor class.
	Key string `json:"key,omitempty"`
	// Tags carries static dimensions attached by the registry.
	Tags map[string]string `json:"tags,omitempty"`
	// Value holds the counter total or gauge level.
	Value int64 `json:"value,omitempty"`
	// Count holds the number of observations for timers and intervals.
	Count int64 `json:"count,omitempty"`
	// Total, Min and Max describe the timer distribution.
	Total time.Duration `json:"total,omitempty"`
	Min   time.Duration `json:"min,omitempty"`
	Max   time.Duration `json:"max,omitempty"`
	// First and Last are interval observation timestamps in Unix nanos.
	First int64 `json:"first,omitempty"`
	Last  int64 `json:"last,omitempty"`
}

// Avg returns the mean duration of a timer sample, or zero when no
// observations were recorded.
func (s Sample) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Spread returns the distance between the first and the most recent interval
// observation. A single observation yields zero.
func (s Sample) Spread() time.Duration {
	return time.Duration(s.Last - s.First)
}
