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

// Package backend ships aggregated metric updates to external sinks. A
// Backend receives one call per update: counters carry the delta since the
// previous call, gauges the absolute reading, timers the elapsed duration of
// one recording. Implementations must be safe for concurrent use and should
// return quickly; the caller wraps pushes in a circuit breaker and drops
// updates when a backend misbehaves, so a slow or failing backend degrades
// metrics, never the instrumented runtime.
package backend

import (
	"sort"
	"strings"
	"time"
)

// Backend is a metric export sink.
type Backend interface {
	// RecordCounter adds value to the counter identified by name and tags.
	RecordCounter(name string, tags map[string]string, value int64) error
	// RecordGauge sets the gauge identified by name and tags to value.
	RecordGauge(name string, tags map[string]string, value int64) error
	// RecordTimer folds one elapsed duration into the timer identified by
	// name and tags.
	RecordTimer(name string, tags map[string]string, elapsed time.Duration) error
	// Close flushes and releases the backend. No Record call may follow.
	Close() error
}

// Noop is a Backend that discards every update.
type Noop struct{}

// enforce compilation error
var _ Backend = (*Noop)(nil)

// NewNoop creates a discarding backend.
func NewNoop() *Noop {
	return new(Noop)
}

// RecordCounter implements Backend.
func (x *Noop) RecordCounter(string, map[string]string, int64) error {
	return nil
}

// RecordGauge implements Backend.
func (x *Noop) RecordGauge(string, map[string]string, int64) error {
	return nil
}

// RecordTimer implements Backend.
func (x *Noop) RecordTimer(string, map[string]string, time.Duration) error {
	return nil
}

// Close implements Backend.
func (x *Noop) Close() error {
	return nil
}

// keyOf renders one metric identity as name{k1=v1,k2=v2} with the tag keys
// sorted, so the same name and tags always produce the same key.
func keyOf(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(name)
	builder.WriteByte('{')
	for index, key := range keys {
		if index > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(key)
		builder.WriteByte('=')
		builder.WriteString(tags[key])
	}
	builder.WriteByte('}')
	return builder.String()
}
