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

package backend

import (
	"maps"
	"sort"
	"sync"
	"time"

	goset "github.com/deckarep/golang-set/v2"
)

// memoryTimer accumulates timer recordings for one metric identity.
type memoryTimer struct {
	count int64
	total time.Duration
}

// memoryEntry remembers the identity behind one canonical key so recorded
// metrics can be looked up by name and tag.
type memoryEntry struct {
	name string
	tags map[string]string
}

// Memory is a Backend that keeps every update in process memory and exposes
// read-backs. It backs tests and local inspection; recorded values survive
// Close so they stay inspectable after shutdown.
type Memory struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]int64
	timers   map[string]*memoryTimer
	entries  map[string]memoryEntry
	names    goset.Set[string]
}

// enforce compilation error
var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
		timers:   make(map[string]*memoryTimer),
		entries:  make(map[string]memoryEntry),
		names:    goset.NewSet[string](),
	}
}

// RecordCounter implements Backend.
func (x *Memory) RecordCounter(name string, tags map[string]string, value int64) error {
	key := keyOf(name, tags)
	x.mu.Lock()
	x.counters[key] += value
	x.remember(key, name, tags)
	x.mu.Unlock()
	return nil
}

// RecordGauge implements Backend.
func (x *Memory) RecordGauge(name string, tags map[string]string, value int64) error {
	key := keyOf(name, tags)
	x.mu.Lock()
	x.gauges[key] = value
	x.remember(key, name, tags)
	x.mu.Unlock()
	return nil
}

// RecordTimer implements Backend.
func (x *Memory) RecordTimer(name string, tags map[string]string, elapsed time.Duration) error {
	key := keyOf(name, tags)
	x.mu.Lock()
	timer, ok := x.timers[key]
	if !ok {
		timer = new(memoryTimer)
		x.timers[key] = timer
	}
	timer.count++
	timer.total += elapsed
	x.remember(key, name, tags)
	x.mu.Unlock()
	return nil
}

// Close implements Backend.
func (x *Memory) Close() error {
	return nil
}

// CounterValue returns the accumulated counter for the exact name and tags.
func (x *Memory) CounterValue(name string, tags map[string]string) (int64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	value, ok := x.counters[keyOf(name, tags)]
	return value, ok
}

// GaugeValue returns the latest gauge reading for the exact name and tags.
func (x *Memory) GaugeValue(name string, tags map[string]string) (int64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	value, ok := x.gauges[keyOf(name, tags)]
	return value, ok
}

// TimerCount returns how many durations were recorded for the exact name and
// tags.
func (x *Memory) TimerCount(name string, tags map[string]string) (int64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	timer, ok := x.timers[keyOf(name, tags)]
	if !ok {
		return 0, false
	}
	return timer.count, true
}

// TimerTotal returns the summed durations recorded for the exact name and
// tags.
func (x *Memory) TimerTotal(name string, tags map[string]string) (time.Duration, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	timer, ok := x.timers[keyOf(name, tags)]
	if !ok {
		return 0, false
	}
	return timer.total, true
}

// HasMetricWithTag reports whether any update was recorded under name
// carrying the given tag pair.
func (x *Memory) HasMetricWithTag(name, tagKey, tagValue string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, entry := range x.entries {
		if entry.name == name && entry.tags[tagKey] == tagValue {
			return true
		}
	}
	return false
}

// Names returns the sorted distinct metric names recorded so far.
func (x *Memory) Names() []string {
	names := x.names.ToSlice()
	sort.Strings(names)
	return names
}

// Reset drops every recorded value.
func (x *Memory) Reset() {
	x.mu.Lock()
	x.counters = make(map[string]int64)
	x.gauges = make(map[string]int64)
	x.timers = make(map[string]*memoryTimer)
	x.entries = make(map[string]memoryEntry)
	x.names.Clear()
	x.mu.Unlock()
}

func (x *Memory) remember(key, name string, tags map[string]string) {
	x.names.Add(name)
	if _, ok := x.entries[key]; ok {
		return
	}
	x.entries[key] = memoryEntry{
		name: name,
		tags: maps.Clone(tags),
	}
}
