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

package metric

import (
	"sync"
	"time"
)

// intervalCell tracks the first and most recent observation for one key.
// A small mutex keeps first-write-wins and last-write-wins coherent; the
// two fields must move together.
type intervalCell struct {
	mu    sync.Mutex
	count int64
	first int64
	last  int64
}

func newIntervalCell() *intervalCell {
	return &intervalCell{}
}

func (cell *intervalCell) observe(atNanos int64) {
	cell.mu.Lock()
	if cell.count == 0 {
		cell.first = atNanos
	}
	cell.last = atNanos
	cell.count++
	cell.mu.Unlock()
}

// IntervalValue is the aggregate reading of one interval key.
type IntervalValue struct {
	Count int64
	First int64
	Last  int64
}

// Spread returns the duration between the first and most recent observation.
// A single observation spreads zero.
func (v IntervalValue) Spread() time.Duration {
	return time.Duration(v.Last - v.First)
}

// Interval is a keyed family of first/last timestamp trackers. It answers
// "when did this start and when did it last happen", which combined with the
// count gives arrival rates without storing individual observations.
//
// First is set once by whichever observation arrives first and never moves.
// Last always reflects the most recent arrival in call order, even when a
// skewed clock hands it an older timestamp than a previous observation.
type Interval struct {
	cells *store[*intervalCell]
}

// NewInterval creates an empty interval family.
func NewInterval() *Interval {
	return &Interval{
		cells: newStore(newIntervalCell),
	}
}

// Observe records an observation for key stamped atNanos (Unix nanoseconds),
// creating the entry on first use.
func (i *Interval) Observe(key string, atNanos int64) {
	i.cells.getOrCreate(key).observe(atNanos)
}

// ObserveNow records an observation for key stamped with the current time.
func (i *Interval) ObserveNow(key string) {
	i.Observe(key, time.Now().UnixNano())
}

// Value returns the aggregate for key. The boolean reports whether the key
// holds at least one observation.
func (i *Interval) Value(key string) (IntervalValue, bool) {
	cell, ok := i.cells.get(key)
	if !ok {
		return IntervalValue{}, false
	}
	return cell.value()
}

// Size returns the number of live keys.
func (i *Interval) Size() int {
	return i.cells.size()
}

// Each visits every key holding at least one observation.
func (i *Interval) Each(f func(key string, value IntervalValue)) {
	i.cells.each(func(key string, cell *intervalCell) {
		if value, ok := cell.value(); ok {
			f(key, value)
		}
	})
}

// Reset drops all keys and aggregates.
func (i *Interval) Reset() {
	i.cells.reset()
}

func (cell *intervalCell) value() (IntervalValue, bool) {
	cell.mu.Lock()
	defer cell.mu.Unlock()
	if cell.count == 0 {
		return IntervalValue{}, false
	}
	return IntervalValue{
		Count: cell.count,
		First: cell.first,
		Last:  cell.last,
	}, true
}
