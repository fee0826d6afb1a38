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
	"math"
	"time"

	"go.uber.org/atomic"
)

// timerCell aggregates durations for one key. Min and max are maintained with
// compare-and-swap loops so concurrent recorders never lose an extreme.
type timerCell struct {
	count *atomic.Int64
	total *atomic.Int64
	min   *atomic.Int64
	max   *atomic.Int64
}

func newTimerCell() *timerCell {
	return &timerCell{
		count: atomic.NewInt64(0),
		total: atomic.NewInt64(0),
		min:   atomic.NewInt64(math.MaxInt64),
		max:   atomic.NewInt64(math.MinInt64),
	}
}

func (cell *timerCell) record(elapsed int64) {
	cell.count.Inc()
	cell.total.Add(elapsed)
	for {
		current := cell.min.Load()
		if elapsed >= current || cell.min.CompareAndSwap(current, elapsed) {
			break
		}
	}
	for {
		current := cell.max.Load()
		if elapsed <= current || cell.max.CompareAndSwap(current, elapsed) {
			break
		}
	}
}

// TimerValue is the aggregate reading of one timer key.
type TimerValue struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Avg returns the mean duration, or zero when nothing has been recorded.
func (v TimerValue) Avg() time.Duration {
	if v.Count == 0 {
		return 0
	}
	return v.Total / time.Duration(v.Count)
}

// Timer is a keyed family of duration aggregates. Each key tracks the count,
// total, minimum and maximum of every duration recorded against it.
type Timer struct {
	cells *store[*timerCell]
}

// NewTimer creates an empty timer family.
func NewTimer() *Timer {
	return &Timer{
		cells: newStore(newTimerCell),
	}
}

// Record folds elapsed into the aggregate for key, creating the entry on
// first use. Negative durations are clamped to zero; a clock that ran
// backwards should not poison the minimum.
func (t *Timer) Record(key string, elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	t.cells.getOrCreate(key).record(int64(elapsed))
}

// Value returns the aggregate for key. The boolean reports whether the key
// holds at least one recording; a key that exists but was never recorded
// against yields (TimerValue{}, false).
func (t *Timer) Value(key string) (TimerValue, bool) {
	cell, ok := t.cells.get(key)
	if !ok {
		return TimerValue{}, false
	}
	return cell.value()
}

// Size returns the number of live keys.
func (t *Timer) Size() int {
	return t.cells.size()
}

// Each visits every key holding at least one recording.
func (t *Timer) Each(f func(key string, value TimerValue)) {
	t.cells.each(func(key string, cell *timerCell) {
		if value, ok := cell.value(); ok {
			f(key, value)
		}
	})
}

// Reset drops all keys and aggregates.
func (t *Timer) Reset() {
	t.cells.reset()
}

func (cell *timerCell) value() (TimerValue, bool) {
	count := cell.count.Load()
	if count == 0 {
		return TimerValue{}, false
	}
	return TimerValue{
		Count: count,
		Total: time.Duration(cell.total.Load()),
		Min:   time.Duration(cell.min.Load()),
		Max:   time.Duration(cell.max.Load()),
	}, true
}
