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

import "go.uber.org/atomic"

// Gauge is a keyed family of point-in-time values. Unlike Counter a gauge can
// be set outright to an absolute level, which makes it the right shape for
// depths, in-flight counts and other last-write-wins readings.
type Gauge struct {
	cells *store[*atomic.Int64]
}

// NewGauge creates an empty gauge family.
func NewGauge() *Gauge {
	return &Gauge{
		cells: newStore(func() *atomic.Int64 { return atomic.NewInt64(0) }),
	}
}

// Set stores an absolute value under key, creating the entry on first use.
func (g *Gauge) Set(key string, value int64) {
	g.cells.getOrCreate(key).Store(value)
}

// Add adds delta (which may be negative) to the value stored under key.
func (g *Gauge) Add(key string, delta int64) {
	g.cells.getOrCreate(key).Add(delta)
}

// Inc adds one to the value stored under key.
func (g *Gauge) Inc(key string) {
	g.Add(key, 1)
}

// Dec subtracts one from the value stored under key.
func (g *Gauge) Dec(key string) {
	g.Add(key, -1)
}

// Value returns the current reading for key. The boolean reports whether the
// key has ever been touched.
func (g *Gauge) Value(key string) (int64, bool) {
	cell, ok := g.cells.get(key)
	if !ok {
		return 0, false
	}
	return cell.Load(), true
}

// Sum returns the sum of all keys. For gauges tracking the same quantity
// across shards of a population this is the population-wide reading.
func (g *Gauge) Sum() int64 {
	var total int64
	g.cells.each(func(_ string, cell *atomic.Int64) {
		total += cell.Load()
	})
	return total
}

// Size returns the number of live keys.
func (g *Gauge) Size() int {
	return g.cells.size()
}

// Each visits every key with its current reading.
func (g *Gauge) Each(f func(key string, value int64)) {
	g.cells.each(func(key string, cell *atomic.Int64) {
		f(key, cell.Load())
	})
}

// Reset drops all keys and values.
func (g *Gauge) Reset() {
	g.cells.reset()
}
