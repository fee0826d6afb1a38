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

// Counter is a keyed family of 64-bit accumulators. Each key tracks the
// running sum of its increments and decrements; the value may legitimately go
// negative and is never clamped, so imbalanced instrumentation stays
// observable instead of being masked.
type Counter struct {
	cells *store[*atomic.Int64]
}

// NewCounter creates an empty counter family.
func NewCounter() *Counter {
	return &Counter{
		cells: newStore(func() *atomic.Int64 { return atomic.NewInt64(0) }),
	}
}

// Inc adds one to the value stored under key, creating the entry on first use.
func (c *Counter) Inc(key string) {
	c.Add(key, 1)
}

// Dec subtracts one from the value stored under key, creating the entry on
// first use.
func (c *Counter) Dec(key string) {
	c.Add(key, -1)
}

// Add adds delta (which may be negative) to the value stored under key.
func (c *Counter) Add(key string, delta int64) {
	c.cells.getOrCreate(key).Add(delta)
}

// Value returns the current sum for key. The boolean reports whether the key
// has ever been touched; an untouched key yields (0, false) so callers can
// tell "no data" from a genuine zero.
func (c *Counter) Value(key string) (int64, bool) {
	cell, ok := c.cells.get(key)
	if !ok {
		return 0, false
	}
	return cell.Load(), true
}

// Total returns the sum of all keys.
func (c *Counter) Total() int64 {
	var total int64
	c.cells.each(func(_ string, cell *atomic.Int64) {
		total += cell.Load()
	})
	return total
}

// Size returns the number of live keys.
func (c *Counter) Size() int {
	return c.cells.size()
}

// Each visits every key with its current value.
func (c *Counter) Each(f func(key string, value int64)) {
	c.cells.each(func(key string, cell *atomic.Int64) {
		f(key, cell.Load())
	})
}

// Reset drops all keys and values.
func (c *Counter) Reset() {
	c.cells.reset()
}
