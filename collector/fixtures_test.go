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

package collector

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/actormetrics/backend"
	"github.com/tochemey/actormetrics/metric"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var errSinkDown = errors.New("sink is down")

// failingBackend rejects every record call and counts the attempts.
type failingBackend struct {
	calls *atomic.Int64
}

// enforce compilation error
var _ backend.Backend = (*failingBackend)(nil)

func newFailingBackend() *failingBackend {
	return &failingBackend{calls: atomic.NewInt64(0)}
}

func (f *failingBackend) RecordCounter(string, map[string]string, int64) error {
	f.calls.Inc()
	return errSinkDown
}

func (f *failingBackend) RecordGauge(string, map[string]string, int64) error {
	f.calls.Inc()
	return errSinkDown
}

func (f *failingBackend) RecordTimer(string, map[string]string, time.Duration) error {
	f.calls.Inc()
	return errSinkDown
}

func (f *failingBackend) Close() error {
	return nil
}

// staticCollector is a custom collector emitting one fixed counter sample.
type staticCollector struct {
	name  string
	value int64
}

// enforce compilation error
var _ Collector = (*staticCollector)(nil)

func (s *staticCollector) Name() string {
	return s.name
}

func (s *staticCollector) Each(f func(sample metric.Sample)) {
	f(metric.Sample{
		Kind:  metric.KindCounter,
		Name:  s.name,
		Value: s.value,
	})
}

func (s *staticCollector) Reset() {
	s.value = 0
}
