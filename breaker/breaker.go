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

// Package breaker shields callers from a persistently failing resource.
// The breaker trips after a run of consecutive failures, rejects calls for a
// cooldown period, then admits a bounded number of probes; one successful
// probe closes it again. Execute runs the protected function on the calling
// goroutine and adds no allocation, which keeps it cheap enough to sit on a
// per-event export path.
package breaker

import (
	"sync"

	"go.uber.org/atomic"
)

// CircuitBreaker is a consecutive-failure circuit breaker. It is safe for
// concurrent use.
type CircuitBreaker struct {
	opts *options

	state     atomic.Int32
	failures  atomic.Int64 // consecutive failures while closed
	openUntil atomic.Int64 // unix nanos when the open period ends
	probes    atomic.Int64 // admitted half-open probes

	mu sync.Mutex // serializes transitions
}

// NewCircuitBreaker creates a closed breaker. Invalid option values are
// adjusted rather than rejected.
func NewCircuitBreaker(opts ...Option) *CircuitBreaker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.sanitize()
	return &CircuitBreaker{opts: o}
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() State {
	return State(b.state.Load())
}

// Execute runs fn when the breaker admits the call and folds its outcome into
// the breaker state. When the breaker is open the call is rejected with
// ErrOpen and fn is never invoked; any other error is fn's own.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrOpen
	}
	if err := fn(); err != nil {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return nil
}

func (b *CircuitBreaker) allow() bool {
	state := b.State()
	if state == Closed {
		return true
	}
	if state == Open {
		if b.opts.clock().UnixNano() < b.openUntil.Load() {
			return false
		}
		b.toHalfOpen()
		if b.State() != HalfOpen {
			return false
		}
	}
	// half-open: admit a bounded number of probes; slots recycle on the
	// transition the probe outcome triggers
	if b.probes.Inc() > int64(b.opts.halfOpenMaxCalls) {
		b.probes.Dec()
		return false
	}
	return true
}

func (b *CircuitBreaker) onSuccess() {
	switch b.State() {
	case HalfOpen:
		b.toClosed()
	case Closed:
		b.failures.Store(0)
	}
}

func (b *CircuitBreaker) onFailure() {
	switch b.State() {
	case HalfOpen:
		b.toOpen()
	case Closed:
		if b.failures.Inc() >= int64(b.opts.failureThreshold) {
			b.toOpen()
		}
	}
}

func (b *CircuitBreaker) toOpen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openUntil.Store(b.opts.clock().Add(b.opts.openTimeout).UnixNano())
	b.failures.Store(0)
	b.probes.Store(0)
	b.state.Store(int32(Open))
}

func (b *CircuitBreaker) toHalfOpen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if State(b.state.Load()) != Open {
		return
	}
	if b.opts.clock().UnixNano() < b.openUntil.Load() {
		return
	}
	b.probes.Store(0)
	b.state.Store(int32(HalfOpen))
}

func (b *CircuitBreaker) toClosed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures.Store(0)
	b.probes.Store(0)
	b.state.Store(int32(Closed))
}
