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

package event

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/actormetrics/log"
)

// registration pairs one listener with the handle its owner can later
// unregister it by.
type registration[T any] struct {
	id       string
	listener T
}

// Holder keeps the registered listeners of one event family. Registration is
// copy-on-write: publishers load an immutable snapshot of the listener slice
// and walk it lock-free, so the hot path never contends with registration
// churn. Listeners are invoked in registration order on the publishing
// goroutine; a panicking listener is recovered and logged without disturbing
// its peers.
type Holder[T any] struct {
	mu      sync.Mutex
	entries atomic.Pointer[[]registration[T]]
	logger  atomic.Pointer[log.Logger]
}

// NewHolder creates an empty Holder.
func NewHolder[T any]() *Holder[T] {
	return new(Holder[T])
}

// Register adds listener and returns the handle to unregister it with.
func (h *Holder[T]) Register(listener T) string {
	id := uuid.NewString()
	h.mu.Lock()
	current := h.snapshot()
	next := make([]registration[T], 0, len(current)+1)
	next = append(next, current...)
	next = append(next, registration[T]{id: id, listener: listener})
	h.entries.Store(&next)
	h.mu.Unlock()
	return id
}

// Unregister removes the listener registered under id. Unknown handles are
// ignored.
func (h *Holder[T]) Unregister(id string) {
	h.mu.Lock()
	current := h.snapshot()
	next := make([]registration[T], 0, len(current))
	for _, entry := range current {
		if entry.id != id {
			next = append(next, entry)
		}
	}
	h.entries.Store(&next)
	h.mu.Unlock()
}

// Reset removes every registered listener.
func (h *Holder[T]) Reset() {
	h.mu.Lock()
	h.entries.Store(&[]registration[T]{})
	h.mu.Unlock()
}

// Len returns the number of registered listeners.
func (h *Holder[T]) Len() int {
	entries := h.entries.Load()
	if entries == nil {
		return 0
	}
	return len(*entries)
}

// SetLogger sets the logger panicking listeners are reported to. The default
// is the discarding logger.
func (h *Holder[T]) SetLogger(logger log.Logger) {
	if logger != nil {
		h.logger.Store(&logger)
	}
}

// each invokes f with every registered listener, in registration order.
func (h *Holder[T]) each(f func(listener T)) {
	entries := h.entries.Load()
	if entries == nil {
		return
	}
	for _, entry := range *entries {
		h.invoke(f, entry)
	}
}

func (h *Holder[T]) invoke(f func(listener T), entry registration[T]) {
	defer func() {
		if r := recover(); r != nil {
			h.log().Errorf("listener=(%s) panicked: %v", entry.id, r)
		}
	}()
	f(entry.listener)
}

func (h *Holder[T]) snapshot() []registration[T] {
	entries := h.entries.Load()
	if entries == nil {
		return nil
	}
	return *entries
}

func (h *Holder[T]) log() log.Logger {
	if logger := h.logger.Load(); logger != nil {
		return *logger
	}
	return log.DiscardLogger
}
