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

package breaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestCircuitBreaker(t *testing.T) {
	t.Run("With calls passing through while closed", func(t *testing.T) {
		cb := NewCircuitBreaker()
		calls := 0
		for range 10 {
			err := cb.Execute(func() error {
				calls++
				return nil
			})
			require.NoError(t, err)
		}
		assert.Equal(t, 10, calls)
		assert.Equal(t, Closed, cb.State())
	})
	t.Run("With consecutive failures tripping the breaker", func(t *testing.T) {
		cb := NewCircuitBreaker(WithFailureThreshold(3))
		boom := errors.New("boom")
		for range 3 {
			err := cb.Execute(func() error { return boom })
			require.ErrorIs(t, err, boom)
		}
		assert.Equal(t, Open, cb.State())

		invoked := false
		err := cb.Execute(func() error {
			invoked = true
			return nil
		})
		require.ErrorIs(t, err, ErrOpen)
		assert.False(t, invoked)
	})
	t.Run("With a success resetting the failure streak", func(t *testing.T) {
		cb := NewCircuitBreaker(WithFailureThreshold(3))
		boom := errors.New("boom")
		_ = cb.Execute(func() error { return boom })
		_ = cb.Execute(func() error { return boom })
		require.NoError(t, cb.Execute(func() error { return nil }))
		_ = cb.Execute(func() error { return boom })
		_ = cb.Execute(func() error { return boom })
		assert.Equal(t, Closed, cb.State())
	})
	t.Run("With a successful probe closing the breaker", func(t *testing.T) {
		clock := newFakeClock()
		cb := NewCircuitBreaker(
			WithFailureThreshold(1),
			WithOpenTimeout(time.Minute),
			WithClock(clock.Now),
		)
		require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
		require.Equal(t, Open, cb.State())

		clock.Advance(2 * time.Minute)
		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, Closed, cb.State())
	})
	t.Run("With a failed probe reopening the breaker", func(t *testing.T) {
		clock := newFakeClock()
		cb := NewCircuitBreaker(
			WithFailureThreshold(1),
			WithOpenTimeout(time.Minute),
			WithClock(clock.Now),
		)
		boom := errors.New("boom")
		require.Error(t, cb.Execute(func() error { return boom }))

		clock.Advance(2 * time.Minute)
		require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
		assert.Equal(t, Open, cb.State())

		// cooldown restarted: still rejecting
		require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)
	})
	t.Run("With the probe allowance bounding half-open calls", func(t *testing.T) {
		clock := newFakeClock()
		cb := NewCircuitBreaker(
			WithFailureThreshold(1),
			WithOpenTimeout(time.Minute),
			WithHalfOpenMaxCalls(1),
			WithClock(clock.Now),
		)
		require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
		clock.Advance(2 * time.Minute)

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- cb.Execute(func() error {
				close(started)
				<-release
				return nil
			})
		}()

		<-started
		require.Equal(t, HalfOpen, cb.State())
		err := cb.Execute(func() error { return nil })
		require.ErrorIs(t, err, ErrOpen)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, Closed, cb.State())
	})
	t.Run("With invalid options adjusted", func(t *testing.T) {
		cb := NewCircuitBreaker(
			WithFailureThreshold(-1),
			WithOpenTimeout(-time.Second),
			WithHalfOpenMaxCalls(0),
			WithClock(nil),
		)
		// threshold clamped to one: a single failure trips
		require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
		assert.Equal(t, Open, cb.State())
	})
	t.Run("With errors passed through unchanged", func(t *testing.T) {
		cb := NewCircuitBreaker()
		boom := errors.New("boom")
		err := cb.Execute(func() error { return boom })
		assert.Same(t, boom, err)
	})
}

func TestState(t *testing.T) {
	testCases := []struct {
		state    State
		expected string
	}{
		{Closed, "closed"},
		{Open, "open"},
		{HalfOpen, "half-open"},
		{State(42), "unknown"},
	}
	for _, testCase := range testCases {
		t.Run("With "+testCase.expected, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.state.String())
		})
	}
}
