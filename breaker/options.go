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

import "time"

// options configures the breaker.
type options struct {
	failureThreshold int           // consecutive failures before opening
	openTimeout      time.Duration // how long to stay open before probing
	halfOpenMaxCalls int           // probe calls permitted while half-open
	clock            func() time.Time
}

func defaultOptions() *options {
	return &options{
		failureThreshold: 5,
		openTimeout:      30 * time.Second,
		halfOpenMaxCalls: 1,
		clock:            time.Now,
	}
}

// sanitize adjusts invalid options to usable values.
func (o *options) sanitize() {
	if o.failureThreshold < 1 {
		o.failureThreshold = 1
	}
	if o.openTimeout <= 0 {
		o.openTimeout = 30 * time.Second
	}
	if o.halfOpenMaxCalls < 1 {
		o.halfOpenMaxCalls = 1
	}
	if o.clock == nil {
		o.clock = time.Now
	}
}

// Option is the functional option.
type Option func(*options)

// WithFailureThreshold sets how many consecutive failures open the breaker.
func WithFailureThreshold(n int) Option {
	return func(o *options) { o.failureThreshold = n }
}

// WithOpenTimeout sets how long the breaker stays open before letting probe
// calls through.
func WithOpenTimeout(d time.Duration) Option {
	return func(o *options) { o.openTimeout = d }
}

// WithHalfOpenMaxCalls sets how many probe calls may run while half-open.
func WithHalfOpenMaxCalls(n int) Option {
	return func(o *options) { o.halfOpenMaxCalls = n }
}

// WithClock overrides the time source. Reserved for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}
