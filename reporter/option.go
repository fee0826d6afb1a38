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

package reporter

import (
	"time"

	"github.com/tochemey/actormetrics/log"
)

// Option is the interface that applies a configuration option to the reporter.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(reporter *Reporter)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(reporter *Reporter)

// Apply applies the reporter's option
func (f OptionFunc) Apply(reporter *Reporter) {
	f(reporter)
}

// WithInterval sets the time between two exports.
func WithInterval(interval time.Duration) Option {
	return OptionFunc(func(reporter *Reporter) {
		reporter.interval = interval
	})
}

// WithStopTimeout sets how long Stop waits for an in-flight export.
func WithStopTimeout(timeout time.Duration) Option {
	return OptionFunc(func(reporter *Reporter) {
		reporter.stopTimeout = timeout
	})
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(reporter *Reporter) {
		reporter.logger = logger
	})
}

// WithSinks adds export sinks. The reporter does not own the sinks'
// lifecycles; close them after stopping the reporter.
func WithSinks(sinks ...Sink) Option {
	return OptionFunc(func(reporter *Reporter) {
		reporter.sinks = append(reporter.sinks, sinks...)
	})
}
