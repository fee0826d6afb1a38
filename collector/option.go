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
	"maps"

	"github.com/tochemey/actormetrics/backend"
	"github.com/tochemey/actormetrics/breaker"
	"github.com/tochemey/actormetrics/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithName sets the registry name.
func WithName(name string) Option {
	return OptionFunc(func(config *Config) {
		config.name = name
	})
}

// WithDisabled makes the registry start out paused. Events are still
// received but not recorded until Enable is called.
func WithDisabled() Option {
	return OptionFunc(func(config *Config) {
		config.enabled = false
	})
}

// WithStaticTags replaces the tags attached to every pushed update.
func WithStaticTags(tags map[string]string) Option {
	return OptionFunc(func(config *Config) {
		config.staticTags = maps.Clone(tags)
	})
}

// WithTag adds one tag to the set attached to every pushed update.
func WithTag(key, value string) Option {
	return OptionFunc(func(config *Config) {
		if config.staticTags == nil {
			config.staticTags = make(map[string]string)
		}
		config.staticTags[key] = value
	})
}

// WithIncludes sets the patterns an actor path must match to be observed.
// With no include patterns every actor is observed.
func WithIncludes(patterns ...string) Option {
	return OptionFunc(func(config *Config) {
		config.includes = patterns
	})
}

// WithExcludes sets the patterns that veto observation of a matching actor
// path, regardless of the include patterns.
func WithExcludes(patterns ...string) Option {
	return OptionFunc(func(config *Config) {
		config.excludes = patterns
	})
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithBackend sets the push target for aggregated updates.
func WithBackend(sink backend.Backend) Option {
	return OptionFunc(func(config *Config) {
		config.sink = sink
	})
}

// WithBufferCapacity sets the capacity of the per-class timestamp buffers
// used to measure mailbox wait and to derive processing durations. A full
// buffer drops samples rather than growing.
func WithBufferCapacity(capacity uint64) Option {
	return OptionFunc(func(config *Config) {
		config.bufferCapacity = capacity
	})
}

// WithBreakerOptions tunes the circuit breaker guarding the backend.
func WithBreakerOptions(opts ...breaker.Option) Option {
	return OptionFunc(func(config *Config) {
		config.breakerOpts = opts
	})
}
