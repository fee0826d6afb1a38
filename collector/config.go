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
	"fmt"
	"maps"

	"github.com/tochemey/actormetrics/backend"
	"github.com/tochemey/actormetrics/breaker"
	"github.com/tochemey/actormetrics/filter"
	"github.com/tochemey/actormetrics/internal/validation"
	"github.com/tochemey/actormetrics/log"
)

// Config defines the metrics registry configuration.
//
// Include and exclude patterns select which actors are observed by their
// path; see the filter package for the pattern syntax. Static tags are
// attached to every update pushed to the backend and to every snapshot
// sample, on top of the per-event tags the collectors emit.
type Config struct {
	name           string
	enabled        bool
	staticTags     map[string]string
	includes       []string
	excludes       []string
	logger         log.Logger
	sink           backend.Backend
	bufferCapacity uint64
	breakerOpts    []breaker.Option
}

// enforce compilation error
var _ validation.Validator = (*Config)(nil)

// NewConfig returns a Config initialized with the supplied functional
// options. Out of the box the registry is enabled, named "actormetrics",
// observes every actor, logs through the default logger and discards
// updates through the noop backend.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		name:           "actormetrics",
		enabled:        true,
		staticTags:     make(map[string]string),
		logger:         log.DefaultLogger,
		sink:           backend.NewNoop(),
		bufferCapacity: 1024,
	}

	// apply the options
	for _, opt := range opts {
		opt.Apply(cfg)
	}

	return cfg
}

// Name returns the registry name.
func (x *Config) Name() string {
	return x.name
}

// Enabled returns whether the registry starts out recording.
func (x *Config) Enabled() bool {
	return x.enabled
}

// StaticTags returns a copy of the tags attached to every pushed update.
func (x *Config) StaticTags() map[string]string {
	return maps.Clone(x.staticTags)
}

// Includes returns the include patterns.
func (x *Config) Includes() []string {
	return x.includes
}

// Excludes returns the exclude patterns.
func (x *Config) Excludes() []string {
	return x.excludes
}

// Logger returns the logger.
func (x *Config) Logger() log.Logger {
	return x.logger
}

// Backend returns the push target for aggregated updates.
func (x *Config) Backend() backend.Backend {
	return x.sink
}

// BufferCapacity returns the capacity of the timestamp correlation buffers
// used to measure mailbox wait and to derive processing durations.
func (x *Config) BufferCapacity() uint64 {
	return x.bufferCapacity
}

// BreakerOptions returns the options of the circuit breaker guarding the
// backend.
func (x *Config) BreakerOptions() []breaker.Option {
	return x.breakerOpts
}

func (x *Config) Validate() error {
	return validation.
		New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("name", x.name)).
		AddAssertion(x.sink != nil, "backend is required").
		AddAssertion(x.bufferCapacity > 0, "bufferCapacity must be greater than 0").
		AddValidator(newPatternsValidator("includes", x.includes)).
		AddValidator(newPatternsValidator("excludes", x.excludes)).
		Validate()
}

// patternsValidator reports the first pattern of a list that does not
// compile.
type patternsValidator struct {
	fieldName string
	patterns  []string
}

// enforce compilation error
var _ validation.Validator = (*patternsValidator)(nil)

func newPatternsValidator(fieldName string, patterns []string) validation.Validator {
	return &patternsValidator{
		fieldName: fieldName,
		patterns:  patterns,
	}
}

func (v *patternsValidator) Validate() error {
	for _, pattern := range v.patterns {
		if _, err := filter.Compile(pattern); err != nil {
			return fmt.Errorf("invalid %s pattern: %w", v.fieldName, err)
		}
	}
	return nil
}
