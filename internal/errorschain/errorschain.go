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

package errorschain

import (
	"context"

	"go.uber.org/multierr"
)

// Chain evaluates a sequence of error-producing steps in insertion order.
// Steps added as functions run lazily when Error is called, which makes the
// chain suitable for ordered shutdown sequences: with ReturnFirst, steps after
// the first failure never execute.
type Chain struct {
	returnFirst bool
	steps       []func() error
}

// ChainOption configures an error chain at creation time.
type ChainOption func(*Chain)

// New creates a new error chain. All steps will be evaluated respectively
// according to their insertion order
func New(opts ...ChainOption) *Chain {
	chain := &Chain{
		steps: make([]func() error, 0),
	}

	for _, opt := range opts {
		opt(chain)
	}

	return chain
}

// ReturnFirst sets whether a chain should stop evaluation on first error.
func ReturnFirst() ChainOption {
	return func(c *Chain) { c.returnFirst = true }
}

// ReturnAll sets whether a chain should return all errors.
func ReturnAll() ChainOption {
	return func(c *Chain) { c.returnFirst = false }
}

// AddError adds an already-materialized error to the chain.
func (c *Chain) AddError(err error) *Chain {
	c.steps = append(c.steps, func() error { return err })
	return c
}

// AddErrors adds a slice of errors to the chain. Remember the slice order does matter here
func (c *Chain) AddErrors(errs ...error) *Chain {
	for _, err := range errs {
		c.AddError(err)
	}
	return c
}

// AddErrorFn adds a lazily-evaluated step to the chain. The function only runs
// when Error reaches it.
func (c *Chain) AddErrorFn(fn func() error) *Chain {
	c.steps = append(c.steps, fn)
	return c
}

// AddErrorFns adds lazily-evaluated steps to the chain in the given order.
func (c *Chain) AddErrorFns(fns ...func() error) *Chain {
	c.steps = append(c.steps, fns...)
	return c
}

// AddErrorFnIf adds fn bound to ctx when condition holds; otherwise the chain
// is returned unchanged and fn never runs.
func (c *Chain) AddErrorFnIf(ctx context.Context, condition bool, fn func(context.Context) error) *Chain {
	if condition {
		c.steps = append(c.steps, func() error { return fn(ctx) })
	}
	return c
}

// Error evaluates the chain and returns the resulting error(s).
// With ReturnFirst the first failing step short-circuits the chain; with
// ReturnAll every step runs and the failures are combined.
func (c *Chain) Error() error {
	var violations error
	for _, step := range c.steps {
		if err := step(); err != nil {
			if c.returnFirst {
				return err
			}
			violations = multierr.Append(violations, err)
		}
	}
	return violations
}
