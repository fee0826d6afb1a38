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

// Package filter selects actor paths with glob patterns. A Filter combines
// include and exclude pattern lists: exclusion always wins, and an empty
// include list admits everything not excluded. Filters are compiled once and
// matched lock-free on the instrumentation hot path.
package filter

import "errors"

var (
	// ErrEmptyPattern is returned when compiling a blank pattern.
	ErrEmptyPattern = errors.New("pattern is empty")
	// ErrInvalidPattern is returned when ** appears next to other characters
	// inside a single pattern segment.
	ErrInvalidPattern = errors.New("** must stand alone in its segment")
)

// Filter decides whether a given actor path is selected for collection.
// The zero or nil Filter admits every path.
type Filter struct {
	includes []*Pattern
	excludes []*Pattern
}

// New compiles the given include and exclude pattern lists into a Filter.
// The first pattern that fails to compile aborts with its error.
func New(includes, excludes []string) (*Filter, error) {
	filter := new(Filter)
	for _, pattern := range includes {
		compiled, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		filter.includes = append(filter.includes, compiled)
	}
	for _, pattern := range excludes {
		compiled, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		filter.excludes = append(filter.excludes, compiled)
	}
	return filter, nil
}

// Match reports whether path is selected. Excludes are consulted first and
// veto unconditionally; with no includes configured every surviving path is
// selected, otherwise at least one include must match.
func (f *Filter) Match(path string) bool {
	if f == nil {
		return true
	}
	for _, pattern := range f.excludes {
		if pattern.Match(path) {
			return false
		}
	}
	if len(f.includes) == 0 {
		return true
	}
	for _, pattern := range f.includes {
		if pattern.Match(path) {
			return true
		}
	}
	return false
}

// Includes returns the source text of the include patterns.
func (f *Filter) Includes() []string {
	if f == nil {
		return nil
	}
	return sources(f.includes)
}

// Excludes returns the source text of the exclude patterns.
func (f *Filter) Excludes() []string {
	if f == nil {
		return nil
	}
	return sources(f.excludes)
}

func sources(patterns []*Pattern) []string {
	if len(patterns) == 0 {
		return nil
	}
	out := make([]string, len(patterns))
	for index, pattern := range patterns {
		out[index] = pattern.String()
	}
	return out
}
