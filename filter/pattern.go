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

package filter

import (
	"fmt"
	"strings"
)

// segment is one compiled slash-delimited element of a pattern.
type segment struct {
	literal  string
	wildcard bool
	globstar bool
}

// Pattern is a compiled path pattern. Patterns are matched segment by
// segment against slash-separated paths:
//
//   - a literal segment matches itself byte for byte
//   - ? matches exactly one character inside a segment
//   - * matches any run of characters inside a segment, never a slash
//   - ** standing alone matches any number of whole segments, including none
//
// So "/user/*" matches every direct child of user, "/user/**" matches the
// whole subtree under user, and "/**/cart" matches any path ending in cart.
// Matching is case-sensitive. A compiled Pattern is immutable and safe for
// concurrent use.
type Pattern struct {
	raw      string
	segments []segment
}

// Compile parses pattern into its matchable form. It returns an error when
// the pattern is blank or places ** next to other characters inside a single
// segment.
func Compile(pattern string) (*Pattern, error) {
	raw := strings.TrimSpace(pattern)
	if raw == "" {
		return nil, ErrEmptyPattern
	}

	var segments []segment
	for _, token := range strings.Split(raw, "/") {
		if token == "" {
			continue
		}
		if strings.Contains(token, "**") {
			if token != "**" {
				return nil, fmt.Errorf("segment [%s] of pattern [%s] is invalid: %w", token, raw, ErrInvalidPattern)
			}
			// runs of ** collapse to one
			if len(segments) > 0 && segments[len(segments)-1].globstar {
				continue
			}
			segments = append(segments, segment{globstar: true})
			continue
		}
		segments = append(segments, segment{
			literal:  token,
			wildcard: strings.ContainsAny(token, "*?"),
		})
	}

	return &Pattern{
		raw:      raw,
		segments: segments,
	}, nil
}

// MustCompile is like Compile but panics on error. It simplifies the safe
// initialization of package-level patterns.
func MustCompile(pattern string) *Pattern {
	compiled, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return compiled
}

// String returns the pattern source text.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether path matches the pattern. The match walks the path
// in place and allocates nothing.
func (p *Pattern) Match(path string) bool {
	return matchSegments(p.segments, path, 0)
}

func matchSegments(segments []segment, path string, offset int) bool {
	offset = skipSlashes(path, offset)
	if len(segments) == 0 {
		return offset == len(path)
	}

	head := segments[0]
	if head.globstar {
		// try the remainder at every token boundary, starting with the
		// zero-segment match
		for {
			if matchSegments(segments[1:], path, offset) {
				return true
			}
			if offset == len(path) {
				return false
			}
			offset = skipSlashes(path, tokenEnd(path, offset))
		}
	}

	if offset == len(path) {
		return false
	}
	end := tokenEnd(path, offset)
	if !head.matchToken(path[offset:end]) {
		return false
	}
	return matchSegments(segments[1:], path, end)
}

func (s segment) matchToken(token string) bool {
	if !s.wildcard {
		return s.literal == token
	}
	return matchWildcard(s.literal, token)
}

// matchWildcard matches one pattern segment containing * or ? against one
// path token, backtracking to the most recent star on mismatch.
func matchWildcard(pattern, token string) bool {
	var px, tx int
	star, starTx := -1, 0
	for tx < len(token) {
		switch {
		case px < len(pattern) && (pattern[px] == '?' || pattern[px] == token[tx]):
			px++
			tx++
		case px < len(pattern) && pattern[px] == '*':
			star, starTx = px, tx
			px++
		case star >= 0:
			px = star + 1
			starTx++
			tx = starTx
		default:
			return false
		}
	}
	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}

func skipSlashes(path string, offset int) int {
	for offset < len(path) && path[offset] == '/' {
		offset++
	}
	return offset
}

func tokenEnd(path string, offset int) int {
	for offset < len(path) && path[offset] != '/' {
		offset++
	}
	return offset
}
