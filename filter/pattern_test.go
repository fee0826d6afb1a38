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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatch(t *testing.T) {
	testCases := []struct {
		pattern  string
		path     string
		expected bool
	}{
		// literals
		{"/user/cart", "/user/cart", true},
		{"/user/cart", "/user/Cart", false},
		{"/user/cart", "/user/cart/item", false},
		{"/user/cart", "/user", false},
		// single-segment wildcards
		{"/user/*", "/user/cart", true},
		{"/user/*", "/user/payments", true},
		{"/user/*", "/user/cart/item", false},
		{"/user/*", "/user", false},
		{"/user/c?rt", "/user/cart", true},
		{"/user/c?rt", "/user/crt", false},
		{"/user/ca*t", "/user/cat", true},
		{"/user/ca*t", "/user/carrot", true},
		{"/user/ca*t", "/user/card", false},
		{"*", "/user", true},
		{"*", "/user/cart", false},
		// globstar
		{"/user/**", "/user", true},
		{"/user/**", "/user/cart", true},
		{"/user/**", "/user/cart/item", true},
		{"/user/**", "/system/log", false},
		{"/**/cart", "/cart", true},
		{"/**/cart", "/user/checkout/cart", true},
		{"/**/cart", "/user/cart/item", false},
		{"/user/**/worker-*", "/user/worker-1", true},
		{"/user/**/worker-*", "/user/pool/shard/worker-7", true},
		{"/user/**/worker-*", "/user/pool/manager", false},
		{"**", "/anything/at/all", true},
		{"**", "/", true},
		{"**", "", true},
		// collapsed globstar runs
		{"/a/**/**/b", "/a/b", true},
		{"/a/**/**/b", "/a/x/y/b", true},
		// sloppy separators
		{"/user/cart", "//user//cart", true},
		{"/user/cart", "/user/cart/", true},
		{"user/cart", "/user/cart", true},
	}
	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("With pattern %s against %s", testCase.pattern, testCase.path), func(t *testing.T) {
			pattern, err := Compile(testCase.pattern)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, pattern.Match(testCase.path))
		})
	}
}

func TestCompile(t *testing.T) {
	t.Run("With valid pattern", func(t *testing.T) {
		pattern, err := Compile("/user/**/cart")
		require.NoError(t, err)
		require.NotNil(t, pattern)
		assert.Equal(t, "/user/**/cart", pattern.String())
	})
	t.Run("With surrounding spaces trimmed", func(t *testing.T) {
		pattern, err := Compile("  /user/cart  ")
		require.NoError(t, err)
		assert.Equal(t, "/user/cart", pattern.String())
		assert.True(t, pattern.Match("/user/cart"))
	})
	t.Run("With empty pattern", func(t *testing.T) {
		pattern, err := Compile("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyPattern)
		assert.Nil(t, pattern)
	})
	t.Run("With blank pattern", func(t *testing.T) {
		pattern, err := Compile("   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyPattern)
		assert.Nil(t, pattern)
	})
	t.Run("With globstar glued to a suffix", func(t *testing.T) {
		pattern, err := Compile("/user/**suffix")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Nil(t, pattern)
	})
	t.Run("With globstar glued to a prefix", func(t *testing.T) {
		pattern, err := Compile("/user/pre**")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Nil(t, pattern)
	})
	t.Run("With globstar embedded in a segment", func(t *testing.T) {
		pattern, err := Compile("/a**b")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Nil(t, pattern)
	})
}

func TestMustCompile(t *testing.T) {
	t.Run("With valid pattern", func(t *testing.T) {
		assert.NotPanics(t, func() {
			pattern := MustCompile("/user/**")
			assert.True(t, pattern.Match("/user/cart"))
		})
	})
	t.Run("With invalid pattern", func(t *testing.T) {
		assert.Panics(t, func() {
			MustCompile("/user/**suffix")
		})
	})
}

func BenchmarkPatternMatch(b *testing.B) {
	pattern := MustCompile("/user/**/worker-*")
	path := "/user/pool/shard/worker-7"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pattern.Match(path)
	}
}
