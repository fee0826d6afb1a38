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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Run("With no patterns everything is selected", func(t *testing.T) {
		selector, err := New(nil, nil)
		require.NoError(t, err)
		assert.True(t, selector.Match("/user/cart"))
		assert.True(t, selector.Match("/system/log"))
	})
	t.Run("With includes only", func(t *testing.T) {
		selector, err := New([]string{"/user/**"}, nil)
		require.NoError(t, err)
		assert.True(t, selector.Match("/user/cart"))
		assert.True(t, selector.Match("/user/checkout/cart"))
		assert.False(t, selector.Match("/system/log"))
	})
	t.Run("With excludes only", func(t *testing.T) {
		selector, err := New(nil, []string{"/system/**"})
		require.NoError(t, err)
		assert.False(t, selector.Match("/system/log"))
		assert.True(t, selector.Match("/user/cart"))
	})
	t.Run("With exclusion winning over inclusion", func(t *testing.T) {
		selector, err := New([]string{"/user/**"}, []string{"/user/internal/**"})
		require.NoError(t, err)
		assert.True(t, selector.Match("/user/cart"))
		assert.False(t, selector.Match("/user/internal/janitor"))
	})
	t.Run("With leading globstars on both lists", func(t *testing.T) {
		selector, err := New([]string{"**/user/**"}, []string{"**/system/**"})
		require.NoError(t, err)
		assert.True(t, selector.Match("/user/worker-1"))
		assert.False(t, selector.Match("/system/deadLetters"))
	})
	t.Run("With an excluded path no include can rescue", func(t *testing.T) {
		selector, err := New([]string{"/system/log", "/**"}, []string{"/system/log"})
		require.NoError(t, err)
		assert.False(t, selector.Match("/system/log"))
	})
	t.Run("With several includes", func(t *testing.T) {
		selector, err := New([]string{"/user/cart", "/user/payments"}, nil)
		require.NoError(t, err)
		assert.True(t, selector.Match("/user/cart"))
		assert.True(t, selector.Match("/user/payments"))
		assert.False(t, selector.Match("/user/shipping"))
	})
	t.Run("With invalid include pattern", func(t *testing.T) {
		selector, err := New([]string{"/user/**suffix"}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPattern)
		assert.Nil(t, selector)
	})
	t.Run("With invalid exclude pattern", func(t *testing.T) {
		selector, err := New(nil, []string{""})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyPattern)
		assert.Nil(t, selector)
	})
	t.Run("With nil filter", func(t *testing.T) {
		var selector *Filter
		assert.True(t, selector.Match("/user/cart"))
		assert.Nil(t, selector.Includes())
		assert.Nil(t, selector.Excludes())
	})
	t.Run("With pattern sources preserved", func(t *testing.T) {
		selector, err := New([]string{"/user/**", "/system/scheduler"}, []string{"/user/internal/**"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/user/**", "/system/scheduler"}, selector.Includes())
		assert.ElementsMatch(t, []string{"/user/internal/**"}, selector.Excludes())
	})
}
