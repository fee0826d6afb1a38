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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/actormetrics/metric"
)

func TestLifecycleCollector(t *testing.T) {
	t.Run("With creations and terminations", func(t *testing.T) {
		collector := NewLifecycleCollector()
		assert.Equal(t, "lifecycle", collector.Name())

		for i := 1; i <= 5; i++ {
			assert.EqualValues(t, i, collector.RecordCreated("cartactor"))
		}
		assert.EqualValues(t, 4, collector.RecordTerminated("cartactor"))
		assert.EqualValues(t, 3, collector.RecordTerminated("cartactor"))

		created, ok := collector.Created("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 5, created)

		terminated, ok := collector.Terminated("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 2, terminated)

		active, ok := collector.Active("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 3, active)
	})
	t.Run("With several classes kept apart", func(t *testing.T) {
		collector := NewLifecycleCollector()
		collector.RecordCreated("cartactor")
		collector.RecordCreated("cartactor")
		collector.RecordCreated("orderactor")
		collector.RecordTerminated("orderactor")

		cartActive, ok := collector.Active("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 2, cartActive)

		orderActive, ok := collector.Active("orderactor")
		require.True(t, ok)
		assert.Zero(t, orderActive)

		assert.EqualValues(t, 3, collector.TotalCreated())
		assert.EqualValues(t, 1, collector.TotalTerminated())
		assert.EqualValues(t, 2, collector.TotalActive())
	})
	t.Run("With an unobserved class", func(t *testing.T) {
		collector := NewLifecycleCollector()
		collector.RecordCreated("cartactor")

		_, ok := collector.Created("orderactor")
		assert.False(t, ok)
		_, ok = collector.Active("orderactor")
		assert.False(t, ok)
	})
	t.Run("With an unmatched termination", func(t *testing.T) {
		// imbalanced instrumentation must stay observable, so the active
		// population is never clamped at zero
		collector := NewLifecycleCollector()
		assert.EqualValues(t, -1, collector.RecordTerminated("cartactor"))

		active, ok := collector.Active("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, -1, active)
	})
	t.Run("With samples", func(t *testing.T) {
		collector := NewLifecycleCollector()
		collector.RecordCreated("cartactor")
		collector.RecordCreated("cartactor")
		collector.RecordTerminated("cartactor")

		samples := make(map[string]metric.Sample)
		collector.Each(func(sample metric.Sample) {
			samples[sample.Name] = sample
		})
		require.Len(t, samples, 3)

		created := samples[MetricActorsCreated]
		assert.Equal(t, metric.KindCounter, created.Kind)
		assert.Equal(t, "cartactor", created.Key)
		assert.Equal(t, "cartactor", created.Tags[TagActorClass])
		assert.EqualValues(t, 2, created.Value)

		terminated := samples[MetricActorsTerminated]
		assert.Equal(t, metric.KindCounter, terminated.Kind)
		assert.EqualValues(t, 1, terminated.Value)

		active := samples[MetricActorsActive]
		assert.Equal(t, metric.KindGauge, active.Kind)
		assert.EqualValues(t, 1, active.Value)
	})
	t.Run("With a reset", func(t *testing.T) {
		collector := NewLifecycleCollector()
		collector.RecordCreated("cartactor")
		collector.RecordTerminated("cartactor")

		collector.Reset()

		_, ok := collector.Created("cartactor")
		assert.False(t, ok)
		assert.Zero(t, collector.TotalCreated())
		assert.Zero(t, collector.TotalTerminated())
		assert.Zero(t, collector.TotalActive())
	})
}
