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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/actormetrics/metric"
)

func TestMailboxCollector(t *testing.T) {
	t.Run("With enqueues and dequeues", func(t *testing.T) {
		clock := newFakeClock()
		collector := NewMailboxCollector(8)
		collector.clock = clock.Now
		assert.Equal(t, "mailbox", collector.Name())

		collector.RecordEnqueued("cartactor", 1)
		clock.Advance(10 * time.Millisecond)
		collector.RecordEnqueued("cartactor", 2)
		clock.Advance(5 * time.Millisecond)

		depth, ok := collector.Depth("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 2, depth)

		// the oldest arrival is matched first
		wait, measured := collector.RecordDequeued("cartactor", 1)
		require.True(t, measured)
		assert.Equal(t, 15*time.Millisecond, wait)

		wait, measured = collector.RecordDequeued("cartactor", 0)
		require.True(t, measured)
		assert.Equal(t, 5*time.Millisecond, wait)

		depth, ok = collector.Depth("cartactor")
		require.True(t, ok)
		assert.Zero(t, depth)

		value, ok := collector.Wait("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 2, value.Count)
		assert.Equal(t, 20*time.Millisecond, value.Total)
		assert.Equal(t, 5*time.Millisecond, value.Min)
		assert.Equal(t, 15*time.Millisecond, value.Max)
	})
	t.Run("With an unmatched dequeue", func(t *testing.T) {
		collector := NewMailboxCollector(8)

		wait, measured := collector.RecordDequeued("cartactor", 0)
		assert.False(t, measured)
		assert.Zero(t, wait)

		// the depth reading is kept even though the wait sample was dropped
		depth, ok := collector.Depth("cartactor")
		require.True(t, ok)
		assert.Zero(t, depth)

		dropped, ok := collector.Dropped("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 1, dropped)

		_, ok = collector.Wait("cartactor")
		assert.False(t, ok)
	})
	t.Run("With a full arrival buffer", func(t *testing.T) {
		collector := NewMailboxCollector(2)
		collector.RecordEnqueued("cartactor", 1)
		collector.RecordEnqueued("cartactor", 2)
		collector.RecordEnqueued("cartactor", 3)

		depth, ok := collector.Depth("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 3, depth)

		dropped, ok := collector.Dropped("cartactor")
		require.True(t, ok)
		assert.EqualValues(t, 1, dropped)
		assert.EqualValues(t, 1, collector.DroppedTotal())
	})
	t.Run("With a skewed clock", func(t *testing.T) {
		clock := newFakeClock()
		collector := NewMailboxCollector(8)
		collector.clock = clock.Now

		collector.RecordEnqueued("cartactor", 1)
		clock.Advance(-time.Second)

		wait, measured := collector.RecordDequeued("cartactor", 0)
		require.True(t, measured)
		assert.Zero(t, wait)
	})
	t.Run("With classes buffered apart", func(t *testing.T) {
		clock := newFakeClock()
		collector := NewMailboxCollector(8)
		collector.clock = clock.Now

		collector.RecordEnqueued("cartactor", 1)
		clock.Advance(30 * time.Millisecond)
		collector.RecordEnqueued("orderactor", 1)
		clock.Advance(10 * time.Millisecond)

		wait, measured := collector.RecordDequeued("orderactor", 0)
		require.True(t, measured)
		assert.Equal(t, 10*time.Millisecond, wait)

		wait, measured = collector.RecordDequeued("cartactor", 0)
		require.True(t, measured)
		assert.Equal(t, 40*time.Millisecond, wait)
	})
	t.Run("With samples", func(t *testing.T) {
		clock := newFakeClock()
		collector := NewMailboxCollector(8)
		collector.clock = clock.Now

		collector.RecordEnqueued("cartactor", 1)
		clock.Advance(20 * time.Millisecond)
		collector.RecordDequeued("cartactor", 0)
		collector.RecordDequeued("cartactor", 0)

		samples := make(map[string]metric.Sample)
		collector.Each(func(sample metric.Sample) {
			samples[sample.Name] = sample
		})
		require.Len(t, samples, 3)

		depth := samples[MetricMailboxDepth]
		assert.Equal(t, metric.KindGauge, depth.Kind)
		assert.Equal(t, "cartactor", depth.Key)
		assert.Equal(t, "cartactor", depth.Tags[TagActorClass])
		assert.Zero(t, depth.Value)

		wait := samples[MetricMailboxWait]
		assert.Equal(t, metric.KindTimer, wait.Kind)
		assert.EqualValues(t, 1, wait.Count)
		assert.Equal(t, 20*time.Millisecond, wait.Total)

		dropped := samples[MetricSamplesDropped]
		assert.Equal(t, metric.KindCounter, dropped.Kind)
		assert.EqualValues(t, 1, dropped.Value)
	})
	t.Run("With a reset", func(t *testing.T) {
		clock := newFakeClock()
		collector := NewMailboxCollector(8)
		collector.clock = clock.Now

		collector.RecordEnqueued("cartactor", 1)
		collector.Reset()

		_, ok := collector.Depth("cartactor")
		assert.False(t, ok)
		assert.Zero(t, collector.DroppedTotal())

		// the arrival buffers are rebuilt after a reset
		collector.RecordEnqueued("cartactor", 1)
		clock.Advance(5 * time.Millisecond)
		wait, measured := collector.RecordDequeued("cartactor", 0)
		require.True(t, measured)
		assert.Equal(t, 5*time.Millisecond, wait)
	})
}
