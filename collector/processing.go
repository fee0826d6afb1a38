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
	"time"

	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/tochemey/actormetrics/internal/syncmap"
	"github.com/tochemey/actormetrics/metric"
)

// ProcessingCollector tracks message handling time per message type and the
// number of in-flight handlers per behavior class. When the runtime reports a
// finish without a measured duration, the collector derives one from the start
// stamp it buffered for that class and message type; a full or empty stamp
// buffer drops the sample and counts it, never blocks.
type ProcessingCollector struct {
	durations *metric.Timer
	inflight  *metric.Gauge
	dropped   *metric.Counter

	starts   *syncmap.SyncMap[string, *gods.RingBuffer]
	capacity uint64
	clock    func() time.Time
}

// enforce compilation error
var _ Collector = (*ProcessingCollector)(nil)

// NewProcessingCollector creates a processing collector whose per-class start
// buffers hold up to capacity stamps.
func NewProcessingCollector(capacity uint64) *ProcessingCollector {
	return &ProcessingCollector{
		durations: metric.NewTimer(),
		inflight:  metric.NewGauge(),
		dropped:   metric.NewCounter(),
		starts:    syncmap.New[string, *gods.RingBuffer](),
		capacity:  capacity,
		clock:     time.Now,
	}
}

// Name implements Collector.
func (c *ProcessingCollector) Name() string {
	return "processing"
}

// RecordStarted notes a handler of class picking up a message of messageType
// at the given instant and stamps the start for later duration derivation.
func (c *ProcessingCollector) RecordStarted(class, messageType string, at time.Time) {
	c.inflight.Inc(class)
	ok, err := c.ringFor(class, messageType).Offer(at.UnixNano())
	if err != nil || !ok {
		c.dropped.Inc(class)
	}
}

// RecordFinished notes a handler of class finishing a message of messageType.
// A positive elapsed is recorded as-is; otherwise the duration is derived from
// the buffered start stamp. It returns the recorded duration, or false when no
// duration could be established. An unmatched finish may drive the in-flight
// gauge transiently negative; it recovers as soon as pairing resumes.
func (c *ProcessingCollector) RecordFinished(class, messageType string, elapsed time.Duration) (time.Duration, bool) {
	c.inflight.Dec(class)
	ring := c.ringFor(class, messageType)
	if elapsed > 0 {
		c.durations.Record(messageType, elapsed)
		// the runtime measured this one itself; retire its stamp so a later
		// unmeasured finish does not pair with a stale start
		if ring.Len() > 0 {
			_, _ = ring.Poll(time.Microsecond)
		}
		return elapsed, true
	}
	item, err := ring.Poll(time.Microsecond)
	if err != nil {
		c.dropped.Inc(class)
		return 0, false
	}
	startedAt, ok := item.(int64)
	if !ok {
		c.dropped.Inc(class)
		return 0, false
	}
	derived := time.Duration(c.clock().UnixNano() - startedAt)
	if derived < 0 {
		derived = 0
	}
	c.durations.Record(messageType, derived)
	return derived, true
}

// Durations returns the handling time aggregate of messageType.
func (c *ProcessingCollector) Durations(messageType string) (metric.TimerValue, bool) {
	return c.durations.Value(messageType)
}

// InFlight returns the number of handlers of class currently running.
func (c *ProcessingCollector) InFlight(class string) (int64, bool) {
	return c.inflight.Value(class)
}

// Dropped returns how many duration samples of class were dropped.
func (c *ProcessingCollector) Dropped(class string) (int64, bool) {
	return c.dropped.Value(class)
}

// DroppedTotal returns the dropped duration samples across all classes.
func (c *ProcessingCollector) DroppedTotal() int64 {
	return c.dropped.Total()
}

// Each implements Collector.
func (c *ProcessingCollector) Each(f func(sample metric.Sample)) {
	c.durations.Each(func(messageType string, value metric.TimerValue) {
		f(metric.Sample{
			Kind:  metric.KindTimer,
			Name:  MetricProcessingDuration,
			Key:   messageType,
			Tags:  map[string]string{TagMessageType: messageType},
			Count: value.Count,
			Total: value.Total,
			Min:   value.Min,
			Max:   value.Max,
		})
	})
	c.inflight.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindGauge,
			Name:  MetricProcessingInFlight,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
	c.dropped.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindCounter,
			Name:  MetricSamplesDropped,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
}

// Reset implements Collector.
func (c *ProcessingCollector) Reset() {
	c.durations.Reset()
	c.inflight.Reset()
	c.dropped.Reset()
	c.starts.Range(func(_ string, ring *gods.RingBuffer) {
		ring.Dispose()
	})
	c.starts.Reset()
}

func (c *ProcessingCollector) ringFor(class, messageType string) *gods.RingBuffer {
	ring, _ := c.starts.GetOrSet(class+"/"+messageType, func() *gods.RingBuffer {
		return gods.NewRingBuffer(c.capacity)
	})
	return ring
}
