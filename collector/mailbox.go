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

// MailboxCollector tracks mailbox depth and queue wait per behavior class.
// Wait is measured by correlating enqueues and dequeues through a bounded
// per-class ring buffer of arrival stamps: a full buffer or an unmatched
// dequeue drops the wait sample and counts it, never blocks.
type MailboxCollector struct {
	depth   *metric.Gauge
	wait    *metric.Timer
	dropped *metric.Counter

	arrivals *syncmap.SyncMap[string, *gods.RingBuffer]
	capacity uint64
	clock    func() time.Time
}

// enforce compilation error
var _ Collector = (*MailboxCollector)(nil)

// NewMailboxCollector creates a mailbox collector whose per-class arrival
// buffers hold up to capacity stamps.
func NewMailboxCollector(capacity uint64) *MailboxCollector {
	return &MailboxCollector{
		depth:    metric.NewGauge(),
		wait:     metric.NewTimer(),
		dropped:  metric.NewCounter(),
		arrivals: syncmap.New[string, *gods.RingBuffer](),
		capacity: capacity,
		clock:    time.Now,
	}
}

// Name implements Collector.
func (c *MailboxCollector) Name() string {
	return "mailbox"
}

// RecordEnqueued notes a message entering a mailbox of class at the given
// depth and stamps its arrival for later wait measurement.
func (c *MailboxCollector) RecordEnqueued(class string, depth int64) {
	c.depth.Set(class, depth)
	ok, err := c.ringFor(class).Offer(c.clock().UnixNano())
	if err != nil || !ok {
		c.dropped.Inc(class)
	}
}

// RecordDequeued notes a message leaving a mailbox of class at the given
// depth. It returns the measured queue wait, or false when no matching
// arrival stamp was found.
func (c *MailboxCollector) RecordDequeued(class string, depth int64) (time.Duration, bool) {
	c.depth.Set(class, depth)
	item, err := c.ringFor(class).Poll(time.Microsecond)
	if err != nil {
		c.dropped.Inc(class)
		return 0, false
	}
	enqueuedAt, ok := item.(int64)
	if !ok {
		c.dropped.Inc(class)
		return 0, false
	}
	wait := time.Duration(c.clock().UnixNano() - enqueuedAt)
	if wait < 0 {
		wait = 0
	}
	c.wait.Record(class, wait)
	return wait, true
}

// Depth returns the last observed mailbox depth of class.
func (c *MailboxCollector) Depth(class string) (int64, bool) {
	return c.depth.Value(class)
}

// Wait returns the queue wait aggregate of class.
func (c *MailboxCollector) Wait(class string) (metric.TimerValue, bool) {
	return c.wait.Value(class)
}

// Dropped returns how many wait samples of class were dropped.
func (c *MailboxCollector) Dropped(class string) (int64, bool) {
	return c.dropped.Value(class)
}

// DroppedTotal returns the dropped wait samples across all classes.
func (c *MailboxCollector) DroppedTotal() int64 {
	return c.dropped.Total()
}

// Each implements Collector.
func (c *MailboxCollector) Each(f func(sample metric.Sample)) {
	c.depth.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindGauge,
			Name:  MetricMailboxDepth,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
	c.wait.Each(func(class string, value metric.TimerValue) {
		f(metric.Sample{
			Kind:  metric.KindTimer,
			Name:  MetricMailboxWait,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Count: value.Count,
			Total: value.Total,
			Min:   value.Min,
			Max:   value.Max,
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
func (c *MailboxCollector) Reset() {
	c.depth.Reset()
	c.wait.Reset()
	c.dropped.Reset()
	c.arrivals.Range(func(_ string, ring *gods.RingBuffer) {
		ring.Dispose()
	})
	c.arrivals.Reset()
}

func (c *MailboxCollector) ringFor(class string) *gods.RingBuffer {
	ring, _ := c.arrivals.GetOrSet(class, func() *gods.RingBuffer {
		return gods.NewRingBuffer(c.capacity)
	})
	return ring
}
