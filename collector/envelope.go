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

	"github.com/tochemey/actormetrics/metric"
)

// EnvelopeCollector tracks message envelope traffic per message type. Each
// direction is a single interval family: the observation count doubles as the
// envelope counter while first/last frame the window the traffic spanned.
type EnvelopeCollector struct {
	created *metric.Interval
	sent    *metric.Interval
}

// enforce compilation error
var _ Collector = (*EnvelopeCollector)(nil)

// NewEnvelopeCollector creates an envelope collector.
func NewEnvelopeCollector() *EnvelopeCollector {
	return &EnvelopeCollector{
		created: metric.NewInterval(),
		sent:    metric.NewInterval(),
	}
}

// Name implements Collector.
func (c *EnvelopeCollector) Name() string {
	return "envelopes"
}

// RecordCreated notes an envelope of messageType built at the given instant.
func (c *EnvelopeCollector) RecordCreated(messageType string, at time.Time) {
	c.created.Observe(messageType, at.UnixNano())
}

// RecordSent notes an envelope of messageType handed to its destination at
// the given instant.
func (c *EnvelopeCollector) RecordSent(messageType string, at time.Time) {
	c.sent.Observe(messageType, at.UnixNano())
}

// Created returns the creation traffic of messageType.
func (c *EnvelopeCollector) Created(messageType string) (metric.IntervalValue, bool) {
	return c.created.Value(messageType)
}

// Sent returns the send traffic of messageType.
func (c *EnvelopeCollector) Sent(messageType string) (metric.IntervalValue, bool) {
	return c.sent.Value(messageType)
}

// Each implements Collector.
func (c *EnvelopeCollector) Each(f func(sample metric.Sample)) {
	c.created.Each(func(messageType string, value metric.IntervalValue) {
		f(metric.Sample{
			Kind:  metric.KindInterval,
			Name:  MetricEnvelopesCreated,
			Key:   messageType,
			Tags:  map[string]string{TagMessageType: messageType},
			Count: value.Count,
			First: value.First,
			Last:  value.Last,
		})
	})
	c.sent.Each(func(messageType string, value metric.IntervalValue) {
		f(metric.Sample{
			Kind:  metric.KindInterval,
			Name:  MetricEnvelopesSent,
			Key:   messageType,
			Tags:  map[string]string{TagMessageType: messageType},
			Count: value.Count,
			First: value.First,
			Last:  value.Last,
		})
	})
}

// Reset implements Collector.
func (c *EnvelopeCollector) Reset() {
	c.created.Reset()
	c.sent.Reset()
}
