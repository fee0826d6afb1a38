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

import "github.com/tochemey/actormetrics/metric"

// LifecycleCollector tracks the actor population per behavior class: how
// many actors were created, how many terminated, and the difference as the
// live population. A cell replacement touches none of the three, the
// identity just moved cells.
type LifecycleCollector struct {
	created    *metric.Counter
	terminated *metric.Counter
	active     *metric.Gauge
}

// enforce compilation error
var _ Collector = (*LifecycleCollector)(nil)

// NewLifecycleCollector creates an empty lifecycle collector.
func NewLifecycleCollector() *LifecycleCollector {
	return &LifecycleCollector{
		created:    metric.NewCounter(),
		terminated: metric.NewCounter(),
		active:     metric.NewGauge(),
	}
}

// Name implements Collector.
func (c *LifecycleCollector) Name() string {
	return "lifecycle"
}

// RecordCreated counts one actor creation for class and returns the live
// population of the class after it.
func (c *LifecycleCollector) RecordCreated(class string) int64 {
	c.created.Inc(class)
	c.active.Inc(class)
	active, _ := c.active.Value(class)
	return active
}

// RecordTerminated counts one actor termination for class and returns the
// live population of the class after it.
func (c *LifecycleCollector) RecordTerminated(class string) int64 {
	c.terminated.Inc(class)
	c.active.Dec(class)
	active, _ := c.active.Value(class)
	return active
}

// Created returns how many actors of class were created.
func (c *LifecycleCollector) Created(class string) (int64, bool) {
	return c.created.Value(class)
}

// Terminated returns how many actors of class were terminated.
func (c *LifecycleCollector) Terminated(class string) (int64, bool) {
	return c.terminated.Value(class)
}

// Active returns the live population of class.
func (c *LifecycleCollector) Active(class string) (int64, bool) {
	return c.active.Value(class)
}

// TotalCreated returns the created count across all classes.
func (c *LifecycleCollector) TotalCreated() int64 {
	return c.created.Total()
}

// TotalTerminated returns the terminated count across all classes.
func (c *LifecycleCollector) TotalTerminated() int64 {
	return c.terminated.Total()
}

// TotalActive returns the live population across all classes.
func (c *LifecycleCollector) TotalActive() int64 {
	return c.active.Sum()
}

// Each implements Collector.
func (c *LifecycleCollector) Each(f func(sample metric.Sample)) {
	c.created.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindCounter,
			Name:  MetricActorsCreated,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
	c.terminated.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindCounter,
			Name:  MetricActorsTerminated,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
	c.active.Each(func(class string, value int64) {
		f(metric.Sample{
			Kind:  metric.KindGauge,
			Name:  MetricActorsActive,
			Key:   class,
			Tags:  map[string]string{TagActorClass: class},
			Value: value,
		})
	})
}

// Reset implements Collector.
func (c *LifecycleCollector) Reset() {
	c.created.Reset()
	c.terminated.Reset()
	c.active.Reset()
}
