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

package backend

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/actormetrics/internal/syncmap"
)

// instrumentationName is the OpenTelemetry meter name updates are emitted
// under.
const instrumentationName = "github.com/tochemey/actormetrics"

type counterInstrument struct {
	counter otelmetric.Int64Counter
	err     error
}

type gaugeInstrument struct {
	gauge otelmetric.Int64Gauge
	err   error
}

type histogramInstrument struct {
	histogram otelmetric.Int64Histogram
	err       error
}

// OTel is a Backend that forwards updates to an OpenTelemetry meter
// provider. Counters map to Int64Counter, gauges to Int64Gauge and timers to
// an Int64Histogram of milliseconds. Instruments are created on first use
// and cached per metric name.
type OTel struct {
	meter      otelmetric.Meter
	counters   *syncmap.SyncMap[string, counterInstrument]
	gauges     *syncmap.SyncMap[string, gaugeInstrument]
	histograms *syncmap.SyncMap[string, histogramInstrument]
}

// enforce compilation error
var _ Backend = (*OTel)(nil)

// NewOTel creates an OpenTelemetry backend on top of the given meter
// provider. The provider's lifecycle stays with the caller; Close does not
// shut it down.
func NewOTel(provider otelmetric.MeterProvider) *OTel {
	return &OTel{
		meter:      provider.Meter(instrumentationName),
		counters:   syncmap.New[string, counterInstrument](),
		gauges:     syncmap.New[string, gaugeInstrument](),
		histograms: syncmap.New[string, histogramInstrument](),
	}
}

// RecordCounter implements Backend.
func (x *OTel) RecordCounter(name string, tags map[string]string, value int64) error {
	instrument, _ := x.counters.GetOrSet(name, func() counterInstrument {
		counter, err := x.meter.Int64Counter(name)
		return counterInstrument{counter: counter, err: err}
	})
	if instrument.err != nil {
		return instrument.err
	}
	instrument.counter.Add(context.Background(), value, otelmetric.WithAttributes(attributes(tags)...))
	return nil
}

// RecordGauge implements Backend.
func (x *OTel) RecordGauge(name string, tags map[string]string, value int64) error {
	instrument, _ := x.gauges.GetOrSet(name, func() gaugeInstrument {
		gauge, err := x.meter.Int64Gauge(name)
		return gaugeInstrument{gauge: gauge, err: err}
	})
	if instrument.err != nil {
		return instrument.err
	}
	instrument.gauge.Record(context.Background(), value, otelmetric.WithAttributes(attributes(tags)...))
	return nil
}

// RecordTimer implements Backend.
func (x *OTel) RecordTimer(name string, tags map[string]string, elapsed time.Duration) error {
	instrument, _ := x.histograms.GetOrSet(name, func() histogramInstrument {
		histogram, err := x.meter.Int64Histogram(name, otelmetric.WithUnit("ms"))
		return histogramInstrument{histogram: histogram, err: err}
	})
	if instrument.err != nil {
		return instrument.err
	}
	instrument.histogram.Record(context.Background(), elapsed.Milliseconds(), otelmetric.WithAttributes(attributes(tags)...))
	return nil
}

// Close implements Backend.
func (x *OTel) Close() error {
	return nil
}

func attributes(tags map[string]string) []attribute.KeyValue {
	if len(tags) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(tags))
	for key, value := range tags {
		out = append(out, attribute.String(key, value))
	}
	return out
}
