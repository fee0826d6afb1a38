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

// Package collector turns runtime events into metrics. The Registry
// subscribes to the event seam, screens every event through an actor-path
// filter, folds it into the matching collector and pushes the update to the
// configured backend behind a circuit breaker. Collectors keep their own
// aggregates and answer read-backs, so metrics remain inspectable even with
// a fire-and-forget backend.
package collector

import "github.com/tochemey/actormetrics/metric"

// Metric names emitted by the built-in collectors.
const (
	// MetricActorsActive gauges the live actor population per class.
	MetricActorsActive = "actors_active"
	// MetricActorsCreated counts actor creations per class.
	MetricActorsCreated = "actors_created_total"
	// MetricActorsTerminated counts actor terminations per class.
	MetricActorsTerminated = "actors_terminated_total"
	// MetricMailboxDepth gauges the mailbox depth per class.
	MetricMailboxDepth = "mailbox_depth"
	// MetricMailboxWait times how long messages sat in a mailbox per class.
	MetricMailboxWait = "mailbox_wait_duration"
	// MetricProcessingDuration times message handling per message type.
	MetricProcessingDuration = "processing_duration"
	// MetricProcessingInFlight gauges messages being handled per class.
	MetricProcessingInFlight = "processing_in_flight"
	// MetricEnvelopesCreated tracks envelope construction per message type.
	MetricEnvelopesCreated = "envelopes_created"
	// MetricEnvelopesSent tracks envelope sends per message type.
	MetricEnvelopesSent = "envelopes_sent"
	// MetricSamplesDropped counts updates that could not be recorded, from
	// overflowing correlation buffers to failing backend pushes.
	MetricSamplesDropped = "samples_dropped_total"
)

// Tag keys attached to emitted metrics.
const (
	// TagActorSystem carries the actor system name.
	TagActorSystem = "actor.system"
	// TagActorClass carries the normalized actor behavior class.
	TagActorClass = "actor.class"
	// TagMessageType carries the normalized message type name.
	TagMessageType = "message.type"
)

// Collector is one named family of aggregates. The built-in collectors
// implement it, and applications can register their own with the Registry to
// ride along in snapshots.
type Collector interface {
	// Name returns the unique collector name.
	Name() string
	// Each visits the collector's current aggregates as flattened samples.
	Each(f func(sample metric.Sample))
	// Reset drops every aggregate.
	Reset()
}
