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

// Package event is the seam between an actor runtime and its metrics. The
// runtime publishes small value events at well-known instrumentation points;
// listeners registered here receive them synchronously on the publishing
// goroutine. Events never block, never fail, and a panicking listener is
// contained and logged rather than allowed back into the runtime.
package event

import (
	"time"

	"github.com/tochemey/actormetrics/internal/types"
)

// ActorCreated reports that an actor cell was created and wired into the
// actor tree.
type ActorCreated struct {
	ref ActorRef
}

// NewActorCreated creates an ActorCreated event.
func NewActorCreated(ref ActorRef) ActorCreated {
	return ActorCreated{ref: ref}
}

// Ref returns the created actor.
func (x ActorCreated) Ref() ActorRef {
	return x.ref
}

// ActorTerminated reports that an actor cell was stopped and removed from
// the actor tree.
type ActorTerminated struct {
	ref ActorRef
}

// NewActorTerminated creates an ActorTerminated event.
func NewActorTerminated(ref ActorRef) ActorTerminated {
	return ActorTerminated{ref: ref}
}

// Ref returns the terminated actor.
func (x ActorTerminated) Ref() ActorRef {
	return x.ref
}

// CellReplaced reports that an actor identity migrated from one cell to
// another, typically across a restart. The actor neither appeared nor
// disappeared, so population counters must not move; only the replacement
// cell carries the identity from here on.
type CellReplaced struct {
	old         ActorRef
	replacement ActorRef
}

// NewCellReplaced creates a CellReplaced event.
func NewCellReplaced(old, replacement ActorRef) CellReplaced {
	return CellReplaced{old: old, replacement: replacement}
}

// Old returns the cell the identity migrated away from.
func (x CellReplaced) Old() ActorRef {
	return x.old
}

// Replacement returns the cell now carrying the identity.
func (x CellReplaced) Replacement() ActorRef {
	return x.replacement
}

// EnvelopeCreated reports that a message envelope was constructed.
type EnvelopeCreated struct {
	envelope Envelope
	at       time.Time
}

// NewEnvelopeCreated creates an EnvelopeCreated event stamped at.
func NewEnvelopeCreated(envelope Envelope, at time.Time) EnvelopeCreated {
	return EnvelopeCreated{envelope: envelope, at: at}
}

// Envelope returns the created envelope.
func (x EnvelopeCreated) Envelope() Envelope {
	return x.envelope
}

// At returns the creation time.
func (x EnvelopeCreated) At() time.Time {
	return x.at
}

// EnvelopeSent reports that a message envelope was handed to its receiver's
// mailbox.
type EnvelopeSent struct {
	envelope Envelope
	at       time.Time
}

// NewEnvelopeSent creates an EnvelopeSent event stamped at.
func NewEnvelopeSent(envelope Envelope, at time.Time) EnvelopeSent {
	return EnvelopeSent{envelope: envelope, at: at}
}

// Envelope returns the sent envelope.
func (x EnvelopeSent) Envelope() Envelope {
	return x.envelope
}

// At returns the send time.
func (x EnvelopeSent) At() time.Time {
	return x.at
}

// MailboxEnqueued reports that a message entered an actor mailbox, with the
// mailbox depth after the enqueue. The class is normalized and a negative
// depth is clamped to zero.
type MailboxEnqueued struct {
	class string
	depth int64
}

// NewMailboxEnqueued creates a MailboxEnqueued event.
func NewMailboxEnqueued(class string, depth int64) MailboxEnqueued {
	return MailboxEnqueued{
		class: types.NormalizeName(class),
		depth: clampDepth(depth),
	}
}

// Class returns the normalized behavior class of the mailbox owner.
func (x MailboxEnqueued) Class() string {
	return x.class
}

// Depth returns the mailbox depth after the enqueue.
func (x MailboxEnqueued) Depth() int64 {
	return x.depth
}

// MailboxDequeued reports that a message left an actor mailbox for
// processing, with the mailbox depth after the dequeue.
type MailboxDequeued struct {
	class string
	depth int64
}

// NewMailboxDequeued creates a MailboxDequeued event.
func NewMailboxDequeued(class string, depth int64) MailboxDequeued {
	return MailboxDequeued{
		class: types.NormalizeName(class),
		depth: clampDepth(depth),
	}
}

// Class returns the normalized behavior class of the mailbox owner.
func (x MailboxDequeued) Class() string {
	return x.class
}

// Depth returns the mailbox depth after the dequeue.
func (x MailboxDequeued) Depth() int64 {
	return x.depth
}

// ProcessingStarted reports that an actor began handling a message.
type ProcessingStarted struct {
	class       string
	messageType string
	at          time.Time
}

// NewProcessingStarted creates a ProcessingStarted event stamped at.
func NewProcessingStarted(class, messageType string, at time.Time) ProcessingStarted {
	return ProcessingStarted{
		class:       types.NormalizeName(class),
		messageType: types.NormalizeName(messageType),
		at:          at,
	}
}

// Class returns the normalized behavior class of the handling actor.
func (x ProcessingStarted) Class() string {
	return x.class
}

// MessageType returns the normalized message type name.
func (x ProcessingStarted) MessageType() string {
	return x.messageType
}

// At returns the time handling began.
func (x ProcessingStarted) At() time.Time {
	return x.at
}

// ProcessingFinished reports that an actor finished handling a message.
// A non-positive elapsed means the runtime did not measure the handling
// itself and leaves the duration to be derived from the matching
// ProcessingStarted event.
type ProcessingFinished struct {
	class       string
	messageType string
	elapsed     time.Duration
}

// NewProcessingFinished creates a ProcessingFinished event.
func NewProcessingFinished(class, messageType string, elapsed time.Duration) ProcessingFinished {
	return ProcessingFinished{
		class:       types.NormalizeName(class),
		messageType: types.NormalizeName(messageType),
		elapsed:     elapsed,
	}
}

// Class returns the normalized behavior class of the handling actor.
func (x ProcessingFinished) Class() string {
	return x.class
}

// MessageType returns the normalized message type name.
func (x ProcessingFinished) MessageType() string {
	return x.messageType
}

// Elapsed returns the measured handling duration, or a non-positive value
// when the runtime did not measure it.
func (x ProcessingFinished) Elapsed() time.Duration {
	return x.elapsed
}

// LifecycleListener receives actor lifecycle events.
type LifecycleListener interface {
	OnActorCreated(event ActorCreated)
	OnActorTerminated(event ActorTerminated)
	OnCellReplaced(event CellReplaced)
}

// EnvelopeListener receives message envelope events.
type EnvelopeListener interface {
	OnEnvelopeCreated(event EnvelopeCreated)
	OnEnvelopeSent(event EnvelopeSent)
}

// MailboxListener receives mailbox events.
type MailboxListener interface {
	OnMailboxEnqueued(event MailboxEnqueued)
	OnMailboxDequeued(event MailboxDequeued)
}

// ProcessingListener receives message handling events.
type ProcessingListener interface {
	OnProcessingStarted(event ProcessingStarted)
	OnProcessingFinished(event ProcessingFinished)
}

func clampDepth(depth int64) int64 {
	if depth < 0 {
		return 0
	}
	return depth
}
