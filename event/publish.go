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

package event

import (
	"time"

	"github.com/tochemey/actormetrics/log"
)

// The four event families each have one process-wide holder. An actor
// runtime instruments itself against these via the Publish functions; metric
// registries subscribe via the holder accessors.
var (
	lifecycleListeners  = NewHolder[LifecycleListener]()
	envelopeListeners   = NewHolder[EnvelopeListener]()
	mailboxListeners    = NewHolder[MailboxListener]()
	processingListeners = NewHolder[ProcessingListener]()
)

// Lifecycle returns the process-wide holder of lifecycle listeners.
func Lifecycle() *Holder[LifecycleListener] {
	return lifecycleListeners
}

// Envelopes returns the process-wide holder of envelope listeners.
func Envelopes() *Holder[EnvelopeListener] {
	return envelopeListeners
}

// Mailboxes returns the process-wide holder of mailbox listeners.
func Mailboxes() *Holder[MailboxListener] {
	return mailboxListeners
}

// Processing returns the process-wide holder of processing listeners.
func Processing() *Holder[ProcessingListener] {
	return processingListeners
}

// SetLogger sets the logger panicking listeners are reported to on every
// process-wide holder.
func SetLogger(logger log.Logger) {
	lifecycleListeners.SetLogger(logger)
	envelopeListeners.SetLogger(logger)
	mailboxListeners.SetLogger(logger)
	processingListeners.SetLogger(logger)
}

// ResetAll removes every listener from every process-wide holder.
func ResetAll() {
	lifecycleListeners.Reset()
	envelopeListeners.Reset()
	mailboxListeners.Reset()
	processingListeners.Reset()
}

// PublishActorCreated notifies lifecycle listeners that an actor cell was
// created.
func PublishActorCreated(ref ActorRef) {
	event := NewActorCreated(ref)
	lifecycleListeners.each(func(listener LifecycleListener) {
		listener.OnActorCreated(event)
	})
}

// PublishActorTerminated notifies lifecycle listeners that an actor cell was
// terminated.
func PublishActorTerminated(ref ActorRef) {
	event := NewActorTerminated(ref)
	lifecycleListeners.each(func(listener LifecycleListener) {
		listener.OnActorTerminated(event)
	})
}

// PublishCellReplaced notifies lifecycle listeners that an actor identity
// migrated from the old cell to its replacement.
func PublishCellReplaced(old, replacement ActorRef) {
	event := NewCellReplaced(old, replacement)
	lifecycleListeners.each(func(listener LifecycleListener) {
		listener.OnCellReplaced(event)
	})
}

// PublishEnvelopeCreated notifies envelope listeners that an envelope was
// constructed, stamped with the current time.
func PublishEnvelopeCreated(envelope Envelope) {
	event := NewEnvelopeCreated(envelope, time.Now())
	envelopeListeners.each(func(listener EnvelopeListener) {
		listener.OnEnvelopeCreated(event)
	})
}

// PublishEnvelopeSent notifies envelope listeners that an envelope was handed
// to its receiver's mailbox, stamped with the current time.
func PublishEnvelopeSent(envelope Envelope) {
	event := NewEnvelopeSent(envelope, time.Now())
	envelopeListeners.each(func(listener EnvelopeListener) {
		listener.OnEnvelopeSent(event)
	})
}

// PublishMailboxEnqueued notifies mailbox listeners that a message entered a
// mailbox owned by an actor of the given class, with the depth after the
// enqueue.
func PublishMailboxEnqueued(class string, depth int64) {
	event := NewMailboxEnqueued(class, depth)
	mailboxListeners.each(func(listener MailboxListener) {
		listener.OnMailboxEnqueued(event)
	})
}

// PublishMailboxDequeued notifies mailbox listeners that a message left a
// mailbox owned by an actor of the given class, with the depth after the
// dequeue.
func PublishMailboxDequeued(class string, depth int64) {
	event := NewMailboxDequeued(class, depth)
	mailboxListeners.each(func(listener MailboxListener) {
		listener.OnMailboxDequeued(event)
	})
}

// PublishProcessingStarted notifies processing listeners that an actor of the
// given class began handling a message, stamped with the current time.
func PublishProcessingStarted(class, messageType string) {
	event := NewProcessingStarted(class, messageType, time.Now())
	processingListeners.each(func(listener ProcessingListener) {
		listener.OnProcessingStarted(event)
	})
}

// PublishProcessingFinished notifies processing listeners that an actor of
// the given class finished handling a message. Pass a non-positive elapsed
// when the runtime did not measure the handling itself.
func PublishProcessingFinished(class, messageType string, elapsed time.Duration) {
	event := NewProcessingFinished(class, messageType, elapsed)
	processingListeners.each(func(listener ProcessingListener) {
		listener.OnProcessingFinished(event)
	})
}
