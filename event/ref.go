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
	"github.com/tochemey/actormetrics/address"
	"github.com/tochemey/actormetrics/internal/types"
)

// ActorRef identifies the actor an event is about: its address in the actor
// tree plus its behavior class. The class is normalized to lowercase so the
// same behavior aggregates under one name regardless of how the runtime
// spelled it.
type ActorRef struct {
	address *address.Address
	class   string
}

// NewActorRef creates an ActorRef from an address and a behavior class name.
func NewActorRef(addr *address.Address, class string) ActorRef {
	return ActorRef{
		address: addr,
		class:   types.NormalizeName(class),
	}
}

// NewActorRefOf creates an ActorRef taking the behavior class name from the
// dynamic type of actor.
func NewActorRefOf(addr *address.Address, actor any) ActorRef {
	return NewActorRef(addr, types.SimpleNameOf(actor))
}

// Address returns the actor address. It may be nil when the runtime only
// reported a class.
func (x ActorRef) Address() *address.Address {
	return x.address
}

// Class returns the normalized behavior class name.
func (x ActorRef) Class() string {
	return x.class
}

// Path returns the path filters match against: the address path when one is
// known, otherwise the class as a single-segment path. The zero ActorRef has
// an empty path.
func (x ActorRef) Path() string {
	if path := x.address.Path(); path != "" {
		return path
	}
	if x.class != "" {
		return "/" + x.class
	}
	return ""
}

// Envelope is the unit of actor communication as seen by instrumentation:
// a message together with the sending and receiving actors.
type Envelope struct {
	message  any
	sender   ActorRef
	receiver ActorRef
}

// NewEnvelope creates an Envelope.
func NewEnvelope(message any, sender, receiver ActorRef) Envelope {
	return Envelope{
		message:  message,
		sender:   sender,
		receiver: receiver,
	}
}

// Message returns the carried message.
func (x Envelope) Message() any {
	return x.message
}

// Sender returns the sending actor.
func (x Envelope) Sender() ActorRef {
	return x.sender
}

// Receiver returns the receiving actor.
func (x Envelope) Receiver() ActorRef {
	return x.receiver
}

// MessageType returns the normalized package-qualified name of the message
// type, or "unknown" for a nil message.
func (x Envelope) MessageType() string {
	return types.NameOf(x.message)
}

// Path returns the path filters match against: the receiver path when known,
// falling back to the sender path, falling back to "/unknown".
func (x Envelope) Path() string {
	if path := x.receiver.Path(); path != "" {
		return path
	}
	if path := x.sender.Path(); path != "" {
		return path
	}
	return "/" + types.Unknown
}
