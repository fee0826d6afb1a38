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

// Package address provides the canonical representation of actor identity used
// by the metrics engine.
//
// An address identifies a single actor and is made of the following parts:
//
//   - System: logical name of the actor system
//   - Name: local name of the actor within the system
//   - ID: unique, opaque identifier of the actor instance (UUIDv4)
//   - Parent: the parent actor's address (if any)
//
// The canonical textual representation of an Address is:
//
//	actor://<system>/<name>
//
// When a chain of parents is defined, the representation becomes:
//
//	actor://<system>/<parent>/.../<name>
//
// The slash-delimited portion after the system is the actor path. Metric
// filters match against that path, so it is the part instrumentation layers
// care about most.
package address

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tochemey/actormetrics/internal/validation"
)

// scheme defines the addressing scheme
const scheme = "actor"

// namePattern constrains system and actor names to word characters with
// non-leading '-', '_' or '.'.
const namePattern = "^[a-zA-Z0-9][a-zA-Z0-9-_\\.]*$"

// zeroAddress means that there is no sender
var zeroAddress = &Address{}

// Address represents the identity of an actor inside an actor system.
//
// Fields:
//   - System: logical actor system name (non-empty, pattern-validated)
//   - Name: actor name within the system (non-empty, <= 255 chars, pattern-validated)
//   - ID: a unique identifier for the actor instance (UUID string)
//   - Parent: the parent actor's Address, or nil for a top-level actor
//
// A special "no sender" value can be produced via NoSender. Validation treats
// the zero address as valid to allow it to be used as a sentinel in message
// envelopes.
type Address struct {
	system string
	name   string
	id     string
	parent *Address
}

var _ validation.Validator = (*Address)(nil)

// New creates a new top-level Address with the given actor name and system.
// A fresh unique ID is generated for the instance. New does not validate the
// inputs; call Validate to verify the resulting address.
func New(name, system string) *Address {
	return &Address{
		system: system,
		name:   name,
		id:     uuid.NewString(),
	}
}

// NewWithParent creates a new Address and sets its parent. It behaves like
// New(name, system) and then, when parent is non-nil, records it as the
// enclosing actor. The parent is not deep-copied.
//
// This constructor does not validate inputs; call Validate on the returned
// Address. In particular, when a parent is set, Validate ensures that the
// parent belongs to the same actor system and that all other invariants hold.
func NewWithParent(name, system string, parent *Address) *Address {
	addr := New(name, system)
	if parent != nil {
		addr.parent = parent
	}
	return addr
}

// NoSender returns a sentinel Address that represents the absence of a sender.
func NoSender() *Address {
	return zeroAddress
}

// Parent returns the parent Address or nil when the actor is top-level.
func (x *Address) Parent() *Address {
	if x == nil {
		return nil
	}
	return x.parent
}

// Name returns the actor name component of the Address.
func (x *Address) Name() string {
	if x == nil {
		return ""
	}
	return x.name
}

// System returns the actor system name component of the Address.
func (x *Address) System() string {
	if x == nil {
		return ""
	}
	return x.system
}

// ID returns the opaque instance identifier of the Address.
func (x *Address) ID() string {
	if x == nil {
		return ""
	}
	return x.id
}

// Path returns the slash-delimited actor path, starting with a slash and
// walking the parent chain from the root down to this actor:
//
//	/<root>/.../<parent>/<name>
//
// The system component is not part of the path. Metric filters evaluate glob
// patterns against this exact form. A nil or zero address yields an empty
// path.
func (x *Address) Path() string {
	if x == nil || (x.system == "" && x.name == "") {
		return ""
	}

	names := make([]string, 0, 4)
	for node := x; node != nil && node.name != ""; node = node.parent {
		names = append(names, node.name)
	}

	size := 0
	for _, name := range names {
		size += len(name) + 1
	}

	var builder strings.Builder
	builder.Grow(size)
	for i := len(names) - 1; i >= 0; i-- {
		_ = builder.WriteByte('/')
		_, _ = builder.WriteString(names[i])
	}
	return builder.String()
}

// String returns the canonical, deterministic textual form of the Address:
//
//	actor://<system><path>
//
// Behavior:
//   - No validation or escaping is performed; call Validate first.
//   - It is safe to call on a nil receiver, which renders as an empty string.
//
// Example:
//
//	parent := New("user", "orders")
//	child := NewWithParent("checkout", "orders", parent)
//	child.String() // "actor://orders/user/checkout"
func (x *Address) String() string {
	if x == nil {
		return ""
	}

	path := x.Path()
	var builder strings.Builder
	builder.Grow(len(scheme) + len("://") + len(x.system) + len(path))
	_, _ = builder.WriteString(scheme)
	_, _ = builder.WriteString("://")
	_, _ = builder.WriteString(x.system)
	_, _ = builder.WriteString(path)
	return builder.String()
}

// Equals reports whether x and y represent the same actor identity. The
// comparison covers the system and the full actor path, not the opaque
// instance ID, so a placeholder cell and its started replacement compare
// equal.
func (x *Address) Equals(y *Address) bool {
	if x == nil || y == nil {
		return false
	}
	return x.System() == y.System() && x.Path() == y.Path()
}

// Validate checks whether the Address is well-formed.
//
// Validation rules:
//   - The zero address (NoSender) is considered valid.
//   - System must be non-empty and match the name pattern.
//   - Name must be non-empty, <= 255 characters, and match the name pattern.
//   - A parent, when set, must be valid and belong to the same actor system.
//
// Validate returns an error on the first failure (fail-fast).
func (x *Address) Validate() error {
	if x == nil || x.Equals(NoSender()) {
		return nil
	}

	if err := validation.
		New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("system", x.System())).
		AddValidator(validation.NewEmptyStringValidator("name", x.Name())).
		AddAssertion(len(x.Name()) <= 255, "actor name is too long. Maximum length is 255").
		AddValidator(validation.NewPatternValidator(namePattern, x.System(), ErrInvalidSystem)).
		AddValidator(validation.NewPatternValidator(namePattern, strings.TrimSpace(x.Name()), ErrInvalidName)).
		Validate(); err != nil {
		return err
	}

	if parent := x.Parent(); parent != nil && !parent.Equals(NoSender()) {
		if err := parent.Validate(); err != nil {
			return err
		}
		if !strings.EqualFold(parent.System(), x.System()) {
			return ErrSystemMismatch
		}
	}
	return nil
}
