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
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/actormetrics/log"
)

type recordingLifecycle struct {
	mu         sync.Mutex
	created    []ActorCreated
	terminated []ActorTerminated
	replaced   []CellReplaced
}

func (x *recordingLifecycle) OnActorCreated(event ActorCreated) {
	x.mu.Lock()
	x.created = append(x.created, event)
	x.mu.Unlock()
}

func (x *recordingLifecycle) OnActorTerminated(event ActorTerminated) {
	x.mu.Lock()
	x.terminated = append(x.terminated, event)
	x.mu.Unlock()
}

func (x *recordingLifecycle) OnCellReplaced(event CellReplaced) {
	x.mu.Lock()
	x.replaced = append(x.replaced, event)
	x.mu.Unlock()
}

func (x *recordingLifecycle) createdCount() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.created)
}

type panickyLifecycle struct{}

func (panickyLifecycle) OnActorCreated(ActorCreated) {
	panic("boom")
}

func (panickyLifecycle) OnActorTerminated(ActorTerminated) {
	panic("boom")
}

func (panickyLifecycle) OnCellReplaced(CellReplaced) {
	panic("boom")
}

func TestHolder(t *testing.T) {
	t.Run("With register and dispatch", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		listener := new(recordingLifecycle)
		id := holder.Register(listener)
		require.NotEmpty(t, id)
		assert.Equal(t, 1, holder.Len())

		holder.each(func(l LifecycleListener) {
			l.OnActorCreated(NewActorCreated(NewActorRef(nil, "CartActor")))
		})
		assert.Equal(t, 1, listener.createdCount())
	})
	t.Run("With listeners invoked in registration order", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		var order []int
		for i := range 3 {
			listener := &orderedLifecycle{rank: i, order: &order}
			holder.Register(listener)
		}
		holder.each(func(l LifecycleListener) {
			l.OnActorCreated(ActorCreated{})
		})
		assert.Equal(t, []int{0, 1, 2}, order)
	})
	t.Run("With unregister", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		listener := new(recordingLifecycle)
		id := holder.Register(listener)
		holder.Unregister(id)
		assert.Zero(t, holder.Len())

		holder.each(func(l LifecycleListener) {
			l.OnActorCreated(ActorCreated{})
		})
		assert.Zero(t, listener.createdCount())
	})
	t.Run("With unknown handle ignored", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		holder.Register(new(recordingLifecycle))
		holder.Unregister("no-such-handle")
		assert.Equal(t, 1, holder.Len())
	})
	t.Run("With reset", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		holder.Register(new(recordingLifecycle))
		holder.Register(new(recordingLifecycle))
		holder.Reset()
		assert.Zero(t, holder.Len())
	})
	t.Run("With panicking listener contained", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		holder := NewHolder[LifecycleListener]()
		holder.SetLogger(log.NewZap(log.ErrorLevel, buffer))

		survivor := new(recordingLifecycle)
		holder.Register(panickyLifecycle{})
		holder.Register(survivor)

		assert.NotPanics(t, func() {
			holder.each(func(l LifecycleListener) {
				l.OnActorCreated(ActorCreated{})
			})
		})
		assert.Equal(t, 1, survivor.createdCount())
		assert.Contains(t, buffer.String(), "panicked")
	})
	t.Run("With concurrent registration and dispatch", func(t *testing.T) {
		holder := NewHolder[LifecycleListener]()
		eg := new(errgroup.Group)
		for range 8 {
			eg.Go(func() error {
				for range 50 {
					id := holder.Register(new(recordingLifecycle))
					holder.each(func(l LifecycleListener) {
						l.OnActorCreated(ActorCreated{})
					})
					holder.Unregister(id)
				}
				return nil
			})
		}
		eg.Go(func() error {
			// a reset racing with dispatch must not crash either side
			for range 50 {
				holder.Reset()
			}
			return nil
		})
		require.NoError(t, eg.Wait())
		assert.Zero(t, holder.Len())
	})
}

type orderedLifecycle struct {
	rank  int
	order *[]int
}

func (x *orderedLifecycle) OnActorCreated(ActorCreated) {
	*x.order = append(*x.order, x.rank)
}

func (x *orderedLifecycle) OnActorTerminated(ActorTerminated) {}

func (x *orderedLifecycle) OnCellReplaced(CellReplaced) {}
