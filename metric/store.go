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

package metric

import (
	"github.com/zeebo/xxh3"

	"github.com/tochemey/actormetrics/internal/syncmap"
)

// shardCount is the number of key shards per primitive. Must be a power of
// two so the hash can be masked instead of divided.
const shardCount = 32

// store spreads a keyed cell family across shardCount lock-striped maps.
// The shard for a key is picked by hashing the key, so writers on unrelated
// keys land on different locks with high probability and traffic on one key
// never blocks another shard.
type store[V any] struct {
	shards [shardCount]*syncmap.SyncMap[string, V]
	create func() V
}

// newStore builds a store whose absent keys materialize via create.
func newStore[V any](create func() V) *store[V] {
	s := &store[V]{create: create}
	for i := range s.shards {
		s.shards[i] = syncmap.New[string, V]()
	}
	return s
}

func (s *store[V]) shard(key string) *syncmap.SyncMap[string, V] {
	return s.shards[xxh3.HashString(key)&(shardCount-1)]
}

// get returns the cell for key when it exists.
func (s *store[V]) get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

// getOrCreate returns the cell for key, materializing it on first use.
// Concurrent callers for the same key observe exactly one cell.
func (s *store[V]) getOrCreate(key string) V {
	cell, _ := s.shard(key).GetOrSet(key, s.create)
	return cell
}

// each visits every cell. Iteration order is unspecified; entries created
// concurrently with the traversal may or may not be visited.
func (s *store[V]) each(f func(key string, cell V)) {
	for _, shard := range s.shards {
		shard.Range(f)
	}
}

// size returns the number of live keys across all shards.
func (s *store[V]) size() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// reset drops every cell.
func (s *store[V]) reset() {
	for _, shard := range s.shards {
		shard.Reset()
	}
}
