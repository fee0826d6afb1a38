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

package syncmap

import "sync"

// SyncMap is a generic, concurrency-safe map guarded by a read-write mutex.
// Metric stores shard their key space across several SyncMap instances, so the
// lock here only ever covers one shard.
//
// K represents the key type, which must be comparable.
// V represents the value type, which can be any type.
type SyncMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates and returns a new instance of SyncMap.
func New[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		data: make(map[K]V),
	}
}

// Set stores a key-value pair in the SyncMap.
// If the key already exists, its value is updated.
func (s *SyncMap[K, V]) Set(k K, v V) {
	s.mu.Lock()
	s.data[k] = v
	s.mu.Unlock()
}

// Get retrieves the value associated with the given key from the SyncMap.
// The second return value indicates whether the key was found.
func (s *SyncMap[K, V]) Get(k K) (V, bool) {
	s.mu.RLock()
	val, ok := s.data[k]
	s.mu.RUnlock()
	return val, ok
}

// GetOrSet returns the value stored under k, lazily creating it with create
// when absent. The boolean reports whether the value was already present.
// create runs under the write lock, so concurrent callers for the same key
// observe exactly one created value; keep create cheap and side-effect free.
func (s *SyncMap[K, V]) GetOrSet(k K, create func() V) (V, bool) {
	s.mu.RLock()
	if val, ok := s.data[k]; ok {
		s.mu.RUnlock()
		return val, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if val, ok := s.data[k]; ok {
		return val, true
	}
	val := create()
	s.data[k] = val
	return val, false
}

// Delete removes the key-value pair associated with the given key from the SyncMap.
// If the key does not exist, this operation has no effect.
func (s *SyncMap[K, V]) Delete(k K) {
	s.mu.Lock()
	delete(s.data, k)
	s.mu.Unlock()
}

// Len returns the number of key-value pairs currently stored in the SyncMap.
func (s *SyncMap[K, V]) Len() int {
	s.mu.RLock()
	l := len(s.data)
	s.mu.RUnlock()
	return l
}

// Range iterates over all key-value pairs in the SyncMap and executes the given
// function `f` for each pair. The iteration order is not guaranteed. The read
// lock is held for the whole traversal; f must not call back into mutating
// methods of the same map.
func (s *SyncMap[K, V]) Range(f func(K, V)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.data {
		f(k, v)
	}
}

// Reset discards every entry, leaving an empty map behind.
func (s *SyncMap[K, V]) Reset() {
	s.mu.Lock()
	s.data = make(map[K]V)
	s.mu.Unlock()
}
