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

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/actormetrics/metric"
	"github.com/tochemey/actormetrics/reporter"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.db")
	snapshots, err := NewSnapshotStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = snapshots.Close() })
	return snapshots
}

func sampleBatch(value int64) []metric.Sample {
	return []metric.Sample{
		{
			Kind:  metric.KindCounter,
			Name:  "actors_created_total",
			Key:   "cartactor",
			Tags:  map[string]string{"actor.class": "cartactor"},
			Value: value,
		},
	}
}

func TestSnapshotStore(t *testing.T) {
	t.Run("With a save and load round trip", func(t *testing.T) {
		snapshots := newTestStore(t)
		at := time.Now()
		batch := sampleBatch(7)

		require.NoError(t, snapshots.Save(context.TODO(), Snapshot{At: at, Samples: batch}))

		loaded, err := snapshots.Load(context.TODO(), at)
		require.NoError(t, err)
		assert.True(t, loaded.At.Equal(at))
		assert.Equal(t, batch, loaded.Samples)
	})

	t.Run("With a missing snapshot", func(t *testing.T) {
		snapshots := newTestStore(t)
		require.NoError(t, snapshots.Save(context.TODO(), Snapshot{At: time.Now(), Samples: sampleBatch(1)}))

		loaded, err := snapshots.Load(context.TODO(), time.Now().Add(time.Hour))
		require.ErrorIs(t, err, ErrNoSnapshot)
		assert.Nil(t, loaded)
	})

	t.Run("With the latest snapshot", func(t *testing.T) {
		snapshots := newTestStore(t)
		base := time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC)
		for i := range 3 {
			at := base.Add(time.Duration(i) * time.Second)
			require.NoError(t, snapshots.Save(context.TODO(), Snapshot{At: at, Samples: sampleBatch(int64(i + 1))}))
		}

		latest, err := snapshots.Latest(context.TODO())
		require.NoError(t, err)
		assert.True(t, latest.At.Equal(base.Add(2*time.Second)))
		require.Len(t, latest.Samples, 1)
		assert.EqualValues(t, 3, latest.Samples[0].Value)
	})

	t.Run("With an empty store", func(t *testing.T) {
		snapshots := newTestStore(t)
		latest, err := snapshots.Latest(context.TODO())
		require.ErrorIs(t, err, ErrNoSnapshot)
		assert.Nil(t, latest)
	})

	t.Run("With a range", func(t *testing.T) {
		snapshots := newTestStore(t)
		base := time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC)
		for i := range 5 {
			at := base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, snapshots.Save(context.TODO(), Snapshot{At: at, Samples: sampleBatch(int64(i))}))
		}

		// both bounds are inclusive
		window, err := snapshots.Range(context.TODO(), base.Add(time.Minute), base.Add(3*time.Minute))
		require.NoError(t, err)
		require.Len(t, window, 3)
		assert.True(t, window[0].At.Equal(base.Add(time.Minute)))
		assert.True(t, window[2].At.Equal(base.Add(3*time.Minute)))

		empty, err := snapshots.Range(context.TODO(), base.Add(time.Hour), base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("With concurrent saves", func(t *testing.T) {
		snapshots := newTestStore(t)
		base := time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC)

		eg := new(errgroup.Group)
		for i := range 10 {
			at := base.Add(time.Duration(i) * time.Second)
			value := int64(i)
			eg.Go(func() error {
				return snapshots.Save(context.TODO(), Snapshot{At: at, Samples: sampleBatch(value)})
			})
		}
		require.NoError(t, eg.Wait())

		window, err := snapshots.Range(context.TODO(), base, base.Add(9*time.Second))
		require.NoError(t, err)
		assert.Len(t, window, 10)
	})

	t.Run("With a sink export", func(t *testing.T) {
		snapshots := newTestStore(t)
		var sink reporter.Sink = snapshots

		at := time.Now()
		require.NoError(t, sink.Export(context.TODO(), at, sampleBatch(9)))

		latest, err := snapshots.Latest(context.TODO())
		require.NoError(t, err)
		assert.True(t, latest.At.Equal(at))
		assert.EqualValues(t, 9, latest.Samples[0].Value)
	})

	t.Run("With a reopened store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.db")
		first, err := NewSnapshotStore(path)
		require.NoError(t, err)

		at := time.Now()
		require.NoError(t, first.Save(context.TODO(), Snapshot{At: at, Samples: sampleBatch(5)}))
		require.NoError(t, first.Close())

		second, err := NewSnapshotStore(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = second.Close() })

		latest, err := second.Latest(context.TODO())
		require.NoError(t, err)
		assert.True(t, latest.At.Equal(at))
		assert.EqualValues(t, 5, latest.Samples[0].Value)
	})

	t.Run("With a closed store", func(t *testing.T) {
		snapshots := newTestStore(t)
		require.NoError(t, snapshots.Close())
		require.NoError(t, snapshots.Close())

		err := snapshots.Save(context.TODO(), Snapshot{At: time.Now(), Samples: sampleBatch(1)})
		assert.ErrorIs(t, err, errStoreClosed)
		_, err = snapshots.Load(context.TODO(), time.Now())
		assert.ErrorIs(t, err, errStoreClosed)
		_, err = snapshots.Latest(context.TODO())
		assert.ErrorIs(t, err, errStoreClosed)
		_, err = snapshots.Range(context.TODO(), time.Now(), time.Now())
		assert.ErrorIs(t, err, errStoreClosed)
	})

	t.Run("With a canceled context", func(t *testing.T) {
		snapshots := newTestStore(t)
		ctx, cancel := context.WithCancel(context.TODO())
		cancel()

		err := snapshots.Save(ctx, Snapshot{At: time.Now(), Samples: sampleBatch(1)})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("With an invalid path", func(t *testing.T) {
		snapshots, err := NewSnapshotStore(filepath.Join(t.TempDir(), "missing", "metrics.db"))
		require.Error(t, err)
		assert.Nil(t, snapshots)
		assert.ErrorContains(t, err, "opening boltdb")
	})
}
