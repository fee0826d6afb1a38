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

// Package store archives metrics snapshots in a local boltdb file, giving a
// process a flight-recorder history of its own metrics that survives
// restarts.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/zstd"
	bbolt "go.etcd.io/bbolt"

	"github.com/tochemey/actormetrics/internal/errorschain"
	"github.com/tochemey/actormetrics/metric"
	"github.com/tochemey/actormetrics/reporter"
)

const (
	boltFileMode   os.FileMode = 0o600
	boltBucketName             = "snapshots"

	// keyLayout is RFC3339 with a fixed nine-digit fraction so that the
	// lexicographic bbolt key order is the chronological order.
	keyLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var (
	boltTimeout        = 5 * time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}

	// ErrNoSnapshot is returned when no snapshot exists for the request.
	ErrNoSnapshot = errors.New("store: no snapshot found")

	errStoreClosed = errors.New("store: snapshot store is closed")
)

// Snapshot is one archived export: the instant it was taken and the samples
// it carried.
type Snapshot struct {
	At      time.Time       `json:"at"`
	Samples []metric.Sample `json:"samples"`
}

// SnapshotStore persists snapshots in a single-bucket boltdb file. Each
// snapshot is stored as zstd-compressed JSON under its timestamp, so the
// natural bucket order is the chronological one.
//
// bbolt provides single-writer/multi-reader semantics; only the close state
// is guarded here.
type SnapshotStore struct {
	db      *bbolt.DB
	bucket  []byte
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	closed  atomic.Bool
}

// enforce compilation error
var _ reporter.Sink = (*SnapshotStore)(nil)

// NewSnapshotStore opens (or creates) the boltdb file at path. The database
// is opened with a short timeout to avoid blocking on locked files. Closing
// the store keeps the file around; the archive is the point.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	optionsCopy := *defaultBoltOptions
	db, err := bbolt.Open(path, boltFileMode, &optionsCopy)
	if err != nil {
		return nil, fmt.Errorf("store: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: initializing boltdb bucket: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: creating zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		_ = db.Close()
		return nil, fmt.Errorf("store: creating zstd decoder: %w", err)
	}

	return &SnapshotStore{
		db:      db,
		bucket:  bucket,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Export implements reporter.Sink: every tick handed to the store is
// archived as one snapshot.
func (s *SnapshotStore) Export(ctx context.Context, at time.Time, samples []metric.Sample) error {
	return s.Save(ctx, Snapshot{At: at, Samples: samples})
}

// Save archives one snapshot under its timestamp. Saving a second snapshot
// for the very same nanosecond overwrites the first.
func (s *SnapshotStore) Save(ctx context.Context, snapshot Snapshot) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := contextErr(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("store: encoding snapshot: %w", err)
	}

	compressed := s.encoder.EncodeAll(data, nil)
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		return bucket.Put(snapshotKey(snapshot.At), compressed)
	})
}

// Load returns the snapshot taken at the given instant, or ErrNoSnapshot
// when none was.
func (s *SnapshotStore) Load(ctx context.Context, at time.Time) (*Snapshot, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	var snapshot *Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		raw := bucket.Get(snapshotKey(at))
		if raw == nil {
			return ErrNoSnapshot
		}
		decoded, decodeErr := s.decode(raw)
		if decodeErr != nil {
			return decodeErr
		}
		snapshot = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Latest returns the most recent snapshot, or ErrNoSnapshot when the store
// is empty.
func (s *SnapshotStore) Latest(ctx context.Context) (*Snapshot, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	var snapshot *Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		_, raw := bucket.Cursor().Last()
		if raw == nil {
			return ErrNoSnapshot
		}
		decoded, decodeErr := s.decode(raw)
		if decodeErr != nil {
			return decodeErr
		}
		snapshot = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Range returns the snapshots taken between from and to, both inclusive, in
// chronological order. An empty window is not an error.
func (s *SnapshotStore) Range(ctx context.Context, from, to time.Time) ([]*Snapshot, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	var snapshots []*Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		cursor := bucket.Cursor()
		last := snapshotKey(to)
		for key, raw := cursor.Seek(snapshotKey(from)); key != nil && bytes.Compare(key, last) <= 0; key, raw = cursor.Next() {
			decoded, decodeErr := s.decode(raw)
			if decodeErr != nil {
				return decodeErr
			}
			snapshots = append(snapshots, decoded)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Close releases the compressors and the underlying boltdb handle. The
// database file stays on disk.
func (s *SnapshotStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.decoder.Close()
	return errorschain.
		New(errorschain.ReturnAll()).
		AddErrorFn(s.encoder.Close).
		AddErrorFn(s.db.Close).
		Error()
}

func (s *SnapshotStore) ensureOpen() error {
	if s.closed.Load() {
		return errStoreClosed
	}
	return nil
}

func (s *SnapshotStore) decode(raw []byte) (*Snapshot, error) {
	data, err := s.decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("store: decompressing snapshot: %w", err)
	}
	snapshot := new(Snapshot)
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("store: decoding snapshot: %w", err)
	}
	return snapshot, nil
}

func snapshotKey(at time.Time) []byte {
	return []byte(at.UTC().Format(keyLayout))
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
