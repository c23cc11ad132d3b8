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

// Package bolt provides a datastore.Backend persisted in a single BoltDB file.
// It is the default durable store: entries survive process restarts.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

const (
	backendName             = "bolt"
	fileMode    os.FileMode = 0o600
)

// Backend implements datastore.Backend using go.etcd.io/bbolt.
//
// Each collection maps to one bucket. bbolt provides single-writer /
// multi-reader transactions, so the backend only guards its lifecycle state.
// The DB is opened with a short timeout to avoid blocking on a file locked by
// another process.
type Backend struct {
	path        string
	openTimeout time.Duration
	noSync      bool

	db     atomic.Pointer[bbolt.DB]
	closed atomic.Bool
}

var _ datastore.Backend = (*Backend)(nil)

// New creates a Backend writing to the file at path. The file is created on Connect.
func New(path string, opts ...Option) *Backend {
	backend := &Backend{
		path:        filepath.Clean(path),
		openTimeout: time.Second,
	}
	for _, opt := range opts {
		opt.Apply(backend)
	}
	return backend
}

// Connect opens (or creates) the database file.
func (b *Backend) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(b.path) == "" || b.path == "." {
		return gerrors.NewBackendError(backendName, "connect", errors.New("storage path is required"))
	}
	if b.db.Load() != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	db, err := bbolt.Open(b.path, fileMode, &bbolt.Options{Timeout: b.openTimeout, NoSync: b.noSync})
	if err != nil {
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	if !b.db.CompareAndSwap(nil, db) {
		return db.Close()
	}
	b.closed.Store(false)
	return nil
}

// Disconnect closes the database file. The file itself is kept.
func (b *Backend) Disconnect(context.Context) error {
	if b.closed.Swap(true) {
		return nil
	}
	db := b.db.Swap(nil)
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return gerrors.NewBackendError(backendName, "disconnect", err)
	}
	return nil
}

// Get returns a copy of the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return nil, false, err
	}

	var (
		value []byte
		found bool
	)
	err = db.View(func(tx *bbolt.Tx) error {
		raw, ok := lookup(tx, collection, key)
		if ok {
			// bbolt values are only valid for the life of the transaction
			value = append([]byte{}, raw...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, gerrors.NewBackendError(backendName, "get", err)
	}
	return value, found, nil
}

// Put stores value under key, creating the collection bucket when needed.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	db, err := b.handle(ctx)
	if err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return gerrors.NewBackendError(backendName, "put", err)
	}
	return nil
}

// Delete removes key. It is a no-op when the key or the collection does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	db, err := b.handle(ctx)
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return gerrors.NewBackendError(backendName, "delete", err)
	}
	return nil
}

// DeleteAll drops the collection bucket.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	db, err := b.handle(ctx)
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(collection)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(collection))
	})
	if err != nil {
		return gerrors.NewBackendError(backendName, "delete all", err)
	}
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	db, err := b.handle(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = db.View(func(tx *bbolt.Tx) error {
		_, exists = lookup(tx, collection, key)
		return nil
	})
	if err != nil {
		return false, gerrors.NewBackendError(backendName, "exists", err)
	}
	return exists, nil
}

// Path returns the database file location.
func (b *Backend) Path() string {
	return b.path
}

// lookup finds key with a cursor so that empty values are reported as present.
func lookup(tx *bbolt.Tx, collection, key string) ([]byte, bool) {
	bucket := tx.Bucket([]byte(collection))
	if bucket == nil {
		return nil, false
	}
	k, v := bucket.Cursor().Seek([]byte(key))
	if k == nil || !bytes.Equal(k, []byte(key)) {
		return nil, false
	}
	return v, true
}

func (b *Backend) handle(ctx context.Context) (*bbolt.DB, error) {
	if b.closed.Load() {
		return nil, gerrors.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db := b.db.Load()
	if db == nil {
		return nil, gerrors.ErrStoreNotConnected
	}
	return db, nil
}
