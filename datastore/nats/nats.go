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

// Package nats provides a datastore.Backend on top of NATS JetStream key-value
// buckets. Each collection maps to its own bucket.
package nats

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/atomic"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

const backendName = "nats"

// Backend implements datastore.Backend using JetStream key-value buckets.
type Backend struct {
	url           string
	prefix        string
	maxRetries    int
	reconnectWait time.Duration

	mu      sync.RWMutex
	conn    *nats.Conn
	js      jetstream.JetStream
	buckets map[string]jetstream.KeyValue
	closed  *atomic.Bool
}

var _ datastore.Backend = (*Backend)(nil)

// New creates a Backend for the NATS server at url.
func New(url string, opts ...Option) *Backend {
	backend := &Backend{
		url:           strings.TrimSpace(url),
		prefix:        "audience",
		maxRetries:    5,
		reconnectWait: 2 * time.Second,
		buckets:       make(map[string]jetstream.KeyValue),
		closed:        atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(backend)
	}
	return backend
}

// Connect dials the server with an exponential backoff and opens a JetStream context.
func (b *Backend) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.url == "" {
		return gerrors.NewBackendError(backendName, "connect", errors.New("server url is required"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return nil
	}

	var conn *nats.Conn
	retrier := retry.NewRetrier(b.maxRetries, 100*time.Millisecond, b.reconnectWait)
	err := retrier.RunContext(ctx, func(context.Context) error {
		var err error
		conn, err = nats.Connect(b.url,
			nats.Name("audience-datastore"),
			nats.ReconnectWait(b.reconnectWait),
		)
		return err
	})
	if err != nil {
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	b.conn = conn
	b.js = js
	b.buckets = make(map[string]jetstream.KeyValue)
	b.closed.Store(false)
	return nil
}

// Disconnect drains and closes the connection.
func (b *Backend) Disconnect(context.Context) error {
	if b.closed.Swap(true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	err := b.conn.Drain()
	b.conn = nil
	b.js = nil
	b.buckets = make(map[string]jetstream.KeyValue)
	if err != nil {
		return gerrors.NewBackendError(backendName, "disconnect", err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	kv, err := b.bucket(ctx, collection, false)
	if err != nil || kv == nil {
		return nil, false, err
	}

	entry, err := kv.Get(ctx, encodeKey(key))
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, gerrors.NewBackendError(backendName, "get", err)
	}
	value := entry.Value()
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Put sets the value stored under key, creating the bucket when needed.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	kv, err := b.bucket(ctx, collection, true)
	if err != nil {
		return err
	}
	if _, err := kv.Put(ctx, encodeKey(key), value); err != nil {
		return gerrors.NewBackendError(backendName, "put", err)
	}
	return nil
}

// Delete purges key. It is a no-op when the key does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	kv, err := b.bucket(ctx, collection, false)
	if err != nil || kv == nil {
		return err
	}
	if err := kv.Purge(ctx, encodeKey(key)); err != nil && !isNotFound(err) {
		return gerrors.NewBackendError(backendName, "delete", err)
	}
	return nil
}

// DeleteAll drops the collection bucket.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	js, err := b.handle(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buckets, collection)
	if err := js.DeleteKeyValue(ctx, b.bucketName(collection)); err != nil && !errors.Is(err, jetstream.ErrBucketNotFound) {
		return gerrors.NewBackendError(backendName, "delete all", err)
	}
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	_, ok, err := b.Get(ctx, collection, key)
	return ok, err
}

// bucket returns the bucket of the collection. When create is false a missing
// bucket yields a nil KeyValue and no error.
func (b *Backend) bucket(ctx context.Context, collection string, create bool) (jetstream.KeyValue, error) {
	js, err := b.handle(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	kv, ok := b.buckets[collection]
	b.mu.RUnlock()
	if ok {
		return kv, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if kv, ok := b.buckets[collection]; ok {
		return kv, nil
	}

	name := b.bucketName(collection)
	if create {
		kv, err = js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: name, History: 1})
	} else {
		kv, err = js.KeyValue(ctx, name)
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, gerrors.NewBackendError(backendName, "bucket", err)
	}
	b.buckets[collection] = kv
	return kv, nil
}

func (b *Backend) bucketName(collection string) string {
	return b.prefix + "_" + collection
}

func (b *Backend) handle(ctx context.Context) (jetstream.JetStream, error) {
	if b.closed.Load() {
		return nil, gerrors.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.js == nil {
		return nil, gerrors.ErrStoreNotConnected
	}
	return b.js, nil
}

// encodeKey maps an arbitrary key onto the subject-safe key alphabet.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted)
}
