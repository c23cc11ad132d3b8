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

// Package etcd provides a datastore.Backend backed by an etcd cluster.
// Keys are laid out as <prefix><collection>/<key>.
package etcd

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/namespace"
	"go.uber.org/atomic"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

const backendName = "etcd"

// Backend implements datastore.Backend using go.etcd.io/etcd/client/v3.
type Backend struct {
	endpoints   []string
	prefix      string
	dialTimeout time.Duration
	username    string
	password    string
	tls         *tls.Config

	mu     sync.RWMutex
	client *clientv3.Client
	kv     clientv3.KV
	closed *atomic.Bool
}

var _ datastore.Backend = (*Backend)(nil)

// New creates a Backend for the given cluster endpoints.
func New(endpoints []string, opts ...Option) *Backend {
	backend := &Backend{
		endpoints:   endpoints,
		prefix:      "/audience/",
		dialTimeout: 5 * time.Second,
		closed:      atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(backend)
	}
	return backend
}

// Connect creates the client and checks the first endpoint answers a status request.
func (b *Backend) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(b.endpoints) == 0 {
		return gerrors.NewBackendError(backendName, "connect", errors.New("at least one endpoint is required"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return nil
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   b.endpoints,
		DialTimeout: b.dialTimeout,
		TLS:         b.tls,
		Username:    b.username,
		Password:    b.password,
	})
	if err != nil {
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	statusCtx, cancel := context.WithTimeout(ctx, b.dialTimeout)
	defer cancel()
	if _, err := client.Status(statusCtx, b.endpoints[0]); err != nil {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	b.client = client
	b.kv = namespace.NewKV(client.KV, b.prefix)
	b.closed.Store(false)
	return nil
}

// Disconnect closes the client.
func (b *Backend) Disconnect(context.Context) error {
	if b.closed.Swap(true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	b.kv = nil
	if err != nil {
		return gerrors.NewBackendError(backendName, "disconnect", err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	kv, err := b.handle(ctx)
	if err != nil {
		return nil, false, err
	}

	resp, err := kv.Get(ctx, entryKey(collection, key))
	if err != nil {
		return nil, false, gerrors.NewBackendError(backendName, "get", err)
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	value := resp.Kvs[0].Value
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Put sets the value stored under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	kv, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if _, err := kv.Put(ctx, entryKey(collection, key), string(value)); err != nil {
		return gerrors.NewBackendError(backendName, "put", err)
	}
	return nil
}

// Delete removes key. It is a no-op when the key does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	kv, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if _, err := kv.Delete(ctx, entryKey(collection, key)); err != nil {
		return gerrors.NewBackendError(backendName, "delete", err)
	}
	return nil
}

// DeleteAll removes every key of the collection.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	kv, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if _, err := kv.Delete(ctx, collectionPrefix(collection), clientv3.WithPrefix()); err != nil {
		return gerrors.NewBackendError(backendName, "delete all", err)
	}
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	kv, err := b.handle(ctx)
	if err != nil {
		return false, err
	}
	resp, err := kv.Get(ctx, entryKey(collection, key), clientv3.WithCountOnly())
	if err != nil {
		return false, gerrors.NewBackendError(backendName, "exists", err)
	}
	return resp.Count > 0, nil
}

func (b *Backend) handle(ctx context.Context) (clientv3.KV, error) {
	if b.closed.Load() {
		return nil, gerrors.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.kv == nil {
		return nil, gerrors.ErrStoreNotConnected
	}
	return b.kv, nil
}

func collectionPrefix(collection string) string {
	return collection + "/"
}

func entryKey(collection, key string) string {
	return collectionPrefix(collection) + key
}
