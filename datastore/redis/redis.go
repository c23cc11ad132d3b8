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

// Package redis provides a datastore.Backend backed by a Redis server.
// Every collection is stored as a single hash.
package redis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

const backendName = "redis"

// Backend implements datastore.Backend using github.com/redis/go-redis/v9.
type Backend struct {
	addr       string
	password   string
	db         int
	prefix     string
	maxRetries int
	maxDelay   time.Duration

	mu     sync.RWMutex
	client *goredis.Client
	closed *atomic.Bool
}

var _ datastore.Backend = (*Backend)(nil)

// New creates a Backend for the server listening at addr.
func New(addr string, opts ...Option) *Backend {
	backend := &Backend{
		addr:       strings.TrimSpace(addr),
		prefix:     "audience",
		maxRetries: 5,
		maxDelay:   time.Second,
		closed:     atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(backend)
	}
	return backend
}

// Connect dials the server and waits until it answers a PING.
func (b *Backend) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.addr == "" {
		return gerrors.NewBackendError(backendName, "connect", errors.New("server address is required"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     b.addr,
		Password: b.password,
		DB:       b.db,
	})

	retrier := retry.NewRetrier(b.maxRetries, 100*time.Millisecond, b.maxDelay)
	if err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return gerrors.NewBackendError(backendName, "connect", err)
	}

	b.client = client
	b.closed.Store(false)
	return nil
}

// Disconnect closes the client connection pool.
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
	if err != nil {
		return gerrors.NewBackendError(backendName, "disconnect", err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	client, err := b.handle(ctx)
	if err != nil {
		return nil, false, err
	}

	value, err := client.HGet(ctx, b.hashKey(collection), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, gerrors.NewBackendError(backendName, "get", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Put sets the value stored under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	client, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	if err := client.HSet(ctx, b.hashKey(collection), key, value).Err(); err != nil {
		return gerrors.NewBackendError(backendName, "put", err)
	}
	return nil
}

// Delete removes key. It is a no-op when the key does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	client, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if err := client.HDel(ctx, b.hashKey(collection), key).Err(); err != nil {
		return gerrors.NewBackendError(backendName, "delete", err)
	}
	return nil
}

// DeleteAll removes the collection hash.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	client, err := b.handle(ctx)
	if err != nil {
		return err
	}
	if err := client.Del(ctx, b.hashKey(collection)).Err(); err != nil {
		return gerrors.NewBackendError(backendName, "delete all", err)
	}
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	client, err := b.handle(ctx)
	if err != nil {
		return false, err
	}
	exists, err := client.HExists(ctx, b.hashKey(collection), key).Result()
	if err != nil {
		return false, gerrors.NewBackendError(backendName, "exists", err)
	}
	return exists, nil
}

func (b *Backend) hashKey(collection string) string {
	return b.prefix + ":" + collection
}

func (b *Backend) handle(ctx context.Context) (*goredis.Client, error) {
	if b.closed.Load() {
		return nil, gerrors.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.client == nil {
		return nil, gerrors.ErrStoreNotConnected
	}
	return b.client, nil
}
