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

// Package memory provides an in-process datastore.Backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

// Backend keeps collections in a mutex-protected map.
//
// Concurrency:
//   - A RWMutex guards the collections allowing concurrent readers while
//     writes are exclusive.
//   - Values are copied on the way in and out so callers cannot mutate the
//     stored bytes.
//
// Use cases:
//   - Tests, examples and deployments where durability is not required.
//     Entries are lost when the process exits.
type Backend struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	connected   bool
	closed      bool
}

var _ datastore.Backend = (*Backend)(nil) // enforce compilation error

// New returns an in-memory Backend.
func New() *Backend {
	return &Backend{
		collections: make(map[string]map[string][]byte),
	}
}

// Connect marks the backend ready. Connecting a disconnected backend reopens it empty.
func (b *Backend) Connect(context.Context) error {
	b.mu.Lock()
	b.connected = true
	b.closed = false
	b.mu.Unlock()
	return nil
}

// Disconnect drops every stored entry.
func (b *Backend) Disconnect(context.Context) error {
	b.mu.Lock()
	b.closed = true
	clear(b.collections)
	b.mu.Unlock()
	return nil
}

// Get returns a copy of the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkLocked(); err != nil {
		return nil, false, err
	}

	value, ok := b.collections[collection][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

// Put stores a copy of value under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkLocked(); err != nil {
		return err
	}

	entries, ok := b.collections[collection]
	if !ok {
		entries = make(map[string][]byte)
		b.collections[collection] = entries
	}
	entries[key] = slices.Clone(value)
	return nil
}

// Delete removes key. It is a no-op when the key does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkLocked(); err != nil {
		return err
	}

	delete(b.collections[collection], key)
	return nil
}

// DeleteAll removes the whole collection.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkLocked(); err != nil {
		return err
	}

	delete(b.collections, collection)
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkLocked(); err != nil {
		return false, err
	}

	_, ok := b.collections[collection][key]
	return ok, nil
}

// Len returns the number of entries stored in collection.
func (b *Backend) Len(collection string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.collections[collection])
}

func (b *Backend) checkLocked() error {
	if b.closed {
		return gerrors.ErrStoreClosed
	}
	if !b.connected {
		return gerrors.ErrStoreNotConnected
	}
	return nil
}
