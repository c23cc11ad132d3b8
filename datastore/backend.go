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

package datastore

import "context"

// Backend defines the storage engine behind a Service.
//
// Keys are scoped by collection: the same key in two collections refers to
// two different entries, and DeleteAll only affects its own collection.
// Implementations must be safe for concurrent use and must return
// errors.ErrStoreClosed once Disconnect has been called.
type Backend interface {
	// Connect prepares the backend for use. It must be called before any other method.
	Connect(ctx context.Context) error
	// Disconnect releases the resources held by the backend.
	// Calling Disconnect more than once is a no-op.
	Disconnect(ctx context.Context) error
	// Get returns the raw value stored under key.
	// The boolean is false when the key does not exist.
	Get(ctx context.Context, collection, key string) ([]byte, bool, error)
	// Put inserts or replaces the value stored under key.
	Put(ctx context.Context, collection, key string, value []byte) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, collection, key string) error
	// DeleteAll removes every key of the collection.
	DeleteAll(ctx context.Context, collection string) error
	// Exists reports whether key is present without decoding its value.
	Exists(ctx context.Context, collection, key string) (bool, error)
}
