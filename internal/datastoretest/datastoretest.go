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

// Package datastoretest runs the behavioral contract every datastore.Backend
// must satisfy. Backend packages call Run from their own tests.
package datastoretest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

// Factory returns a connected backend. The suite disconnects it.
type Factory func(t *testing.T) datastore.Backend

// Run exercises the Backend contract against backends produced by newBackend.
// Each sub-test uses a fresh backend and unique collection names.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	t.Run("With Put and Get", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		collection := collectionName()

		_, ok, err := backend.Get(ctx, collection, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, backend.Put(ctx, collection, "key", []byte("value")))
		value, ok, err := backend.Get(ctx, collection, "key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("value"), value)

		require.NoError(t, backend.Put(ctx, collection, "key", []byte("updated")))
		value, ok, err = backend.Get(ctx, collection, "key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("updated"), value)

		require.NoError(t, backend.Disconnect(ctx))
	})
	t.Run("With Exists", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		collection := collectionName()

		exists, err := backend.Exists(ctx, collection, "key")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, backend.Put(ctx, collection, "key", []byte("value")))
		exists, err = backend.Exists(ctx, collection, "key")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, backend.Disconnect(ctx))
	})
	t.Run("With Delete", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		collection := collectionName()

		require.NoError(t, backend.Put(ctx, collection, "key", []byte("value")))
		require.NoError(t, backend.Delete(ctx, collection, "key"))

		exists, err := backend.Exists(ctx, collection, "key")
		require.NoError(t, err)
		assert.False(t, exists)

		_, ok, err := backend.Get(ctx, collection, "key")
		require.NoError(t, err)
		assert.False(t, ok)

		// deleting a missing key is a no-op
		require.NoError(t, backend.Delete(ctx, collection, "key"))
		require.NoError(t, backend.Delete(ctx, collectionName(), "key"))

		require.NoError(t, backend.Disconnect(ctx))
	})
	t.Run("With DeleteAll scoped to the collection", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		first := collectionName()
		second := collectionName()

		require.NoError(t, backend.Put(ctx, first, "a", []byte("1")))
		require.NoError(t, backend.Put(ctx, first, "b", []byte("2")))
		require.NoError(t, backend.Put(ctx, second, "a", []byte("3")))

		require.NoError(t, backend.DeleteAll(ctx, first))

		for _, key := range []string{"a", "b"} {
			exists, err := backend.Exists(ctx, first, key)
			require.NoError(t, err)
			assert.False(t, exists)
		}

		value, ok, err := backend.Get(ctx, second, "a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("3"), value)

		// clearing an empty or unknown collection is a no-op
		require.NoError(t, backend.DeleteAll(ctx, first))
		require.NoError(t, backend.DeleteAll(ctx, collectionName()))

		// the collection is still writable after a clear
		require.NoError(t, backend.Put(ctx, first, "a", []byte("4")))
		value, ok, err = backend.Get(ctx, first, "a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("4"), value)

		require.NoError(t, backend.Disconnect(ctx))
	})
	t.Run("With concurrent writers", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		collection := collectionName()

		keys := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7"}
		var wg sync.WaitGroup
		for _, key := range keys {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				assert.NoError(t, backend.Put(ctx, collection, key, []byte(key)))
			}(key)
		}
		wg.Wait()

		for _, key := range keys {
			value, ok, err := backend.Get(ctx, collection, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte(key), value)
		}

		require.NoError(t, backend.Disconnect(ctx))
	})
	t.Run("With operations after Disconnect", func(t *testing.T) {
		ctx := context.Background()
		backend := newBackend(t)
		collection := collectionName()

		require.NoError(t, backend.Disconnect(ctx))
		// disconnecting twice is a no-op
		require.NoError(t, backend.Disconnect(ctx))

		_, _, err := backend.Get(ctx, collection, "key")
		assert.ErrorIs(t, err, gerrors.ErrStoreClosed)
		assert.ErrorIs(t, backend.Put(ctx, collection, "key", []byte("v")), gerrors.ErrStoreClosed)
		assert.ErrorIs(t, backend.Delete(ctx, collection, "key"), gerrors.ErrStoreClosed)
		assert.ErrorIs(t, backend.DeleteAll(ctx, collection), gerrors.ErrStoreClosed)
		_, err = backend.Exists(ctx, collection, "key")
		assert.ErrorIs(t, err, gerrors.ErrStoreClosed)
	})
	t.Run("With a canceled context", func(t *testing.T) {
		backend := newBackend(t)
		collection := collectionName()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, backend.Put(ctx, collection, "key", []byte("v")))
		_, _, err := backend.Get(ctx, collection, "key")
		assert.Error(t, err)

		require.NoError(t, backend.Disconnect(context.Background()))
	})
}

func collectionName() string {
	return "collection-" + uuid.NewString()
}
