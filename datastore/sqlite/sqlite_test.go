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

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/datastoretest"
)

func TestBackend(t *testing.T) {
	datastoretest.Run(t, func(t *testing.T) datastore.Backend {
		backend := New(filepath.Join(t.TempDir(), "audience.sqlite"))
		require.NoError(t, backend.Connect(context.Background()))
		return backend
	})
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("With values surviving a reconnect", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "audience.sqlite")

		backend := New(path)
		require.NoError(t, backend.Connect(ctx))
		require.NoError(t, backend.Put(ctx, "AAMDataStore", "AAMUserId", []byte("uuid-123")))
		require.NoError(t, backend.Disconnect(ctx))

		reopened := New(path)
		require.NoError(t, reopened.Connect(ctx))
		t.Cleanup(func() { _ = reopened.Disconnect(ctx) })

		value, ok, err := reopened.Get(ctx, "AAMDataStore", "AAMUserId")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("uuid-123"), value)
	})
	t.Run("With an empty path", func(t *testing.T) {
		require.Error(t, New("  ").Connect(context.Background()))
	})
	t.Run("With operations before Connect", func(t *testing.T) {
		backend := New(filepath.Join(t.TempDir(), "audience.sqlite"))
		_, err := backend.Exists(context.Background(), "AAMDataStore", "AAMUserId")
		assert.ErrorIs(t, err, gerrors.ErrStoreNotConnected)
	})
	t.Run("With an empty value", func(t *testing.T) {
		ctx := context.Background()
		backend := New(filepath.Join(t.TempDir(), "audience.sqlite"))
		require.NoError(t, backend.Connect(ctx))
		t.Cleanup(func() { _ = backend.Disconnect(ctx) })

		require.NoError(t, backend.Put(ctx, "AAMDataStore", "empty", nil))
		value, ok, err := backend.Get(ctx, "AAMDataStore", "empty")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, value)
	})
}
