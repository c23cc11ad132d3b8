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

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/datastoretest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBackend(t *testing.T) {
	datastoretest.Run(t, func(t *testing.T) datastore.Backend {
		backend := New()
		require.NoError(t, backend.Connect(context.Background()))
		return backend
	})
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("With operations before Connect", func(t *testing.T) {
		backend := New()
		_, _, err := backend.Get(context.Background(), "collection", "key")
		assert.ErrorIs(t, err, gerrors.ErrStoreNotConnected)
	})
	t.Run("With stored values isolated from callers", func(t *testing.T) {
		ctx := context.Background()
		backend := New()
		require.NoError(t, backend.Connect(ctx))

		value := []byte("value")
		require.NoError(t, backend.Put(ctx, "collection", "key", value))
		value[0] = 'X'

		stored, ok, err := backend.Get(ctx, "collection", "key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("value"), stored)

		stored[0] = 'Y'
		again, _, err := backend.Get(ctx, "collection", "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), again)
		assert.Equal(t, 1, backend.Len("collection"))
	})
	t.Run("With reconnect after Disconnect", func(t *testing.T) {
		ctx := context.Background()
		backend := New()
		require.NoError(t, backend.Connect(ctx))
		require.NoError(t, backend.Put(ctx, "collection", "key", []byte("value")))
		require.NoError(t, backend.Disconnect(ctx))
		require.NoError(t, backend.Connect(ctx))

		exists, err := backend.Exists(ctx, "collection", "key")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Zero(t, backend.Len("collection"))
	})
}
