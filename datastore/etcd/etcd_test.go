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

package etcd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testcontainer "github.com/testcontainers/testcontainers-go/modules/etcd"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/datastoretest"
)

func TestBackend(t *testing.T) {
	endpoints := startEtcd(t)
	datastoretest.Run(t, func(t *testing.T) datastore.Backend {
		backend := New(endpoints, WithPrefix("/test/"))
		require.NoError(t, backend.Connect(t.Context()))
		return backend
	})
	t.Run("With collections sharing a name prefix", func(t *testing.T) {
		ctx := t.Context()
		backend := New(endpoints, WithPrefix("/prefix-test/"))
		require.NoError(t, backend.Connect(ctx))
		t.Cleanup(func() { _ = backend.Disconnect(ctx) })

		require.NoError(t, backend.Put(ctx, "audience", "key", []byte("1")))
		require.NoError(t, backend.Put(ctx, "audience-extra", "key", []byte("2")))
		require.NoError(t, backend.DeleteAll(ctx, "audience"))

		value, ok, err := backend.Get(ctx, "audience-extra", "key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("2"), value)
	})
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("With no endpoints", func(t *testing.T) {
		require.Error(t, New(nil).Connect(context.Background()))
	})
	t.Run("With operations before Connect", func(t *testing.T) {
		backend := New([]string{"127.0.0.1:2379"})
		err := backend.Delete(context.Background(), "AAMDataStore", "AAMUserId")
		assert.ErrorIs(t, err, gerrors.ErrStoreNotConnected)
	})
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "AAMDataStore/AAMUserId", entryKey("AAMDataStore", "AAMUserId"))
	assert.Equal(t, "AAMDataStore/", collectionPrefix("AAMDataStore"))
}

func startEtcd(t *testing.T) []string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := testcontainer.Run(t.Context(), "gcr.io/etcd-development/etcd:v3.5.14")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	endpoints, err := container.ClientEndpoints(t.Context())
	require.NoError(t, err)
	return endpoints
}
