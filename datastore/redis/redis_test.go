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

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/datastoretest"
)

func TestBackend(t *testing.T) {
	addr := startRedis(t)
	datastoretest.Run(t, func(t *testing.T) datastore.Backend {
		backend := New(addr, WithKeyPrefix("test"))
		require.NoError(t, backend.Connect(t.Context()))
		return backend
	})
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("With an empty address", func(t *testing.T) {
		require.Error(t, New("").Connect(context.Background()))
	})
	t.Run("With operations before Connect", func(t *testing.T) {
		backend := New("127.0.0.1:6379")
		_, _, err := backend.Get(context.Background(), "AAMDataStore", "AAMUserId")
		assert.ErrorIs(t, err, gerrors.ErrStoreNotConnected)
	})
	t.Run("With an unreachable server", func(t *testing.T) {
		backend := New("127.0.0.1:1", WithConnectRetries(1, 10*time.Millisecond))
		err := backend.Connect(context.Background())
		var backendErr *gerrors.BackendError
		require.ErrorAs(t, err, &backendErr)
	})
	t.Run("With Disconnect before Connect", func(t *testing.T) {
		backend := New("127.0.0.1:6379")
		require.NoError(t, backend.Disconnect(context.Background()))
		assert.ErrorIs(t, backend.Put(context.Background(), "AAMDataStore", "k", []byte("v")), gerrors.ErrStoreClosed)
	})
}

func startRedis(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := t.Context()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}
