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

package nats

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/datastoretest"
)

func TestBackend(t *testing.T) {
	srv := startNatsServer(t)
	datastoretest.Run(t, func(t *testing.T) datastore.Backend {
		backend := New(srv.ClientURL(), WithBucketPrefix("test"))
		require.NoError(t, backend.Connect(t.Context()))
		return backend
	})
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("With an empty url", func(t *testing.T) {
		require.Error(t, New(" ").Connect(context.Background()))
	})
	t.Run("With operations before Connect", func(t *testing.T) {
		backend := New("nats://127.0.0.1:4222")
		_, err := backend.Exists(context.Background(), "AAMDataStore", "AAMUserId")
		assert.ErrorIs(t, err, gerrors.ErrStoreNotConnected)
	})
	t.Run("With an unreachable server", func(t *testing.T) {
		backend := New("nats://127.0.0.1:1", WithMaxRetries(1), WithReconnectWait(10*time.Millisecond))
		err := backend.Connect(context.Background())
		var backendErr *gerrors.BackendError
		require.ErrorAs(t, err, &backendErr)
	})
	t.Run("With values shared across connections", func(t *testing.T) {
		ctx := context.Background()
		srv := startNatsServer(t)

		writer := New(srv.ClientURL())
		require.NoError(t, writer.Connect(ctx))
		require.NoError(t, writer.Put(ctx, "AAMDataStore", "AAMUserId", []byte("uuid-123")))
		require.NoError(t, writer.Disconnect(ctx))

		reader := New(srv.ClientURL())
		require.NoError(t, reader.Connect(ctx))
		t.Cleanup(func() { _ = reader.Disconnect(ctx) })

		value, ok, err := reader.Get(ctx, "AAMDataStore", "AAMUserId")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("uuid-123"), value)
	})
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, "QUFNVXNlcklk", encodeKey("AAMUserId"))
	assert.NotContains(t, encodeKey("a key with spaces/and.dots"), " ")
}

func startNatsServer(t *testing.T) *natsserver.Server {
	t.Helper()
	serv, err := natsserver.NewServer(&natsserver.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	})
	require.NoError(t, err)

	ready := make(chan bool)
	go func() {
		ready <- true
		serv.Start()
	}()
	<-ready

	if !serv.ReadyForConnections(2 * time.Second) {
		t.Fatalf("nats-io server failed to start")
	}

	t.Cleanup(func() {
		serv.Shutdown()
		serv.WaitForShutdown()
	})
	return serv
}
