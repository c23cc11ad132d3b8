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

package audience

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/audience/datastore"
	"github.com/tochemey/audience/datastore/memory"
	"github.com/tochemey/audience/log"
)

// countingCollection wraps a NamedCollection and counts reads.
type countingCollection struct {
	datastore.NamedCollection
	getStrings int
	getMaps    int
	contains   int
}

func (c *countingCollection) GetString(key, defaultValue string) string {
	c.getStrings++
	return c.NamedCollection.GetString(key, defaultValue)
}

func (c *countingCollection) GetMap(key string) map[string]string {
	c.getMaps++
	return c.NamedCollection.GetMap(key)
}

func (c *countingCollection) Contains(key string) bool {
	c.contains++
	return c.NamedCollection.Contains(key)
}

// failingBackend fails every call with err.
type failingBackend struct {
	err error
}

var _ datastore.Backend = failingBackend{}

func (f failingBackend) Connect(context.Context) error    { return f.err }
func (f failingBackend) Disconnect(context.Context) error { return f.err }
func (f failingBackend) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, f.err
}
func (f failingBackend) Put(context.Context, string, string, []byte) error { return f.err }
func (f failingBackend) Delete(context.Context, string, string) error      { return f.err }
func (f failingBackend) DeleteAll(context.Context, string) error           { return f.err }
func (f failingBackend) Exists(context.Context, string, string) (bool, error) {
	return false, f.err
}

func newFailingStore(t *testing.T, logger log.Logger) datastore.NamedCollection {
	t.Helper()
	svc, err := datastore.NewService(failingBackend{err: errors.New("connection refused")}, datastore.WithLogger(logger))
	require.NoError(t, err)
	collection, err := svc.NamedCollection(DataStoreName)
	require.NoError(t, err)
	return collection
}

func newService(t *testing.T) *datastore.Service {
	t.Helper()
	backend := memory.New()
	require.NoError(t, backend.Connect(context.Background()))
	t.Cleanup(func() { _ = backend.Disconnect(context.Background()) })

	svc, err := datastore.NewService(backend, datastore.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	return svc
}

func newStore(t *testing.T) *countingCollection {
	t.Helper()
	collection, err := newService(t).NamedCollection(DataStoreName)
	require.NoError(t, err)
	return &countingCollection{NamedCollection: collection}
}
