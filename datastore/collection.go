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

import (
	"context"
	"time"

	"github.com/tochemey/audience/log"
)

// NamedCollection is a durable string and string-map store scoped to one
// named collection. Its methods never fail: storage errors are logged and
// reads fall back to their default value.
type NamedCollection interface {
	// Name returns the collection name.
	Name() string
	// GetString returns the string stored under key, or defaultValue when the
	// key is absent, holds a map, or cannot be read.
	GetString(key, defaultValue string) string
	// SetString stores value under key.
	SetString(key, value string)
	// GetMap returns the map stored under key, or nil when the key is absent,
	// holds a string, or cannot be read.
	GetMap(key string) map[string]string
	// SetMap stores value under key. A nil map removes the key.
	SetMap(key string, value map[string]string)
	// Contains reports whether key is present.
	Contains(key string) bool
	// Remove deletes key.
	Remove(key string)
	// RemoveAll deletes every key of the collection.
	RemoveAll()
}

// Collection implements NamedCollection on top of a Backend.
type Collection struct {
	name    string
	backend Backend
	timeout time.Duration
	logger  log.Logger
}

// enforce compilation error
var _ NamedCollection = (*Collection)(nil)

func newCollection(name string, backend Backend, timeout time.Duration, logger log.Logger) *Collection {
	return &Collection{
		name:    name,
		backend: backend,
		timeout: timeout,
		logger:  logger.With("collection", name),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// GetString returns the string stored under key or defaultValue.
func (c *Collection) GetString(key, defaultValue string) string {
	data, ok := c.read(key)
	if !ok {
		return defaultValue
	}

	value, err := decodeString(data)
	if err != nil {
		c.logger.Warnf("unable to decode string value for key=(%s): %v", key, err)
		return defaultValue
	}
	return value
}

// SetString stores value under key.
func (c *Collection) SetString(key, value string) {
	data, err := encodeString(value)
	if err != nil {
		c.logger.Warnf("unable to encode string value for key=(%s): %v", key, err)
		return
	}
	c.write(key, data)
}

// GetMap returns the map stored under key or nil.
func (c *Collection) GetMap(key string) map[string]string {
	data, ok := c.read(key)
	if !ok {
		return nil
	}

	value, err := decodeMap(data)
	if err != nil {
		c.logger.Warnf("unable to decode map value for key=(%s): %v", key, err)
		return nil
	}
	return value
}

// SetMap stores value under key. A nil map removes the key.
func (c *Collection) SetMap(key string, value map[string]string) {
	if value == nil {
		c.Remove(key)
		return
	}

	data, err := encodeMap(value)
	if err != nil {
		c.logger.Warnf("unable to encode map value for key=(%s): %v", key, err)
		return
	}
	c.write(key, data)
}

// Contains reports whether key is present.
func (c *Collection) Contains(key string) bool {
	ctx, cancel := c.context()
	defer cancel()

	exists, err := c.backend.Exists(ctx, c.name, key)
	if err != nil {
		c.logger.Warnf("unable to check key=(%s): %v", key, err)
		return false
	}
	return exists
}

// Remove deletes key.
func (c *Collection) Remove(key string) {
	ctx, cancel := c.context()
	defer cancel()

	if err := c.backend.Delete(ctx, c.name, key); err != nil {
		c.logger.Warnf("unable to remove key=(%s): %v", key, err)
	}
}

// RemoveAll deletes every key of the collection.
func (c *Collection) RemoveAll() {
	ctx, cancel := c.context()
	defer cancel()

	if err := c.backend.DeleteAll(ctx, c.name); err != nil {
		c.logger.Warnf("unable to clear collection: %v", err)
	}
}

func (c *Collection) read(key string) ([]byte, bool) {
	ctx, cancel := c.context()
	defer cancel()

	data, ok, err := c.backend.Get(ctx, c.name, key)
	if err != nil {
		c.logger.Warnf("unable to read key=(%s): %v", key, err)
		return nil, false
	}
	return data, ok
}

func (c *Collection) write(key string, data []byte) {
	ctx, cancel := c.context()
	defer cancel()

	if err := c.backend.Put(ctx, c.name, key, data); err != nil {
		c.logger.Warnf("unable to write key=(%s): %v", key, err)
	}
}

func (c *Collection) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}
