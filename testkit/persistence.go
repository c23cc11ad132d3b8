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

// Package testkit provides helpers to seed, inspect and reset persisted
// audience state from tests.
package testkit

import (
	"slices"
	"testing"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/audience/audience"
	"github.com/tochemey/audience/datastore"
)

// PersistenceHelper reads and writes named collections of a datastore.Service
// directly, bypassing the audience state cache.
type PersistenceHelper struct {
	service *datastore.Service
	kt      *testing.T
	known   goset.Set[string]
}

// NewPersistenceHelper creates an instance of PersistenceHelper.
// The audience and configuration collections are known by default.
func NewPersistenceHelper(t *testing.T, service *datastore.Service, opts ...Option) *PersistenceHelper {
	helper := &PersistenceHelper{
		service: service,
		kt:      t,
		known:   goset.NewSet(audience.DataStoreName, audience.ConfigurationDataStoreName),
	}
	for _, opt := range opts {
		opt.Apply(helper)
	}
	return helper
}

// UpdatePersistence stores value under key, including an empty value.
func (h *PersistenceHelper) UpdatePersistence(collection, key, value string) {
	h.collection(collection).SetString(key, value)
}

// RemovePersistence removes key from the collection.
func (h *PersistenceHelper) RemovePersistence(collection, key string) {
	h.collection(collection).Remove(key)
}

// UpdatePersistenceMap stores value under key. A nil map removes the key.
func (h *PersistenceHelper) UpdatePersistenceMap(collection, key string, value map[string]string) {
	h.collection(collection).SetMap(key, value)
}

// ReadPersistedData returns the string stored under key and whether the key exists.
func (h *PersistenceHelper) ReadPersistedData(collection, key string) (string, bool) {
	store := h.collection(collection)
	if !store.Contains(key) {
		return "", false
	}
	return store.GetString(key, ""), true
}

// ReadPersistedMap returns the map stored under key, or nil.
func (h *PersistenceHelper) ReadPersistedMap(collection, key string) map[string]string {
	return h.collection(collection).GetMap(key)
}

// ResetKnownPersistence removes every key of every known collection.
func (h *PersistenceHelper) ResetKnownPersistence() {
	names := h.known.ToSlice()
	slices.Sort(names)
	for _, name := range names {
		h.collection(name).RemoveAll()
	}
}

func (h *PersistenceHelper) collection(name string) datastore.NamedCollection {
	h.kt.Helper()
	collection, err := h.service.NamedCollection(name)
	if err != nil {
		h.kt.Fatal(err.Error())
	}
	return collection
}
