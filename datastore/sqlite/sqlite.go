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

// Package sqlite provides a datastore.Backend persisted in a SQLite database
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/tochemey/audience/datastore"
	gerrors "github.com/tochemey/audience/errors"
)

const backendName = "sqlite"

const schema = `CREATE TABLE IF NOT EXISTS datastore_entries (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (collection, key)
)`

// Backend implements datastore.Backend on a single SQLite table keyed by
// (collection, key).
type Backend struct {
	path string

	mu     sync.RWMutex
	sqlDB  *sql.DB
	closed bool
}

var _ datastore.Backend = (*Backend)(nil)

// New creates a Backend for the database file at path. The file is created on Connect.
func New(path string) *Backend {
	return &Backend{path: strings.TrimSpace(path)}
}

// Connect opens the database and applies the schema.
func (b *Backend) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.path == "" {
		return gerrors.NewBackendError(backendName, "connect", errors.New("storage path is required"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sqlDB != nil {
		return nil
	}

	dsn := "file:" + filepath.Clean(b.path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return gerrors.NewBackendError(backendName, "connect", err)
	}
	// a single connection serializes writers and avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return gerrors.NewBackendError(backendName, "connect", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return gerrors.NewBackendError(backendName, "migrate", err)
	}

	b.sqlDB = sqlDB
	b.closed = false
	return nil
}

// Disconnect closes the database handle.
func (b *Backend) Disconnect(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.sqlDB == nil {
		return nil
	}
	err := b.sqlDB.Close()
	b.sqlDB = nil
	if err != nil {
		return gerrors.NewBackendError(backendName, "disconnect", err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	sqlDB, err := b.handle(ctx)
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = sqlDB.QueryRowContext(ctx,
		`SELECT value FROM datastore_entries WHERE collection = ? AND key = ?`,
		collection, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, gerrors.NewBackendError(backendName, "get", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Put inserts or replaces the value stored under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	sqlDB, err := b.handle(ctx)
	if err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	_, err = sqlDB.ExecContext(ctx,
		`INSERT INTO datastore_entries (collection, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		collection, key, value, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return gerrors.NewBackendError(backendName, "put", err)
	}
	return nil
}

// Delete removes key. It is a no-op when the key does not exist.
func (b *Backend) Delete(ctx context.Context, collection, key string) error {
	sqlDB, err := b.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := sqlDB.ExecContext(ctx,
		`DELETE FROM datastore_entries WHERE collection = ? AND key = ?`,
		collection, key,
	); err != nil {
		return gerrors.NewBackendError(backendName, "delete", err)
	}
	return nil
}

// DeleteAll removes every row of the collection.
func (b *Backend) DeleteAll(ctx context.Context, collection string) error {
	sqlDB, err := b.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := sqlDB.ExecContext(ctx,
		`DELETE FROM datastore_entries WHERE collection = ?`,
		collection,
	); err != nil {
		return gerrors.NewBackendError(backendName, "delete all", err)
	}
	return nil
}

// Exists reports whether key is present.
func (b *Backend) Exists(ctx context.Context, collection, key string) (bool, error) {
	sqlDB, err := b.handle(ctx)
	if err != nil {
		return false, err
	}

	var exists int
	err = sqlDB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM datastore_entries WHERE collection = ? AND key = ?)`,
		collection, key,
	).Scan(&exists)
	if err != nil {
		return false, gerrors.NewBackendError(backendName, "exists", err)
	}
	return exists == 1, nil
}

func (b *Backend) handle(ctx context.Context) (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, gerrors.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.sqlDB == nil {
		return nil, gerrors.ErrStoreNotConnected
	}
	return b.sqlDB, nil
}
