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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreClosed is returned when a datastore backend is used after it has been disconnected.
	ErrStoreClosed = errors.New("datastore is closed")

	// ErrStoreNotConnected is returned when a remote datastore backend is used before Connect.
	ErrStoreNotConnected = errors.New("datastore is not connected")

	// ErrBackendRequired is returned when a datastore service is created without a backend.
	ErrBackendRequired = errors.New("datastore backend is required")

	// ErrInvalidCollectionName is returned when a named collection does not match the allowed pattern.
	// A valid name must consist of only alphanumeric characters ([a-zA-Z0-9]), with optional
	// hyphens or underscores that are not leading, and be at most 255 characters long.
	ErrInvalidCollectionName = errors.New("invalid collection name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrTypeMismatch is returned when a persisted value is read with the wrong type,
	// e.g. reading a map stored under a key as a string.
	ErrTypeMismatch = errors.New("persisted value type mismatch")

	// ErrUnsupportedBackend is returned when the configuration names an unknown datastore backend.
	ErrUnsupportedBackend = errors.New("unsupported datastore backend")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidLogLevel is returned when the configured log level is not one of debug, info, warn or error.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// BackendError wraps a failure reported by a datastore backend
// together with the backend name and the failing operation.
type BackendError struct {
	err error
}

// enforce compilation error
var _ error = (*BackendError)(nil)

// NewBackendError returns an instance of BackendError
func NewBackendError(backend, op string, err error) *BackendError {
	return &BackendError{
		err: fmt.Errorf("%s: %s: %w", backend, op, err),
	}
}

// Error implements the standard error interface
func (e *BackendError) Error() string {
	return e.err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.err
}
