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

import "time"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a backend.
	Apply(backend *Backend)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(backend *Backend)

// Apply applies the Backend's option
func (f OptionFunc) Apply(backend *Backend) {
	f(backend)
}

// WithKeyPrefix sets the prefix of every hash key. Defaults to "audience".
func WithKeyPrefix(prefix string) Option {
	return OptionFunc(func(backend *Backend) {
		if prefix != "" {
			backend.prefix = prefix
		}
	})
}

// WithPassword sets the password used to authenticate against the server.
func WithPassword(password string) Option {
	return OptionFunc(func(backend *Backend) {
		backend.password = password
	})
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return OptionFunc(func(backend *Backend) {
		backend.db = db
	})
}

// WithConnectRetries sets how many times Connect pings the server
// and the maximum delay between attempts.
func WithConnectRetries(maxRetries int, maxDelay time.Duration) Option {
	return OptionFunc(func(backend *Backend) {
		if maxRetries > 0 {
			backend.maxRetries = maxRetries
		}
		if maxDelay > 0 {
			backend.maxDelay = maxDelay
		}
	})
}
