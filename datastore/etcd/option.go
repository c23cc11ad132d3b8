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
	"crypto/tls"
	"time"
)

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

// WithPrefix sets the namespace every key is written under. Defaults to "/audience/".
func WithPrefix(prefix string) Option {
	return OptionFunc(func(backend *Backend) {
		if prefix != "" {
			backend.prefix = prefix
		}
	})
}

// WithDialTimeout sets the timeout for establishing the client connection.
func WithDialTimeout(timeout time.Duration) Option {
	return OptionFunc(func(backend *Backend) {
		if timeout > 0 {
			backend.dialTimeout = timeout
		}
	})
}

// WithCredentials sets the username and password used to authenticate.
func WithCredentials(username, password string) Option {
	return OptionFunc(func(backend *Backend) {
		backend.username = username
		backend.password = password
	})
}

// WithTLS sets the client TLS configuration.
func WithTLS(config *tls.Config) Option {
	return OptionFunc(func(backend *Backend) {
		backend.tls = config
	})
}
