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
	"time"

	"github.com/tochemey/audience/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a service.
	Apply(svc *Service)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(svc *Service)

// Apply applies the Service's option
func (f OptionFunc) Apply(svc *Service) {
	f(svc)
}

// WithLogger sets the logger used to report degraded operations
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(svc *Service) {
		if logger != nil {
			svc.logger = logger
		}
	})
}

// WithTimeout bounds every backend call made by the service collections.
// Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return OptionFunc(func(svc *Service) {
		if timeout > 0 {
			svc.timeout = timeout
		}
	})
}
