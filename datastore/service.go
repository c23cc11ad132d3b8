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
	"sync"
	"time"

	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/validation"
	"github.com/tochemey/audience/log"
)

// DefaultTimeout bounds a single backend call when WithTimeout is not set.
const DefaultTimeout = 5 * time.Second

// Service hands out named collections backed by a single Backend.
// The service does not own the backend: callers connect and disconnect it.
type Service struct {
	backend     Backend
	logger      log.Logger
	timeout     time.Duration
	mu          sync.Mutex
	collections map[string]*Collection
}

// NewService creates a Service on top of backend.
func NewService(backend Backend, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, gerrors.ErrBackendRequired
	}

	svc := &Service{
		backend:     backend,
		logger:      log.DefaultLogger,
		timeout:     DefaultTimeout,
		collections: make(map[string]*Collection),
	}

	for _, opt := range opts {
		opt.Apply(svc)
	}
	return svc, nil
}

// NamedCollection returns the collection with the given name.
// The same handle is returned for repeated calls with the same name.
func (s *Service) NamedCollection(name string) (*Collection, error) {
	if err := validation.NewNameValidator(name, gerrors.ErrInvalidCollectionName).Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if collection, ok := s.collections[name]; ok {
		return collection, nil
	}

	collection := newCollection(name, s.backend, s.timeout, s.logger)
	s.collections[name] = collection
	return collection, nil
}

// Backend returns the backend the service writes to.
func (s *Service) Backend() Backend {
	return s.backend
}
