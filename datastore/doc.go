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

// Package datastore provides the durable key-value capability consumed by the
// audience state cache.
//
// Two layers are exposed:
//
//   - Backend is the plugin contract implemented by the storage engines under
//     this directory (memory, bolt, sqlite, redis, nats, etcd). It is
//     context-aware and reports failures as errors.
//   - NamedCollection is the capability the cache consumes: a string and
//     string-map store scoped to one named collection. Collection implements it
//     on top of a Backend, bounds each call with the service timeout, and
//     degrades every backend failure into a warning and a default value so
//     callers never have to handle storage errors.
//
// Values are encoded as google.protobuf.Value messages, which lets a single
// key hold either a string or a string map and lets readers detect a type
// mismatch instead of misreading bytes.
package datastore
