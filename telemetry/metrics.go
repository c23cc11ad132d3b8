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

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	storeReadsCounterName           = "audience_store_reads"
	storeWritesCounterName          = "audience_store_writes"
	storeRemovalsCounterName        = "audience_store_removals"
	storeUnavailableCounterName     = "audience_store_unavailable"
	privacyBlockedWritesCounterName = "audience_privacy_blocked_writes"

	keyAttribute       = "key"
	operationAttribute = "operation"
)

// Metrics define the counters recorded by the audience state cache.
// A nil *Metrics records nothing.
type Metrics struct {
	// captures the number of values read back from the durable store
	storeReads metric.Int64Counter
	// captures the number of values written to the durable store
	storeWrites metric.Int64Counter
	// captures the number of keys removed from the durable store
	storeRemovals metric.Int64Counter
	// captures the number of operations that ran without a durable store
	storeUnavailable metric.Int64Counter
	// captures the number of writes ignored because the visitor opted out
	privacyBlockedWrites metric.Int64Counter
}

// NewMetrics creates an instance of Metrics
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	metrics := new(Metrics)
	var err error

	if metrics.storeReads, err = meter.Int64Counter(
		storeReadsCounterName,
		metric.WithDescription("The total number of values rehydrated from the durable store"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store reads instrument, %v", err)
	}

	if metrics.storeWrites, err = meter.Int64Counter(
		storeWritesCounterName,
		metric.WithDescription("The total number of values written through to the durable store"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store writes instrument, %v", err)
	}

	if metrics.storeRemovals, err = meter.Int64Counter(
		storeRemovalsCounterName,
		metric.WithDescription("The total number of keys removed from the durable store"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store removals instrument, %v", err)
	}

	if metrics.storeUnavailable, err = meter.Int64Counter(
		storeUnavailableCounterName,
		metric.WithDescription("The total number of operations served from memory because no durable store is bound"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store unavailable instrument, %v", err)
	}

	if metrics.privacyBlockedWrites, err = meter.Int64Counter(
		privacyBlockedWritesCounterName,
		metric.WithDescription("The total number of writes ignored while the visitor is opted out"),
	); err != nil {
		return nil, fmt.Errorf("failed to create privacy blocked writes instrument, %v", err)
	}

	return metrics, nil
}

// RecordStoreRead records a value read back from the store under key
func (m *Metrics) RecordStoreRead(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.storeReads.Add(ctx, 1, metric.WithAttributes(attribute.String(keyAttribute, key)))
}

// RecordStoreWrite records a value written to the store under key
func (m *Metrics) RecordStoreWrite(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.storeWrites.Add(ctx, 1, metric.WithAttributes(attribute.String(keyAttribute, key)))
}

// RecordStoreRemoval records the removal of key from the store
func (m *Metrics) RecordStoreRemoval(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.storeRemovals.Add(ctx, 1, metric.WithAttributes(attribute.String(keyAttribute, key)))
}

// RecordStoreUnavailable records an operation that found no store bound
func (m *Metrics) RecordStoreUnavailable(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.storeUnavailable.Add(ctx, 1, metric.WithAttributes(attribute.String(operationAttribute, operation)))
}

// RecordPrivacyBlockedWrite records a write to key ignored because of the privacy status
func (m *Metrics) RecordPrivacyBlockedWrite(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.privacyBlockedWrites.Add(ctx, 1, metric.WithAttributes(attribute.String(keyAttribute, key)))
}
