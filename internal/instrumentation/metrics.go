package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrResult    = "result"
)

// Metrics provides methods for recording observability metrics.
// All recording methods are safe to call on a zero-value or nil-initialized
// Metrics; they become no-ops when instrumentation is disabled.
type Metrics struct {
	// Sync engine metrics
	cyclesTotal   metric.Int64Counter
	cycleDuration metric.Float64Histogram
	itemsTotal    metric.Int64Counter

	// Fathom API metrics
	apiRequestsTotal   metric.Int64Counter
	apiRequestDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.cyclesTotal, err = meter.Int64Counter(
		"sync_cycles_total",
		metric.WithDescription("Total number of sync reconciliation cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_cycles_total counter: %w", err)
	}

	m.cycleDuration, err = meter.Float64Histogram(
		"sync_cycle_duration_seconds",
		metric.WithDescription("Sync cycle duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 1, 5, 15, 60, 300, 900, 1800),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_cycle_duration_seconds histogram: %w", err)
	}

	m.itemsTotal, err = meter.Int64Counter(
		"sync_items_total",
		metric.WithDescription("Total number of items handled by the sync engine"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_items_total counter: %w", err)
	}

	m.apiRequestsTotal, err = meter.Int64Counter(
		"fathom_api_requests_total",
		metric.WithDescription("Total number of Fathom API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fathom_api_requests_total counter: %w", err)
	}

	m.apiRequestDuration, err = meter.Float64Histogram(
		"fathom_api_request_duration_seconds",
		metric.WithDescription("Fathom API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fathom_api_request_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordCycle records one completed sync cycle with its status and duration.
// Status should be one of: "success", "error".
func (m *Metrics) RecordCycle(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.cyclesTotal == nil || m.cycleDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.cyclesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordItem records the outcome of one item within a cycle.
// Result should be one of: "new", "skipped", "error".
func (m *Metrics) RecordItem(ctx context.Context, result string) {
	if m == nil || m.itemsTotal == nil {
		return // Instrumentation not initialized
	}

	m.itemsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordAPIRequest records one Fathom API request attempt.
//
// Parameters:
//   - operation: API operation (list_meetings, get_transcript)
//   - status: "success", "transport_error", "rate_limited", or an HTTP status code
//   - duration: Time taken for the request
func (m *Metrics) RecordAPIRequest(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.apiRequestsTotal == nil || m.apiRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.apiRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.apiRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
