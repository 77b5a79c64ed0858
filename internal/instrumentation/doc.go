// Package instrumentation provides OpenTelemetry instrumentation for the
// fathomsync daemon.
//
// # Metrics
//
// Sync engine metrics:
//   - sync_cycles_total: Counter of reconciliation cycles by result
//   - sync_cycle_duration_seconds: Histogram of cycle durations
//   - sync_items_total: Counter of processed items by result (new, skipped, error)
//
// Fathom API metrics:
//   - fathom_api_requests_total: Counter of upstream requests by operation and status
//   - fathom_api_request_duration_seconds: Histogram of upstream request durations
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: fathomsync)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	metrics := provider.Metrics()
//	metrics.RecordCycle(ctx, "success", time.Since(start))
package instrumentation
