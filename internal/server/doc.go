// Package server provides the operational HTTP surface of the sync
// service: a dedicated metrics listener for Prometheus scraping plus
// liveness and readiness endpoints for Kubernetes probes.
//
// The metrics server runs on its own port so operational endpoints stay
// separate from anything user-facing.
package server
