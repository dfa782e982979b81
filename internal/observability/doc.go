// Package observability exposes Prometheus metrics for grid builds, routing,
// localization and calibration.
package observability
