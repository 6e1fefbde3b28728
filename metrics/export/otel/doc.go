// Package otel bridges the engine's metrics registry into an
// OpenTelemetry meter via observable instruments.
package otel
