// Package otel reserves the observer slot for an OpenTelemetry integration.
// It currently ships a no-op implementation so callers can wire the plugin
// point without pulling in the otel SDK.
package otel
