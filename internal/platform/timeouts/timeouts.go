// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 10 * time.Second

// TelemetryFlush bounds exporter flushing once a service has stopped.
const TelemetryFlush = 5 * time.Second
