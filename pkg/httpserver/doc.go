// Package httpserver provides a thin wrapper around net/http's Server with
// graceful shutdown on context cancellation or OS signals, functional options
// for timeouts, start/stop hooks and a health check handler.
package httpserver
