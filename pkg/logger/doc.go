// Package logger provides a factory for configured slog.Logger instances
// with environment presets, static attributes and context-driven attribute
// injection (request IDs, client IPs and similar request-scoped values).
package logger
