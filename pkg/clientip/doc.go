// Package clientip resolves the originating client's IP address from an
// *http.Request when the service runs behind a reverse proxy.
//
// The resolution algorithm examines headers in descending priority until the
// first valid IP address is found:
//
//  1. X-Forwarded-For – comma-separated list (the first entry is used)
//  2. X-Real-IP       – set by reverse proxies such as Nginx
//  3. Fallback        – a fixed loopback address
//
// The resolved value feeds generation-quota accounting, so the same request
// always maps to the same key. Note that without a trusted-proxy allowlist
// these headers can be spoofed by a directly connected client.
//
// Helper functions are provided for common scenarios:
//
//   - GetIP extracts the client IP from an *http.Request.
//   - SetIPToContext and GetIPFromContext store/retrieve the resolved
//     address inside a context.Context.
//   - Middleware is a net/http compatible middleware that adds the IP to
//     the request's context so downstream handlers can fetch it without
//     duplicating the resolution logic.
package clientip
