package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Fallback is returned when no forwarding header carries a usable address.
// Direct connections without a proxy in front end up here, which keeps quota
// accounting deterministic in local development.
const Fallback = "127.0.0.1"

// GetIP resolves the originating client address from proxy headers.
// Resolution order:
//  1. X-Forwarded-For — comma-separated list, the first valid entry wins
//  2. X-Real-IP — set by reverse proxies such as Nginx
//  3. Fallback — fixed loopback address
//
// The headers are trusted as-is; there is no allowlist of known proxies, so a
// client talking to the service directly can spoof its address. Quota keyed on
// this value is best-effort, not a security boundary.
func GetIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if parsed := parseIP(first); parsed != "" {
			return parsed
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}

	return Fallback
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
