package ratelimit

import (
	"net/http"
	"strings"
)

// AnonymousIdentifier is used when no client IP header is present. Unknown
// clients share one coarse bucket rather than bypassing the limiter.
const AnonymousIdentifier = "anonymous"

// ClientIdentifier derives the rate-limit identifier from proxy headers, in
// priority order: X-Forwarded-For (first entry), X-Real-Ip, Cf-Connecting-Ip.
func ClientIdentifier(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("Cf-Connecting-Ip"); ip != "" {
		return ip
	}
	return AnonymousIdentifier
}
