package middleware

import (
	"net/http"
	"strings"

	"atlantic-drive-backend/internal/domain"
)

// ClientIdentifier derives the rate limit key of a request: the first
// X-Forwarded-For entry, else X-Real-IP, else "unknown". The headers are
// trusted as set by the hosting edge.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return domain.UnknownClient
}
