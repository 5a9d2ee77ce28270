package router

import (
	"net"
	"net/http"
	"strings"
)

// middlewareIP rewrites RemoteAddr to the client address reported by the
// proxy in front of the server, so downstream logging sees the real caller.
func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	var candidate string
	switch {
	case r.Header.Get("True-Client-IP") != "":
		candidate = r.Header.Get("True-Client-IP")
	case r.Header.Get("X-Real-IP") != "":
		candidate = r.Header.Get("X-Real-IP")
	case r.Header.Get("X-Forwarded-For") != "":
		// First hop in the chain is the originating client.
		candidate, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}

	candidate = strings.TrimSpace(candidate)
	if net.ParseIP(candidate) != nil {
		return candidate
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}
