package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS tells browsers to use HTTPS for a year, subdomains included.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// SecureCookies forces Secure, HttpOnly and SameSite on every Set-Cookie
// header written by next.
func SecureCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&secureCookieWriter{ResponseWriter: w}, r)
	})
}

type secureCookieWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *secureCookieWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *secureCookieWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	header := w.ResponseWriter.Header()
	if cookies := header.Values("Set-Cookie"); len(cookies) > 0 {
		header.Del("Set-Cookie")
		for _, c := range cookies {
			header.Add("Set-Cookie", ensureSecureCookie(c))
		}
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func ensureSecureCookie(cookie string) string {
	parts := strings.Split(cookie, ";")

	var secure, httpOnly, sameSite bool
	for i, p := range parts {
		p = strings.TrimSpace(p)
		lower := strings.ToLower(p)
		switch {
		case lower == "secure":
			secure = true
		case lower == "httponly":
			httpOnly = true
		case strings.HasPrefix(lower, "samesite"):
			sameSite = true
		}
		parts[i] = p
	}

	if !secure {
		parts = append(parts, "Secure")
	}
	if !httpOnly {
		parts = append(parts, "HttpOnly")
	}
	if !sameSite {
		parts = append(parts, "SameSite=Strict")
	}
	return strings.Join(parts, "; ")
}

// IsHostAllowed reports whether host (optionally with port) is in allowedHosts.
// An empty list allows everything. Used by the HTTPS redirect server so a
// forged Host header cannot redirect clients elsewhere.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		allowedHostname := allowed
		if h, _, err := net.SplitHostPort(allowed); err == nil {
			allowedHostname = h
		}

		if host == allowed || hostname == allowedHostname {
			return true
		}
	}
	return false
}
