package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// CORS applies cross-origin headers. With no allowed hosts every origin is
// accepted with a wildcard; otherwise only listed hosts are echoed back and
// other origins get 403.
func CORS(allowedHosts []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			h := w.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Max-Age", "3600")

			switch {
			case len(allowedHosts) == 0:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin == "":
				// Same-origin or non-browser client.
			case isOriginAllowed(origin, allowedHosts):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			default:
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedHosts []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if host == allowed {
			return true
		}
		if _, _, err := net.SplitHostPort(allowed); err != nil && hostname == allowed {
			return true
		}
	}
	return false
}
