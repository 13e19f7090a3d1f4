package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"finbook/internal/shared/config"
	"finbook/internal/shared/logging"
	"finbook/internal/shared/middleware"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Handler      http.Handler
	Addr         string
	TLSEnabled   bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
	AllowedHosts []string
}

// StartServers creates and starts the main server and optional redirect server.
// Returns the main server, the redirect server (nil if not enabled) and a
// channel that receives the main server's fatal error, if any.
func StartServers(scfg ServerConfig) (*http.Server, *http.Server, <-chan error) {
	log := logging.Component(logging.ComponentHTTP)

	srv := &http.Server{
		Addr:         scfg.Addr,
		Handler:      scfg.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var redirectSrv *http.Server

	// Start HTTP redirect server if TLS redirect is enabled
	if scfg.TLSEnabled && scfg.RedirectHTTP {
		redirectSrv = createRedirectServer(scfg.AllowedHosts)
		go func() {
			log.Info("HTTP redirect server starting", slog.String("addr", redirectSrv.Addr))
			if err := redirectSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("HTTP redirect server error", logging.FieldError, err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if scfg.TLSEnabled {
			log.Info("HTTPS server starting", slog.String("addr", scfg.Addr))
			err = srv.ListenAndServeTLS(scfg.CertPath, scfg.KeyPath)
		} else {
			log.Info("HTTP server starting", slog.String("addr", scfg.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return srv, redirectSrv, errCh
}

// GracefulShutdown drains both servers within timeout.
func GracefulShutdown(srv, redirectSrv *http.Server, timeout time.Duration) {
	log := logging.Component(logging.ComponentHTTP)
	log.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if redirectSrv != nil {
		if err := redirectSrv.Shutdown(ctx); err != nil {
			log.Error("error shutting down HTTP redirect server", logging.FieldError, err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error shutting down main server", logging.FieldError, err)
	}

	log.Info("server stopped")
}

// createRedirectServer creates an HTTP server that redirects all requests to HTTPS.
func createRedirectServer(allowedHosts []string) *http.Server {
	redirectHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}

		if !middleware.IsHostAllowed(host, allowedHosts) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}

		canonicalHost := host
		if h, _, err := net.SplitHostPort(host); err == nil {
			canonicalHost = h
			if strings.Contains(h, ":") {
				canonicalHost = "[" + h + "]"
			}
		}

		httpsURL := "https://" + canonicalHost + r.RequestURI
		http.Redirect(w, r, httpsURL, http.StatusMovedPermanently)
	})

	return &http.Server{
		Addr:         ":80",
		Handler:      redirectHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServerConfigFromConfig creates ServerConfig from application config.
func NewServerConfigFromConfig(handler http.Handler, cfg *config.Config) ServerConfig {
	return ServerConfig{
		Handler:      handler,
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		TLSEnabled:   cfg.TLS.Enabled,
		CertPath:     cfg.TLS.CertPath,
		KeyPath:      cfg.TLS.KeyPath,
		RedirectHTTP: cfg.TLS.RedirectHTTP,
		AllowedHosts: cfg.Server.AllowedHosts,
	}
}
