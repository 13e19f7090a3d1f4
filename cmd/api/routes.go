package main

import (
	"net/http"

	httphandlers "finbook/internal/interfaces/http"
	"finbook/internal/shared/config"
	"finbook/internal/shared/logging"
	"finbook/internal/shared/middleware"
)

const apiPrefix = "/api/v1"

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc(apiPrefix+"/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc(apiPrefix+"/login", deps.AuthHandler.HandleLogin)

	// Protected routes
	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(deps.JWT)(h)
	}

	mux.Handle(apiPrefix+"/logout", protect(deps.AuthHandler.HandleLogout))
	mux.Handle(apiPrefix+"/me", protect(deps.UserHandler.HandleMe))

	mux.Handle(apiPrefix+"/categories", protect(deps.CategoryHandler.HandleCategories))
	mux.Handle(apiPrefix+"/categories/{id}", protect(deps.CategoryHandler.HandleCategoryByID))

	mux.Handle(apiPrefix+"/budgets", protect(deps.BudgetHandler.HandleBudgets))
	mux.Handle(apiPrefix+"/budgets/reports", protect(deps.BudgetHandler.HandleBudgetReport))
	mux.Handle(apiPrefix+"/budgets/{id}", protect(deps.BudgetHandler.HandleBudgetByID))

	mux.Handle(apiPrefix+"/transactions", protect(deps.TransactionHandler.HandleTransactions))
	mux.Handle(apiPrefix+"/transactions/{id}", protect(deps.TransactionHandler.HandleTransactionByID))

	// Apply global middleware
	var handler http.Handler = middleware.CORS(cfg.Server.AllowedHosts)(mux)
	if cfg.Telemetry.Enabled {
		// Tracing must sit directly above the mux path so it sees req.Pattern.
		handler = middleware.Tracing(handler)
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}
	handler = middleware.Logging(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		logging.Component(logging.ComponentHTTP).Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
