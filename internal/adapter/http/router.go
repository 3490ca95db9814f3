// Package http wires the HTTP surface: routing, middleware and handlers.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/evenup/evenup/internal/adapter/http/handler"
	"github.com/evenup/evenup/internal/adapter/http/middleware"
	"github.com/evenup/evenup/internal/infrastructure/auth"
	"github.com/evenup/evenup/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	GroupHandler      *handler.GroupHandler
	ExpenseHandler    *handler.ExpenseHandler
	SettlementHandler *handler.SettlementHandler
	BalanceHandler    *handler.BalanceHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	HealthHandler     *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	// RequireAuth rejects anonymous API requests with 401 instead of letting
	// them through unattributed. Only meaningful when JWTManager is set.
	RequireAuth bool
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			if cfg.RequireAuth {
				r.Use(middleware.Auth(cfg.JWTManager))
			} else {
				r.Use(middleware.OptionalAuth(cfg.JWTManager))
			}
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", cfg.GroupHandler.Create)
			r.Get("/", cfg.GroupHandler.List)
			r.Post("/join", cfg.GroupHandler.Join)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.GroupHandler.Get)

				r.Post("/members", cfg.GroupHandler.AddMember)
				r.Delete("/members/{memberID}", cfg.GroupHandler.RemoveMember)

				r.Post("/expenses", cfg.ExpenseHandler.Create)
				r.Get("/expenses", cfg.ExpenseHandler.List)
				r.Delete("/expenses/{expenseID}", cfg.ExpenseHandler.Delete)

				r.Get("/balances", cfg.BalanceHandler.GetBalances)
				r.Get("/balances/consistency", cfg.BalanceHandler.CheckConsistency)
				r.Get("/debts", cfg.BalanceHandler.GetDebts)

				r.Post("/settlements", cfg.SettlementHandler.Create)
				r.Get("/settlements", cfg.SettlementHandler.List)
				r.Get("/settlements/max", cfg.SettlementHandler.Max)

				r.Get("/analytics", cfg.AnalyticsHandler.Get)
			})
		})
	})

	return r
}
