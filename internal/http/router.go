// Package httpapi assembles the full HTTP surface: storefront routes,
// customer auth, checkout, and the admin panel API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminhandler "velora/internal/admin/handler"
	cataloghandler "velora/internal/catalog/handler"
	customerhandler "velora/internal/customer/handler"
	orderhandler "velora/internal/order/handler"
	"velora/internal/platform/metrics"
	"velora/internal/platform/middleware"
	"velora/pkg/platform/httputil"
)

// Config carries everything the router needs. CustomerVerifier and
// AdminVerifier are separate because the admin gate walks a longer
// secret list.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string

	CustomerVerifier middleware.TokenVerifier
	AdminVerifier    middleware.TokenVerifier

	Catalog   *cataloghandler.Handler
	Customers *customerhandler.Handler
	Orders    *orderhandler.Handler
	Admins    *adminhandler.Handler

	// Health is called by /healthz; nil means always healthy.
	Health func(r *http.Request) error
}

// NewRouter wires middleware and routes. CORS is applied once here, at
// the outermost layer, so every endpoint shares one policy.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(req); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	cfg.Catalog.RegisterPublic(r)
	cfg.Customers.RegisterPublic(r)
	cfg.Admins.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.CustomerVerifier, true, cfg.Logger))
		cfg.Customers.RegisterAuthenticated(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.CustomerVerifier, false, cfg.Logger))
		cfg.Orders.RegisterCustomer(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(cfg.AdminVerifier, cfg.Logger))
		cfg.Catalog.RegisterAdmin(r)
		cfg.Orders.RegisterAdmin(r)
	})

	return r
}
