package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes caps API request bodies.
const DefaultMaxBodyBytes = 1 << 20

// RouterOptions configures NewRouter.
type RouterOptions struct {
	APIKey       string           // guards write endpoints; empty disables auth
	RateLimit    int              // requests per minute per client IP; 0 disables
	MaxBodyBytes int64            // 0 means DefaultMaxBodyBytes
	Health       http.HandlerFunc // mounted at /healthz when set
	Webhook      http.Handler     // mounted at /v1/webhooks/catalog when set
}

// NewRouter builds the service's HTTP routes.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS)
	r.Use(Metrics)

	if opts.Health != nil {
		r.Get("/healthz", opts.Health)
	}
	r.Handle("/metrics", promhttp.Handler())
	if opts.Webhook != nil {
		r.Method(http.MethodPost, "/v1/webhooks/catalog", opts.Webhook)
	}

	auth := APIKeyAuth(opts.APIKey)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BodyLimit(maxBody))
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
		}

		r.Post("/combinations", h.handleRankSelection)
		r.With(auth).Get("/imports/{importID}", h.handleGetImport)

		r.Route("/catalogs/{catalogID}", func(r chi.Router) {
			r.Get("/", h.handleGetCatalog)
			r.Post("/combinations", h.handleRankCatalog)
			r.Post("/matches", h.handleMatch)
			r.Post("/recipes", h.handleRecipes)
			r.Get("/saved", h.handleListSaved)
			r.Get("/reports/{reportID}", h.handleGetReport)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/saved", h.handleSave)
				r.Post("/import", h.handleImport)
			})
		})
	})

	return r
}
