package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/muzammilspiralsols/widget-booking/internal/http/handlers"
	httpmiddleware "github.com/muzammilspiralsols/widget-booking/internal/http/middleware"
	"github.com/muzammilspiralsols/widget-booking/internal/inventory"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	Widget       *handlers.WidgetHandler
	Hotels       *handlers.HotelsHandler
	Availability *inventory.Handler
	Tokens       *session.TokenIssuer

	MetricsHandler http.Handler
	Gatherer       prometheus.Gatherer

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Embed-facing endpoints are rate limited per client
	r.Group(func(embed chi.Router) {
		embed.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		if cfg.Availability != nil {
			embed.Get("/api/disponibilidad", cfg.Availability.GetAvailability)
		}
		embed.Route("/widget", func(w chi.Router) {
			if cfg.Hotels != nil {
				w.Get("/hotels", cfg.Hotels.List)
			}
			w.Get("/stats", handlers.Stats(cfg.Gatherer))
			if cfg.Widget != nil {
				w.Mount("/sessions", cfg.Widget.Routes(httpmiddleware.WidgetSession(cfg.Tokens, "id")))
			}
		})
	})

	return r
}
