package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader, "Retry-After"},
		AllowCredentials: len(h.cfg.AllowedOrigins) > 0,
		MaxAge:           300,
	}))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.instrument)
	router.Use(h.withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Get("/ping", h.ping)
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/auth", func(r chi.Router) {
		r.Use(h.rateLimit)

		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)
		r.With(h.auth).Post("/logout", h.logout)
	})

	router.Route("/api/properties", func(r chi.Router) {
		// routes without authorization
		r.Get("/", h.listProperties)
		r.Get("/featured", h.listFeaturedProperties)
		r.Get("/{id}", h.getProperty)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/", h.createProperty)
			r.Put("/{id}", h.updateProperty)
			r.Delete("/{id}", h.deleteProperty)
		})
	})

	router.Route("/api/favorites", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listFavorites)
		r.Post("/{propertyId}", h.addFavorite)
		r.Delete("/{propertyId}", h.removeFavorite)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
