package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires middleware and every route onto a chi router.
func NewRouter(h *Handler, logger *slog.Logger, origins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes mounts the API routes on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health", h.health)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reseed", h.reseed)
		r.Post("/generate", h.generateAll)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.listCourses)
		r.Post("/", h.createCourse)

		r.Route("/{course}", func(r chi.Router) {
			r.Post("/generate", h.generate)
			r.Get("/items", h.listItems)
			r.Post("/submissions", h.submit)
			r.Get("/roster", h.roster)
		})
	})

	r.Get("/students/{student}/history", h.history)
}
