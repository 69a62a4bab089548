package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/world", handler.GetWorldInfo)
		r.Get("/biomes/{x}/{y}", handler.GetBiome)
		r.Get("/objects", handler.GetObjects)
		r.Post("/objects/{id}/collect", handler.CollectObject)
		r.Post("/agent", handler.UpdateAgent)
		r.Post("/season", handler.ChangeSeason)
	})

	return r
}
