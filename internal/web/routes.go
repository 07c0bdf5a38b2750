package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/skintone-advisor/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	analyzeHandler := handlers.NewAnalyzeHandler(s.config, s.analyzer)
	recommendHandler := handlers.NewRecommendHandler(s.config, s.catalog)
	configHandler := handlers.NewConfigHandler(s.config)

	// Analysis and recommendation routes, mounted both at the root where the
	// existing frontend calls them and under the versioned prefix.
	api := func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Post("/upload-image", analyzeHandler.UploadImage)
		r.Post("/recommend", recommendHandler.Recommend)
		r.Post("/full-makeup-recommend", recommendHandler.FullMakeup)
	}

	api(s.router)
	s.router.Route("/api/v1", func(r chi.Router) {
		api(r)
		r.Get("/config", configHandler.Get)
	})

	s.router.NotFound(jsonError(http.StatusNotFound, "not found"))
	s.router.MethodNotAllowed(jsonError(http.StatusMethodNotAllowed, "method not allowed"))
}

func jsonError(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	}
}
