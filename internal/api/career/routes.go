package career

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers career agent routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/profile/analyze", h.AnalyzeProfile)
		r.Post("/roadmaps", h.CreateRoadmap)
		r.Post("/roadmaps/export", h.ExportRoadmap)
		r.Post("/resources", h.RecommendResources)
		r.Post("/troubleshooting/messages", h.Troubleshoot)
	})
}
