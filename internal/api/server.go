package api

import (
	"net/http"
	"time"

	careerapi "github.com/futig/career-agent/internal/api/career"
	"github.com/futig/career-agent/internal/api/docs"
	"github.com/futig/career-agent/internal/api/middleware"
	"github.com/futig/career-agent/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(careerHandler *careerapi.Handler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)
	careerapi.RegisterRoutes(r, careerHandler)

	return r
}
