// Package docs serves the API's OpenAPI document and a Swagger UI for it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const documentPath = "/docs/swagger.yaml"

//go:embed swagger.yaml
var document []byte

// Handler serves the Swagger UI pointed at the embedded document.
func Handler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL(documentPath),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	)
}

func SwaggerYAMLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(document)
	}
}

func RegisterRoutes(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})
	r.Get(documentPath, SwaggerYAMLHandler())
	r.Get("/docs/*", Handler())
}
