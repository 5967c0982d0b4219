package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"metaed/internal/handlers"
	"metaed/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	MetadataService service.MetadataService
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	schemaHandler := handlers.NewSchemaHandler(deps.MetadataService)
	metadataHandler := handlers.NewMetadataHandler(deps.MetadataService)
	docHandler := handlers.NewDocHandler(deps.MetadataService)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/schema/{namespace}", schemaHandler)
		r.Get("/metadata/{namespace}", metadataHandler.List)
		r.Post("/metadata/{namespace}", metadataHandler.Create)
		r.Put("/metadata/{namespace}/{name}", metadataHandler.Update)
		r.Delete("/metadata/{namespace}/{name}", metadataHandler.Delete)
	})

	r.Method(http.MethodGet, "/doc/{namespace}/{schema}", docHandler)

	return r
}
