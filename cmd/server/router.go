package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/marvel-api/internal/api"
	apiMiddleware "github.com/phrazzld/marvel-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))

	characterHandler := api.NewCharacterHandler(app.characters, app.logger)
	comicHandler := api.NewComicHandler(app.comics, app.logger)

	r.Route("/characters", func(r chi.Router) {
		characterHandler.Routes(r, "comics")
	})
	r.Route("/comics", func(r chi.Router) {
		comicHandler.Routes(r, "characters")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
