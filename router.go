package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS origins via config.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(a.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", a.handleHealth)
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)

			pr.Route("/crops", func(cr chi.Router) {
				cr.Get("/", a.handleListCrops)
				cr.Post("/", a.handleCreateCrop)
				cr.Post("/import", a.handleImportCrop)
				cr.Get("/{id}", a.handleGetCrop)
				cr.Put("/{id}", a.handleUpdateCrop)
				cr.Delete("/{id}", a.handleDeleteCrop)
				cr.Post("/{id}/sales", a.handleAddSale)
				cr.Post("/{id}/complete", a.handleCompleteCrop)
				cr.Post("/{id}/reopen", a.handleReopenCrop)
				cr.Get("/{id}/report", a.handleGetReport)
				cr.Get("/{id}/report.pdf", a.handleGetReportPDF)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/{cropId}", a.handleAddExpense)
				er.Put("/{cropId}/{expenseId}", a.handleUpdateExpense)
				er.Delete("/{cropId}/{expenseId}", a.handleDeleteExpense)
			})
		})
	})

	return r
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "OK"})
}
