package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	"github.com/Boateng555/assettrack-harren/internal/employee"
	"github.com/Boateng555/assettrack-harren/internal/transport/middleware"
	"github.com/Boateng555/assettrack-harren/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, employeeHandler *employee.Handler, assetHandler *asset.Handler, syncHandler *dirsync.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if employeeHandler != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/", employeeHandler.ListEmployees)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Patch("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
				er.Get("/{id}/photo", employeeHandler.GetEmployeePhoto)

				if assetHandler != nil {
					er.Get("/{id}/assets", assetHandler.ListEmployeeAssets)
				}
			})
		}

		if assetHandler != nil {
			r.Route("/assets", func(ar chi.Router) {
				ar.Post("/", assetHandler.CreateAsset)
				ar.Get("/", assetHandler.ListAssets)
				ar.Get("/{id}", assetHandler.GetAsset)
				ar.Patch("/{id}", assetHandler.UpdateAsset)
				ar.Delete("/{id}", assetHandler.DeleteAsset)
			})
		}

		if syncHandler != nil {
			r.Route("/sync", func(sr chi.Router) {
				sr.Post("/full", syncHandler.FullSync)
				sr.Post("/employees", syncHandler.SyncEmployees)
				sr.Post("/devices", syncHandler.SyncDevices)
				sr.Post("/assignments", syncHandler.SyncAssignments)
				sr.Post("/cleanup", syncHandler.CleanupOrphans)
				sr.Get("/summary", syncHandler.Summary)
			})
		}
	})
}
