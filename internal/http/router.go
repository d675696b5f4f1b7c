package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/cashflow/internal/http/backup"
	"github.com/MrJamesThe3rd/cashflow/internal/http/category"
	"github.com/MrJamesThe3rd/cashflow/internal/http/matching"
	"github.com/MrJamesThe3rd/cashflow/internal/http/summary"
	"github.com/MrJamesThe3rd/cashflow/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Categories   *category.Handler
	Summary      *summary.Handler
	Matching     *matching.Handler
	Backup       *backup.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/filter", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Summary.FilterRoutes(r)
		})

		r.Route("/summary", h.Summary.Routes)
		r.Route("/matching", h.Matching.Routes)
		r.Route("/backup", h.Backup.Routes)
	})

	return router
}
