package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/handlers"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/mw"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Route("/categories", func(r chi.Router) {
		r.Use(mw.Session(d.Sessions, d.AuthRequired, d.Logger))
		r.Get("/", handlers.ListCategories(d))
		r.Post("/", handlers.CreateCategory(d))
	})
}
