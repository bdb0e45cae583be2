package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/handlers"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/mw"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/imp-links", func(r chi.Router) {
		r.Use(mw.Session(d.Sessions, d.AuthRequired, d.Logger))
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.CreateLink(d))
		r.Put("/{id}", handlers.UpdateLink(d))
		r.Delete("/{id}", handlers.DeleteLink(d))
	})
}
