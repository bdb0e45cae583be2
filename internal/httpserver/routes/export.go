package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/handlers"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/mw"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.With(mw.Session(d.Sessions, d.AuthRequired, d.Logger)).
		Get("/imp-links/export", handlers.ExportExcel(d))
}
