package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/handlers"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/mw"
)

func init() { Register(registerReminders) }

func registerReminders(r chi.Router, d deps.Deps) {
	r.Route("/reminders", func(r chi.Router) {
		r.Use(mw.Session(d.Sessions, d.AuthRequired, d.Logger))
		r.Get("/", handlers.ListReminders(d))
		r.Get("/due", handlers.DueReminders(d))
		r.Post("/", handlers.CreateReminder(d))
		r.Put("/{id}", handlers.UpdateReminder(d))
		r.Patch("/{id}/done", handlers.MarkReminderDone(d))
		r.Delete("/{id}", handlers.DeleteReminder(d))
	})
}
