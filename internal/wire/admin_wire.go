package wire

import (
	"hotel-management/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, guard routeGuards) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(guard.auth, guard.admin)
		r.Get("/", adminHandler.Dashboard)
		r.Get("/dashboard", adminHandler.Dashboard)
	})
}
