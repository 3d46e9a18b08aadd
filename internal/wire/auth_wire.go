package wire

import (
	"hotel-management/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, guard routeGuards) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(guard.rateLimit).Post("/register", authHandler.Register)
		r.With(guard.rateLimit).Post("/login", authHandler.Login)

		r.With(guard.auth).Post("/logout", authHandler.Logout)
	})
}
