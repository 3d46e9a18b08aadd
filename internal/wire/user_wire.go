package wire

import (
	"hotel-management/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, guard routeGuards) {
	r.Route("/api/users", func(r chi.Router) {
		r.With(guard.auth).Get("/profile", userHandler.GetProfile)

		r.Group(func(r chi.Router) {
			r.Use(guard.auth, guard.admin)
			r.Get("/", userHandler.GetUsers)
			r.Post("/add", userHandler.AddUser)
			r.Put("/update", userHandler.UpdateUser)
			r.Put("/deactivate", userHandler.SetActive)
			r.Delete("/delete", userHandler.DeleteUser)
		})
	})
}
