package wire

import (
	"hotel-management/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, bookingHandler *adaptor.BookingHandler, guard routeGuards) {
	r.Route("/api/rooms", func(r chi.Router) {
		// public catalogue
		r.Get("/", roomHandler.GetRooms)
		r.Get("/single", roomHandler.GetRoom)
		r.Get("/checkAvailability", roomHandler.CheckAvailability)

		// online booking, the payment is settled out of band
		r.With(guard.rateLimit).Post("/book", bookingHandler.BookRoomOnline)
		r.With(guard.rateLimit).Post("/confirm", bookingHandler.ConfirmReservation)

		r.With(guard.auth).Post("/reservation", bookingHandler.CreateReservation)

		r.Group(func(r chi.Router) {
			r.Use(guard.auth, guard.admin)
			r.Post("/addRoom", roomHandler.AddRoom)
			r.Put("/update", roomHandler.UpdateRoom)
			r.Put("/roomStatus", roomHandler.UpdateStatus)
			r.Delete("/delete", roomHandler.DeleteRoom)
		})
	})
}
