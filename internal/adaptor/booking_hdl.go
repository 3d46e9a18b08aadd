package adaptor

import (
	"net/http"

	"hotel-management/internal/dto/request"
	"hotel-management/internal/usecase"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// BookRoomOnline handles POST /api/rooms/book
func (h *BookingHandler) BookRoomOnline(w http.ResponseWriter, r *http.Request) {
	var req request.BookRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "book room")
		return
	}

	resp, err := h.service.BookRoomOnline(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "book room")
		return
	}

	utils.ResponseCreated(w, "Reservation created, awaiting payment", resp)
}

// ConfirmReservation handles POST /api/rooms/confirm
func (h *BookingHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "confirm reservation")
		return
	}

	resp, err := h.service.ConfirmReservation(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "confirm reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation confirmed", resp)
}

// CreateReservation handles POST /api/rooms/reservation for the signed-in
// guest.
func (h *BookingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	guestID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, apperror.Unauthorized(apperror.TypeTokenMissing, "Not authorized, no token"))
		return
	}

	var req request.ReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(h.log, w, err, "create reservation")
		return
	}

	resp, err := h.service.CreateReservation(r.Context(), guestID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Room reserved successfully", resp)
}
