package request

// BookRoomRequest starts an online booking. Children may be zero but must
// be present.
type BookRoomRequest struct {
	RoomID       string `json:"roomId" validate:"required"`
	GuestID      string `json:"guestId" validate:"required,uuid"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Adults       *int   `json:"adults" validate:"required,min=1"`
	Children     *int   `json:"children" validate:"required,min=0"`
}

type ConfirmReservationRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// ReservationRequest is a direct booking by the signed-in guest.
type ReservationRequest struct {
	RoomID       string `json:"roomId" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Adults       *int   `json:"adults" validate:"required,min=1"`
	Children     *int   `json:"children" validate:"required,min=0"`
}
