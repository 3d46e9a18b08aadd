package response

import (
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/utils"
)

type ReservationResponse struct {
	ID           string                   `json:"id"`
	GuestID      string                   `json:"guestId"`
	RoomID       string                   `json:"roomId"`
	PaymentID    *string                  `json:"paymentId,omitempty"`
	CheckInDate  string                   `json:"checkInDate"`
	CheckOutDate string                   `json:"checkOutDate"`
	Status       entity.ReservationStatus `json:"status"`
	TotalAmount  float64                  `json:"totalAmount"`
	Adults       int                      `json:"adults"`
	Children     int                      `json:"children"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// BookingIntentResponse is what the client needs to complete payment.
type BookingIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	ReservationID   string `json:"reservationId"`
}

func ReservationToResponse(res *entity.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:           res.ID.String(),
		GuestID:      res.GuestID.String(),
		RoomID:       res.RoomID.String(),
		CheckInDate:  res.CheckInDate.Format(utils.DateLayout),
		CheckOutDate: res.CheckOutDate.Format(utils.DateLayout),
		Status:       res.Status,
		TotalAmount:  res.TotalAmount,
		Adults:       res.Adults,
		Children:     res.Children,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}
	if res.PaymentID != nil {
		id := res.PaymentID.String()
		out.PaymentID = &id
	}
	return out
}
